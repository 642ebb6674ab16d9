package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostingCache_AddAndCheck(t *testing.T) {
	dir := t.TempDir()
	cache := NewPostingCache(dir)

	url := "https://www.linkedin.com/jobs/view/123/backend-engineer"
	assert.False(t, cache.IsSeen(url))

	cache.Add([]string{url})
	assert.True(t, cache.IsSeen(url))
}

func TestPostingCache_PersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	url := "https://www.linkedin.com/jobs/view/456/data-engineer"

	cache := NewPostingCache(dir)
	cache.Add([]string{url})

	reloaded := NewPostingCache(dir)
	assert.True(t, reloaded.IsSeen(url))
}

func TestPostingCache_ExpiresOldEntries(t *testing.T) {
	dir := t.TempDir()

	//write a cache file with one fresh and one 31-day-old entry
	old := time.Now().UnixMilli() - int64(31*24*time.Hour/time.Millisecond)
	entries := []seenEntry{
		{URL: "https://example.com/stale", Timestamp: old},
		{URL: "https://example.com/fresh", Timestamp: time.Now().UnixMilli()},
	}
	data, err := json.Marshal(entries)
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "seen_postings.json"), data, 0644))

	cache := NewPostingCache(dir)
	assert.False(t, cache.IsSeen("https://example.com/stale"))
	assert.True(t, cache.IsSeen("https://example.com/fresh"))
}

func TestPostingCache_CorruptFileIgnored(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "seen_postings.json"), []byte("{broken"), 0644))

	cache := NewPostingCache(dir)
	assert.False(t, cache.IsSeen("anything"))
}
