package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type seenEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// PostingCache remembers which postings were already extracted so repeat
// runs do not re-notify the user. Entries expire after 30 days.
type PostingCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
}

const thirtyDaysMs = int64(30 * 24 * 60 * 60 * 1000)

// NewPostingCache creates or loads a posting cache under cacheDir.
func NewPostingCache(cacheDir string) *PostingCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	path := filepath.Join(cacheDir, "seen_postings.json")
	cache := &PostingCache{
		filePath: path,
		seen:     make(map[string]int64),
	}
	cache.load()
	return cache
}

// IsSeen checks if a posting URL has already been processed.
// Mutex is required because Go maps are not thread-safe.
func (pc *PostingCache) IsSeen(url string) bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	_, exists := pc.seen[url]
	return exists
}

func (pc *PostingCache) Add(urls []string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, url := range urls {
		if _, exists := pc.seen[url]; !exists {
			pc.seen[url] = now
			changed = true
		}
	}

	if changed {
		pc.save()
	}
}

// load reads the cache from disk, dropping entries past the expiry window.
func (pc *PostingCache) load() {
	data, err := os.ReadFile(pc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read seen_postings.json: %v", err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse seen_postings.json: %v", err)
		return
	}

	thirtyDaysAgo := time.Now().UnixMilli() - thirtyDaysMs
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > thirtyDaysAgo {
			pc.seen[e.URL] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously seen postings (%d expired and removed)", loaded, len(entries)-loaded)
}

// save writes the current cache to disk
func (pc *PostingCache) save() {
	entries := make([]seenEntry, 0, len(pc.seen))
	for url, ts := range pc.seen {
		entries = append(entries, seenEntry{URL: url, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen postings: %v", err)
		return
	}
	if err := os.WriteFile(pc.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write seen_postings.json: %v", err)
	}
}
