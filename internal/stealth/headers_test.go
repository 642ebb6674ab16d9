package stealth

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNavigationHeaders_Deterministic(t *testing.T) {
	a := NavigationHeaders(rand.New(rand.NewSource(42)))
	b := NavigationHeaders(rand.New(rand.NewSource(42)))

	assert.Equal(t, a, b, "same seed must produce the same header set")
	assert.Contains(t, userAgents, a["User-Agent"])
	assert.Contains(t, referrers, a["Referer"])
	assert.NotEmpty(t, a["Accept-Language"])
}

func TestFetchProfiles_FixedOrder(t *testing.T) {
	profiles := FetchProfiles()

	assert.Len(t, profiles, 3)
	assert.Equal(t, "desktop", profiles[0].Name)
	assert.Equal(t, "mobile-safari", profiles[1].Name)
	assert.Equal(t, "crawler", profiles[2].Name)

	assert.Equal(t, DesktopUserAgent, profiles[0].Headers["User-Agent"])
	assert.Equal(t, MobileUserAgent, profiles[1].Headers["User-Agent"])
	assert.Equal(t, CrawlerUserAgent, profiles[2].Headers["User-Agent"])
}

func TestRandomDuration_Bounds(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		d := RandomDuration(r, 1000, 3000)
		assert.GreaterOrEqual(t, d, 1000*time.Millisecond)
		assert.Less(t, d, 3000*time.Millisecond)
	}
}

func TestRandomDuration_DegenerateRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	assert.Equal(t, 500*time.Millisecond, RandomDuration(r, 500, 500))
	assert.Equal(t, 500*time.Millisecond, RandomDuration(r, 500, 100))
}
