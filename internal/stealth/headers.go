// Header and user-agent pools for anti-automation evasion.
// Everything takes an explicit *rand.Rand so tests can seed it.
package stealth

import (
	"math/rand"
	"time"
)

// Fixed identities for the rotating-header fetch profiles.
const (
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	MobileUserAgent  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
	CrawlerUserAgent = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

var userAgents = []string{
	DesktopUserAgent,
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
}

var referrers = []string{
	"https://www.google.com/",
	"https://www.bing.com/",
	"https://duckduckgo.com/",
	"https://www.linkedin.com/",
}

// NavigationHeaders builds a randomized header set for browser navigation.
func NavigationHeaders(r *rand.Rand) map[string]string {
	return map[string]string{
		"User-Agent":      userAgents[r.Intn(len(userAgents))],
		"Referer":         referrers[r.Intn(len(referrers))],
		"Accept-Language": "en-US,en;q=0.9",
	}
}

// Profile is one header identity for the direct-fetch strategy.
type Profile struct {
	Name    string
	Headers map[string]string
}

// FetchProfiles returns the fixed profile rotation: desktop browser first,
// then mobile Safari, then a search-engine crawler identity.
func FetchProfiles() []Profile {
	return []Profile{
		{
			Name: "desktop",
			Headers: map[string]string{
				"User-Agent":      DesktopUserAgent,
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "en-US,en;q=0.9",
			},
		},
		{
			Name: "mobile-safari",
			Headers: map[string]string{
				"User-Agent":      MobileUserAgent,
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "en-US,en;q=0.9",
			},
		},
		{
			Name: "crawler",
			Headers: map[string]string{
				"User-Agent": CrawlerUserAgent,
				"Accept":     "text/html,application/xhtml+xml",
			},
		},
	}
}

// RandomDuration picks a duration between min and max milliseconds.
func RandomDuration(r *rand.Rand, minMs, maxMs int) time.Duration {
	if minMs >= maxMs {
		return time.Duration(minMs) * time.Millisecond
	}
	return time.Duration(r.Intn(maxMs-minMs)+minMs) * time.Millisecond
}
