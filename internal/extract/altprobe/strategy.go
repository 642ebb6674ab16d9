// Package altprobe retries the canonical page under URL variants with a
// spoofed search-engine referrer, then applies looser pattern extraction.
package altprobe

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go-applytrack/internal/extract"
	"go-applytrack/internal/stealth"
)

// Looser, unanchored patterns than the direct-fetch tables. Case-insensitive
// and applied across the whole page.
var (
	orgLoose = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"companyName"\s*:\s*"([^"]+)"`),
		regexp.MustCompile(`(?is)"hiringOrganization"[^}]*?"name"\s*:\s*"([^"]+)"`),
		regexp.MustCompile(`(?i)class="[^"]*org-name[^"]*"[^>]*>\s*([^<]+?)\s*<`),
	}
	roleLoose = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<h1[^>]*>\s*([^<]+?)\s*</h1>`),
		regexp.MustCompile(`(?i)"title"\s*:\s*"([^"]+)"`),
		regexp.MustCompile(`(?is)<title>\s*([^<|]+?)\s*(?:\||</title>)`),
	}
	locationLoose = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"addressLocality"\s*:\s*"([^"]+)"`),
		regexp.MustCompile(`(?i)class="[^"]*bullet[^"]*"[^>]*>\s*([^<]+?)\s*<`),
	}
	descriptionLoose = []*regexp.Regexp{
		regexp.MustCompile(`(?is)class="[^"]*description[^"]*"[^>]*>(.*?)</(?:div|section)>`),
	}
)

type Strategy struct {
	client *http.Client
}

func New(timeout time.Duration) *Strategy {
	return &Strategy{
		client: &http.Client{Timeout: timeout},
	}
}

func (s *Strategy) Name() string {
	return "Alternative Endpoints"
}

// variants of the canonical URL: trailing slash, tracking params, search origin
func variants(url string) []string {
	return []string{
		url,
		strings.TrimSuffix(url, "/") + "/",
		url + "?trk=public_jobs_topcard-title",
		url + "?refId=public_search&original_referer=https%3A%2F%2Fwww.google.com%2F",
	}
}

func (s *Strategy) Extract(ctx context.Context, target extract.Target) (*extract.Result, error) {
	for _, variant := range variants(target.URL) {
		body, err := s.get(ctx, variant)
		if err != nil {
			log.Printf("    ⚠️ Variant failed: %v", err)
			continue
		}

		res := &extract.Result{
			PostingURL: target.URL,
			PostingID:  target.PostingID,
		}
		res.Organization = firstMatch(body, orgLoose)
		res.RoleTitle = firstMatch(body, roleLoose)
		res.Location = firstMatch(body, locationLoose)
		res.Description = extract.SanitizeDescription(firstMatch(body, descriptionLoose))

		if res.Organization != "" || res.RoleTitle != "" {
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w for posting %s", extract.ErrNoAlternativeData, target.PostingID)
}

func (s *Strategy) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", stealth.DesktopUserAgent)
	// claim a search-engine origin
	req.Header.Set("Referer", "https://www.google.com/")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

func firstMatch(body string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(body); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}
