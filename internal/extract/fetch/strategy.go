// Package fetch extracts posting fields from raw markup fetched over plain
// HTTP, rotating through several header identities.
package fetch

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

// Ordered pattern alternatives per field; first capture group wins.
var (
	organizationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<a[^>]*class="[^"]*topcard__org-name-link[^"]*"[^>]*>\s*([^<]+?)\s*</a>`),
		regexp.MustCompile(`"companyName"\s*:\s*"([^"]+)"`),
		regexp.MustCompile(`<span[^>]*class="[^"]*topcard__flavor[^"]*"[^>]*>\s*([^<]+?)\s*</span>`),
	}
	rolePatterns = []*regexp.Regexp{
		regexp.MustCompile(`<h1[^>]*class="[^"]*top-card-layout__title[^"]*"[^>]*>\s*([^<]+?)\s*</h1>`),
		regexp.MustCompile(`<h1[^>]*class="[^"]*topcard__title[^"]*"[^>]*>\s*([^<]+?)\s*</h1>`),
		regexp.MustCompile(`"title"\s*:\s*"([^"]+)"`),
	}
	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<span[^>]*class="[^"]*topcard__flavor--bullet[^"]*"[^>]*>\s*([^<]+?)\s*</span>`),
		regexp.MustCompile(`"addressLocality"\s*:\s*"([^"]+)"`),
		regexp.MustCompile(`"formattedLocation"\s*:\s*"([^"]+)"`),
	}
	descriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)<div[^>]*class="[^"]*show-more-less-html__markup[^"]*"[^>]*>(.*?)</div>`),
		regexp.MustCompile(`(?s)<div[^>]*class="[^"]*description__text[^"]*"[^>]*>(.*?)</div>`),
		regexp.MustCompile(`(?s)<section[^>]*class="[^"]*description[^"]*"[^>]*>(.*?)</section>`),
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
	return "Direct Fetch"
}

// Extract rotates through the fixed header profiles and returns as soon as
// one yields a non-empty organization or role title.
func (s *Strategy) Extract(ctx context.Context, target extract.Target) (*extract.Result, error) {
	for _, profile := range stealth.FetchProfiles() {
		body, err := s.get(ctx, target.URL, profile.Headers)
		if err != nil {
			log.Printf("    ⚠️ Profile %s: %v", profile.Name, err)
			continue
		}

		res := &extract.Result{
			PostingURL: target.URL,
			PostingID:  target.PostingID,
		}
		res.Organization = firstMatch(body, organizationPatterns)
		res.RoleTitle = firstMatch(body, rolePatterns)
		res.Location = firstMatch(body, locationPatterns)
		res.Description = extract.SanitizeDescription(firstMatch(body, descriptionPatterns))

		if res.Organization != "" || res.RoleTitle != "" {
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w for posting %s", extract.ErrAllProfilesFailed, target.PostingID)
}

func (s *Strategy) get(ctx context.Context, url string, headers map[string]string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
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
