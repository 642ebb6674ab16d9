// Package structured reads the JSON-LD blocks embedded in the posting page
// and maps the first JobPosting record into a result.
package structured

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"go-applytrack/internal/extract"
	"go-applytrack/internal/stealth"
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
	return "Structured Data"
}

// Extract fetches the canonical page once and scans every
// script[type="application/ld+json"] block for a JobPosting record.
func (s *Strategy) Extract(ctx context.Context, target extract.Target) (*extract.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", stealth.DesktopUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var res *extract.Result
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		posting, ok := decodePosting(sel.Text())
		if !ok {
			return true
		}
		res = mapPosting(posting, target)
		return false
	})

	if res == nil {
		return nil, fmt.Errorf("%w for posting %s", extract.ErrNoStructuredData, target.PostingID)
	}
	return res, nil
}

// decodePosting parses one script block and digs out a JobPosting object,
// tolerating top-level arrays and @graph wrappers.
func decodePosting(raw string) (map[string]any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	var single map[string]any
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if isJobPosting(single) {
			return single, true
		}
		if graph, ok := single["@graph"].([]any); ok {
			return postingFromList(graph)
		}
		return nil, false
	}

	var list []any
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return postingFromList(list)
	}
	return nil, false
}

func postingFromList(items []any) (map[string]any, bool) {
	for _, item := range items {
		if m, ok := item.(map[string]any); ok && isJobPosting(m) {
			return m, true
		}
	}
	return nil, false
}

func isJobPosting(m map[string]any) bool {
	switch t := m["@type"].(type) {
	case string:
		return t == "JobPosting"
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func mapPosting(m map[string]any, target extract.Target) *extract.Result {
	res := &extract.Result{
		PostingURL: target.URL,
		PostingID:  target.PostingID,
	}

	res.RoleTitle = str(m["title"])

	if org, ok := m["hiringOrganization"].(map[string]any); ok {
		res.Organization = str(org["name"])
	}
	if res.Organization == "" {
		res.Organization = str(m["employerName"])
	}

	res.Location = locality(m["jobLocation"])
	res.Description = extract.SanitizeDescription(str(m["description"]))
	res.PostedDate = str(m["datePosted"])
	res.EmploymentType = employmentType(m["employmentType"])
	res.Salary = salary(m["baseSalary"])
	res.ExperienceLevel = str(m["experienceRequirements"])

	return res
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// locality handles the jobLocation shapes seen in the wild: a Place object
// with a nested address, an array of Places, or a bare string.
func locality(v any) string {
	switch loc := v.(type) {
	case string:
		return strings.TrimSpace(loc)
	case []any:
		for _, item := range loc {
			if s := locality(item); s != "" {
				return s
			}
		}
	case map[string]any:
		if addr, ok := loc["address"].(map[string]any); ok {
			if s := str(addr["addressLocality"]); s != "" {
				return s
			}
		}
		return str(loc["name"])
	}
	return ""
}

func employmentType(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			return str(t[0])
		}
	}
	return ""
}

func salary(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	currency := str(m["currency"])
	if val, ok := m["value"].(map[string]any); ok {
		switch amount := val["value"].(type) {
		case float64:
			return strings.TrimSpace(fmt.Sprintf("%s %.0f", currency, amount))
		case string:
			return strings.TrimSpace(currency + " " + amount)
		}
	}
	return ""
}
