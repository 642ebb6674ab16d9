// Package mobileapi probes the undocumented guest mobile endpoints that serve
// posting data as JSON.
package mobileapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"go-applytrack/internal/extract"
	"go-applytrack/internal/stealth"
)

type Strategy struct {
	client  *http.Client
	baseURL string
}

// New builds the probe against baseURL (normally https://www.linkedin.com;
// tests point it at a local server).
func New(baseURL string, timeout time.Duration) *Strategy {
	return &Strategy{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (s *Strategy) Name() string {
	return "Mobile API"
}

// endpoint variants differ only by decoration parameters requesting extra fields
func (s *Strategy) endpoints(postingID string) []string {
	base := fmt.Sprintf("%s/jobs-guest/jobs/api/jobPosting/%s", s.baseURL, postingID)
	return []string{
		base,
		base + "?decorationId=com.linkedin.voyager.deco.jobs.web.shared.WebLightJobPosting-23",
	}
}

func (s *Strategy) Extract(ctx context.Context, target extract.Target) (*extract.Result, error) {
	for _, endpoint := range s.endpoints(target.PostingID) {
		data, err := s.getJSON(ctx, endpoint)
		if err != nil {
			log.Printf("    ⚠️ Mobile endpoint failed: %v", err)
			continue
		}

		title := stringField(data, "title", "jobTitle")
		org := stringField(data, "companyName")
		if org == "" {
			org = nestedString(data, "company", "name")
		}
		if org == "" {
			org = nestedString(data, "companyDetails", "name")
		}
		if title == "" && org == "" {
			continue
		}

		desc := stringField(data, "description")
		if desc == "" {
			desc = nestedString(data, "description", "text")
		}

		res := &extract.Result{
			Organization:    org,
			RoleTitle:       title,
			Location:        stringField(data, "formattedLocation", "location"),
			Description:     extract.SanitizeDescription(desc),
			PostingURL:      target.URL,
			PostingID:       target.PostingID,
			Salary:          stringField(data, "salary", "formattedSalary"),
			EmploymentType:  stringField(data, "employmentStatus", "employmentType"),
			ExperienceLevel: stringField(data, "formattedExperienceLevel", "experienceLevel"),
			PostedDate:      postedDate(data),
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w for posting %s", extract.ErrNoMobileData, target.PostingID)
}

func (s *Strategy) getJSON(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", stealth.MobileUserAgent)
	req.Header.Set("Accept", "application/json")

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

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return data, nil
}

// stringField returns the first non-empty string among the key aliases.
func stringField(data map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := data[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func nestedString(data map[string]any, key, sub string) string {
	if m, ok := data[key].(map[string]any); ok {
		if s, ok := m[sub].(string); ok {
			return s
		}
	}
	return ""
}

func postedDate(data map[string]any) string {
	if s := stringField(data, "formattedPostedDate", "postedDate"); s != "" {
		return s
	}
	// listedAt is an epoch-millis number on some decorations
	if ms, ok := data["listedAt"].(float64); ok && ms > 0 {
		return time.UnixMilli(int64(ms)).UTC().Format("2006-01-02")
	}
	return ""
}
