// Package headless drives a stealth-configured browser against the posting
// page and reads fields through prioritized selector lists.
package headless

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"go-applytrack/internal/browser"
	"go-applytrack/internal/extract"
	"go-applytrack/internal/stealth"
)

// Selector candidates per field, most specific first. Lists overlap on
// purpose so markup drift on any one class does not break extraction.
var (
	organizationSelectors = []string{
		".job-details-jobs-unified-top-card__company-name",
		"a.topcard__org-name-link",
		"a[data-tracking-control-name=\"public_jobs_topcard-org-name\"]",
		".top-card-layout__card .topcard__flavor a",
		"[class*='company-name']",
		"[class*='org-name']",
	}
	roleSelectors = []string{
		".job-details-jobs-unified-top-card__job-title",
		"h1.top-card-layout__title",
		"h1.topcard__title",
		"[class*='job-title']",
		"h1",
	}
	locationSelectors = []string{
		".job-details-jobs-unified-top-card__bullet",
		".topcard__flavor--bullet",
		".top-card-layout__second-subline [class*='bullet']",
		"[class*='topcard__flavor']",
		"[class*='location']",
	}
	descriptionSelectors = []string{
		".show-more-less-html__markup",
		".jobs-description__content",
		"#job-details",
		".description__text",
		"[class*='description']",
	}
)

type Strategy struct {
	launcher browser.Launcher

	maxAttempts    int
	navTimeout     time.Duration
	contentTimeout time.Duration
	minContent     int
	delayMinMs     int
	delayMaxMs     int

	// injected for deterministic tests
	rnd   *rand.Rand
	sleep func(time.Duration)
}

func New(launcher browser.Launcher) *Strategy {
	return &Strategy{
		launcher:       launcher,
		maxAttempts:    5,
		navTimeout:     30 * time.Second,
		contentTimeout: 10 * time.Second,
		minContent:     1000,
		delayMinMs:     1000,
		delayMaxMs:     3000,
		rnd:            rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:          time.Sleep,
	}
}

func (s *Strategy) Name() string {
	return "Browser Automation"
}

func (s *Strategy) Extract(ctx context.Context, target extract.Target) (*extract.Result, error) {
	sess, err := s.launcher.NewSession(ctx, stealth.NavigationHeaders(s.rnd))
	if err != nil {
		return nil, fmt.Errorf("browser session: %w", err)
	}
	// release the browser no matter how extraction ends
	defer sess.Close()

	loaded := false
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.sleep(stealth.RandomDuration(s.rnd, s.delayMinMs, s.delayMaxMs))

		if err := sess.Navigate(target.URL, s.navTimeout); err != nil {
			log.Printf("    ⚠️ Navigation attempt %d/%d failed: %v", attempt, s.maxAttempts, err)
			continue
		}
		if err := sess.WaitForContent(s.minContent, s.contentTimeout); err != nil {
			log.Printf("    ⚠️ Content wait failed on attempt %d/%d: %v", attempt, s.maxAttempts, err)
			continue
		}
		loaded = true
		break
	}
	if !loaded {
		return nil, fmt.Errorf("%w: %d attempts exhausted", extract.ErrNavigationFailed, s.maxAttempts)
	}

	res := &extract.Result{
		PostingURL: target.URL,
		PostingID:  target.PostingID,
	}
	res.Organization = firstText(sess, organizationSelectors)
	res.RoleTitle = firstText(sess, roleSelectors)
	res.Location = firstText(sess, locationSelectors)
	res.Description = firstText(sess, descriptionSelectors)
	return res, nil
}

// firstText walks the selector candidates and returns the first non-empty
// match, in document order within each selector.
func firstText(sess browser.Session, selectors []string) string {
	for _, sel := range selectors {
		txt, err := sess.Text(sel)
		if err != nil {
			continue
		}
		if txt != "" {
			return txt
		}
	}
	return ""
}
