package browser

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-applytrack/utils"
)

// Chromium flag set: no telemetry, no extensions, no background throttling.
var launchArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--disable-extensions",
	"--disable-background-timer-throttling",
	"--disable-backgrounding-occluded-windows",
	"--disable-renderer-backgrounding",
	"--disable-component-update",
	"--disable-sync",
	"--metrics-recording-only",
	"--no-first-run",
	"--no-default-browser-check",
}

// Session is the per-extraction browser collaborator. The headless strategy
// only talks to this interface so it can be tested against a fake.
type Session interface {
	Navigate(url string, timeout time.Duration) error
	WaitForContent(minChars int, timeout time.Duration) error
	// Text returns the first non-empty trimmed text across all elements
	// matching the selector, in document order.
	Text(selector string) (string, error)
	Close() error
}

// Launcher hands out isolated browser sessions.
type Launcher interface {
	NewSession(ctx context.Context, headers map[string]string) (Session, error)
	Close() error
}

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cookies []playwright.OptionalCookie
}

// NewPlaywright launches a headless Chromium with the stealth flag set.
// Cookies, when provided, are injected into every new context.
func NewPlaywright(cookies []playwright.OptionalCookie) (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     launchArgs,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: b, cookies: cookies}, nil
}

// NewSession creates an isolated browser context with a spoofed desktop
// viewport and the given header set applied before navigation.
func (pm *PlaywrightManager) NewSession(ctx context.Context, headers map[string]string) (Session, error) {
	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	}
	if ua, ok := headers["User-Agent"]; ok {
		opts.UserAgent = playwright.String(ua)
	}

	bctx, err := pm.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	if len(pm.cookies) > 0 {
		if err := bctx.AddCookies(pm.cookies); err != nil {
			bctx.Close()
			return nil, fmt.Errorf("failed to add cookies: %w", err)
		}
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	if err := page.SetExtraHTTPHeaders(headers); err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to set headers: %w", err)
	}

	return &pwSession{
		bctx:     bctx,
		page:     page,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		debugger: utils.NewScreenshotDebugger(),
	}, nil
}

func (pm *PlaywrightManager) Close() error {
	if pm.browser != nil {
		pm.browser.Close()
	}
	if pm.pw != nil {
		return pm.pw.Stop()
	}
	return nil
}

type pwSession struct {
	bctx     playwright.BrowserContext
	page     playwright.Page
	rnd      *rand.Rand
	debugger *utils.ScreenshotDebugger
}

func (s *pwSession) Navigate(url string, timeout time.Duration) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		s.debugger.CaptureAndLog(s.page, "navigation-failed", fmt.Sprintf("🚨 Navigation to %s failed", url))
		return err
	}
	MouseJiggle(s.page, s.rnd)
	return nil
}

// WaitForContent polls the body text length every 500ms until it exceeds
// minChars, as a proxy for "content loaded" on script-heavy pages.
func (s *pwSession) WaitForContent(minChars int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	scrolled := false
	for {
		length := 0
		if v, err := s.page.Evaluate("document.body ? document.body.innerText.length : 0"); err == nil {
			switch n := v.(type) {
			case int:
				length = n
			case float64:
				length = int(n)
			}
		}
		if length >= minChars {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("body text below %d chars after %v", minChars, timeout)
		}
		// scroll once to trigger lazy-loaded content
		if !scrolled {
			HumanScroll(s.page, s.rnd)
			scrolled = true
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func (s *pwSession) Text(selector string) (string, error) {
	els, err := s.page.Locator(selector).All()
	if err != nil {
		return "", err
	}
	for _, el := range els {
		txt, err := el.InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(1000),
		})
		if err != nil {
			continue
		}
		if t := strings.TrimSpace(txt); t != "" {
			return t, nil
		}
	}
	return "", nil
}

func (s *pwSession) Close() error {
	if s.page != nil {
		s.page.Close()
	}
	return s.bctx.Close()
}
