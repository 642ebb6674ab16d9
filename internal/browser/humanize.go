package browser

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-applytrack/internal/stealth"
)

// Human-behavior simulation against a live page. Used between navigation and
// extraction to avoid idle-detection heuristics.

// MouseJiggle moves the mouse to a few random viewport coordinates.
func MouseJiggle(page playwright.Page, r *rand.Rand) error {
	viewport := page.ViewportSize()
	if viewport == nil {
		return nil
	}
	for i := 0; i < 3; i++ {
		x := r.Intn(viewport.Width)
		y := r.Intn(viewport.Height)
		if err := page.Mouse().Move(float64(x), float64(y)); err != nil {
			return err
		}
		time.Sleep(stealth.RandomDuration(r, 100, 300))
	}
	return nil
}

// HumanScroll scrolls down in steps, then corrects back up a little.
func HumanScroll(page playwright.Page, r *rand.Rand) error {
	for i := 0; i < 5; i++ {
		if _, err := page.Evaluate("window.scrollBy(0, window.innerHeight / 2)"); err != nil {
			return err
		}
		time.Sleep(stealth.RandomDuration(r, 500, 1500))
	}
	_, err := page.Evaluate("window.scrollBy(0, -200)")
	return err
}
