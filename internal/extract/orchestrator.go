package extract

import (
	"context"
	"log"
)

// Orchestrator runs strategies in fixed priority order and returns the first
// usable result. When every strategy fails, the URL-heuristic fallback is
// returned instead of an error, so callers always get a fillable result.
type Orchestrator struct {
	strategies []Strategy
}

func NewOrchestrator(strategies ...Strategy) *Orchestrator {
	return &Orchestrator{strategies: strategies}
}

// Run parses the posting id, then tries each strategy until one yields a
// usable result. The only failure mode is ErrInvalidURL, returned before any
// network or browser call is made.
func (o *Orchestrator) Run(ctx context.Context, postingURL string) (*Result, error) {
	target, err := ParseTarget(postingURL)
	if err != nil {
		return nil, err
	}
	log.Printf("🚀 Extracting posting %s", target.PostingID)

	for _, s := range o.strategies {
		log.Printf("▶️ Trying strategy: %s", s.Name())
		res, err := s.Extract(ctx, target)
		if err != nil {
			log.Printf("  ⚠️ %s failed: %v", s.Name(), err)
			continue
		}
		if res.Usable() {
			log.Printf("  ✅ %s succeeded: %s @ %s", s.Name(), res.RoleTitle, res.Organization)
			return res, nil
		}
		log.Printf("  ⚠️ %s returned incomplete data, moving on", s.Name())
	}

	log.Printf("🔁 All strategies exhausted for %s, using URL heuristic", target.PostingID)
	return HeuristicResult(target), nil
}
