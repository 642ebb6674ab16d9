package extract

import "context"

// Strategy is one self-contained extraction technique. Strategies are
// stateless given their inputs and manage their own internal retries.
type Strategy interface {
	// Extract attempts to pull posting fields for the target.
	Extract(ctx context.Context, target Target) (*Result, error)

	// Name identifies the strategy in logs (Browser Automation, Direct Fetch, ...)
	Name() string
}
