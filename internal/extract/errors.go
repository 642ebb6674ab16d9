package extract

import "errors"

// ErrInvalidURL is the only error the orchestrator surfaces to callers.
// Every other failure degrades into the URL-heuristic fallback result.
var ErrInvalidURL = errors.New("invalid posting url")

// Per-strategy failures. The orchestrator logs these and advances to the
// next strategy; they never propagate to the caller.
var (
	ErrNavigationFailed  = errors.New("browser navigation failed")
	ErrAllProfilesFailed = errors.New("all header profiles failed")
	ErrNoMobileData      = errors.New("no mobile api data")
	ErrNoStructuredData  = errors.New("no structured data block")
	ErrNoAlternativeData = errors.New("no alternative endpoint data")
)
