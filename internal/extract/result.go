package extract

import (
	"fmt"
	"regexp"
)

// postingIDPattern matches the numeric id embedded in a posting path,
// e.g. https://www.linkedin.com/jobs/view/4257191625/software-engineer-ii
var postingIDPattern = regexp.MustCompile(`/jobs/view/(\d+)`)

// Result holds every field a strategy can pull out of a posting.
// Unknown fields stay as empty strings; a nil *Result means extraction
// was never attempted.
type Result struct {
	Organization    string `json:"organization"`
	RoleTitle       string `json:"role_title"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	PostingURL      string `json:"posting_url"`
	PostingID       string `json:"posting_id"`
	Salary          string `json:"salary"`
	EmploymentType  string `json:"employment_type"`
	ExperienceLevel string `json:"experience_level"`
	PostedDate      string `json:"posted_date"`
}

// Usable reports whether the result carries enough data to pre-fill an
// application form. Both organization and role title must be non-empty.
func (r *Result) Usable() bool {
	return r != nil && r.Organization != "" && r.RoleTitle != ""
}

// Target is a validated extraction target: the posting URL plus the numeric
// id parsed out of its path.
type Target struct {
	URL       string
	PostingID string
}

// ParseTarget extracts the posting id from a raw URL. It fails with
// ErrInvalidURL when the URL does not contain a /jobs/view/<id> path.
func ParseTarget(rawURL string) (Target, error) {
	m := postingIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return Target{}, fmt.Errorf("%w: no posting id in %q", ErrInvalidURL, rawURL)
	}
	return Target{URL: rawURL, PostingID: m[1]}, nil
}
