package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

//fake strategy recording its invocations
type fakeStrategy struct {
	name  string
	res   *Result
	err   error
	calls int
}

func (f *fakeStrategy) Extract(ctx context.Context, target Target) (*Result, error) {
	f.calls++
	return f.res, f.err
}

func (f *fakeStrategy) Name() string { return f.name }

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("https://www.linkedin.com/jobs/view/4257191625/software-engineer-ii")
	assert.NoError(t, err)
	assert.Equal(t, "4257191625", target.PostingID)

	_, err = ParseTarget("https://www.linkedin.com/feed/")
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = ParseTarget("https://www.linkedin.com/jobs/view/not-a-number")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestOrchestrator_InvalidURL_NoStrategyCalls(t *testing.T) {
	s := &fakeStrategy{name: "first"}
	o := NewOrchestrator(s)

	res, err := o.Run(context.Background(), "https://example.com/careers/123")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Equal(t, 0, s.calls, "no strategy may run for an invalid URL")
}

func TestOrchestrator_ShortCircuit(t *testing.T) {
	first := &fakeStrategy{name: "first", res: &Result{}} //not usable
	second := &fakeStrategy{name: "second", res: &Result{Organization: "Acme", RoleTitle: "Engineer"}}
	third := &fakeStrategy{name: "third", res: &Result{Organization: "Other", RoleTitle: "Other"}}
	fourth := &fakeStrategy{name: "fourth"}
	fifth := &fakeStrategy{name: "fifth"}

	o := NewOrchestrator(first, second, third, fourth, fifth)
	res, err := o.Run(context.Background(), "https://www.linkedin.com/jobs/view/111/role")

	assert.NoError(t, err)
	assert.Equal(t, "Acme", res.Organization)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls, "strategies after the first usable result must not run")
	assert.Equal(t, 0, fourth.calls)
	assert.Equal(t, 0, fifth.calls)
}

func TestOrchestrator_StrategyErrorsDoNotPropagate(t *testing.T) {
	failing := &fakeStrategy{name: "failing", err: errors.New("boom")}
	usable := &fakeStrategy{name: "usable", res: &Result{Organization: "Acme", RoleTitle: "Engineer"}}

	o := NewOrchestrator(failing, usable)
	res, err := o.Run(context.Background(), "https://www.linkedin.com/jobs/view/222/role")

	assert.NoError(t, err)
	assert.Equal(t, "Acme", res.Organization)
	assert.Equal(t, 1, failing.calls)
}

func TestOrchestrator_FallbackWhenAllFail(t *testing.T) {
	first := &fakeStrategy{name: "first", err: ErrNavigationFailed}
	second := &fakeStrategy{name: "second", err: ErrAllProfilesFailed}

	o := NewOrchestrator(first, second)
	res, err := o.Run(context.Background(), "https://www.linkedin.com/jobs/view/4257191625/software-engineer-ii")

	assert.NoError(t, err, "the heuristic fallback never fails")
	assert.Equal(t, "Software Engineer Ii", res.RoleTitle)
	assert.Equal(t, "", res.Organization)
	assert.Equal(t, "4257191625", res.PostingID)
	assert.Contains(t, res.Description, "4257191625")
}

func TestUsable(t *testing.T) {
	tests := []struct {
		name     string
		res      *Result
		expected bool
	}{
		{"both set", &Result{Organization: "Acme", RoleTitle: "Engineer"}, true},
		{"missing organization", &Result{RoleTitle: "Engineer"}, false},
		{"missing role", &Result{Organization: "Acme"}, false},
		{"both empty", &Result{}, false},
		{"nil result", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.res.Usable())
		})
	}
}

func TestHeuristicResult(t *testing.T) {
	target := Target{
		URL:       "https://www.linkedin.com/jobs/view/4257191625/software-engineer-ii",
		PostingID: "4257191625",
	}
	res := HeuristicResult(target)

	assert.Equal(t, "Software Engineer Ii", res.RoleTitle)
	assert.Equal(t, "", res.Organization)
	assert.Equal(t, "4257191625", res.PostingID)
	assert.Equal(t, target.URL, res.PostingURL)
	assert.Contains(t, res.Description, "4257191625")
	assert.True(t, res.Usable() == false, "fallback signals incompleteness via description, not usability")
}

func TestHeuristicResult_NoRoleSegment(t *testing.T) {
	target := Target{
		URL:       "https://www.linkedin.com/jobs/view/4257191625",
		PostingID: "4257191625",
	}
	res := HeuristicResult(target)

	assert.Equal(t, "Unknown Role", res.RoleTitle)
}

func TestSanitizeDescription(t *testing.T) {
	raw := "<div>Build &amp; ship &lt;code&gt;</div>"
	assert.Equal(t, "Build & ship <code>", SanitizeDescription(raw))

	assert.Equal(t, "", SanitizeDescription(""))
	assert.Equal(t, "a b c", SanitizeDescription("  a\n\n b\t c  "))
}
