package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Path segments that never describe the role.
var skipSegments = map[string]bool{
	"jobs": true,
	"view": true,
}

var numericSegment = regexp.MustCompile(`^\d+$`)

var titleCaser = cases.Title(language.English)

// HeuristicResult derives a placeholder result from the URL path alone.
// It never fails: the role title falls back to a fixed placeholder and the
// description flags the posting for manual completion.
func HeuristicResult(target Target) *Result {
	role := ""
	if u, err := url.Parse(target.URL); err == nil {
		for _, seg := range strings.Split(strings.Trim(u.Path, "/"), "/") {
			if seg == "" || skipSegments[seg] || numericSegment.MatchString(seg) {
				continue
			}
			role = titleCaser.String(strings.ReplaceAll(seg, "-", " "))
			break
		}
	}
	if role == "" {
		role = "Unknown Role"
	}

	return &Result{
		RoleTitle:  role,
		PostingURL: target.URL,
		PostingID:  target.PostingID,
		Description: fmt.Sprintf(
			"Automatic extraction was incomplete for posting %s. Please review the posting and fill in the remaining details manually.",
			target.PostingID),
	}
}
