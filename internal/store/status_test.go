package store

import "testing"

func TestParseStatus(t *testing.T) {
	valid := []string{"SAVED", "APPLIED", "INTERVIEWING", "OFFER", "REJECTED"}
	for _, s := range valid {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}

	if _, err := ParseStatus("UNKNOWN"); err == nil {
		t.Error("ParseStatus(\"UNKNOWN\") expected error, got nil")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}

func TestIsTransitionAllowed_ValidForward(t *testing.T) {
	cases := []struct {
		from, to Status
	}{
		{StatusSaved, StatusApplied},
		{StatusApplied, StatusInterviewing},
		{StatusInterviewing, StatusOffer},
	}
	for _, c := range cases {
		if !IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s, %s) = false, want true", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_RejectionFromAnyActiveState(t *testing.T) {
	for _, from := range []Status{StatusSaved, StatusApplied, StatusInterviewing} {
		if !IsTransitionAllowed(from, StatusRejected) {
			t.Errorf("IsTransitionAllowed(%s, REJECTED) = false, want true", from)
		}
	}
}

func TestIsTransitionAllowed_Invalid(t *testing.T) {
	cases := []struct {
		from, to Status
	}{
		{StatusSaved, StatusInterviewing}, //skipping a stage
		{StatusSaved, StatusOffer},
		{StatusApplied, StatusSaved}, //moving backwards
		{StatusInterviewing, StatusApplied},
	}
	for _, c := range cases {
		if IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s, %s) = true, want false", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_TerminalStates(t *testing.T) {
	targets := []Status{StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected}
	for _, from := range []Status{StatusOffer, StatusRejected} {
		for _, to := range targets {
			if IsTransitionAllowed(from, to) {
				t.Errorf("IsTransitionAllowed(%s, %s) = true, want false (terminal state)", from, to)
			}
		}
	}
}
