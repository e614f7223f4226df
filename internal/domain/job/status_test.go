package job

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"draft", "active", "closed"} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
	if _, err := ParseStatus("archived"); err == nil {
		t.Error("ParseStatus(\"archived\") expected error, got nil")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}

func TestIsStatusTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusActive, true},
		{StatusDraft, StatusClosed, true},
		{StatusActive, StatusClosed, true},
		{StatusActive, StatusDraft, false},
		{StatusClosed, StatusActive, false},
		{StatusClosed, StatusDraft, false},
		{StatusDraft, StatusDraft, false},
	}
	for _, c := range cases {
		if got := IsStatusTransitionAllowed(c.from, c.to); got != c.want {
			t.Errorf("IsStatusTransitionAllowed(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsApplicationTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to ApplicationStatus
		want     bool
	}{
		{ApplicationPending, ApplicationUnderReview, true},
		{ApplicationPending, ApplicationApproved, true},
		{ApplicationPending, ApplicationRejected, true},
		{ApplicationUnderReview, ApplicationApproved, true},
		{ApplicationUnderReview, ApplicationRejected, true},
		{ApplicationApproved, ApplicationRejected, false},
		{ApplicationRejected, ApplicationPending, false},
		{ApplicationApproved, ApplicationPending, false},
		{ApplicationUnderReview, ApplicationPending, false},
	}
	for _, c := range cases {
		if got := IsApplicationTransitionAllowed(c.from, c.to); got != c.want {
			t.Errorf("IsApplicationTransitionAllowed(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsReferralTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to ReferralStatus
		want     bool
	}{
		{ReferralPending, ReferralUnderReview, true},
		{ReferralPending, ReferralHired, true},
		{ReferralUnderReview, ReferralHired, true},
		{ReferralUnderReview, ReferralRejected, true},
		{ReferralHired, ReferralRejected, false},
		{ReferralRejected, ReferralHired, false},
		{ReferralHired, ReferralPending, false},
	}
	for _, c := range cases {
		if got := IsReferralTransitionAllowed(c.from, c.to); got != c.want {
			t.Errorf("IsReferralTransitionAllowed(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestAcceptsActionsAt(t *testing.T) {
	now := time.Now()
	j := Job{Status: StatusActive, Deadline: now.Add(24 * time.Hour)}
	if !j.AcceptsActionsAt(now) {
		t.Error("active job before deadline should accept actions")
	}
	if j.AcceptsActionsAt(now.Add(48 * time.Hour)) {
		t.Error("job past deadline should not accept actions")
	}
	j.Status = StatusDraft
	if j.AcceptsActionsAt(now) {
		t.Error("draft job should not accept actions")
	}
	j.Status = StatusClosed
	if j.AcceptsActionsAt(now) {
		t.Error("closed job should not accept actions")
	}

	// deadline == now is still open
	edge := Job{Status: StatusActive, Deadline: now}
	if !edge.AcceptsActionsAt(now) {
		t.Error("deadline boundary should still accept actions")
	}
}

func TestCandidateValidate(t *testing.T) {
	ok := Candidate{Name: "Dina Putri", Email: "dina@example.com", ResumeURL: "https://files.example.com/dina.pdf"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []Candidate{
		{Email: "a@b.c", ResumeURL: "u"},
		{Name: "A", ResumeURL: "u"},
		{Name: "A", Email: "a@b.c"},
		{Name: "   ", Email: "a@b.c", ResumeURL: "u"},
		{},
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestParseResumeKind(t *testing.T) {
	if _, err := ParseResumeKind("current"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseResumeKind("updated"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseResumeKind("previous"); err == nil {
		t.Fatal("expected error for unknown resume kind")
	}
}
