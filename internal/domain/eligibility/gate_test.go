package eligibility

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}

func TestEvaluate_NoRequest(t *testing.T) {
	v := Evaluate(nil, time.Now())
	if !v.CanSubmitNewRequest {
		t.Fatalf("expected CanSubmitNewRequest=true")
	}
	if v.CanApply {
		t.Fatalf("expected CanApply=false")
	}
	if v.Reason != ReasonNoRequest {
		t.Fatalf("unexpected reason %q", v.Reason)
	}
}

func TestEvaluate_Pending(t *testing.T) {
	req := &Request{ID: uuid.New(), Status: StatusPending, RequestedAt: time.Now()}
	v := Evaluate(req, time.Now())
	if v.CanSubmitNewRequest || v.CanApply {
		t.Fatalf("pending request must block both, got %+v", v)
	}
	if v.Reason != ReasonPendingReview {
		t.Fatalf("unexpected reason %q", v.Reason)
	}
}

func TestEvaluate_Approved(t *testing.T) {
	req := &Request{ID: uuid.New(), Status: StatusApproved}
	v := Evaluate(req, time.Now())
	if v.CanSubmitNewRequest {
		t.Fatalf("approved chain must not accept a new request")
	}
	if !v.CanApply {
		t.Fatalf("expected CanApply=true")
	}
	if v.Reason != "" {
		t.Fatalf("expected empty reason, got %q", v.Reason)
	}
}

func TestEvaluate_RejectedInsideWindow(t *testing.T) {
	rejected := mustTime(t, "2024-01-01T00:00:00Z")
	after := RestrictionEnd(rejected)
	req := &Request{
		Status:          StatusRejected,
		RejectionReason: "insufficient tenure",
		RejectedAt:      &rejected,
		CanApplyAfter:   &after,
	}

	for _, now := range []time.Time{
		rejected,
		mustTime(t, "2024-01-15T00:00:00Z"),
		after.Add(-time.Second),
	} {
		v := Evaluate(req, now)
		if v.CanSubmitNewRequest || v.CanApply {
			t.Fatalf("now=%s: expected full block, got %+v", now, v)
		}
		if v.Reason != "insufficient tenure" {
			t.Fatalf("now=%s: expected rejection reason, got %q", now, v.Reason)
		}
	}
}

func TestEvaluate_RejectedWindowElapsed(t *testing.T) {
	rejected := mustTime(t, "2024-01-01T00:00:00Z")
	after := RestrictionEnd(rejected)
	req := &Request{Status: StatusRejected, RejectedAt: &rejected, CanApplyAfter: &after}

	for _, now := range []time.Time{
		after,
		mustTime(t, "2024-02-02T00:00:00Z"),
		mustTime(t, "2025-01-01T00:00:00Z"),
	} {
		v := Evaluate(req, now)
		if !v.CanSubmitNewRequest {
			t.Fatalf("now=%s: expected CanSubmitNewRequest=true", now)
		}
		if v.CanApply {
			t.Fatalf("now=%s: elapsed window must not grant apply", now)
		}
		if v.Reason != ReasonWindowEnded {
			t.Fatalf("now=%s: unexpected reason %q", now, v.Reason)
		}
	}
}

func TestEvaluate_RejectedDefaultReason(t *testing.T) {
	rejected := time.Now()
	req := &Request{Status: StatusRejected, RejectedAt: &rejected}
	v := Evaluate(req, rejected.Add(time.Hour))
	if v.Reason != ReasonRestricted {
		t.Fatalf("expected default restriction text, got %q", v.Reason)
	}
}

func TestRestrictionEnd_CalendarMonth(t *testing.T) {
	rejected := mustTime(t, "2024-01-01T00:00:00Z")
	want := mustTime(t, "2024-02-01T00:00:00Z")
	if got := RestrictionEnd(rejected); !got.Equal(want) {
		t.Fatalf("RestrictionEnd=%s want %s", got, want)
	}
}

func TestRestrictionEnd_PrefersStoredStamp(t *testing.T) {
	rejected := mustTime(t, "2024-01-01T00:00:00Z")
	override := mustTime(t, "2024-03-01T00:00:00Z")
	req := Request{Status: StatusRejected, RejectedAt: &rejected, CanApplyAfter: &override}
	if got := req.RestrictionEnd(); !got.Equal(override) {
		t.Fatalf("RestrictionEnd=%s want stored %s", got, override)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("ParseStatus(%q): %v", s, err)
		}
	}
	if _, err := ParseStatus("cancelled"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestParseDecision(t *testing.T) {
	if _, err := ParseDecision("approved"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseDecision("maybe"); err == nil {
		t.Fatalf("expected error for unknown decision")
	}
}
