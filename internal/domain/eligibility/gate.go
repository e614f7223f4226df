package eligibility

import "time"

// Gate reason messages surfaced to the employee.
const (
	ReasonNoRequest     = "submit a job switch request first"
	ReasonPendingReview = "your job switch request is pending HR review"
	ReasonWindowEnded   = "restriction period ended; submit a new request"
	ReasonRestricted    = "your job switch request was rejected; you may submit a new one after the restriction period"
)

// Verdict is the gate's answer for one employee at one instant.
type Verdict struct {
	CanSubmitNewRequest bool
	CanApply            bool
	Reason              string
}

// Evaluate runs the eligibility decision table over the employee's most
// recent request. It is total: every input maps to exactly one verdict, and
// nothing is mutated. Rows are checked in order, first match wins.
func Evaluate(latest *Request, now time.Time) Verdict {
	if latest == nil {
		return Verdict{CanSubmitNewRequest: true, CanApply: false, Reason: ReasonNoRequest}
	}

	switch latest.Status {
	case StatusPending:
		return Verdict{CanSubmitNewRequest: false, CanApply: false, Reason: ReasonPendingReview}

	case StatusApproved:
		return Verdict{CanSubmitNewRequest: false, CanApply: true}

	case StatusRejected:
		if now.Before(latest.RestrictionEnd()) {
			reason := latest.RejectionReason
			if reason == "" {
				reason = ReasonRestricted
			}
			return Verdict{CanSubmitNewRequest: false, CanApply: false, Reason: reason}
		}
		return Verdict{CanSubmitNewRequest: true, CanApply: false, Reason: ReasonWindowEnded}
	}

	// Unknown status rows cannot be produced by ParseStatus; treat them as
	// a fresh chain rather than locking the employee out.
	return Verdict{CanSubmitNewRequest: true, CanApply: false, Reason: ReasonNoRequest}
}
