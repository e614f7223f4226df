package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event names pushed to connected clients.
const (
	EventRequestSubmitted    = "eligibility_request_submitted"
	EventApplicationReceived = "application_received"
	EventReferralReceived    = "referral_received"
)

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

var defaultHub atomic.Pointer[Hub]

// SetDefaultHub wires the process-wide hub used by the Notify helpers.
// Before it is called the helpers are no-ops.
func SetDefaultHub(h *Hub) { defaultHub.Store(h) }

func emit(eventType string, payload any) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	msg, err := json.Marshal(Event{Type: eventType, Timestamp: time.Now().UTC(), Payload: payload})
	if err != nil {
		return
	}
	h.Broadcast(msg)
}

// NotifyRequestSubmitted tells HR dashboards a new job-switch request is
// waiting for review.
func NotifyRequestSubmitted(requestID, employeeID uuid.UUID) {
	emit(EventRequestSubmitted, map[string]string{
		"request_id":  requestID.String(),
		"employee_id": employeeID.String(),
	})
}

// NotifyApplicationReceived announces a new application on a job posting.
func NotifyApplicationReceived(jobID, employeeID uuid.UUID, matchPercentage int) {
	emit(EventApplicationReceived, map[string]any{
		"job_id":           jobID.String(),
		"employee_id":      employeeID.String(),
		"match_percentage": matchPercentage,
	})
}

// NotifyReferralReceived announces a new referral on a job posting.
func NotifyReferralReceived(jobID, referredBy uuid.UUID, candidateName string) {
	emit(EventReferralReceived, map[string]any{
		"job_id":         jobID.String(),
		"referred_by":    referredBy.String(),
		"candidate_name": candidateName,
	})
}
