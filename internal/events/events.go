// Package events publishes application-lifecycle transitions to a message
// broker. Publishing is best-effort: a broker failure is logged and never
// fails the originating request.
package events

import (
	"time"

	"github.com/ScholarStream/scholarship-service/internal/models"
)

// Event types emitted by the application lifecycle.
const (
	TypeApplicationSubmitted     = "application.submitted"
	TypeApplicationStatusChanged = "application.status_changed"
	TypeApplicationPaymentUpdate = "application.payment_updated"
	TypeApplicationWithdrawn     = "application.withdrawn"
)

// Event is the envelope every published message carries.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

type ApplicationSubmitted struct {
	ApplicationID uint   `json:"application_id"`
	UserEmail     string `json:"user_email"`
	ScholarshipID uint   `json:"scholarship_id"`
}

type ApplicationStatusChanged struct {
	ApplicationID uint                     `json:"application_id"`
	Status        models.ApplicationStatus `json:"status"`
	ChangedBy     string                   `json:"changed_by"`
}

type ApplicationPaymentUpdated struct {
	ApplicationID uint                 `json:"application_id"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

type ApplicationWithdrawn struct {
	ApplicationID uint   `json:"application_id"`
	RequestedBy   string `json:"requested_by"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}
