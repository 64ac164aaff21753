package models

import (
	"time"

	"gorm.io/datatypes"
)

// ApplicationStatus is the moderation axis of an application. Transitions are
// unconstrained overwrites by a Moderator or Admin; the service does not
// enforce forward-only progression.
type ApplicationStatus string

const (
	ApplicationPending    ApplicationStatus = "Pending"
	ApplicationProcessing ApplicationStatus = "Processing"
	ApplicationCompleted  ApplicationStatus = "Completed"
	ApplicationRejected   ApplicationStatus = "Rejected"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationProcessing, ApplicationCompleted, ApplicationRejected:
		return true
	}
	return false
}

// PaymentStatus is the payment axis, independent of the moderation axis.
// A Rejected application can still be Paid; there are no refunds.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

func (s PaymentStatus) IsValid() bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

type Application struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	UserEmail     string            `json:"userEmail" gorm:"not null;size:255;index"`
	ScholarshipID uint              `json:"scholarshipId" gorm:"not null;index"`
	Status        ApplicationStatus `json:"applicationStatus" gorm:"column:application_status;not null;default:Pending;size:20"`
	PaymentStatus PaymentStatus     `json:"paymentStatus" gorm:"not null;default:Unpaid;size:20"`
	Feedback      *string           `json:"feedback" gorm:"type:text"`

	// Applicant-supplied form data (phone, address, degree, photo, ...).
	// Stored as-is; the service never inspects it.
	Details datatypes.JSON `json:"details" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}
