package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	RecipientUser     = "USER"
	RecipientEmployee = "EMPLOYEE"
)

const (
	TypeEmployeeCreated     = "EMPLOYEE_CREATED"
	TypeWelcome             = "WELCOME"
	TypeLeaveSubmitted      = "LEAVE_SUBMITTED"
	TypeLeaveDecided        = "LEAVE_DECIDED"
	TypeEvaluationFinalized = "EVALUATION_FINALIZED"
)

// Notification rows are unique per recipient, type and reference so a
// redelivered event does not notify twice.
type Notification struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientType string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_notification_delivery"`
	RecipientID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_notification_delivery"`
	Type          string    `gorm:"type:varchar(40);not null;uniqueIndex:uq_notification_delivery"`
	ReferenceID   string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_notification_delivery"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Body          string    `gorm:"type:text"`
	ReadAt        *time.Time
	CreatedAt     time.Time
}

// Recipient identifies who reads a notification.
type Recipient struct {
	Type string
	ID   string
}

// Contact is a recipient with the details needed for e-mail delivery.
type Contact struct {
	Recipient
	Name  string
	Email string
}

type ListFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}
