package models

import "time"

type NotificationType string

const (
	NotificationNewReport    NotificationType = "new_report"
	NotificationReportUpdate NotificationType = "report_update"
	NotificationSystem       NotificationType = "system"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationNewReport, NotificationReportUpdate, NotificationSystem:
		return true
	}
	return false
}

// Notification is an in-app event. A nil RecipientID addresses all staff.
type Notification struct {
	ID          string           `json:"id" db:"id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Message     string           `json:"message" db:"message"`
	ReportID    *string          `json:"report_id,omitempty" db:"report_id"`
	RecipientID *string          `json:"-" db:"recipient_id"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

type CreateNotificationRequest struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	ReportID    *string `json:"report_id"`
	Priority    string  `json:"priority"`
	RecipientID *string `json:"recipient_id"`
}
