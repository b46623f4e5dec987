package models

import "time"

type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusResolved   ReportStatus = "resolved"
	ReportStatusRejected   ReportStatus = "rejected"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}

type ReportType string

const (
	ReportTypeBug         ReportType = "bug"
	ReportTypeFeature     ReportType = "feature"
	ReportTypeImprovement ReportType = "improvement"
	ReportTypeOther       ReportType = "other"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeBug, ReportTypeFeature, ReportTypeImprovement, ReportTypeOther:
		return true
	}
	return false
}

type ReportPriority string

const (
	PriorityLow    ReportPriority = "low"
	PriorityMedium ReportPriority = "medium"
	PriorityHigh   ReportPriority = "high"
	PriorityUrgent ReportPriority = "urgent"
)

func (p ReportPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Report struct {
	ID          string         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Type        ReportType     `json:"type" db:"type"`
	Steps       *string        `json:"steps,omitempty" db:"steps"`
	OwnerID     *string        `json:"-" db:"owner_id"`
	Status      ReportStatus   `json:"status" db:"status"`
	Priority    ReportPriority `json:"priority" db:"priority"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`

	// Owner is populated on reads that join the users table.
	Owner *PrincipalRef `json:"user" db:"-"`
}

// PrincipalRef is the public projection of a report owner.
type PrincipalRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CreateReportRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Priority    string  `json:"priority"`
	Steps       *string `json:"steps"`
}

// UpdateReportRequest carries optional fields; nil means unchanged.
type UpdateReportRequest struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
}

type ReportCreatedResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Type      ReportType     `json:"type"`
	Priority  ReportPriority `json:"priority"`
	Status    ReportStatus   `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}
