package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repositories bundles every table accessor over one connection.
type Repositories struct {
	Documents     DocumentRepository
	Analyses      AnalysisRepository
	Reports       ReportRepository
	Notifications NotificationRepository
	Users         UserRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Documents:     NewDocumentRepository(db),
		Analyses:      NewAnalysisRepository(db),
		Reports:       NewReportRepository(db),
		Notifications: NewNotificationRepository(db),
		Users:         NewUserRepository(db),
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
