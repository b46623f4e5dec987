package services

import (
	"time"

	"github.com/BerylCAtieno/contract-analysis-api/internal/analyzer"
	"github.com/BerylCAtieno/contract-analysis-api/internal/extractor"
	"github.com/BerylCAtieno/contract-analysis-api/internal/notify"
	"github.com/BerylCAtieno/contract-analysis-api/internal/repository"
	"github.com/BerylCAtieno/contract-analysis-api/internal/storage"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Repos     *repository.Repositories
	Storage   storage.Storage
	Extractor extractor.Extractor
	Analyzer  analyzer.Analyzer
	Mailer    notify.Mailer
	Clock     utils.Clock
	Logger    *utils.Logger

	// StrictTransitions restricts report status changes to the workflow graph.
	StrictTransitions bool
}

type Services struct {
	Documents     DocumentService
	Analyses      AnalysisService
	Reports       ReportService
	Notifications NotificationService
}

func New(d Deps) *Services {
	if d.Clock == nil {
		d.Clock = utils.SystemClock{}
	}

	notifications := NewNotificationService(d.Repos.Notifications, d.Repos.Reports, d.Clock, d.Logger)
	analyses := NewAnalysisService(d.Repos.Analyses, d.Extractor, d.Analyzer, d.Clock, d.Logger)

	return &Services{
		Documents:     NewDocumentService(d.Repos.Documents, d.Storage, d.Extractor, analyses, d.Clock, d.Logger),
		Analyses:      analyses,
		Reports:       NewReportService(d.Repos.Reports, d.Repos.Users, notifications, d.Mailer, d.Clock, d.Logger, d.StrictTransitions),
		Notifications: notifications,
	}
}

// now returns the clock time at the precision every supported database keeps.
func now(clock utils.Clock) time.Time {
	return clock.Now().UTC().Truncate(time.Microsecond)
}
