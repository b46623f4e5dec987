package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/notify"
	"github.com/BerylCAtieno/contract-analysis-api/internal/repository"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

type ReportService interface {
	// CreateReport files a report. owner is nil for anonymous reports.
	CreateReport(ctx context.Context, owner *models.Principal, req *models.CreateReportRequest) (*models.Report, error)
	// UpdateReport changes status and/or priority. Staff only.
	UpdateReport(ctx context.Context, actor *models.Principal, id string, req *models.UpdateReportRequest) (*models.Report, error)
	GetReport(ctx context.Context, viewer *models.Principal, id string) (*models.Report, error)
	ListReports(ctx context.Context, viewer *models.Principal) ([]models.Report, error)
}

// allowedTransitions is the workflow graph enforced in strict mode.
var allowedTransitions = map[models.ReportStatus][]models.ReportStatus{
	models.ReportStatusPending:    {models.ReportStatusInProgress, models.ReportStatusRejected},
	models.ReportStatusInProgress: {models.ReportStatusResolved, models.ReportStatusRejected},
}

func transitionAllowed(from, to models.ReportStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type reportService struct {
	repo   repository.ReportRepository
	users  repository.UserRepository
	sink   NotificationSink
	mailer notify.Mailer
	clock  utils.Clock
	logger *utils.Logger
	strict bool
}

func NewReportService(repo repository.ReportRepository, users repository.UserRepository, sink NotificationSink, mailer notify.Mailer, clock utils.Clock, logger *utils.Logger, strict bool) ReportService {
	return &reportService{
		repo:   repo,
		users:  users,
		sink:   sink,
		mailer: mailer,
		clock:  clock,
		logger: logger,
		strict: strict,
	}
}

func (s *reportService) CreateReport(ctx context.Context, owner *models.Principal, req *models.CreateReportRequest) (*models.Report, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", title},
		{"description", description},
		{"type", req.Type},
		{"priority", req.Priority},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}

	reportType := models.ReportType(req.Type)
	if !reportType.Valid() {
		return nil, utils.NewBadRequestError(fmt.Sprintf("Invalid report type '%s'", req.Type)).WithCause(ErrValidation)
	}
	priority := models.ReportPriority(req.Priority)
	if !priority.Valid() {
		return nil, utils.NewBadRequestError(fmt.Sprintf("Invalid priority '%s'", req.Priority)).WithCause(ErrValidation)
	}

	var steps *string
	if req.Steps != nil && strings.TrimSpace(*req.Steps) != "" {
		steps = req.Steps
	}

	created := now(s.clock)
	report := &models.Report{
		ID:          utils.GenerateID(),
		Title:       title,
		Description: description,
		Type:        reportType,
		Steps:       steps,
		Status:      models.ReportStatusPending,
		Priority:    priority,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	if owner != nil {
		report.OwnerID = &owner.ID
		report.Owner = owner.Ref()
	}

	if err := s.repo.Create(ctx, report); err != nil {
		s.logger.Error("Failed to save report", "error", err)
		return nil, utils.NewInternalError("Failed to create report").WithCause(err)
	}

	s.logger.Info("Report created", "id", report.ID, "type", report.Type, "priority", report.Priority)

	s.notifyStaff(ctx, report)

	return report, nil
}

// notifyStaff records the staff-audience notification and mails every staff
// member individually. Failures are logged and never reach the caller.
func (s *reportService) notifyStaff(ctx context.Context, report *models.Report) {
	n := &models.Notification{
		Type:     models.NotificationNewReport,
		Title:    report.Title,
		Message:  NewReportMessage(string(report.Type), report.Title, string(report.Priority)),
		ReportID: &report.ID,
	}
	if err := s.sink.Record(ctx, n); err != nil {
		s.logger.Warn("Failed to create notification", "error", err, "report_id", report.ID)
	}

	staff, err := s.users.ListStaffWithEmail(ctx)
	if err != nil {
		s.logger.Warn("Failed to list staff for report e-mail", "error", err, "report_id", report.ID)
		return
	}

	for _, member := range staff {
		if err := s.mailer.Send(ctx, notify.NewReportMessage(member.Email, report)); err != nil {
			s.logger.Warn("Failed to send email notification",
				"error", err,
				"report_id", report.ID,
				"recipient", member.Email)
		}
	}
}

func (s *reportService) UpdateReport(ctx context.Context, actor *models.Principal, id string, req *models.UpdateReportRequest) (*models.Report, error) {
	if actor == nil || !actor.IsStaff {
		return nil, utils.NewForbiddenError("Only staff can update reports").WithCause(ErrForbidden)
	}
	if req.Status == nil && req.Priority == nil {
		return nil, utils.NewBadRequestError("Nothing to update").
			WithDetail("Provide status and/or priority").
			WithCause(ErrValidation)
	}

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get report", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve report").WithCause(err)
	}
	if report == nil {
		return nil, notFound("Report")
	}

	previous := report.Status

	if req.Status != nil {
		status := models.ReportStatus(*req.Status)
		if !status.Valid() {
			return nil, utils.NewBadRequestError("Invalid status").WithCause(ErrInvalidStatus)
		}
		if s.strict && !transitionAllowed(report.Status, status) {
			return nil, utils.NewConflictError(fmt.Sprintf("Cannot change status from %s to %s", report.Status, status)).
				WithCause(ErrIllegalTransition)
		}
		report.Status = status
	}

	if req.Priority != nil {
		priority := models.ReportPriority(*req.Priority)
		if !priority.Valid() {
			return nil, utils.NewBadRequestError(fmt.Sprintf("Invalid priority '%s'", *req.Priority)).WithCause(ErrValidation)
		}
		report.Priority = priority
	}

	report.UpdatedAt = nextUpdate(now(s.clock), report.UpdatedAt)

	if err := s.repo.Update(ctx, report); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Report")
		}
		s.logger.Error("Failed to update report", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to update report").WithCause(err)
	}

	s.logger.Info("Report updated",
		"id", report.ID,
		"status", report.Status,
		"priority", report.Priority,
		"by", actor.ID)

	if report.Status != previous {
		s.notifyOwner(ctx, report)
	}

	return report, nil
}

// nextUpdate keeps updated_at strictly increasing even when the clock does not.
func nextUpdate(now, previous time.Time) time.Time {
	if now.After(previous) {
		return now
	}
	return previous.Add(time.Microsecond)
}

func (s *reportService) notifyOwner(ctx context.Context, report *models.Report) {
	if report.OwnerID == nil {
		return
	}

	n := &models.Notification{
		Type:        models.NotificationReportUpdate,
		Title:       report.Title,
		Message:     fmt.Sprintf("Your report %q is now %s", report.Title, report.Status),
		ReportID:    &report.ID,
		RecipientID: report.OwnerID,
	}
	if err := s.sink.Record(ctx, n); err != nil {
		s.logger.Warn("Failed to create notification", "error", err, "report_id", report.ID)
	}

	if report.Owner == nil || report.Owner.Email == "" {
		return
	}
	if err := s.mailer.Send(ctx, notify.StatusUpdateMessage(report.Owner.Email, report)); err != nil {
		s.logger.Warn("Failed to send email notification",
			"error", err,
			"report_id", report.ID,
			"recipient", report.Owner.Email)
	}
}

func (s *reportService) GetReport(ctx context.Context, viewer *models.Principal, id string) (*models.Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get report", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve report").WithCause(err)
	}
	if report == nil {
		return nil, notFound("Report")
	}
	if !viewer.IsStaff && (report.OwnerID == nil || *report.OwnerID != viewer.ID) {
		return nil, notFound("Report")
	}
	return report, nil
}

func (s *reportService) ListReports(ctx context.Context, viewer *models.Principal) ([]models.Report, error) {
	var ownerID *string
	if !viewer.IsStaff {
		ownerID = &viewer.ID
	}

	reports, err := s.repo.List(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list reports", "error", err)
		return nil, utils.NewInternalError("Failed to retrieve reports").WithCause(err)
	}
	return reports, nil
}
