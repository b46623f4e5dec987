package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/repository"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
)

// NotificationSink records in-app notifications.
type NotificationSink interface {
	Record(ctx context.Context, n *models.Notification) error
}

type NotificationService interface {
	NotificationSink
	CreateNotification(ctx context.Context, actor *models.Principal, req *models.CreateNotificationRequest) (*models.Notification, error)
	// ListNotifications returns what the viewer may see, newest first.
	ListNotifications(ctx context.Context, viewer *models.Principal) ([]models.Notification, error)
	MarkRead(ctx context.Context, viewer *models.Principal, id string) (*models.Notification, error)
}

type notificationService struct {
	repo    repository.NotificationRepository
	reports repository.ReportRepository
	clock   utils.Clock
	logger  *utils.Logger
}

func NewNotificationService(repo repository.NotificationRepository, reports repository.ReportRepository, clock utils.Clock, logger *utils.Logger) NotificationService {
	return &notificationService{
		repo:    repo,
		reports: reports,
		clock:   clock,
		logger:  logger,
	}
}

// NewReportMessage is the text of a new_report notification.
func NewReportMessage(reportType, title, priority string) string {
	return fmt.Sprintf("New %s report: %s (Priority: %s)", reportType, title, priority)
}

func (s *notificationService) Record(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = utils.GenerateID()
	}
	n.CreatedAt = now(s.clock)
	return s.repo.Create(ctx, n)
}

func (s *notificationService) CreateNotification(ctx context.Context, actor *models.Principal, req *models.CreateNotificationRequest) (*models.Notification, error) {
	title := strings.TrimSpace(req.Title)
	if req.Type == "" || title == "" {
		return nil, missingFields([]string{"type", "title"})
	}

	nType := models.NotificationType(req.Type)
	if !nType.Valid() {
		return nil, utils.NewBadRequestError("Invalid notification type").WithCause(ErrValidation)
	}

	if req.RecipientID != nil && *req.RecipientID != actor.ID && !actor.IsStaff {
		return nil, utils.NewForbiddenError("Only staff can notify other users").WithCause(ErrForbidden)
	}

	if req.ReportID != nil && *req.ReportID != "" {
		report, err := s.reports.GetByID(ctx, *req.ReportID)
		if err != nil {
			return nil, utils.NewInternalError("Failed to retrieve report").WithCause(err)
		}
		if report == nil {
			return nil, utils.NewBadRequestError("Referenced report does not exist").WithCause(ErrValidation)
		}
	} else {
		req.ReportID = nil
	}

	n := &models.Notification{
		Type:        nType,
		Title:       title,
		Message:     NewReportMessage(req.Type, title, req.Priority),
		ReportID:    req.ReportID,
		RecipientID: req.RecipientID,
	}

	if err := s.Record(ctx, n); err != nil {
		s.logger.Error("Failed to create notification", "error", err)
		return nil, utils.NewInternalError("Failed to create notification").WithCause(err)
	}

	return n, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, viewer *models.Principal) ([]models.Notification, error) {
	notifications, err := s.repo.ListVisible(ctx, viewer.ID, viewer.IsStaff)
	if err != nil {
		s.logger.Error("Failed to list notifications", "error", err, "viewer", viewer.ID)
		return nil, utils.NewInternalError("Failed to retrieve notifications").WithCause(err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, viewer *models.Principal, id string) (*models.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve notification").WithCause(err)
	}
	if n == nil || !visibleTo(n, viewer) {
		return nil, notFound("Notification")
	}

	if !n.IsRead {
		if err := s.repo.MarkRead(ctx, id); err != nil {
			return nil, utils.NewInternalError("Failed to update notification").WithCause(err)
		}
		n.IsRead = true
	}
	return n, nil
}

func visibleTo(n *models.Notification, viewer *models.Principal) bool {
	if n.RecipientID == nil {
		return viewer.IsStaff
	}
	return *n.RecipientID == viewer.ID
}
