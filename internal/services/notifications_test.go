package services

import (
	"context"
	"errors"
	"testing"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/testutil"
)

func TestCreateNotification(t *testing.T) {
	e := newEnv(t)
	alice := testutil.SeedUser(t, e.db, "alice", false)
	bob := testutil.SeedUser(t, e.db, "bob", false)
	carol := testutil.SeedUser(t, e.db, "carol", true)
	ctx := context.Background()

	n, err := e.svc.Notifications.CreateNotification(ctx, alice, &models.CreateNotificationRequest{
		Type: "system", Title: "Maintenance", Priority: "low",
	})
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if n.Message != "New system report: Maintenance (Priority: low)" {
		t.Errorf("message: got %q", n.Message)
	}

	_, err = e.svc.Notifications.CreateNotification(ctx, alice, &models.CreateNotificationRequest{Type: "reminder", Title: "x"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("bad type: got %v", err)
	}
	_, err = e.svc.Notifications.CreateNotification(ctx, alice, &models.CreateNotificationRequest{Type: "system"})
	if !errors.Is(err, ErrMissingFields) {
		t.Errorf("no title: got %v", err)
	}
	_, err = e.svc.Notifications.CreateNotification(ctx, alice, &models.CreateNotificationRequest{Type: "system", Title: "x", ReportID: strPtr("missing")})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("dangling report: got %v", err)
	}
	_, err = e.svc.Notifications.CreateNotification(ctx, alice, &models.CreateNotificationRequest{Type: "system", Title: "x", RecipientID: &bob.ID})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("non-staff targeting another user: got %v", err)
	}
	if _, err := e.svc.Notifications.CreateNotification(ctx, carol, &models.CreateNotificationRequest{Type: "system", Title: "Hi", RecipientID: &bob.ID}); err != nil {
		t.Errorf("staff targeting a user: %v", err)
	}

	bobView, _ := e.svc.Notifications.ListNotifications(ctx, bob)
	if len(bobView) != 1 || bobView[0].Title != "Hi" {
		t.Errorf("bob: %+v", bobView)
	}
}

func TestMarkRead(t *testing.T) {
	e := newEnv(t)
	alice := testutil.SeedUser(t, e.db, "alice", false)
	carol := testutil.SeedUser(t, e.db, "carol", true)
	ctx := context.Background()

	staffWide := &models.Notification{Type: models.NotificationSystem, Title: "t", Message: "m"}
	if err := e.svc.Notifications.Record(ctx, staffWide); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if _, err := e.svc.Notifications.MarkRead(ctx, alice, staffWide.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-staff marking staff notification: got %v", err)
	}

	n, err := e.svc.Notifications.MarkRead(ctx, carol, staffWide.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !n.IsRead {
		t.Error("not marked read")
	}

	list, _ := e.svc.Notifications.ListNotifications(ctx, carol)
	if len(list) != 1 || !list[0].IsRead {
		t.Errorf("list after MarkRead: %+v", list)
	}
}
