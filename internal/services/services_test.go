package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/BerylCAtieno/contract-analysis-api/internal/extractor"
	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/notify"
	"github.com/BerylCAtieno/contract-analysis-api/internal/repository"
	"github.com/BerylCAtieno/contract-analysis-api/internal/storage"
	"github.com/BerylCAtieno/contract-analysis-api/internal/testutil"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
	"github.com/jmoiron/sqlx"
)

type stubAnalyzer struct {
	mu     sync.Mutex
	calls  int
	inputs []string
	result string
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.inputs = append(s.inputs, text)
	if s.err != nil {
		return "", s.err
	}
	return s.result, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	fail map[string]bool
}

func (m *recordingMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[msg.To] {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

type failingSink struct{ calls int }

func (f *failingSink) Record(context.Context, *models.Notification) error {
	f.calls++
	return errors.New("notification store unavailable")
}

type failingDocuments struct{ repository.DocumentRepository }

func (failingDocuments) Create(context.Context, *models.Document) error {
	return errors.New("disk full")
}

type env struct {
	db       *sqlx.DB
	repos    *repository.Repositories
	store    *storage.MemoryStorage
	analyzer *stubAnalyzer
	mailer   *recordingMailer
	clock    *testutil.Clock
	svc      *Services
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewTestDB(t)
	e := &env{
		db:       db,
		repos:    repository.NewRepositories(db),
		store:    storage.NewMemoryStorage(),
		analyzer: &stubAnalyzer{result: "LEGAL OFFICER REPORT"},
		mailer:   &recordingMailer{fail: map[string]bool{}},
		clock:    testutil.NewClock(),
	}
	e.svc = New(e.deps(false))
	return e
}

func (e *env) deps(strict bool) Deps {
	return Deps{
		Repos:             e.repos,
		Storage:           e.store,
		Extractor:         extractor.NewDispatcher(nil),
		Analyzer:          e.analyzer,
		Mailer:            e.mailer,
		Clock:             e.clock,
		Logger:            utils.NopLogger(),
		StrictTransitions: strict,
	}
}

func (e *env) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := e.db.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func statusOf(err error) int {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}

func strPtr(s string) *string { return &s }
