package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/BerylCAtieno/contract-analysis-api/internal/analyzer"
	"github.com/BerylCAtieno/contract-analysis-api/internal/extractor"
	"github.com/BerylCAtieno/contract-analysis-api/internal/testutil"
)

func TestAnalyzeTextRejectsEmptyBeforeCallingService(t *testing.T) {
	e := newEnv(t)
	alice := testutil.SeedUser(t, e.db, "alice", false)

	for _, text := range []string{"", "   \n\t"} {
		_, err := e.svc.Analyses.AnalyzeText(context.Background(), alice, text)
		if !errors.Is(err, ErrNoContent) {
			t.Errorf("AnalyzeText(%q): got %v, want ErrNoContent", text, err)
		}
		if statusOf(err) != http.StatusBadRequest {
			t.Errorf("status: got %d", statusOf(err))
		}
	}

	if e.analyzer.calls != 0 {
		t.Errorf("completion service called %d times", e.analyzer.calls)
	}
	if n := e.countRows(t, "analyses"); n != 0 {
		t.Errorf("analyses rows: got %d", n)
	}
}

func TestAnalyzeTextPersistsExactlyOneRecord(t *testing.T) {
	e := newEnv(t)
	alice := testutil.SeedUser(t, e.db, "alice", false)
	e.analyzer.result = "  1. Parties Identification  \n"

	text := "This Lease Agreement is made between ..."
	got, err := e.svc.Analyses.AnalyzeText(context.Background(), alice, text)
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}

	if e.analyzer.calls != 1 {
		t.Errorf("calls: got %d, want 1", e.analyzer.calls)
	}
	if n := e.countRows(t, "analyses"); n != 1 {
		t.Fatalf("analyses rows: got %d, want 1", n)
	}

	list, err := e.svc.Analyses.ListAnalyses(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListAnalyses: %v", err)
	}
	if list[0].ID != got.ID || list[0].InputText != text || list[0].ResultText != e.analyzer.result {
		t.Errorf("persisted record: %+v", list[0])
	}
}

func TestAnalyzeTextNewestFirst(t *testing.T) {
	e := newEnv(t)
	alice := testutil.SeedUser(t, e.db, "alice", false)
	ctx := context.Background()

	if _, err := e.svc.Analyses.AnalyzeText(ctx, alice, "earlier"); err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	e.clock.Advance(time.Second)
	if _, err := e.svc.Analyses.AnalyzeText(ctx, alice, "T"); err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}

	list, err := e.svc.Analyses.ListAnalyses(ctx, alice)
	if err != nil {
		t.Fatalf("ListAnalyses: %v", err)
	}
	if len(list) != 2 || list[0].InputText != "T" {
		t.Fatalf("expected \"T\" first, got %+v", list)
	}
}

func TestAnalyzeTextAnonymous(t *testing.T) {
	e := newEnv(t)

	a, err := e.svc.Analyses.AnalyzeText(context.Background(), nil, "clause")
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	if a.OwnerID != nil {
		t.Errorf("owner: got %v", *a.OwnerID)
	}
	if n := e.countRows(t, "analyses"); n != 1 {
		t.Errorf("analyses rows: got %d", n)
	}
}

func TestAnalyzeTextCompletionFailure(t *testing.T) {
	e := newEnv(t)
	alice := testutil.SeedUser(t, e.db, "alice", false)
	e.analyzer.err = &analyzer.CompletionError{Kind: analyzer.KindCredential, Err: errors.New("401")}

	_, err := e.svc.Analyses.AnalyzeText(context.Background(), alice, "clause")

	if !errors.Is(err, analyzer.ErrCompletionService) {
		t.Fatalf("got %v, want ErrCompletionService", err)
	}
	if statusOf(err) != http.StatusInternalServerError {
		t.Errorf("status: got %d", statusOf(err))
	}
	if n := e.countRows(t, "analyses"); n != 0 {
		t.Errorf("analyses rows: got %d", n)
	}
}

func TestAnalyzeFile(t *testing.T) {
	e := newEnv(t)
	alice := testutil.SeedUser(t, e.db, "alice", false)
	ctx := context.Background()

	a, err := e.svc.Analyses.AnalyzeFile(ctx, alice, "contract.TXT", []byte("\xef\xbb\xbfSale of goods"))
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if a.InputText != "Sale of goods" {
		t.Errorf("input text: got %q", a.InputText)
	}

	_, err = e.svc.Analyses.AnalyzeFile(ctx, alice, "contract.rtf", []byte("{\\rtf1}"))
	if !errors.Is(err, extractor.ErrUnsupportedFormat) || statusOf(err) != http.StatusBadRequest {
		t.Errorf("unsupported: got %v", err)
	}

	_, err = e.svc.Analyses.AnalyzeFile(ctx, alice, "contract.txt", []byte{0xff, 0xfe, 0x00})
	if !errors.Is(err, extractor.ErrExtractionFailure) || statusOf(err) != http.StatusBadRequest {
		t.Errorf("bad utf-8: got %v", err)
	}

	if e.analyzer.calls != 1 {
		t.Errorf("completion calls: got %d, want 1", e.analyzer.calls)
	}
}
