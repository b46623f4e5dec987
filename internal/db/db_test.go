package db

import (
	"path/filepath"
	"testing"
)

func TestDialectOf(t *testing.T) {
	cases := map[string]Dialect{
		"postgres://u:p@localhost:5432/db":   DialectPostgres,
		"postgresql://u:p@localhost:5432/db": DialectPostgres,
		"data/contracts.db":                  DialectSQLite,
		"sqlite:///tmp/x.db":                 DialectSQLite,
	}
	for url, want := range cases {
		if got := DialectOf(url); got != want {
			t.Errorf("DialectOf(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestRunMigrationsSQLite(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if err := RunMigrations(database); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	// Second run is a no-op.
	if err := RunMigrations(database); err != nil {
		t.Fatalf("RunMigrations (again): %v", err)
	}

	for _, table := range []string{"users", "documents", "analyses", "reports", "notifications"} {
		var n int
		if err := database.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}
