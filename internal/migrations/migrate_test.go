package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Simplici0/steam.works/internal/db"
)

func TestUpIsRepeatableAndReportsVersion(t *testing.T) {
	ctx := context.Background()

	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	for i := 0; i < 2; i++ {
		if err := Up(ctx, database); err != nil {
			t.Fatalf("run migrations (pass %d): %v", i+1, err)
		}
	}

	version, err := Version(ctx, database)
	if err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected schema version 1, got %d", version)
	}

	var count int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM contracts`).Scan(&count); err != nil {
		t.Fatalf("query contracts table: %v", err)
	}
}
