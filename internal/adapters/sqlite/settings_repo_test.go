package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

func TestSettingsRepository_NotFoundThenPersist(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSettingsRepository(db.SQL)

	if _, err := repo.Load(ctx); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Load(empty): want ErrNotFound, got %v", err)
	}

	first := `{"language":"en-US","dataSource":"xivapi","dataSourceLang":"en"}`
	if err := repo.Save(ctx, []byte(first)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != first {
		t.Fatalf("Load: want %s, got %s", first, got)
	}

	second := `{"language":"ja","dataSource":"yyyy.games","dataSourceLang":"ja"}`
	if err := repo.Save(ctx, []byte(second)); err != nil {
		t.Fatalf("Save(upsert): %v", err)
	}
	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load(after upsert): %v", err)
	}
	if string(got) != second {
		t.Fatalf("Load(after upsert): want %s, got %s", second, got)
	}
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bestcraft.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	v1, err := db.Version(ctx)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v1 < 1 {
		t.Fatalf("Version: want >= 1, got %d", v1)
	}
	if err := NewSettingsRepository(db.SQL).Save(ctx, []byte(`{"language":"system"}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_ = db.Close()

	db, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("re-Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	v2, err := db.Version(ctx)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v2 != v1 {
		t.Fatalf("Version after reopen: want %d, got %d", v1, v2)
	}
	got, err := NewSettingsRepository(db.SQL).Load(ctx)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if string(got) != `{"language":"system"}` {
		t.Fatalf("Load after reopen: got %s", got)
	}
}

func TestExtractUp(t *testing.T) {
	in := "-- +migrate Up\nCREATE TABLE a (x INT);\n-- +migrate Down\nDROP TABLE a;\n"
	got := extractUp(in)
	if got != "CREATE TABLE a (x INT);" {
		t.Fatalf("extractUp: got %q", got)
	}
}
