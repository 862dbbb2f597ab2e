package seed

import (
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/daily-aivey/soundchain-landing-page-new/internal/storage/sqlite"
)

func TestParseConfigRejectsNegativeCount(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-count", "-5"}); err == nil {
		t.Fatal("negative count accepted")
	}
}

func TestPopulateIsIdempotent(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	inserted, err := Populate(ctx, store, 25)
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	if inserted != 25 {
		t.Errorf("inserted = %d, want 25", inserted)
	}

	inserted, err = Populate(ctx, store, 40)
	if err != nil {
		t.Fatalf("repopulate: %v", err)
	}
	if inserted != 15 {
		t.Errorf("second run inserted = %d, want 15", inserted)
	}

	count, err := store.CountSignups(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 40 {
		t.Errorf("count = %d, want 40", count)
	}
}
