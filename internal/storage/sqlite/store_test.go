package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/daily-aivey/soundchain-landing-page-new/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "signups.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestAddAndCountSignups(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	count, err := store.CountSignups(ctx)
	if err != nil {
		t.Fatalf("count signups: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty store, got %d", count)
	}

	for _, email := range []string{"ana@example.com", "bo@example.com"} {
		err := store.AddSignup(ctx, storage.Signup{Email: email, CreatedAt: time.Now()})
		if err != nil {
			t.Fatalf("add signup %s: %v", email, err)
		}
	}

	count, err = store.CountSignups(ctx)
	if err != nil {
		t.Fatalf("count signups: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 signups, got %d", count)
	}
}

func TestAddSignupReportsDuplicates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	signup := storage.Signup{Email: "ana@example.com", CreatedAt: time.Now()}
	if err := store.AddSignup(ctx, signup); err != nil {
		t.Fatalf("add signup: %v", err)
	}
	err := store.AddSignup(ctx, signup)
	if !errors.Is(err, storage.ErrDuplicateSignup) {
		t.Fatalf("expected ErrDuplicateSignup, got %v", err)
	}

	count, err := store.CountSignups(ctx)
	if err != nil {
		t.Fatalf("count signups: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected duplicate to be rejected, got %d rows", count)
	}
}

func TestHasSignup(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	found, err := store.HasSignup(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("has signup: %v", err)
	}
	if found {
		t.Fatal("expected missing signup")
	}

	if err := store.AddSignup(ctx, storage.Signup{Email: "ana@example.com", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("add signup: %v", err)
	}

	found, err = store.HasSignup(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("has signup: %v", err)
	}
	if !found {
		t.Fatal("expected stored signup to be found")
	}
}

func TestAddSignupRejectsEmptyEmail(t *testing.T) {
	store := openTestStore(t)
	if err := store.AddSignup(context.Background(), storage.Signup{}); err == nil {
		t.Fatal("expected error for empty email")
	}
}

func TestOpenIsIdempotentAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signups.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := first.AddSignup(context.Background(), storage.Signup{Email: "ana@example.com", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("add signup: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer second.Close()

	count, err := second.CountSignups(context.Background())
	if err != nil {
		t.Fatalf("count signups: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected data to survive reopen, got %d rows", count)
	}
}
