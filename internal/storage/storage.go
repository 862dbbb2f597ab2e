// Package storage defines the persistence interfaces for the landing
// service. The SQLite implementation lives in the sqlite subpackage.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateSignup indicates the email address is already registered.
var ErrDuplicateSignup = errors.New("signup already exists")

// Signup is one stored email signup.
type Signup struct {
	// Email is the normalized address; it is the record identity.
	Email string
	// CreatedAt is when the signup was stored.
	CreatedAt time.Time
}

// SignupStore persists email signups.
type SignupStore interface {
	// AddSignup stores a signup. It returns ErrDuplicateSignup when the
	// address is already registered.
	AddSignup(ctx context.Context, signup Signup) error
	// CountSignups returns the number of stored signups.
	CountSignups(ctx context.Context) (int, error)
	// HasSignup reports whether the address is already registered.
	HasSignup(ctx context.Context, email string) (bool, error)
	// Close releases the underlying store.
	Close() error
}
