// Package signup implements the email signup data source: submissions,
// duplicate detection, and the progress numbers toward the visible goal.
package signup

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	platformerrors "github.com/daily-aivey/soundchain-landing-page-new/internal/platform/errors"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/storage"
)

// DefaultGoal is the signup goal when none is configured.
const DefaultGoal = 1000

// Progress is the state of the signup campaign toward its goal.
type Progress struct {
	Count      int
	Goal       int
	Percentage float64
}

// ComputePercentage derives the fill percentage, clamped to [0,100].
func ComputePercentage(count, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	pct := float64(count) / float64(goal) * 100
	return math.Min(100, math.Max(0, pct))
}

// Service answers progress queries and accepts signup submissions.
type Service struct {
	store  storage.SignupStore
	goal   int
	clock  func() time.Time
	tracer trace.Tracer
}

// NewService creates a signup service over the given store. A non-positive
// goal falls back to DefaultGoal.
func NewService(store storage.SignupStore, goal int) (*Service, error) {
	if store == nil {
		return nil, errors.New("signup store is required")
	}
	if goal <= 0 {
		goal = DefaultGoal
	}
	return &Service{
		store:  store,
		goal:   goal,
		clock:  time.Now,
		tracer: otel.Tracer("soundchain/signup"),
	}, nil
}

// Goal returns the configured signup goal.
func (s *Service) Goal() int {
	return s.goal
}

// Progress returns the current signup count, goal and fill percentage.
func (s *Service) Progress(ctx context.Context) (Progress, error) {
	ctx, span := s.tracer.Start(ctx, "signup.Progress")
	defer span.End()

	count, err := s.store.CountSignups(ctx)
	if err != nil {
		return Progress{}, platformerrors.Wrap(
			platformerrors.CodeProgressUnavailable,
			"fetch signup progress",
			err,
		)
	}
	return Progress{
		Count:      count,
		Goal:       s.goal,
		Percentage: ComputePercentage(count, s.goal),
	}, nil
}

// Submit validates and stores an email signup. Duplicates are not an
// error: the second return value reports them, and the progress numbers
// returned are the current ones either way.
func (s *Service) Submit(ctx context.Context, rawEmail string) (Progress, bool, error) {
	ctx, span := s.tracer.Start(ctx, "signup.Submit")
	defer span.End()

	email, err := NormalizeEmail(rawEmail)
	if err != nil {
		return Progress{}, false, err
	}

	duplicate, err := s.store.HasSignup(ctx, email)
	if err != nil {
		return Progress{}, false, fmt.Errorf("check signup: %w", err)
	}
	if !duplicate {
		err = s.store.AddSignup(ctx, storage.Signup{Email: email, CreatedAt: s.clock()})
		switch {
		case errors.Is(err, storage.ErrDuplicateSignup):
			// Lost a race with a concurrent submission of the same address.
			duplicate = true
		case err != nil:
			return Progress{}, false, fmt.Errorf("store signup: %w", err)
		}
	}
	span.SetAttributes(attribute.Bool("signup.duplicate", duplicate))

	progress, err := s.Progress(ctx)
	if err != nil {
		return Progress{}, duplicate, err
	}
	return progress, duplicate, nil
}
