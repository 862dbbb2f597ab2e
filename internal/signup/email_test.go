package signup

import (
	stderrors "errors"
	"testing"

	platformerrors "github.com/daily-aivey/soundchain-landing-page-new/internal/platform/errors"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "ana@example.com", "ana@example.com"},
		{"uppercase", "Ana@Example.COM", "ana@example.com"},
		{"surrounding space", "  ana@example.com  ", "ana@example.com"},
		{"plus tag", "ana+news@example.com", "ana+news@example.com"},
		{"subdomain", "ana@mail.example.co.uk", "ana@mail.example.co.uk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEmail(tt.in)
			if err != nil {
				t.Fatalf("normalize %q: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalizeEmailRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code platformerrors.Code
	}{
		{"empty", "", platformerrors.CodeSignupEmailEmpty},
		{"spaces only", "   ", platformerrors.CodeSignupEmailEmpty},
		{"no at", "ana.example.com", platformerrors.CodeSignupEmailMalformed},
		{"no domain dot", "ana@localhost", platformerrors.CodeSignupEmailMalformed},
		{"display name", "Ana <ana@example.com>", platformerrors.CodeSignupEmailMalformed},
		{"double at", "ana@@example.com", platformerrors.CodeSignupEmailMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeEmail(tt.in)
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			var domainErr *platformerrors.Error
			if !stderrors.As(err, &domainErr) {
				t.Fatalf("expected domain error, got %T", err)
			}
			if domainErr.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, domainErr.Code)
			}
		})
	}
}
