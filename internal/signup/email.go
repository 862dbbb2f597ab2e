package signup

import (
	"net/mail"
	"strings"

	platformerrors "github.com/daily-aivey/soundchain-landing-page-new/internal/platform/errors"
)

// NormalizeEmail trims, lowercases and validates an email address. The
// returned address is the canonical form used as the signup identity.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", platformerrors.New(platformerrors.CodeSignupEmailEmpty, "email is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", platformerrors.WithMetadata(
			platformerrors.CodeSignupEmailMalformed,
			"email address is malformed",
			map[string]string{"email": email},
		)
	}
	// mail.ParseAddress accepts local-only addresses; a signup needs a
	// resolvable domain with a dot.
	at := strings.LastIndex(email, "@")
	if at <= 0 || !strings.Contains(email[at+1:], ".") {
		return "", platformerrors.WithMetadata(
			platformerrors.CodeSignupEmailMalformed,
			"email address is malformed",
			map[string]string{"email": email},
		)
	}
	return email, nil
}
