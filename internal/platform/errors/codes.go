package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Signup errors
	CodeSignupEmailEmpty     Code = "SIGNUP_EMAIL_EMPTY"
	CodeSignupEmailMalformed Code = "SIGNUP_EMAIL_MALFORMED"

	// Progress errors
	CodeProgressUnavailable Code = "PROGRESS_UNAVAILABLE"

	// Reveal session errors
	CodeSessionNotFound        Code = "SESSION_NOT_FOUND"
	CodeSessionDisposed        Code = "SESSION_DISPOSED"
	CodeSessionUnknownElement  Code = "SESSION_UNKNOWN_ELEMENT"
	CodeSessionInvalidViewport Code = "SESSION_INVALID_VIEWPORT"

	// Manifest errors
	CodeManifestEmpty            Code = "MANIFEST_EMPTY"
	CodeManifestDuplicateElement Code = "MANIFEST_DUPLICATE_ELEMENT"
	CodeManifestInvalidVariant   Code = "MANIFEST_INVALID_VARIANT"
	CodeManifestInvalidGroup     Code = "MANIFEST_INVALID_GROUP"

	// Request errors
	CodeRequestMalformed Code = "REQUEST_MALFORMED"
)

// HTTPStatus maps an error code to the HTTP status the web layer reports.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeSignupEmailEmpty, CodeSignupEmailMalformed, CodeRequestMalformed,
		CodeSessionInvalidViewport, CodeSessionUnknownElement:
		return http.StatusBadRequest
	case CodeSessionNotFound:
		return http.StatusNotFound
	case CodeSessionDisposed:
		return http.StatusGone
	case CodeProgressUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
