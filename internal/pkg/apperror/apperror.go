package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies failures so the HTTP boundary can map them to status codes
// without inspecting provider-specific error strings.
type Kind string

const (
	KindUpstreamAuth  Kind = "UPSTREAM_AUTH_ERROR"  // credential/token acquisition failed
	KindGeneration    Kind = "GENERATION_ERROR"     // model call failed, session stays usable
	KindConversion    Kind = "CONVERSION_ERROR"     // export/formatting failed, per-format
	KindConfiguration Kind = "CONFIGURATION_ERROR"  // precondition not met, feature withheld
	KindNotFound      Kind = "NOT_FOUND"
	KindUnauthorized  Kind = "UNAUTHORIZED"
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func UpstreamAuth(message string, err error) *AppError {
	return Wrap(KindUpstreamAuth, message, err)
}

func Generation(message string, err error) *AppError {
	return Wrap(KindGeneration, message, err)
}

func Conversion(message string, err error) *AppError {
	return Wrap(KindConversion, message, err)
}

func Configuration(message string) *AppError {
	return New(KindConfiguration, message)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, message)
}

// KindOf extracts the Kind from any error in the chain. Unclassified errors
// report an empty Kind and are treated as internal by the HTTP layer.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
