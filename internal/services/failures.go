package services

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// FailureKind identifies which pipeline stage failed and why. Every kind
// except FailureInvalidInput is converted into a schema-shaped ERROR report
// before it reaches the caller.
type FailureKind string

const (
	FailureInvalidInput    FailureKind = "invalid_input"
	FailureEmptyContent    FailureKind = "empty_content"
	FailureRateLimited     FailureKind = "rate_limited"
	FailureAuth            FailureKind = "auth_failure"
	FailureTransient       FailureKind = "transient_failure"
	FailureSchemaViolation FailureKind = "schema_violation"
)

// Failure is a classified pipeline error.
type Failure struct {
	Kind  FailureKind
	Cause error
}

func (f *Failure) Error() string {
	if f.Cause == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Cause)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

func NewFailure(kind FailureKind, cause error) *Failure {
	return &Failure{Kind: kind, Cause: cause}
}

// ClassifyModelError maps a model-service error onto the failure taxonomy.
// It prefers the typed API error code and falls back to message matching,
// since transport layers sometimes flatten the error into a string.
func ClassifyModelError(err error) *Failure {
	if err == nil {
		return nil
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			return NewFailure(FailureRateLimited, err)
		case 401, 403:
			return NewFailure(FailureAuth, err)
		}
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted") {
		return NewFailure(FailureRateLimited, err)
	}

	if strings.Contains(msg, "401") ||
		strings.Contains(msg, "403") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "invalid api key") ||
		strings.Contains(msg, "authentication") {
		return NewFailure(FailureAuth, err)
	}

	return NewFailure(FailureTransient, err)
}
