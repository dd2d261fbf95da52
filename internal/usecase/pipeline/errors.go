package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/ai"
)

// Kind classifies a pipeline failure
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidState      Kind = "invalid_state"
	KindMissingAsset      Kind = "missing_asset"
	KindProviderError     Kind = "provider_error"
	KindMalformedResponse Kind = "malformed_response"
	KindEmptyTranscript   Kind = "empty_transcript"
	KindPersistenceError  Kind = "persistence_error"
)

// Error is returned by every pipeline operation
type Error struct {
	Kind      Kind
	MeetingID uuid.UUID
	Message   string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a pipeline error, or "" for any other error
func KindOf(err error) Kind {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return ""
}

func errNotFound(id uuid.UUID) *Error {
	return &Error{
		Kind:      KindNotFound,
		MeetingID: id,
		Message:   fmt.Sprintf("meeting %s not found", id),
	}
}

func errInvalidState(id uuid.UUID, current, required entities.MeetingStatus, cause error) *Error {
	return &Error{
		Kind:      KindInvalidState,
		MeetingID: id,
		Message:   fmt.Sprintf("meeting %s must be %s (currently %s)", id, required, current),
		Err:       cause,
	}
}

func errMissingAsset(id uuid.UUID, cause error) *Error {
	return &Error{
		Kind:      KindMissingAsset,
		MeetingID: id,
		Message:   fmt.Sprintf("no recording found for meeting %s", id),
		Err:       cause,
	}
}

func errEmptyTranscript(id uuid.UUID) *Error {
	return &Error{
		Kind:      KindEmptyTranscript,
		MeetingID: id,
		Message:   fmt.Sprintf("meeting %s has no transcript segments", id),
	}
}

func errPersistence(id uuid.UUID, op string, cause error) *Error {
	return &Error{
		Kind:      KindPersistenceError,
		MeetingID: id,
		Message:   fmt.Sprintf("failed to %s", op),
		Err:       cause,
	}
}

func errMalformed(id uuid.UUID, cause error) *Error {
	return &Error{
		Kind:      KindMalformedResponse,
		MeetingID: id,
		Message:   "provider response could not be parsed",
		Err:       cause,
	}
}

// providerFailure classifies an error returned by a provider call
func providerFailure(id uuid.UUID, provider string, cause error) *Error {
	if errors.Is(cause, ai.ErrMalformedResponse) {
		return errMalformed(id, cause)
	}

	message := fmt.Sprintf("%s request failed", provider)
	var apiErr *ai.APIError
	switch {
	case errors.As(cause, &apiErr):
		message = fmt.Sprintf("%s returned HTTP %d", provider, apiErr.StatusCode)
	case errors.Is(cause, context.DeadlineExceeded):
		message = fmt.Sprintf("%s request timed out", provider)
	}

	return &Error{
		Kind:      KindProviderError,
		MeetingID: id,
		Message:   message,
		Err:       cause,
	}
}
