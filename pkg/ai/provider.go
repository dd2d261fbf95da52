package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrMalformedResponse marks a provider reply that succeeded at the HTTP
// level but could not be decoded into the expected shape.
var ErrMalformedResponse = errors.New("malformed provider response")

// APIError is a non-success HTTP response from a provider.
// Body holds the upstream response body verbatim.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (HTTP %d): %s", e.Provider, e.StatusCode, e.Body)
}

// Temporary reports whether the request may succeed if repeated
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// AudioFile is a recording handed to a transcription provider.
// Body is rewound before every attempt.
type AudioFile struct {
	Name        string
	ContentType string
	Body        io.ReadSeeker
}

// Segment is a provider-native time-aligned span, offsets in seconds
type Segment struct {
	Start   float64
	End     float64
	Text    string
	Speaker *string
}

// Transcription is the provider-neutral transcription result
type Transcription struct {
	Text     string
	Segments []Segment
	Language string
}

// Transcriber turns audio into text
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audio AudioFile) (*Transcription, error)
}

// Summarizer runs a chat completion that must answer with one JSON object
// and returns the raw message content.
type Summarizer interface {
	Model() string
	Summarize(ctx context.Context, systemPrompt, transcript string) (string, error)
}

func malformed(provider string, err error) error {
	return fmt.Errorf("%s: %w: %v", provider, ErrMalformedResponse, err)
}
