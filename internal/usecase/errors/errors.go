package errors

import "errors"

// Meeting errors
var (
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrRecordingRequired = errors.New("recording file is required")
	ErrRecordingTooLarge = errors.New("recording file is too large")
	ErrUploadFailed      = errors.New("recording upload failed")
)

// Share errors
var (
	ErrShareLinkNotFound   = errors.New("share link not found")
	ErrShareLinkExpired    = errors.New("share link has expired")
	ErrMeetingNotShareable = errors.New("meeting must be processed before sharing")
	ErrInvalidExpiry       = errors.New("invalid share link expiry")
	ErrShareStoreFailed    = errors.New("share link store unavailable")
)
