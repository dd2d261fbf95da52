package entities

import "errors"

// Domain errors
var (
	ErrIllegalTransition = errors.New("illegal meeting status transition")
	ErrInvalidStatus     = errors.New("invalid meeting status")
)

// ParseMeetingStatus validates a status string
func ParseMeetingStatus(s string) (MeetingStatus, error) {
	status := MeetingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
