package entities

import "fmt"

// MeetingStatus represents the processing stage of a meeting
type MeetingStatus string

const (
	MeetingStatusCreated     MeetingStatus = "created"
	MeetingStatusProcessing  MeetingStatus = "processing"
	MeetingStatusTranscribed MeetingStatus = "transcribed"
	MeetingStatusSummarized  MeetingStatus = "summarized"
	MeetingStatusError       MeetingStatus = "error"
)

// AllMeetingStatuses lists every status in lifecycle order
var AllMeetingStatuses = []MeetingStatus{
	MeetingStatusCreated,
	MeetingStatusProcessing,
	MeetingStatusTranscribed,
	MeetingStatusSummarized,
	MeetingStatusError,
}

// IsValid checks the status is one of the known values
func (s MeetingStatus) IsValid() bool {
	for _, known := range AllMeetingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no forward transition leaves this status
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusSummarized || s == MeetingStatusError
}

// ProcessingStage records which pipeline stage put a meeting into processing
type ProcessingStage string

const (
	StageTranscription ProcessingStage = "transcription"
	StageSummarization ProcessingStage = "summarization"
)

// Trigger is an event that moves a meeting between statuses
type Trigger string

const (
	TriggerBeginTranscription     Trigger = "begin_transcription"
	TriggerTranscriptionSucceeded Trigger = "transcription_succeeded"
	TriggerTranscriptionFailed    Trigger = "transcription_failed"
	TriggerBeginSummarization     Trigger = "begin_summarization"
	TriggerSummarizationSucceeded Trigger = "summarization_succeeded"
	TriggerSummarizationFailed    Trigger = "summarization_failed"
)

type transition struct {
	from    MeetingStatus
	trigger Trigger
}

// transitions is the complete lifecycle. A failed transcription lands in
// error; a failed summarization reverts to transcribed.
var transitions = map[transition]MeetingStatus{
	{MeetingStatusCreated, TriggerBeginTranscription}:        MeetingStatusProcessing,
	{MeetingStatusProcessing, TriggerTranscriptionSucceeded}: MeetingStatusTranscribed,
	{MeetingStatusProcessing, TriggerTranscriptionFailed}:    MeetingStatusError,
	{MeetingStatusTranscribed, TriggerBeginSummarization}:    MeetingStatusProcessing,
	{MeetingStatusProcessing, TriggerSummarizationSucceeded}: MeetingStatusSummarized,
	{MeetingStatusProcessing, TriggerSummarizationFailed}:    MeetingStatusTranscribed,
}

// Stage returns the pipeline stage a trigger belongs to
func (t Trigger) Stage() ProcessingStage {
	switch t {
	case TriggerBeginSummarization, TriggerSummarizationSucceeded, TriggerSummarizationFailed:
		return StageSummarization
	default:
		return StageTranscription
	}
}

// RequiredStatus returns the only status from which the trigger is legal
func (t Trigger) RequiredStatus() MeetingStatus {
	for key := range transitions {
		if key.trigger == t {
			return key.from
		}
	}
	return ""
}

// FailureTrigger returns the compensating trigger for a stage
func (s ProcessingStage) FailureTrigger() Trigger {
	if s == StageSummarization {
		return TriggerSummarizationFailed
	}
	return TriggerTranscriptionFailed
}

// SuccessTrigger returns the completion trigger for a stage
func (s ProcessingStage) SuccessTrigger() Trigger {
	if s == StageSummarization {
		return TriggerSummarizationSucceeded
	}
	return TriggerTranscriptionSucceeded
}

// TransitionError is returned for a trigger fired from the wrong status
type TransitionError struct {
	From     MeetingStatus
	Trigger  Trigger
	Required MeetingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s: status is %s, requires %s", e.Trigger, e.From, e.Required)
}

// Is matches ErrIllegalTransition
func (e *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// NextStatus looks up the status reached by firing trigger from status from.
func NextStatus(from MeetingStatus, trigger Trigger) (MeetingStatus, error) {
	to, ok := transitions[transition{from: from, trigger: trigger}]
	if !ok {
		return from, &TransitionError{From: from, Trigger: trigger, Required: trigger.RequiredStatus()}
	}
	return to, nil
}

// CanFire reports whether trigger is legal from status from
func CanFire(from MeetingStatus, trigger Trigger) bool {
	_, ok := transitions[transition{from: from, trigger: trigger}]
	return ok
}
