package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	domainrepo "github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-insights/pkg/ai"
	"github.com/johnquangdev/meeting-insights/pkg/jobcontext"
)

// WarningActionItemsNotSaved is attached when the action item write fails
const WarningActionItemsNotSaved = "action_items_not_saved"

const (
	defaultCompensationTimeout = 10 * time.Second
	unknownLanguage            = "unknown"
)

// AudioStore locates and opens uploaded recordings
type AudioStore interface {
	FindByPrefix(ctx context.Context, prefix string) (*storage.Object, error)
	Open(ctx context.Context, key string) (io.ReadSeekCloser, error)
}

// Service runs the two pipeline stages for a meeting
type Service interface {
	RunTranscription(ctx context.Context, meetingID uuid.UUID) (*TranscriptionResult, error)
	RunSummarization(ctx context.Context, meetingID uuid.UUID) (*SummarizationResult, error)
}

// TranscriptionResult is returned by a successful transcription run
type TranscriptionResult struct {
	SegmentCount int    `json:"segment_count"`
	Language     string `json:"language"`
}

// Warning is a best-effort failure that did not fail the run
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SummarizationResult is returned by a successful summarization run
type SummarizationResult struct {
	DecisionsCount   int       `json:"decisions_count"`
	RisksCount       int       `json:"risks_count"`
	QuestionsCount   int       `json:"questions_count"`
	ActionItemsCount int       `json:"action_items_count"`
	Warnings         []Warning `json:"warnings"`
}

// Config bounds pipeline runs
type Config struct {
	TranscriptionTimeout time.Duration
	SummarizationTimeout time.Duration
	CompensationTimeout  time.Duration
	// LanguageHint is reported when the provider does not detect a language
	LanguageHint string
}

// Dependencies are the collaborators a Service needs
type Dependencies struct {
	Meetings    domainrepo.MeetingRepository
	Transcripts domainrepo.TranscriptRepository
	Summaries   domainrepo.SummaryRepository
	ActionItems domainrepo.ActionItemRepository
	Audio       AudioStore
	Transcriber ai.Transcriber
	Summarizer  ai.Summarizer
	Metrics     *metrics.PipelineMetrics
}

type pipelineService struct {
	meetings    domainrepo.MeetingRepository
	transcripts domainrepo.TranscriptRepository
	summaries   domainrepo.SummaryRepository
	actionItems domainrepo.ActionItemRepository
	audio       AudioStore
	transcriber ai.Transcriber
	summarizer  ai.Summarizer
	metrics     *metrics.PipelineMetrics
	cfg         Config
	logger      *zap.Logger
}

// NewService constructs a pipeline service
func NewService(deps Dependencies, cfg Config, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CompensationTimeout <= 0 {
		cfg.CompensationTimeout = defaultCompensationTimeout
	}

	return &pipelineService{
		meetings:    deps.Meetings,
		transcripts: deps.Transcripts,
		summaries:   deps.Summaries,
		actionItems: deps.ActionItems,
		audio:       deps.Audio,
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		metrics:     deps.Metrics,
		cfg:         cfg,
		logger:      logger.Named("pipeline"),
	}
}

// RunTranscription moves a created meeting through transcription.
// Any failure after the meeting enters processing lands it in error.
func (s *pipelineService) RunTranscription(ctx context.Context, meetingID uuid.UUID) (*TranscriptionResult, error) {
	const stage = entities.StageTranscription
	started := time.Now()

	meeting, err := s.loadMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if err := s.begin(ctx, meeting, entities.TriggerBeginTranscription); err != nil {
		return nil, err
	}

	log := s.logger.With(zap.String("meeting_id", meetingID.String()), zap.String("stage", string(stage)))
	log.Info("🎙️ Transcription started", zap.String("provider", s.transcriber.Name()))

	runCtx, cancel := jobcontext.Begin(ctx, meetingID, string(stage), s.cfg.TranscriptionTimeout)
	defer cancel()

	var result *TranscriptionResult
	err = jobcontext.Run(runCtx, func(ctx context.Context) error {
		res, err := s.transcribe(ctx, meetingID)
		result = res
		return err
	})
	if err != nil {
		err = asPipelineError(meetingID, err)
		s.compensate(runCtx, meetingID, stage, err)
		s.metrics.ObserveRun(string(stage), metrics.OutcomeFailure, time.Since(started))
		return nil, err
	}

	s.metrics.ObserveRun(string(stage), metrics.OutcomeSuccess, time.Since(started))
	log.Info("✅ Transcription completed",
		zap.Int("segments", result.SegmentCount),
		zap.String("language", result.Language),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (s *pipelineService) transcribe(ctx context.Context, meetingID uuid.UUID) (*TranscriptionResult, error) {
	object, err := s.audio.FindByPrefix(ctx, storage.RecordingPrefix(meetingID.String()))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, errMissingAsset(meetingID, err)
		}
		return nil, errPersistence(meetingID, "look up recording", err)
	}

	body, err := s.audio.Open(ctx, object.Key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, errMissingAsset(meetingID, err)
		}
		return nil, errPersistence(meetingID, "open recording", err)
	}
	defer body.Close()

	transcription, err := s.transcriber.Transcribe(ctx, ai.AudioFile{
		Name:        object.Key,
		ContentType: object.ContentType,
		Body:        body,
	})
	if err != nil {
		return nil, providerFailure(meetingID, s.transcriber.Name(), err)
	}

	segments := NormalizeSegments(meetingID, transcription)
	if err := s.transcripts.ReplaceForMeeting(ctx, meetingID, segments); err != nil {
		return nil, errPersistence(meetingID, "save transcript segments", err)
	}

	if err := s.finish(ctx, meetingID, entities.StageTranscription); err != nil {
		return nil, err
	}

	return &TranscriptionResult{
		SegmentCount: len(segments),
		Language:     s.language(transcription.Language),
	}, nil
}

// RunSummarization moves a transcribed meeting through summarization.
// Any failure after the meeting enters processing reverts it to transcribed.
func (s *pipelineService) RunSummarization(ctx context.Context, meetingID uuid.UUID) (*SummarizationResult, error) {
	const stage = entities.StageSummarization
	started := time.Now()

	meeting, err := s.loadMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !entities.CanFire(meeting.Status, entities.TriggerBeginSummarization) {
		_, cause := entities.NextStatus(meeting.Status, entities.TriggerBeginSummarization)
		return nil, errInvalidState(meetingID, meeting.Status, entities.MeetingStatusTranscribed, cause)
	}

	segments, err := s.transcripts.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, errPersistence(meetingID, "load transcript segments", err)
	}
	if len(segments) == 0 {
		return nil, errEmptyTranscript(meetingID)
	}

	if err := s.begin(ctx, meeting, entities.TriggerBeginSummarization); err != nil {
		return nil, err
	}

	log := s.logger.With(zap.String("meeting_id", meetingID.String()), zap.String("stage", string(stage)))
	log.Info("🤖 Summarization started", zap.Int("segments", len(segments)), zap.String("model", s.summarizer.Model()))

	runCtx, cancel := jobcontext.Begin(ctx, meetingID, string(stage), s.cfg.SummarizationTimeout)
	defer cancel()

	var result *SummarizationResult
	err = jobcontext.Run(runCtx, func(ctx context.Context) error {
		res, err := s.summarize(ctx, meetingID, segments)
		result = res
		return err
	})
	if err != nil {
		err = asPipelineError(meetingID, err)
		s.compensate(runCtx, meetingID, stage, err)
		s.metrics.ObserveRun(string(stage), metrics.OutcomeFailure, time.Since(started))
		return nil, err
	}

	outcome := metrics.OutcomeSuccess
	if len(result.Warnings) > 0 {
		outcome = metrics.OutcomeWarning
	}
	s.metrics.ObserveRun(string(stage), outcome, time.Since(started))

	log.Info("🎉 Summarization completed",
		zap.Int("decisions", result.DecisionsCount),
		zap.Int("risks", result.RisksCount),
		zap.Int("questions", result.QuestionsCount),
		zap.Int("action_items", result.ActionItemsCount),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (s *pipelineService) summarize(ctx context.Context, meetingID uuid.UUID, segments []*entities.TranscriptSegment) (*SummarizationResult, error) {
	transcript := RenderTranscript(segments)

	content, err := s.summarizer.Summarize(ctx, SystemPrompt, UserMessage(transcript))
	if err != nil {
		return nil, providerFailure(meetingID, s.summarizer.Model(), err)
	}

	payload, err := ParseSummary(content)
	if err != nil {
		return nil, errMalformed(meetingID, err)
	}

	summary := entities.NewSummary(meetingID, payload.TLDR, payload.Decisions, payload.Risks, payload.Questions, s.summarizer.Model())
	if err := s.summaries.Save(ctx, summary); err != nil {
		return nil, errPersistence(meetingID, "save summary", err)
	}

	result := &SummarizationResult{
		DecisionsCount:   len(payload.Decisions),
		RisksCount:       len(payload.Risks),
		QuestionsCount:   len(payload.Questions),
		ActionItemsCount: len(payload.ActionItems),
		Warnings:         []Warning{},
	}

	// The summary is already durable, so this write only warns on failure
	if len(payload.ActionItems) > 0 {
		if err := s.actionItems.ReplacePending(ctx, meetingID, payload.ToActionItems(meetingID)); err != nil {
			s.logger.Warn("⚠️ Failed to save action items",
				zap.String("meeting_id", meetingID.String()),
				zap.Int("action_items", len(payload.ActionItems)),
				zap.Error(err),
			)
			s.metrics.ObserveWarning(WarningActionItemsNotSaved)
			result.Warnings = append(result.Warnings, Warning{
				Code:    WarningActionItemsNotSaved,
				Message: err.Error(),
			})
		}
	}

	if err := s.finish(ctx, meetingID, entities.StageSummarization); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *pipelineService) loadMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return nil, errPersistence(meetingID, "load meeting", err)
	}
	if meeting == nil {
		return nil, errNotFound(meetingID)
	}
	return meeting, nil
}

// begin fires trigger with a conditional update. A lost race is reported as
// invalid state, same as a failed precondition.
func (s *pipelineService) begin(ctx context.Context, meeting *entities.Meeting, trigger entities.Trigger) error {
	required := trigger.RequiredStatus()
	if _, err := entities.NextStatus(meeting.Status, trigger); err != nil {
		return errInvalidState(meeting.ID, meeting.Status, required, err)
	}

	applied, err := s.meetings.BeginProcessing(ctx, meeting.ID, meeting.Status, trigger.Stage())
	if err != nil {
		return errPersistence(meeting.ID, "mark meeting processing", err)
	}
	if applied {
		return nil
	}

	current := meeting.Status
	if latest, err := s.meetings.FindByID(ctx, meeting.ID); err == nil && latest != nil {
		current = latest.Status
	}
	_, cause := entities.NextStatus(current, trigger)
	return errInvalidState(meeting.ID, current, required, cause)
}

// finish applies the stage's success transition
func (s *pipelineService) finish(ctx context.Context, meetingID uuid.UUID, stage entities.ProcessingStage) error {
	to, err := entities.NextStatus(entities.MeetingStatusProcessing, stage.SuccessTrigger())
	if err != nil {
		return errPersistence(meetingID, "resolve completion status", err)
	}

	applied, err := s.meetings.FinishProcessing(ctx, meetingID, stage, to)
	if err != nil {
		return errPersistence(meetingID, "mark meeting "+string(to), err)
	}
	if !applied {
		return &Error{
			Kind:      KindInvalidState,
			MeetingID: meetingID,
			Message:   "meeting is no longer processing " + string(stage),
		}
	}
	return nil
}

// compensate applies the stage's failure transition on a fresh context.
// Its own failure is logged and never replaces cause.
func (s *pipelineService) compensate(ctx context.Context, meetingID uuid.UUID, stage entities.ProcessingStage, cause error) {
	to, _ := entities.NextStatus(entities.MeetingStatusProcessing, stage.FailureTrigger())

	cctx, cancel := jobcontext.Detach(ctx, s.cfg.CompensationTimeout)
	defer cancel()

	log := s.logger.With(
		zap.String("meeting_id", meetingID.String()),
		zap.String("stage", string(stage)),
		zap.String("status", string(to)),
		zap.Error(cause),
	)

	applied, err := s.meetings.FinishProcessing(cctx, meetingID, stage, to)
	switch {
	case err != nil:
		s.metrics.ObserveCompensation(string(stage), metrics.CompensationFailed)
		log.Error("❌ Failed to revert meeting status", zap.NamedError("compensation_error", err))
	case !applied:
		s.metrics.ObserveCompensation(string(stage), metrics.CompensationSkipped)
		log.Warn("Meeting already left processing, status not reverted")
	default:
		s.metrics.ObserveCompensation(string(stage), metrics.CompensationApplied)
		log.Warn("↩️ Pipeline run failed, meeting status reverted")
	}
}

func (s *pipelineService) language(detected string) string {
	if detected != "" {
		return detected
	}
	if s.cfg.LanguageHint != "" {
		return s.cfg.LanguageHint
	}
	return unknownLanguage
}

// asPipelineError wraps anything that escaped classification, such as a
// recovered panic, as a persistence error.
func asPipelineError(meetingID uuid.UUID, err error) error {
	if KindOf(err) != "" {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Kind:      KindProviderError,
			MeetingID: meetingID,
			Message:   "pipeline run timed out",
			Err:       err,
		}
	}
	return errPersistence(meetingID, "complete pipeline run", err)
}
