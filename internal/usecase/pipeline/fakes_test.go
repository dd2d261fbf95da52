package pipeline

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	domainrepo "github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-insights/pkg/ai"
)

type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting

	findErr   error
	finishErr error
	// beforeBegin runs inside BeginProcessing before the conditional check
	beforeBegin func(m *entities.Meeting)
}

func newFakeMeetingRepo(meetings ...*entities.Meeting) *fakeMeetingRepo {
	repo := &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
	for _, m := range meetings {
		repo.meetings[m.ID] = m
	}
	return repo
}

var _ domainrepo.MeetingRepository = (*fakeMeetingRepo)(nil)

func (r *fakeMeetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	m, ok := r.meetings[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMeetingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.meetings, id)
	return nil
}

func (r *fakeMeetingRepo) List(context.Context, domainrepo.MeetingFilters) ([]*entities.Meeting, int64, error) {
	return nil, 0, nil
}

func (r *fakeMeetingRepo) CountByStatus(context.Context) (map[entities.MeetingStatus]int64, error) {
	return nil, nil
}

func (r *fakeMeetingRepo) BeginProcessing(_ context.Context, id uuid.UUID, from entities.MeetingStatus, stage entities.ProcessingStage) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return false, nil
	}
	if r.beforeBegin != nil {
		r.beforeBegin(m)
	}
	if m.Status != from {
		return false, nil
	}
	now := time.Now()
	m.Status = entities.MeetingStatusProcessing
	m.ProcessingStage = &stage
	m.ProcessingStartedAt = &now
	return true, nil
}

func (r *fakeMeetingRepo) FinishProcessing(_ context.Context, id uuid.UUID, stage entities.ProcessingStage, to entities.MeetingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finishErr != nil {
		return false, r.finishErr
	}
	m, ok := r.meetings[id]
	if !ok || m.Status != entities.MeetingStatusProcessing || m.ProcessingStage == nil || *m.ProcessingStage != stage {
		return false, nil
	}
	m.Status = to
	m.ProcessingStage = nil
	m.ProcessingStartedAt = nil
	return true, nil
}

func (r *fakeMeetingRepo) FindStaleProcessing(_ context.Context, cutoff time.Time, limit int) ([]*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Meeting
	for _, m := range r.meetings {
		if m.Status == entities.MeetingStatusProcessing && m.ProcessingStartedAt != nil && m.ProcessingStartedAt.Before(cutoff) {
			cp := *m
			out = append(out, &cp)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMeetingRepo) status(id uuid.UUID) entities.MeetingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meetings[id].Status
}

type fakeTranscriptRepo struct {
	mu         sync.Mutex
	segments   map[uuid.UUID][]*entities.TranscriptSegment
	replaceErr error
	listErr    error
}

func newFakeTranscriptRepo() *fakeTranscriptRepo {
	return &fakeTranscriptRepo{segments: make(map[uuid.UUID][]*entities.TranscriptSegment)}
}

func (r *fakeTranscriptRepo) ReplaceForMeeting(_ context.Context, meetingID uuid.UUID, segments []*entities.TranscriptSegment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaceErr != nil {
		return r.replaceErr
	}
	stored := make([]*entities.TranscriptSegment, len(segments))
	copy(stored, segments)
	r.segments[meetingID] = stored
	return nil
}

func (r *fakeTranscriptRepo) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.TranscriptSegment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := append([]*entities.TranscriptSegment(nil), r.segments[meetingID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartS < out[j].StartS })
	return out, nil
}

func (r *fakeTranscriptRepo) CountByMeetings(context.Context, []uuid.UUID) (map[uuid.UUID]int64, error) {
	return nil, nil
}

func (r *fakeTranscriptRepo) CountAll(context.Context) (int64, error) {
	return 0, nil
}

type fakeSummaryRepo struct {
	mu      sync.Mutex
	saved   map[uuid.UUID]*entities.Summary
	saveErr error
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{saved: make(map[uuid.UUID]*entities.Summary)}
}

func (r *fakeSummaryRepo) Save(_ context.Context, s *entities.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved[s.MeetingID] = s
	return nil
}

func (r *fakeSummaryRepo) FindByMeeting(_ context.Context, meetingID uuid.UUID) (*entities.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved[meetingID], nil
}

type fakeActionItemRepo struct {
	mu         sync.Mutex
	items      map[uuid.UUID][]*entities.ActionItem
	replaceErr error
}

func newFakeActionItemRepo() *fakeActionItemRepo {
	return &fakeActionItemRepo{items: make(map[uuid.UUID][]*entities.ActionItem)}
}

func (r *fakeActionItemRepo) ReplacePending(_ context.Context, meetingID uuid.UUID, items []*entities.ActionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.items[meetingID] = items
	return nil
}

func (r *fakeActionItemRepo) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[meetingID], nil
}

func (r *fakeActionItemRepo) CountByMeetings(context.Context, []uuid.UUID) (map[uuid.UUID]int64, error) {
	return nil, nil
}

func (r *fakeActionItemRepo) CountAll(context.Context) (int64, error) {
	return 0, nil
}

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error { return nil }

type fakeAudioStore struct {
	objects map[string][]byte
	findErr error
}

func newFakeAudioStore() *fakeAudioStore {
	return &fakeAudioStore{objects: make(map[string][]byte)}
}

func (s *fakeAudioStore) put(key string, data string) {
	s.objects[key] = []byte(data)
}

func (s *fakeAudioStore) FindByPrefix(_ context.Context, prefix string) (*storage.Object, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for key, data := range s.objects {
		if strings.HasPrefix(key, prefix) {
			return &storage.Object{Key: key, Size: int64(len(data)), ContentType: "audio/webm"}, nil
		}
	}
	return nil, storage.ErrObjectNotFound
}

func (s *fakeAudioStore) Open(_ context.Context, key string) (io.ReadSeekCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return nopSeekCloser{bytes.NewReader(data)}, nil
}

type fakeTranscriber struct {
	result *ai.Transcription
	err    error
	calls  int
	// block waits for ctx to end before returning
	block bool
}

func (t *fakeTranscriber) Name() string { return "fake-stt" }

func (t *fakeTranscriber) Transcribe(ctx context.Context, audio ai.AudioFile) (*ai.Transcription, error) {
	t.calls++
	if t.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if _, err := io.ReadAll(audio.Body); err != nil {
		return nil, err
	}
	return t.result, t.err
}

type fakeSummarizer struct {
	content    string
	err        error
	calls      int
	lastPrompt string
	lastUser   string
}

func (s *fakeSummarizer) Model() string { return "fake-llm" }

func (s *fakeSummarizer) Summarize(_ context.Context, systemPrompt, transcript string) (string, error) {
	s.calls++
	s.lastPrompt = systemPrompt
	s.lastUser = transcript
	return s.content, s.err
}
