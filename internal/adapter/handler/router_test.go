package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appErrors "github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/adapter/repository"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	domainrepo "github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	httpmw "github.com/johnquangdev/meeting-insights/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-insights/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-insights/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-insights/internal/usecase/share"
	"github.com/johnquangdev/meeting-insights/pkg/ai"
	"github.com/johnquangdev/meeting-insights/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"
)

type memoryRecordings struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryRecordings) UploadFile(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	return nil
}

type fakePipeline struct {
	transcription *pipeline.TranscriptionResult
	summarization *pipeline.SummarizationResult
	err           error
}

func (f *fakePipeline) RunTranscription(context.Context, uuid.UUID) (*pipeline.TranscriptionResult, error) {
	return f.transcription, f.err
}

func (f *fakePipeline) RunSummarization(context.Context, uuid.UUID) (*pipeline.SummarizationResult, error) {
	return f.summarization, f.err
}

type testServer struct {
	e          *echo.Echo
	meetings   domainrepo.MeetingRepository
	recordings *memoryRecordings
	pipeline   *fakePipeline
}

func newTestServer(t *testing.T, opts ...RouterOption) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(
		&entities.Meeting{},
		&entities.TranscriptSegment{},
		&entities.Summary{},
		&entities.ActionItem{},
	))

	ts := &testServer{
		meetings:   repository.NewMeetingRepository(db),
		recordings: &memoryRecordings{objects: map[string][]byte{}},
		pipeline:   &fakePipeline{},
	}
	meetingService := meeting.NewMeetingService(
		ts.meetings,
		repository.NewTranscriptRepository(db),
		repository.NewSummaryRepository(db),
		repository.NewActionItemRepository(db),
		ts.recordings,
		1<<20,
		nil,
	)

	store := cache.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	shareService := share.NewShareService(store, meetingService, share.Config{AppURL: "https://notes.example.com"}, nil)

	ts.e = echo.New()
	ts.e.Validator = pkgvalidator.New()
	NewRouter("test",
		NewMeetingHandler(meetingService, nil),
		NewPipelineHandler(ts.pipeline, nil),
		NewShareHandler(shareService, nil),
		opts...,
	).Setup(ts.e)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) doJSON(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return ts.do(t, method, path, body, echo.MIMEApplicationJSON)
}

func (ts *testServer) upload(t *testing.T, title, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if title != "" {
		require.NoError(t, w.WriteField("title", title))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return ts.do(t, http.MethodPost, "/v1/meetings", &buf, w.FormDataContentType())
}

// uploaded creates a meeting and optionally walks it through transcription
func (ts *testServer) uploaded(t *testing.T, status entities.MeetingStatus) uuid.UUID {
	t.Helper()
	rec := ts.upload(t, "Weekly sync", "sync.mp3", "ID3....")
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &created)
	id := uuid.MustParse(created.ID)

	if status == entities.MeetingStatusTranscribed {
		ctx := context.Background()
		ok, err := ts.meetings.BeginProcessing(ctx, id, entities.MeetingStatusCreated, entities.StageTranscription)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = ts.meetings.FinishProcessing(ctx, id, entities.StageTranscription, entities.MeetingStatusTranscribed)
		require.NoError(t, err)
		require.True(t, ok)
	}
	return id
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	assert.Equal(t, int(appErrors.ErrorCode_HTTP_OK), envelope.Code)
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}

type errorBody struct {
	Code    appErrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Info    string              `json:"info"`
	Details map[string]string   `json:"details"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestUploadMeeting(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.upload(t, "Design review", "Review.WEBM", "webm-bytes")
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Source string `json:"source"`
		Status string `json:"status"`
	}
	decodeData(t, rec, &created)
	assert.Equal(t, "Design review", created.Title)
	assert.Equal(t, "manual", created.Source)
	assert.Equal(t, "created", created.Status)
	assert.Equal(t, "webm-bytes", string(ts.recordings.objects[created.ID+".webm"]))
}

func TestUploadMeetingRequiresFile(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.upload(t, "No file", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.upload(t, "Too big", "big.wav", strings.Repeat("a", 2<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestListAndStats(t *testing.T) {
	ts := newTestServer(t)
	ts.uploaded(t, entities.MeetingStatusCreated)
	ts.uploaded(t, entities.MeetingStatusTranscribed)

	rec := ts.do(t, http.MethodGet, "/v1/meetings?include_stats=true&limit=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Meetings []struct {
			ID           string `json:"id"`
			SegmentCount *int64 `json:"segment_count"`
		} `json:"meetings"`
		Pagination struct {
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decodeData(t, rec, &list)
	require.Len(t, list.Meetings, 1)
	require.NotNil(t, list.Meetings[0].SegmentCount)
	assert.Equal(t, 1, list.Pagination.Limit)
	assert.Equal(t, int64(2), list.Pagination.Total)

	rec = ts.do(t, http.MethodGet, "/v1/meetings?status=transcribed", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &list)
	assert.Equal(t, int64(1), list.Pagination.Total)

	rec = ts.do(t, http.MethodGet, "/v1/meetings?status=archived", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/meetings/stats", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Total    int64            `json:"total"`
		ByStatus map[string]int64 `json:"by_status"`
	}
	decodeData(t, rec, &stats)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus["created"])
	assert.Equal(t, int64(1), stats.ByStatus["transcribed"])
	assert.Contains(t, stats.ByStatus, "error")
}

func TestGetMeetingAndStatus(t *testing.T) {
	ts := newTestServer(t)
	id := ts.uploaded(t, entities.MeetingStatusCreated)

	rec := ts.do(t, http.MethodGet, "/v1/meetings/"+id.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Meeting struct {
			ID string `json:"id"`
		} `json:"meeting"`
		Summary     *json.RawMessage  `json:"summary"`
		ActionItems []json.RawMessage `json:"action_items"`
	}
	decodeData(t, rec, &detail)
	assert.Equal(t, id.String(), detail.Meeting.ID)
	assert.Nil(t, detail.Summary)
	assert.NotNil(t, detail.ActionItems)

	rec = ts.do(t, http.MethodGet, "/v1/meetings/"+id.String()+"/status", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var status struct {
		Status string `json:"status"`
	}
	decodeData(t, rec, &status)
	assert.Equal(t, "created", status.Status)

	rec = ts.do(t, http.MethodGet, "/v1/meetings/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/meetings/not-a-uuid/status", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrorCode_INVALID_ARGUMENT, decodeError(t, rec).Code)
}

func TestTranscribeSuccess(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()
	ts.pipeline.transcription = &pipeline.TranscriptionResult{SegmentCount: 3, Language: "en"}

	rec := ts.do(t, http.MethodPost, "/v1/meetings/"+id.String()+"/transcribe", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		MeetingID    string `json:"meeting_id"`
		Status       string `json:"status"`
		SegmentCount int    `json:"segment_count"`
		Language     string `json:"language"`
	}
	decodeData(t, rec, &result)
	assert.Equal(t, id.String(), result.MeetingID)
	assert.Equal(t, "transcribed", result.Status)
	assert.Equal(t, 3, result.SegmentCount)
	assert.Equal(t, "en", result.Language)
}

func TestSummarizeReturnsWarnings(t *testing.T) {
	ts := newTestServer(t)
	ts.pipeline.summarization = &pipeline.SummarizationResult{
		DecisionsCount:   2,
		ActionItemsCount: 1,
		Warnings:         []pipeline.Warning{{Code: "action_items_not_saved", Message: "disk full"}},
	}

	rec := ts.do(t, http.MethodPost, "/v1/meetings/"+uuid.NewString()+"/summarize", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Status         string `json:"status"`
		DecisionsCount int    `json:"decisions_count"`
		Warnings       []struct {
			Code string `json:"code"`
		} `json:"warnings"`
	}
	decodeData(t, rec, &result)
	assert.Equal(t, "summarized", result.Status)
	assert.Equal(t, 2, result.DecisionsCount)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "action_items_not_saved", result.Warnings[0].Code)
}

func TestPipelineErrorMapping(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		kind   pipeline.Kind
		err    error
		status int
		code   appErrors.ErrorCode
	}{
		{pipeline.KindNotFound, nil, http.StatusNotFound, appErrors.ErrorCode_MEETING_NOT_FOUND},
		{pipeline.KindInvalidState, nil, http.StatusConflict, appErrors.ErrorCode_MEETING_INVALID_STATE},
		{pipeline.KindMissingAsset, errors.New("no object"), http.StatusUnprocessableEntity, appErrors.ErrorCode_MEETING_MISSING_ASSET},
		{pipeline.KindEmptyTranscript, nil, http.StatusUnprocessableEntity, appErrors.ErrorCode_MEETING_EMPTY_TRANSCRIPT},
		{pipeline.KindProviderError, context.DeadlineExceeded, http.StatusBadGateway, appErrors.ErrorCode_AI_PROVIDER_FAILED},
		{pipeline.KindMalformedResponse, ai.ErrMalformedResponse, http.StatusBadGateway, appErrors.ErrorCode_AI_MALFORMED_RESPONSE},
		{pipeline.KindPersistenceError, errors.New("db down"), http.StatusInternalServerError, appErrors.ErrorCode_DB_QUERY_FAILED},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			ts := newTestServer(t)
			ts.pipeline.err = &pipeline.Error{Kind: tc.kind, MeetingID: id, Message: "meeting must be created (currently transcribed)", Err: tc.err}

			rec := ts.do(t, http.MethodPost, "/v1/meetings/"+id.String()+"/transcribe", nil, "")
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeError(t, rec).Code)
		})
	}
}

func TestProviderErrorCarriesUpstreamResponse(t *testing.T) {
	ts := newTestServer(t)
	apiErr := &ai.APIError{Provider: "groq", StatusCode: http.StatusTooManyRequests, Body: `{"error":"rate limited"}`}
	ts.pipeline.err = &pipeline.Error{
		Kind:    pipeline.KindProviderError,
		Message: "groq returned HTTP 429",
		Err:     fmt.Errorf("summarize: %w", apiErr),
	}

	rec := ts.do(t, http.MethodPost, "/v1/meetings/"+uuid.NewString()+"/summarize", nil, "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "429", body.Details["upstream_status"])
	assert.Equal(t, `{"error":"rate limited"}`, body.Details["upstream_body"])
	assert.Equal(t, "groq", body.Details["provider"])
}

func TestShareLinkLifecycle(t *testing.T) {
	ts := newTestServer(t)
	id := ts.uploaded(t, entities.MeetingStatusTranscribed)

	rec := ts.doJSON(t, http.MethodPost, "/v1/share", map[string]interface{}{
		"meeting_id":         id.String(),
		"expires_in_days":    7,
		"include_transcript": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var link struct {
		Token         string    `json:"token"`
		ShareURL      string    `json:"share_url"`
		ExpiresInDays int       `json:"expires_in_days"`
		ExpiresAt     time.Time `json:"expires_at"`
	}
	decodeData(t, rec, &link)
	assert.Len(t, link.Token, 64)
	assert.Equal(t, "https://notes.example.com/share/"+link.Token, link.ShareURL)
	assert.Equal(t, 7, link.ExpiresInDays)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), link.ExpiresAt, time.Minute)

	rec = ts.do(t, http.MethodGet, "/v1/share/"+link.Token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var shared struct {
		Meeting struct {
			ID string `json:"id"`
		} `json:"meeting"`
		Transcript []json.RawMessage `json:"transcript"`
		Share      struct {
			IncludeTranscript bool `json:"include_transcript"`
		} `json:"share"`
	}
	decodeData(t, rec, &shared)
	assert.Equal(t, id.String(), shared.Meeting.ID)
	assert.Nil(t, shared.Transcript)
	assert.False(t, shared.Share.IncludeTranscript)

	rec = ts.do(t, http.MethodDelete, "/v1/share/"+link.Token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/share/"+link.Token, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, appErrors.ErrorCode_SHARE_NOT_FOUND, decodeError(t, rec).Code)
}

func TestShareLinkRules(t *testing.T) {
	ts := newTestServer(t)
	created := ts.uploaded(t, entities.MeetingStatusCreated)

	rec := ts.doJSON(t, http.MethodPost, "/v1/share", map[string]interface{}{"meeting_id": created.String()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrorCode_SHARE_NOT_SHAREABLE, decodeError(t, rec).Code)

	rec = ts.doJSON(t, http.MethodPost, "/v1/share", map[string]interface{}{"meeting_id": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.doJSON(t, http.MethodPost, "/v1/share", map[string]interface{}{"meeting_id": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.doJSON(t, http.MethodPost, "/v1/share", map[string]interface{}{"meeting_id": created.String(), "expires_in_days": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/share/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthProtectsManagementRoutes(t *testing.T) {
	manager := jwt.NewManager("secret", "", time.Hour)
	ts := newTestServer(t, WithAuth(httpmw.EchoAuth(manager, nil)))

	rec := ts.do(t, http.MethodGet, "/v1/meetings", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.doJSON(t, http.MethodPost, "/v1/share", map[string]interface{}{"meeting_id": uuid.NewString()})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/share/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	token, err := manager.GenerateToken("dashboard", "")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/v1/meetings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "meeting_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	ts := newTestServer(t, WithMetrics(registry))
	rec := ts.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "meeting_test_total 1")

	ts = newTestServer(t, WithHealthCheck("storage", func(context.Context) error {
		return errors.New("bucket missing")
	}))
	rec = ts.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "bucket missing")
}
