package share

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	"github.com/johnquangdev/meeting-insights/internal/usecase/meeting"
)

const (
	tokenBytes = 32
	keyPrefix  = "share:link:"
	// expiredGrace keeps records past expiry so an old link reads as
	// expired rather than unknown
	expiredGrace = 7 * 24 * time.Hour
)

// MeetingReader is the part of the meeting service share links need
type MeetingReader interface {
	GetMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error)
	GetDetail(ctx context.Context, meetingID uuid.UUID, includeTranscript bool) (*meeting.MeetingDetail, error)
}

// Config holds share link settings
type Config struct {
	AppURL            string
	DefaultExpiryDays int
	MaxExpiryDays     int
}

// ShareService issues and resolves share links
type ShareService struct {
	store    cache.Store
	meetings MeetingReader
	cfg      Config
	now      func() time.Time
	logger   *zap.Logger
}

// NewShareService creates a new share service
func NewShareService(store cache.Store, meetings MeetingReader, cfg Config, logger *zap.Logger) *ShareService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultExpiryDays <= 0 {
		cfg.DefaultExpiryDays = 30
	}
	if cfg.MaxExpiryDays <= 0 {
		cfg.MaxExpiryDays = 365
	}
	return &ShareService{
		store:    store,
		meetings: meetings,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
	}
}

// GenerateInput represents a share link request. Nil fields take defaults.
type GenerateInput struct {
	MeetingID         uuid.UUID
	ExpiresInDays     *int
	IncludeTranscript *bool
}

// GenerateResult is an issued share link
type GenerateResult struct {
	Link     *entities.ShareLink
	ShareURL string
	Days     int
}

// Generate issues a share link for a meeting that has been processed
func (s *ShareService) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	days := s.cfg.DefaultExpiryDays
	if input.ExpiresInDays != nil {
		days = *input.ExpiresInDays
	}
	if days < 1 || days > s.cfg.MaxExpiryDays {
		return nil, fmt.Errorf("%w: expires_in_days must be between 1 and %d", usecaseErrors.ErrInvalidExpiry, s.cfg.MaxExpiryDays)
	}
	includeTranscript := true
	if input.IncludeTranscript != nil {
		includeTranscript = *input.IncludeTranscript
	}

	m, err := s.meetings.GetMeeting(ctx, input.MeetingID)
	if err != nil {
		return nil, err
	}
	if !m.IsShareable() {
		return nil, usecaseErrors.ErrMeetingNotShareable
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate share token: %w", err)
	}

	now := s.now().UTC()
	link := &entities.ShareLink{
		Token:             token,
		MeetingID:         m.ID,
		IncludeTranscript: includeTranscript,
		ExpiresAt:         now.AddDate(0, 0, days),
		CreatedAt:         now,
	}

	payload, err := json.Marshal(link)
	if err != nil {
		return nil, fmt.Errorf("failed to encode share link: %w", err)
	}
	ttl := link.ExpiresAt.Sub(now) + expiredGrace
	if err := s.store.Set(ctx, keyPrefix+token, string(payload), ttl); err != nil {
		return nil, fmt.Errorf("%w: set: %w", usecaseErrors.ErrShareStoreFailed, err)
	}

	s.logger.Info("🔗 Share link created",
		zap.String("meeting_id", m.ID.String()),
		zap.String("token_prefix", token[:8]),
		zap.Time("expires_at", link.ExpiresAt),
	)

	return &GenerateResult{
		Link:     link,
		ShareURL: strings.TrimRight(s.cfg.AppURL, "/") + "/share/" + token,
		Days:     days,
	}, nil
}

// SharedMeeting is what a share link exposes
type SharedMeeting struct {
	Link   *entities.ShareLink
	Detail *meeting.MeetingDetail
}

// Resolve returns the meeting behind a share link
func (s *ShareService) Resolve(ctx context.Context, token string) (*SharedMeeting, error) {
	if token == "" {
		return nil, usecaseErrors.ErrShareLinkNotFound
	}

	raw, ok, err := s.store.Get(ctx, keyPrefix+token)
	if err != nil {
		return nil, fmt.Errorf("%w: get: %w", usecaseErrors.ErrShareStoreFailed, err)
	}
	if !ok {
		return nil, usecaseErrors.ErrShareLinkNotFound
	}

	var link entities.ShareLink
	if err := json.Unmarshal([]byte(raw), &link); err != nil {
		return nil, fmt.Errorf("failed to decode share link: %w", err)
	}
	if link.IsExpired(s.now()) {
		return nil, usecaseErrors.ErrShareLinkExpired
	}

	detail, err := s.meetings.GetDetail(ctx, link.MeetingID, link.IncludeTranscript)
	if err != nil {
		if errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, err
	}

	return &SharedMeeting{Link: &link, Detail: detail}, nil
}

// Revoke deletes a share link
func (s *ShareService) Revoke(ctx context.Context, token string) error {
	if err := s.store.Delete(ctx, keyPrefix+token); err != nil {
		return fmt.Errorf("%w: delete: %w", usecaseErrors.ErrShareStoreFailed, err)
	}
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
