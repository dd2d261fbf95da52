package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

const providerAssemblyAI = "assemblyai"

// AssemblyAITranscriber transcribes audio through the official AssemblyAI SDK.
// Utterance speaker labels are kept on the returned segments.
type AssemblyAITranscriber struct {
	client   *aai.Client
	language string
	retry    RetryPolicy
}

var _ Transcriber = (*AssemblyAITranscriber)(nil)

// NewAssemblyAITranscriber creates a transcriber using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAITranscriber(cfg *config.AssemblyAIConfig, language string, policy RetryPolicy, opts ...aai.ClientOption) *AssemblyAITranscriber {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAITranscriber{
		client:   aai.NewClientWithOptions(append([]aai.ClientOption{aai.WithAPIKey(apiKey)}, opts...)...),
		language: language,
		retry:    policy,
	}
}

// Name identifies the provider
func (t *AssemblyAITranscriber) Name() string { return providerAssemblyAI }

// Transcribe uploads the audio and waits for the transcript to complete
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audio AudioFile) (*Transcription, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if t.language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(t.language)
	}

	transcript, err := retry(ctx, t.retry, func() (aai.Transcript, error) {
		if _, err := audio.Body.Seek(0, io.SeekStart); err != nil {
			return aai.Transcript{}, fmt.Errorf("rewinding audio: %w", err)
		}
		body := newBodyStream()
		defer body.Close()
		body.Start(func() error {
			_, err := io.Copy(body.Writer(), audio.Body)
			return err
		})

		result, err := t.client.Transcripts.TranscribeFromReader(ctx, body, params)
		return result, fromAssemblyError(err)
	})
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, &APIError{Provider: providerAssemblyAI, StatusCode: 0, Body: msg}
	}

	return fromAssemblyTranscript(transcript), nil
}

// fromAssemblyError converts the SDK's non-2xx error so retries and callers
// see the upstream status and body
func fromAssemblyError(err error) error {
	var sdkErr aai.APIError
	if !errors.As(err, &sdkErr) {
		return err
	}
	body := sdkErr.Message
	if sdkErr.Response != nil && sdkErr.Response.Body != nil {
		if raw, readErr := io.ReadAll(sdkErr.Response.Body); readErr == nil && len(raw) > 0 {
			body = string(raw)
		}
	}
	return &APIError{Provider: providerAssemblyAI, StatusCode: sdkErr.Status, Body: body}
}

func fromAssemblyTranscript(transcript aai.Transcript) *Transcription {
	result := &Transcription{
		Language: string(transcript.LanguageCode),
	}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}

	result.Segments = make([]Segment, 0, len(transcript.Utterances))
	for _, utt := range transcript.Utterances {
		var seg Segment
		if utt.Text != nil {
			seg.Text = *utt.Text
		}
		if utt.Start != nil {
			seg.Start = float64(*utt.Start) / 1000.0 // ms to seconds
		}
		if utt.End != nil {
			seg.End = float64(*utt.End) / 1000.0
		}
		if utt.Speaker != nil && *utt.Speaker != "" {
			speaker := *utt.Speaker
			seg.Speaker = &speaker
		}
		result.Segments = append(result.Segments, seg)
	}
	return result
}
