package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
)

// verboseTranscription is the verbose_json transcription payload
type verboseTranscription struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		ID    int     `json:"id"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe uploads the audio as multipart form data to the Whisper
// endpoint, asking for timed verbose JSON output.
func (g *GroqClient) Transcribe(ctx context.Context, audio AudioFile) (*Transcription, error) {
	return retry(ctx, g.retry, func() (*Transcription, error) {
		if _, err := audio.Body.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewinding audio: %w", err)
		}
		return g.transcribeOnce(ctx, audio)
	})
}

func (g *GroqClient) transcribeOnce(ctx context.Context, audio AudioFile) (*Transcription, error) {
	body := newBodyStream()
	defer body.Close()
	writer := multipart.NewWriter(body.Writer())
	contentType := writer.FormDataContentType()

	body.Start(func() error {
		return writeTranscriptionForm(writer, audio, map[string]string{
			"model":           g.transcriptionModel,
			"response_format": "verbose_json",
			"language":        g.language,
		})
	})

	endpoint := g.baseURL + "/openai/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling groq transcription API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading groq response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Provider: providerGroq, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var vt verboseTranscription
	if err := json.Unmarshal(respBody, &vt); err != nil {
		return nil, malformed(providerGroq, err)
	}

	result := &Transcription{
		Text:     vt.Text,
		Language: vt.Language,
		Segments: make([]Segment, 0, len(vt.Segments)),
	}
	for _, seg := range vt.Segments {
		result.Segments = append(result.Segments, Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return result, nil
}

func writeTranscriptionForm(writer *multipart.Writer, audio AudioFile, fields map[string]string) error {
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return err
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filepath.Base(audio.Name))))
	contentType := audio.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, audio.Body); err != nil {
		return fmt.Errorf("streaming audio: %w", err)
	}
	return writer.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
