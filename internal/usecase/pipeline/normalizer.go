package pipeline

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/ai"
)

const (
	// fallbackChunkWords is the size of an estimated segment
	fallbackChunkWords = 50
	// secondsPerWord estimates speaking pace when the provider gives no timing
	secondsPerWord = 0.6
)

// NormalizeSegments turns a provider transcription into ordered segments.
// Native segments are mapped one to one; flat text falls back to fixed word
// chunks with estimated offsets.
func NormalizeSegments(meetingID uuid.UUID, t *ai.Transcription) []*entities.TranscriptSegment {
	if t == nil {
		return []*entities.TranscriptSegment{}
	}
	if len(t.Segments) > 0 {
		return fromNativeSegments(meetingID, t.Segments)
	}
	return estimateSegments(meetingID, t.Text)
}

func fromNativeSegments(meetingID uuid.UUID, native []ai.Segment) []*entities.TranscriptSegment {
	segments := make([]*entities.TranscriptSegment, 0, len(native))
	for i, seg := range native {
		segments = append(segments, &entities.TranscriptSegment{
			MeetingID: meetingID,
			Position:  i,
			StartS:    seg.Start,
			EndS:      seg.End,
			Speaker:   seg.Speaker,
			Text:      strings.TrimSpace(seg.Text),
		})
	}
	return segments
}

// estimateSegments spreads words evenly over word_count * secondsPerWord.
// Chunk i covers [i/N*d, min((i+50)/N*d, d)], so the last end equals d.
func estimateSegments(meetingID uuid.UUID, text string) []*entities.TranscriptSegment {
	words := strings.Fields(text)
	total := len(words)
	if total == 0 {
		return []*entities.TranscriptSegment{}
	}

	duration := float64(total) * secondsPerWord
	segments := make([]*entities.TranscriptSegment, 0, (total+fallbackChunkWords-1)/fallbackChunkWords)

	for i := 0; i < total; i += fallbackChunkWords {
		end := i + fallbackChunkWords
		if end > total {
			end = total
		}
		segments = append(segments, &entities.TranscriptSegment{
			MeetingID: meetingID,
			Position:  len(segments),
			StartS:    float64(i) / float64(total) * duration,
			EndS:      math.Min(float64(i+fallbackChunkWords)/float64(total)*duration, duration),
			Text:      strings.Join(words[i:end], " "),
		})
	}
	return segments
}
