package pipeline

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Sentinels the model is told to use for missing action item fields
const (
	unassignedSentinel = "unassigned"
	noDateSentinel     = "no date"
)

// SystemPrompt instructs the summarization model to answer with one JSON object
const SystemPrompt = `You are an expert meeting analyst. Read the meeting transcript and extract the key information as JSON.

Identify:
1. A TL;DR of the meeting outcomes, at most three sentences
2. Decisions that were made, with context and a confidence between 0.0 and 1.0
3. Risks that were raised, with impact and likelihood
4. Open questions, with a category and urgency
5. Action items, with assignee, due date, priority and the exact quote they come from

Rules:
- Only include information stated in the transcript
- Use the names spoken in the meeting for assignees, or "` + unassignedSentinel + `" if nobody owns the task
- Use YYYY-MM-DD for due dates when a date is given, or "` + noDateSentinel + `" otherwise
- Source quotes must be copied verbatim from the transcript

Respond with a single JSON object of exactly this shape:
{
  "tl_dr": "Short summary of the meeting outcomes",
  "decisions": [
    {"decision": "What was decided", "context": "Why it was decided", "confidence": 0.9}
  ],
  "risks": [
    {"risk": "The risk raised", "impact": "high|medium|low", "likelihood": "high|medium|low"}
  ],
  "questions": [
    {"question": "The open question", "category": "technical|business|process|other", "urgency": "high|medium|low"}
  ],
  "action_items": [
    {"task": "What has to be done", "assignee": "Owner or '` + unassignedSentinel + `'", "due_date": "YYYY-MM-DD or '` + noDateSentinel + `'", "priority": "high|medium|low", "source_quote": "Exact transcript quote"}
  ]
}`

const userMessagePrefix = "Analyze this meeting transcript and extract the key information:\n\n"

// FormatTimestamp renders an offset in seconds as [MM:SS]
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("[%02d:%02d]", total/60, total%60)
}

// RenderTranscript writes one timestamped line per segment, in the given order
func RenderTranscript(segments []*entities.TranscriptSegment) string {
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(FormatTimestamp(seg.StartS))
		b.WriteByte(' ')
		b.WriteString(seg.Text)
	}
	return b.String()
}

// UserMessage wraps a rendered transcript for the summarization request
func UserMessage(transcript string) string {
	return userMessagePrefix + transcript
}
