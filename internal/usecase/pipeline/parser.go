package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// SummaryPayload is the JSON object returned by the summarization model.
// Absent fields decode as empty.
type SummaryPayload struct {
	TLDR        string              `json:"tl_dr"`
	Decisions   []entities.Decision `json:"decisions"`
	Risks       []entities.Risk     `json:"risks"`
	Questions   []entities.Question `json:"questions"`
	ActionItems []ActionItemPayload `json:"action_items"`
}

// ActionItemPayload is one action item as the model reports it
type ActionItemPayload struct {
	Task        string  `json:"task"`
	Assignee    *string `json:"assignee"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	SourceQuote string  `json:"source_quote"`
}

// ParseSummary decodes the model's reply, tolerating a markdown code fence
func ParseSummary(content string) (*SummaryPayload, error) {
	content = extractJSON(content)
	if content == "" {
		return nil, fmt.Errorf("empty summary response")
	}

	var payload SummaryPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse summary JSON: %w", err)
	}
	return &payload, nil
}

// ToActionItems converts payload items into pending action items, mapping
// the sentinel values to nil.
func (p *SummaryPayload) ToActionItems(meetingID uuid.UUID) []*entities.ActionItem {
	items := make([]*entities.ActionItem, 0, len(p.ActionItems))
	for i, item := range p.ActionItems {
		items = append(items, &entities.ActionItem{
			MeetingID:   meetingID,
			Task:        item.Task,
			Assignee:    dropSentinel(item.Assignee, unassignedSentinel),
			DueDate:     dropSentinel(item.DueDate, noDateSentinel),
			Priority:    item.Priority,
			SourceQuote: item.SourceQuote,
			Status:      entities.ActionItemStatusPending,
			Position:    i,
		})
	}
	return items
}

func dropSentinel(value *string, sentinel string) *string {
	if value == nil || *value == sentinel {
		return nil
	}
	v := *value
	return &v
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
