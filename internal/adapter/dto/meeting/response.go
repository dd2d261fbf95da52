package meeting

import (
	"time"

	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Source              string     `json:"source"`
	Status              string     `json:"status"`
	ProcessingStage     *string    `json:"processing_stage,omitempty"`
	ProcessingStartedAt *time.Time `json:"processing_started_at,omitempty"`
	SegmentCount        *int64     `json:"segment_count,omitempty"`
	ActionItemCount     *int64     `json:"action_item_count,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// MeetingListResponse represents one page of meetings
type MeetingListResponse struct {
	Meetings   []*MeetingResponse         `json:"meetings"`
	Pagination *common.PaginationResponse `json:"pagination"`
}

// StatusResponse is the polling view of a meeting
type StatusResponse struct {
	MeetingID           string     `json:"meeting_id"`
	Status              string     `json:"status"`
	ProcessingStage     *string    `json:"processing_stage,omitempty"`
	ProcessingStartedAt *time.Time `json:"processing_started_at,omitempty"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// StatsResponse aggregates meeting counts
type StatsResponse struct {
	Total            int64            `json:"total"`
	ByStatus         map[string]int64 `json:"by_status"`
	TotalSegments    int64            `json:"total_segments"`
	TotalActionItems int64            `json:"total_action_items"`
}

// SummaryResponse represents a meeting summary
type SummaryResponse struct {
	TLDR      string              `json:"tl_dr"`
	Decisions []entities.Decision `json:"decisions"`
	Risks     []entities.Risk     `json:"risks"`
	Questions []entities.Question `json:"questions"`
	Model     string              `json:"model"`
	CreatedAt time.Time           `json:"created_at"`
}

// ActionItemResponse represents an extracted action item.
// Assignee and DueDate are null when the summary left them open.
type ActionItemResponse struct {
	ID          string  `json:"id"`
	Task        string  `json:"task"`
	Assignee    *string `json:"assignee"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	SourceQuote string  `json:"source_quote"`
	Status      string  `json:"status"`
}

// SegmentResponse represents one transcript segment
type SegmentResponse struct {
	StartS  float64 `json:"start_s"`
	EndS    float64 `json:"end_s"`
	Speaker *string `json:"speaker"`
	Text    string  `json:"text"`
}

// MeetingDetailResponse is a meeting with its pipeline outputs
type MeetingDetailResponse struct {
	Meeting     *MeetingResponse      `json:"meeting"`
	Summary     *SummaryResponse      `json:"summary"`
	ActionItems []*ActionItemResponse `json:"action_items"`
	Transcript  []*SegmentResponse    `json:"transcript,omitempty"`
}

// TranscriptionResponse is returned once a transcription run completes
type TranscriptionResponse struct {
	MeetingID    string `json:"meeting_id"`
	Status       string `json:"status"`
	SegmentCount int    `json:"segment_count"`
	Language     string `json:"language"`
}

// WarningResponse reports a best-effort step that failed without failing the run
type WarningResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SummarizationResponse is returned once a summarization run completes
type SummarizationResponse struct {
	MeetingID        string             `json:"meeting_id"`
	Status           string             `json:"status"`
	DecisionsCount   int                `json:"decisions_count"`
	RisksCount       int                `json:"risks_count"`
	QuestionsCount   int                `json:"questions_count"`
	ActionItemsCount int                `json:"action_items_count"`
	Warnings         []*WarningResponse `json:"warnings"`
}
