package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Decision is a decision recorded during a meeting
type Decision struct {
	Decision   string  `json:"decision"`
	Context    string  `json:"context"`
	Confidence float64 `json:"confidence"`
}

// Risk is a risk raised during a meeting
type Risk struct {
	Risk       string `json:"risk"`
	Impact     string `json:"impact"`
	Likelihood string `json:"likelihood"`
}

// Question is an open question left by a meeting
type Question struct {
	Question string `json:"question"`
	Category string `json:"category"`
	Urgency  string `json:"urgency"`
}

// Summary is the structured digest of a meeting; at most one per meeting
type Summary struct {
	ID        uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	MeetingID uuid.UUID                      `gorm:"type:uuid;not null;uniqueIndex" json:"meeting_id"`
	TLDR      string                         `gorm:"column:tl_dr;type:text" json:"tl_dr"`
	Decisions datatypes.JSONType[[]Decision] `gorm:"type:jsonb" json:"decisions"`
	Risks     datatypes.JSONType[[]Risk]     `gorm:"type:jsonb" json:"risks"`
	Questions datatypes.JSONType[[]Question] `gorm:"type:jsonb" json:"questions"`
	Model     string                         `gorm:"type:varchar(100)" json:"model"`
	CreatedAt time.Time                      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Summary
func (Summary) TableName() string {
	return "summaries"
}

// NewSummary builds a summary row for a meeting
func NewSummary(meetingID uuid.UUID, tldr string, decisions []Decision, risks []Risk, questions []Question, model string) *Summary {
	if decisions == nil {
		decisions = []Decision{}
	}
	if risks == nil {
		risks = []Risk{}
	}
	if questions == nil {
		questions = []Question{}
	}
	return &Summary{
		ID:        uuid.New(),
		MeetingID: meetingID,
		TLDR:      tldr,
		Decisions: datatypes.NewJSONType(decisions),
		Risks:     datatypes.NewJSONType(risks),
		Questions: datatypes.NewJSONType(questions),
		Model:     model,
		CreatedAt: time.Now().UTC(),
	}
}
