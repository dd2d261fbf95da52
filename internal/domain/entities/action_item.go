package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItemStatus tracks downstream handling of an action item
type ActionItemStatus string

const (
	ActionItemStatusPending ActionItemStatus = "pending"
	ActionItemStatusSynced  ActionItemStatus = "synced"
	ActionItemStatusDone    ActionItemStatus = "done"
)

// ActionItem is a task extracted from a meeting summary.
// A nil Assignee means unassigned and a nil DueDate means no date.
type ActionItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	MeetingID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Task        string           `gorm:"type:text;not null" json:"task"`
	Assignee    *string          `gorm:"type:varchar(255)" json:"assignee"`
	DueDate     *string          `gorm:"type:varchar(50)" json:"due_date"`
	Priority    string           `gorm:"type:varchar(20)" json:"priority"`
	SourceQuote string           `gorm:"type:text" json:"source_quote"`
	Status      ActionItemStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Position    int              `gorm:"not null;default:0" json:"-"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}
