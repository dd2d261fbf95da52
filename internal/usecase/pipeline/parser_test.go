package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestParseSummary(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		payload, err := ParseSummary(summaryJSON)
		require.NoError(t, err)
		assert.Equal(t, "Launch moves to March.", payload.TLDR)
		assert.Len(t, payload.Decisions, 1)
		assert.InDelta(t, 0.8, payload.Decisions[0].Confidence, 1e-9)
		assert.Empty(t, payload.Risks)
		assert.Len(t, payload.Questions, 2)
		assert.Len(t, payload.ActionItems, 3)
	})

	t.Run("fenced json", func(t *testing.T) {
		payload, err := ParseSummary("```json\n{\"tl_dr\":\"ok\",\"risks\":[{\"risk\":\"churn\",\"impact\":\"high\",\"likelihood\":\"low\"}]}\n```")
		require.NoError(t, err)
		assert.Equal(t, "ok", payload.TLDR)
		require.Len(t, payload.Risks, 1)
		assert.Equal(t, entities.Risk{Risk: "churn", Impact: "high", Likelihood: "low"}, payload.Risks[0])
	})

	t.Run("absent fields", func(t *testing.T) {
		payload, err := ParseSummary(`{}`)
		require.NoError(t, err)
		assert.Empty(t, payload.TLDR)
		assert.Empty(t, payload.Decisions)
		assert.Empty(t, payload.ActionItems)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParseSummary("I could not summarize this meeting.")
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseSummary("  ")
		assert.Error(t, err)
	})
}

func TestToActionItemsSentinels(t *testing.T) {
	payload, err := ParseSummary(`{"action_items": [
		{"task": "a", "assignee": "unassigned", "due_date": "no date", "priority": "high"},
		{"task": "b", "assignee": "Hoa", "due_date": "2026-11-02", "priority": "low"},
		{"task": "c"},
		{"task": "d", "assignee": "Unassigned", "due_date": "No Date"}
	]}`)
	require.NoError(t, err)

	meetingID := uuid.New()
	items := payload.ToActionItems(meetingID)
	require.Len(t, items, 4)

	assert.Nil(t, items[0].Assignee)
	assert.Nil(t, items[0].DueDate)

	require.NotNil(t, items[1].Assignee)
	assert.Equal(t, "Hoa", *items[1].Assignee)
	require.NotNil(t, items[1].DueDate)
	assert.Equal(t, "2026-11-02", *items[1].DueDate)

	assert.Nil(t, items[2].Assignee)
	assert.Nil(t, items[2].DueDate)

	// Only the exact sentinels are dropped
	require.NotNil(t, items[3].Assignee)
	assert.Equal(t, "Unassigned", *items[3].Assignee)
	require.NotNil(t, items[3].DueDate)
	assert.Equal(t, "No Date", *items[3].DueDate)

	for i, item := range items {
		assert.Equal(t, meetingID, item.MeetingID)
		assert.Equal(t, i, item.Position)
		assert.Equal(t, entities.ActionItemStatusPending, item.Status)
	}
}
