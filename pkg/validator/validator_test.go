package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shareRequest struct {
	MeetingID     string `json:"meeting_id" validate:"required,uuid"`
	ExpiresInDays *int   `json:"expires_in_days,omitempty" validate:"omitempty,min=1"`
}

type listRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=created error"`
}

func TestValidateReportsJSONNames(t *testing.T) {
	zero := 0
	err := New().Validate(&shareRequest{MeetingID: "nope", ExpiresInDays: &zero})
	require.Error(t, err)

	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "meeting_id", fieldErrs[0].Field())
	assert.Equal(t, "uuid", fieldErrs[0].Tag())
	assert.Equal(t, "expires_in_days", fieldErrs[1].Field())
}

func TestValidateQueryNames(t *testing.T) {
	err := New().Validate(&listRequest{Status: "archived"})

	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "status", fieldErrs[0].Field())

	assert.NoError(t, New().Validate(&listRequest{}))
}
