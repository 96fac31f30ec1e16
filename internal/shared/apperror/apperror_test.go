package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"go-hrm/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

type personal struct {
	FirstName string `json:"first_name" validate:"required"`
}

type createRequest struct {
	UserEmail string   `json:"user_email" validate:"required,email"`
	Personal  personal `json:"personal"`
}

func TestMapValidationError(t *testing.T) {
	v := apperror.NewValidator()

	tests := []struct {
		name    string
		req     createRequest
		message string
	}{
		{
			name:    "missing nested field uses json name",
			req:     createRequest{UserEmail: "a@b.com"},
			message: "First Name is required",
		},
		{
			name:    "malformed email",
			req:     createRequest{UserEmail: "not-an-email", Personal: personal{FirstName: "A"}},
			message: "User Email is invalid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperror.MapValidationError(v.Struct(tt.req))

			assert.EqualError(t, err, tt.message)
			assert.True(t, apperror.IsValidation(err))
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		})
	}
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", apperror.RequiredField("Last Name"))

	assert.ErrorIs(t, wrapped, apperror.ErrInvalidInput)
	assert.False(t, errors.Is(wrapped, apperror.ErrNotFound))
	assert.True(t, apperror.IsValidation(wrapped))
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := apperror.Wrap(cause, apperror.CodeInternalError, "failed", 500)

	assert.EqualError(t, err, "failed: boom")
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "failed", 500))
}
