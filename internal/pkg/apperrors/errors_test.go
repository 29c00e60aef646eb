package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *CustomError
		want string
	}{
		{
			name: "message takes precedence",
			err:  &CustomError{Err: ErrCourseNotFound, Message: "course 42 not found"},
			want: "course 42 not found",
		},
		{
			name: "falls back to the sentinel text",
			err:  &CustomError{Err: ErrCourseNotFound},
			want: "course not found",
		},
		{
			name: "empty error",
			err:  &CustomError{},
			want: "unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestCustomError_Unwrap(t *testing.T) {
	err := NewCustomError(ErrSectionCapacityExceeded, "section A is full")

	assert.True(t, errors.Is(err, ErrSectionCapacityExceeded))
	assert.False(t, errors.Is(err, ErrSectionNotFound))
}

func TestCustomError_Builders(t *testing.T) {
	details := map[string]interface{}{"sectionId": int64(7)}
	err := NewCustomError(ErrConflict, "section in use").WithCode("RES_004").WithDetails(details)

	assert.Equal(t, "RES_004", err.Code)
	assert.Equal(t, details, err.Details)
	assert.Equal(t, "section in use", err.Message)
}

func TestConstructors_WrapTheMatchingSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "not found", err: NewResourceNotFoundError("no such program"), sentinel: ErrResourceNotFound},
		{name: "conflict", err: NewConflictError("duplicate enrollment"), sentinel: ErrConflict},
		{name: "forbidden", err: NewForbiddenError("not your session"), sentinel: ErrPermissionDenied},
		{name: "bad request", err: NewBadRequestError("malformed date"), sentinel: ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.True(t, errors.Is(tt.err, tt.sentinel))

			var custom *CustomError
			require.True(t, errors.As(tt.err, &custom))
			assert.NotEmpty(t, custom.Message)
		})
	}
}

func TestIs_MatchesAnyListedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("create enrollment: %w", ErrAlreadyEnrolled)

	assert.True(t, Is(wrapped, ErrAlreadyEnrolled))
	assert.True(t, Is(wrapped, ErrSectionCapacityExceeded, ErrAlreadyEnrolled))
	assert.True(t, Is(wrapped, ErrConflict, ErrEnrollmentNotFound, ErrAlreadyEnrolled))
	assert.False(t, Is(wrapped, ErrSectionCapacityExceeded, ErrEnrollmentNotFound))
	assert.False(t, Is(wrapped, ErrConflict))
}
