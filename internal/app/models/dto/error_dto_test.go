package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bindingValidator mirrors how gin validates request DTOs.
func bindingValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func TestHandleValidationError_FieldErrors(t *testing.T) {
	err := bindingValidator().Struct(LoginRequest{})
	require.Error(t, err)

	detail := HandleValidationError(err)

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Validation failed", detail.Message)

	fieldErrs, ok := detail.Details.([]ErrorDetail)
	require.True(t, ok)
	require.Len(t, fieldErrs, 2)

	assert.Equal(t, "Email", fieldErrs[0].Field)
	assert.Equal(t, "Email is required", fieldErrs[0].Message)
	assert.Equal(t, "Password", fieldErrs[1].Field)
	assert.Equal(t, "Password is required", fieldErrs[1].Message)
}

func TestHandleValidationError_Messages(t *testing.T) {
	v := bindingValidator()

	tests := []struct {
		name    string
		value   interface{}
		field   string
		message string
	}{
		{
			name:    "email format",
			value:   LoginRequest{Email: "not-an-email", Password: "x"},
			field:   "Email",
			message: "Email must be a valid email address",
		},
		{
			name:    "oneof lists the choices",
			value:   UpdateEnrollmentStatusRequest{Status: "paused"},
			field:   "Status",
			message: "Status must be one of: active dropped completed",
		},
		{
			name:    "datetime names the layout",
			value:   CreateAttendanceSessionRequest{CourseID: 1, Title: "Week 3", Date: "10-03-2026", StartTime: "09:00", EndTime: "11:00"},
			field:   "Date",
			message: "Date must be formatted as 2006-01-02",
		},
		{
			name:    "gt names the bound",
			value:   CreateEnrollmentRequest{StudentID: -1, SectionID: 2, SemesterID: 3},
			field:   "StudentID",
			message: "StudentID must be greater than 0",
		},
		{
			name:    "min names the bound",
			value:   CreateStudentProfileRequest{Email: "a@b.edu", Password: "short", FirstName: "Ada", LastName: "Lovelace", StudentNo: "20260001", ProgramID: 1, YearLevel: 1},
			field:   "Password",
			message: "Password must be at least 8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.value)
			require.Error(t, err)

			detail := HandleValidationError(err)
			fieldErrs, ok := detail.Details.([]ErrorDetail)
			require.True(t, ok)
			require.Len(t, fieldErrs, 1)

			assert.Equal(t, tt.field, fieldErrs[0].Field)
			assert.Equal(t, tt.message, fieldErrs[0].Message)
		})
	}
}

func TestHandleValidationError_NonValidatorError(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))

	assert.Equal(t, ErrorCodeBadRequest, detail.Code)
	assert.Equal(t, "Invalid request format", detail.Message)
	assert.Equal(t, "unexpected EOF", detail.Details)
}

func TestValidationErrors(t *testing.T) {
	errs := NewValidationErrors()
	assert.False(t, errs.HasErrors())

	errs.AddError("code", "code is required").AddError("name", "name is required")
	assert.True(t, errs.HasErrors())
	require.Len(t, errs.Errors, 2)
	assert.Equal(t, ErrorCodeValidationFailed, errs.Errors[0].Code)
	assert.Equal(t, "code", errs.Errors[0].Field)
}

func TestNewErrorDetail_Builders(t *testing.T) {
	detail := NewErrorDetail(ErrorCodeForbidden, "not the session owner").
		WithField("sessionId").
		WithSeverity(ErrorSeverityWarning).
		WithDebugInfo("lecturer 3 requested session 9")

	assert.Equal(t, ErrorCodeForbidden, detail.Code)
	assert.Equal(t, "sessionId", detail.Field)
	assert.Equal(t, ErrorSeverityWarning, detail.Severity)
	assert.Equal(t, "lecturer 3 requested session 9", detail.DebugInfo)

	resp := NewErrorResponse(detail)
	assert.False(t, resp.Success)
	assert.Same(t, detail, resp.Error)
	assert.False(t, resp.Timestamp.IsZero())
}
