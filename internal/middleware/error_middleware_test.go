package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/pkg/apperrors"
)

func respondWithError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleAPIError_KnownSentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "bad request", err: apperrors.ErrBadRequest, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeBadRequest},
		{name: "invalid student number", err: apperrors.ErrInvalidStudentNo, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeBadRequest},
		{name: "validation failed", err: apperrors.ErrValidationFailed, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidCredentials},
		{name: "expired token", err: apperrors.ErrTokenExpired, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeExpiredToken},
		{name: "revoked token", err: apperrors.ErrTokenRevoked, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidToken},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "disabled account", err: apperrors.ErrAccountDisabled, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "not enrolled", err: apperrors.ErrNotEnrolledInCourse, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "course not found", err: apperrors.ErrCourseNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "session not found", err: apperrors.ErrSessionNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "duplicate program", err: apperrors.ErrProgramAlreadyExists, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "already checked in", err: apperrors.ErrAlreadyCheckedIn, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "capacity exceeded", err: apperrors.ErrSectionCapacityExceeded, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeConflict},
		{name: "session not active", err: apperrors.ErrSessionNotActive, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := respondWithError(t, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.err.Error(), body.Error.Message)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Timestamp)
		})
	}
}

func TestHandleAPIError_WrappedSentinelKeepsClassification(t *testing.T) {
	wrapped := fmt.Errorf("enroll student: %w", apperrors.ErrAlreadyEnrolled)

	w, body := respondWithError(t, wrapped)

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, body.Error.Code)
}

func TestHandleAPIError_CustomErrorMessage(t *testing.T) {
	err := apperrors.NewResourceNotFoundError("semester 12 not found")

	w, body := respondWithError(t, err)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "semester 12 not found", body.Error.Message)
}

func TestHandleAPIError_UnknownErrorBecomes500(t *testing.T) {
	w, body := respondWithError(t, errors.New("pgx: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeInternalServer, body.Error.Code)
	// Internal detail never leaks to the client
	assert.Equal(t, "Internal server error", body.Error.Message)
}
