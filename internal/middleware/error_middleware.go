package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/logger"
)

// HandleAPIError maps a service error onto the HTTP response. Known sentinels
// keep their own message text, anything unrecognized becomes a logged 500.
func HandleAPIError(c *gin.Context, err error) {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		message = "Internal server error"
	}

	detail := dto.NewErrorDetail(code, message)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		detail = detail.WithDetails(custom.Details)
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, dto.ErrorCode) {
	switch {
	case apperrors.Is(err, apperrors.ErrBadRequest, apperrors.ErrInvalidStudentNo):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.ErrorCodeTokenNotFound

	case apperrors.Is(err, apperrors.ErrPermissionDenied,
		apperrors.ErrAccountDisabled,
		apperrors.ErrNotALecturer,
		apperrors.ErrNotEnrolledInCourse):
		return http.StatusForbidden, dto.ErrorCodeForbidden

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrProgramNotFound,
		apperrors.ErrAcademicYearNotFound,
		apperrors.ErrSemesterNotFound,
		apperrors.ErrSectionNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrAssignmentNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrEnrollmentNotFound,
		apperrors.ErrSessionNotFound,
		apperrors.ErrRecordNotFound,
		apperrors.ErrMaterialNotFound,
		apperrors.ErrCourseworkNotFound,
		apperrors.ErrPostNotFound,
		apperrors.ErrFileNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound

	case apperrors.Is(err, apperrors.ErrResourceAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrProgramAlreadyExists,
		apperrors.ErrAcademicYearAlreadyExists,
		apperrors.ErrSemesterAlreadyExists,
		apperrors.ErrSectionAlreadyExists,
		apperrors.ErrCourseCodeAlreadyExists,
		apperrors.ErrAssignmentAlreadyExists,
		apperrors.ErrStudentNoAlreadyExists,
		apperrors.ErrAlreadyEnrolled,
		apperrors.ErrAlreadyCheckedIn):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrProgramHasRelations,
		apperrors.ErrCourseHasRelations,
		apperrors.ErrEnrollmentNotActive,
		apperrors.ErrSectionCapacityExceeded,
		apperrors.ErrSessionNotActive):
		return http.StatusConflict, dto.ErrorCodeConflict

	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer
	}
}
