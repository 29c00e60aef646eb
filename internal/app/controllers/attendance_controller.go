package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/services"
	"github.com/idil/registrar/internal/middleware"
)

// AttendanceController handles attendance session lifecycle, QR rendering,
// record overrides and student check-in
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// GetMySessions retrieves the authenticated lecturer's sessions
// @Summary List my attendance sessions
// @Description Retrieves the attendance sessions created by the authenticated lecturer with optional course, date and status filters
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Filter by course ID"
// @Param date query string false "Filter by date in YYYY-MM-DD format"
// @Param status query string false "Filter by derived status" Enums(upcoming, active, completed)
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceSessionListResponse} "Sessions retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Lecturer role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance-sessions [get]
func (c *AttendanceController) GetMySessions(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var filter dto.AttendanceSessionFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sessions, err := c.attendanceService.GetLecturerSessions(ctx, userID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}

// GetSessionByID retrieves an attendance session by ID
// @Summary Get attendance session by ID
// @Description Retrieves a specific attendance session with its course and derived status
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceSessionResponse} "Session retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the session owner"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance-sessions/{id} [get]
func (c *AttendanceController) GetSessionByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	session, err := c.attendanceService.GetSessionByID(ctx, id, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}

// CreateSession handles attendance session creation
// @Summary Create an attendance session
// @Description Opens an attendance session for a taught course on a day with a start and end time. A fresh QR token is generated for check-in.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAttendanceSessionRequest true "Session information"
// @Success 201 {object} dto.APIResponse{data=dto.AttendanceSessionResponse} "Session created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or end time not after start time"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Lecturer does not teach this course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance-sessions [post]
func (c *AttendanceController) CreateSession(ctx *gin.Context) {
	var req dto.CreateAttendanceSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	session, err := c.attendanceService.CreateSession(ctx, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}

// UpdateSession handles attendance session updates
// @Summary Update an attendance session
// @Description Updates a session's title, date and time window. The QR token is unchanged.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body dto.UpdateAttendanceSessionRequest true "Updated session information"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceSessionResponse} "Session updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or end time not after start time"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the session owner"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance-sessions/{id} [put]
func (c *AttendanceController) UpdateSession(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateAttendanceSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	session, err := c.attendanceService.UpdateSession(ctx, id, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}

// DeleteSession handles attendance session deletion
// @Summary Delete an attendance session
// @Description Deletes a session along with its attendance records
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Session deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the session owner"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance-sessions/{id} [delete]
func (c *AttendanceController) DeleteSession(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	if err := c.attendanceService.DeleteSession(ctx, id, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Session deleted successfully"},
		Timestamp: time.Now(),
	})
}

// GetSessionQR renders a session's check-in QR code
// @Summary Get session QR code
// @Description Renders the session's check-in QR code as a PNG image for projection in class
// @Tags attendance
// @Produce png
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {file} byte "PNG image"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the session owner"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance-sessions/{id}/qr [get]
func (c *AttendanceController) GetSessionQR(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	png, err := c.attendanceService.GetSessionQR(ctx, id, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

// GetSessionRecords retrieves a session's attendance records
// @Summary List session attendance records
// @Description Retrieves the attendance records captured for a session, newest first
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceRecordListResponse} "Records retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the session owner"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance-sessions/{id}/records [get]
func (c *AttendanceController) GetSessionRecords(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	records, err := c.attendanceService.GetSessionRecords(ctx, id, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      records,
		Timestamp: time.Now(),
	})
}

// MarkAttendance handles manual attendance overrides
// @Summary Override a student's attendance
// @Description Sets a student's attendance status for a session by hand, creating the record when the student never checked in. Overridden records are marked as manual.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param studentId path int true "Student profile ID"
// @Param request body dto.OverrideAttendanceRequest true "Status and optional note"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceRecordResponse} "Record updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the session owner or student not enrolled"
// @Failure 404 {object} dto.ErrorResponse "Session or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance-sessions/{id}/records/{studentId} [put]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	sessionID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	studentID, err := strconv.ParseInt(ctx.Param("studentId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.OverrideAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	record, err := c.attendanceService.MarkAttendance(ctx, sessionID, studentID, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      record,
		Timestamp: time.Now(),
	})
}

// Checkin handles student QR check-in
// @Summary Check in to a session
// @Description Records the authenticated student's presence for the session behind the scanned QR token. Check-ins are accepted only while the session is active and are classified as present or late by the configured threshold.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckinRequest true "Scanned QR token"
// @Success 200 {object} dto.APIResponse{data=dto.CheckinResponse} "Check-in recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Student not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse "Session or student profile not found"
// @Failure 409 {object} dto.ErrorResponse "Already checked in or session not active"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/checkin [post]
func (c *AttendanceController) Checkin(ctx *gin.Context) {
	var req dto.CheckinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")

	result, err := c.attendanceService.Checkin(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
