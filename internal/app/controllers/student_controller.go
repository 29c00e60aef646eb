package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/services"
	"github.com/idil/registrar/internal/middleware"
)

// StudentController handles student profile administration and the
// authenticated student's own views
type StudentController struct {
	studentService    services.StudentService
	attendanceService services.AttendanceService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, attendanceService services.AttendanceService) *StudentController {
	return &StudentController{
		studentService:    studentService,
		attendanceService: attendanceService,
	}
}

// GetAllStudents retrieves student profiles
// @Summary List students
// @Description Retrieves student profiles with optional program, year level and name or number search filters
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param programId query int false "Filter by program ID"
// @Param yearLevel query int false "Filter by year level"
// @Param q query string false "Search by student number or name"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileListResponse} "Students retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student-profiles [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	var filter dto.StudentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	students, err := c.studentService.GetAllStudents(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// GetStudentByID retrieves a student profile by ID
// @Summary Get student by ID
// @Description Retrieves a specific student profile with its user account and program
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student profile ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Student retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student-profiles/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// CreateStudent handles student registration
// @Summary Create a student
// @Description Creates a user account with the STUDENT role and its student profile in one step
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentProfileRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or malformed student number"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Email or student number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student-profiles [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// UpdateStudent handles student profile updates
// @Summary Update a student
// @Description Updates a student's name, program, year level or account status
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student profile ID"
// @Param request body dto.UpdateStudentProfileRequest true "Updated student information"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Student or program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student-profiles/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// DeleteStudent handles student deletion
// @Summary Delete a student
// @Description Deletes a student profile along with its user account, enrollments and attendance records
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student profile ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student-profiles/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student deleted successfully"},
		Timestamp: time.Now(),
	})
}

// GetMyDashboard retrieves the authenticated student's dashboard
// @Summary Get my dashboard
// @Description Retrieves the authenticated student's profile, active enrollments, current courses and attendance summary
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse} "Dashboard retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Student role required"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/me/dashboard [get]
func (c *StudentController) GetMyDashboard(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	dashboard, err := c.studentService.GetDashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dashboard,
		Timestamp: time.Now(),
	})
}

// GetMySessions retrieves the authenticated student's sessions for a day
// @Summary List my attendance sessions
// @Description Retrieves the attendance sessions scheduled for the authenticated student's courses on a day, today by default, with the student's own status where recorded
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day to list in YYYY-MM-DD format (default today)"
// @Success 200 {object} dto.APIResponse{data=dto.StudentSessionListResponse} "Sessions retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Student role required"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/me/sessions [get]
func (c *StudentController) GetMySessions(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var date *string
	if raw := ctx.Query("date"); raw != "" {
		date = &raw
	}

	sessions, err := c.attendanceService.GetStudentSessions(ctx, userID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}
