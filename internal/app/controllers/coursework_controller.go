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
	"github.com/idil/registrar/internal/pkg/helpers"
)

// CourseworkController handles coursework item operations
type CourseworkController struct {
	courseworkService services.CourseworkService
}

// NewCourseworkController creates a new CourseworkController
func NewCourseworkController(courseworkService services.CourseworkService) *CourseworkController {
	return &CourseworkController{
		courseworkService: courseworkService,
	}
}

// GetCourseCoursework retrieves a course's coursework items
// @Summary List course coursework
// @Description Retrieves the assignments, quizzes and other graded items announced for a course, newest first. Students must be enrolled in the course, lecturers must teach it.
// @Tags coursework
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.CourseworkListResponse} "Coursework retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - No access to this course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/coursework [get]
func (c *CourseworkController) GetCourseCoursework(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")
		errorDetail = errorDetail.WithDetails("Course ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))
	page, pageSize := helpers.ParsePaginationParams(ctx)

	coursework, err := c.courseworkService.GetCourseCoursework(ctx, courseID, userID, role, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      coursework,
		Timestamp: time.Now(),
	})
}

// GetCourseworkByID retrieves a coursework item by ID
// @Summary Get coursework by ID
// @Description Retrieves a specific coursework item
// @Tags coursework
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coursework ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseworkResponse} "Coursework retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid coursework ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - No access to this course"
// @Failure 404 {object} dto.ErrorResponse "Coursework not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coursework/{id} [get]
func (c *CourseworkController) GetCourseworkByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid coursework ID")
		errorDetail = errorDetail.WithDetails("Coursework ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	coursework, err := c.courseworkService.GetCourseworkByID(ctx, id, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      coursework,
		Timestamp: time.Now(),
	})
}

// CreateCoursework handles coursework creation
// @Summary Create a coursework item
// @Description Announces a graded item for a course. The lecturer must teach the course. Max score defaults to 100 when omitted.
// @Tags coursework
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseworkRequest true "Coursework information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseworkResponse} "Coursework created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Lecturer does not teach this course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coursework [post]
func (c *CourseworkController) CreateCoursework(ctx *gin.Context) {
	var req dto.CreateCourseworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	coursework, err := c.courseworkService.CreateCoursework(ctx, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      coursework,
		Timestamp: time.Now(),
	})
}

// UpdateCoursework handles coursework updates
// @Summary Update a coursework item
// @Description Updates a coursework item's title, description, due date and max score
// @Tags coursework
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coursework ID"
// @Param request body dto.UpdateCourseworkRequest true "Updated coursework information"
// @Success 200 {object} dto.APIResponse{data=dto.CourseworkResponse} "Coursework updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the coursework owner"
// @Failure 404 {object} dto.ErrorResponse "Coursework not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coursework/{id} [put]
func (c *CourseworkController) UpdateCoursework(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid coursework ID")
		errorDetail = errorDetail.WithDetails("Coursework ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateCourseworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	coursework, err := c.courseworkService.UpdateCoursework(ctx, id, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      coursework,
		Timestamp: time.Now(),
	})
}

// DeleteCoursework handles coursework deletion
// @Summary Delete a coursework item
// @Description Removes a coursework item
// @Tags coursework
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coursework ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Coursework deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid coursework ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the coursework owner"
// @Failure 404 {object} dto.ErrorResponse "Coursework not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coursework/{id} [delete]
func (c *CourseworkController) DeleteCoursework(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid coursework ID")
		errorDetail = errorDetail.WithDetails("Coursework ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	if err := c.courseworkService.DeleteCoursework(ctx, id, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Coursework deleted successfully"},
		Timestamp: time.Now(),
	})
}
