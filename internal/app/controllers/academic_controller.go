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

// AcademicController handles academic year and semester operations
type AcademicController struct {
	academicService services.AcademicService
}

// NewAcademicController creates a new AcademicController
func NewAcademicController(academicService services.AcademicService) *AcademicController {
	return &AcademicController{
		academicService: academicService,
	}
}

// GetAllAcademicYears retrieves all academic years
// @Summary List academic years
// @Description Retrieves all academic years, newest first
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AcademicYearListResponse} "Academic years retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic-years [get]
func (c *AcademicController) GetAllAcademicYears(ctx *gin.Context) {
	years, err := c.academicService.GetAllAcademicYears(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      years,
		Timestamp: time.Now(),
	})
}

// GetAcademicYearByID retrieves an academic year by ID
// @Summary Get academic year by ID
// @Description Retrieves a specific academic year by its ID
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=dto.AcademicYearResponse} "Academic year retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid academic year ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic-years/{id} [get]
func (c *AcademicController) GetAcademicYearByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academic year ID")
		errorDetail = errorDetail.WithDetails("Academic year ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	year, err := c.academicService.GetAcademicYearByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      year,
		Timestamp: time.Now(),
	})
}

// CreateAcademicYear handles academic year creation
// @Summary Create an academic year
// @Description Creates a new academic year, optionally marking it as current
// @Tags academic-years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAcademicYearRequest true "Academic year information"
// @Success 201 {object} dto.APIResponse{data=dto.AcademicYearResponse} "Academic year created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 409 {object} dto.ErrorResponse "Academic year already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic-years [post]
func (c *AcademicController) CreateAcademicYear(ctx *gin.Context) {
	var req dto.CreateAcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	year, err := c.academicService.CreateAcademicYear(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      year,
		Timestamp: time.Now(),
	})
}

// UpdateAcademicYear handles academic year updates
// @Summary Update an academic year
// @Description Updates an existing academic year
// @Tags academic-years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Param request body dto.UpdateAcademicYearRequest true "Updated academic year information"
// @Success 200 {object} dto.APIResponse{data=dto.AcademicYearResponse} "Academic year updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 409 {object} dto.ErrorResponse "Academic year already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic-years/{id} [put]
func (c *AcademicController) UpdateAcademicYear(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academic year ID")
		errorDetail = errorDetail.WithDetails("Academic year ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateAcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	year, err := c.academicService.UpdateAcademicYear(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      year,
		Timestamp: time.Now(),
	})
}

// DeleteAcademicYear handles academic year deletion
// @Summary Delete an academic year
// @Description Deletes an academic year and its semesters
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Academic year deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid academic year ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic-years/{id} [delete]
func (c *AcademicController) DeleteAcademicYear(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academic year ID")
		errorDetail = errorDetail.WithDetails("Academic year ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.academicService.DeleteAcademicYear(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Academic year deleted successfully"},
		Timestamp: time.Now(),
	})
}

// GetYearSemesters retrieves the semesters of an academic year
// @Summary List semesters of an academic year
// @Description Retrieves the semesters belonging to the given academic year
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=dto.SemesterListResponse} "Semesters retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid academic year ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic-years/{id}/semesters [get]
func (c *AcademicController) GetYearSemesters(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academic year ID")
		errorDetail = errorDetail.WithDetails("Academic year ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semesters, err := c.academicService.GetSemesters(ctx, &id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      semesters,
		Timestamp: time.Now(),
	})
}

// GetAllSemesters retrieves semesters
// @Summary List semesters
// @Description Retrieves semesters, optionally filtered by academic year
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param academicYearId query int false "Filter by academic year ID"
// @Success 200 {object} dto.APIResponse{data=dto.SemesterListResponse} "Semesters retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid academic year ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters [get]
func (c *AcademicController) GetAllSemesters(ctx *gin.Context) {
	var academicYearID *int64
	if raw := ctx.Query("academicYearId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid academic year ID")
			errorDetail = errorDetail.WithDetails("academicYearId must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		academicYearID = &id
	}

	semesters, err := c.academicService.GetSemesters(ctx, academicYearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      semesters,
		Timestamp: time.Now(),
	})
}

// GetSemesterByID retrieves a semester by ID
// @Summary Get semester by ID
// @Description Retrieves a specific semester with its academic year
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=dto.SemesterResponse} "Semester retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid semester ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters/{id} [get]
func (c *AcademicController) GetSemesterByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester ID")
		errorDetail = errorDetail.WithDetails("Semester ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semester, err := c.academicService.GetSemesterByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      semester,
		Timestamp: time.Now(),
	})
}

// CreateSemester handles semester creation
// @Summary Create a semester
// @Description Creates a semester term within an academic year
// @Tags semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSemesterRequest true "Semester information"
// @Success 201 {object} dto.APIResponse{data=dto.SemesterResponse} "Semester created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 409 {object} dto.ErrorResponse "Semester already exists for this academic year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters [post]
func (c *AcademicController) CreateSemester(ctx *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semester, err := c.academicService.CreateSemester(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      semester,
		Timestamp: time.Now(),
	})
}

// UpdateSemester handles semester updates
// @Summary Update a semester
// @Description Updates a semester's term and dates
// @Tags semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID"
// @Param request body dto.UpdateSemesterRequest true "Updated semester information"
// @Success 200 {object} dto.APIResponse{data=dto.SemesterResponse} "Semester updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Failure 409 {object} dto.ErrorResponse "Semester already exists for this academic year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters/{id} [put]
func (c *AcademicController) UpdateSemester(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester ID")
		errorDetail = errorDetail.WithDetails("Semester ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semester, err := c.academicService.UpdateSemester(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      semester,
		Timestamp: time.Now(),
	})
}

// DeleteSemester handles semester deletion
// @Summary Delete a semester
// @Description Deletes a semester
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Semester deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid semester ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters/{id} [delete]
func (c *AcademicController) DeleteSemester(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester ID")
		errorDetail = errorDetail.WithDetails("Semester ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.academicService.DeleteSemester(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Semester deleted successfully"},
		Timestamp: time.Now(),
	})
}
