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

// SectionController handles program section operations
type SectionController struct {
	sectionService services.SectionService
}

// NewSectionController creates a new SectionController
func NewSectionController(sectionService services.SectionService) *SectionController {
	return &SectionController{
		sectionService: sectionService,
	}
}

// GetAllSections retrieves sections
// @Summary List sections
// @Description Retrieves sections with optional program, academic year and year level filters
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param programId query int false "Filter by program ID"
// @Param academicYearId query int false "Filter by academic year ID"
// @Param yearLevel query int false "Filter by year level"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.SectionListResponse} "Sections retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections [get]
func (c *SectionController) GetAllSections(ctx *gin.Context) {
	var filter dto.SectionFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sections, err := c.sectionService.GetAllSections(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sections,
		Timestamp: time.Now(),
	})
}

// GetSectionByID retrieves a section by ID
// @Summary Get section by ID
// @Description Retrieves a specific section with its program
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 200 {object} dto.APIResponse{data=dto.SectionResponse} "Section retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid section ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{id} [get]
func (c *SectionController) GetSectionByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid section ID")
		errorDetail = errorDetail.WithDetails("Section ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	section, err := c.sectionService.GetSectionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      section,
		Timestamp: time.Now(),
	})
}

// CreateSection handles section creation
// @Summary Create a section
// @Description Creates a section of a program for an academic year and year level
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSectionRequest true "Section information"
// @Success 201 {object} dto.APIResponse{data=dto.SectionResponse} "Section created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Program or academic year not found"
// @Failure 409 {object} dto.ErrorResponse "Section code already exists for the program and year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	var req dto.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	section, err := c.sectionService.CreateSection(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      section,
		Timestamp: time.Now(),
	})
}

// UpdateSection handles section updates
// @Summary Update a section
// @Description Updates a section's code, year level and capacity
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Param request body dto.UpdateSectionRequest true "Updated section information"
// @Success 200 {object} dto.APIResponse{data=dto.SectionResponse} "Section updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 409 {object} dto.ErrorResponse "Section code already exists for the program and year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{id} [put]
func (c *SectionController) UpdateSection(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid section ID")
		errorDetail = errorDetail.WithDetails("Section ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	section, err := c.sectionService.UpdateSection(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      section,
		Timestamp: time.Now(),
	})
}

// DeleteSection handles section deletion
// @Summary Delete a section
// @Description Deletes a section and its enrollments
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Section deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid section ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{id} [delete]
func (c *SectionController) DeleteSection(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid section ID")
		errorDetail = errorDetail.WithDetails("Section ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.sectionService.DeleteSection(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Section deleted successfully"},
		Timestamp: time.Now(),
	})
}
