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

// MaterialController handles course material sharing
type MaterialController struct {
	materialService services.MaterialService
}

// NewMaterialController creates a new MaterialController
func NewMaterialController(materialService services.MaterialService) *MaterialController {
	return &MaterialController{
		materialService: materialService,
	}
}

// GetCourseMaterials retrieves a course's materials
// @Summary List course materials
// @Description Retrieves the documents shared for a course, newest first. Students must be enrolled in the course, lecturers must teach it.
// @Tags materials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.CourseMaterialListResponse} "Materials retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - No access to this course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/materials [get]
func (c *MaterialController) GetCourseMaterials(ctx *gin.Context) {
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

	materials, err := c.materialService.GetCourseMaterials(ctx, courseID, userID, role, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      materials,
		Timestamp: time.Now(),
	})
}

// GetMaterialByID retrieves a material by ID
// @Summary Get material by ID
// @Description Retrieves a specific course material with its file metadata
// @Tags materials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseMaterialResponse} "Material retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid material ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - No access to this course"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /materials/{id} [get]
func (c *MaterialController) GetMaterialByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid material ID")
		errorDetail = errorDetail.WithDetails("Material ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	material, err := c.materialService.GetMaterialByID(ctx, id, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      material,
		Timestamp: time.Now(),
	})
}

// CreateMaterial handles material upload
// @Summary Upload a course material
// @Description Shares a document with a course's students. The lecturer must teach the course.
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param title formData string true "Material title"
// @Param description formData string false "Material description"
// @Param file formData file true "Document to share"
// @Success 201 {object} dto.APIResponse{data=dto.CourseMaterialResponse} "Material created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or missing file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Lecturer does not teach this course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/materials [post]
func (c *MaterialController) CreateMaterial(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")
		errorDetail = errorDetail.WithDetails("Course ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateCourseMaterialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	req.CourseID = courseID

	// Missing files are rejected by the service with a coded error.
	fileHeader, _ := ctx.FormFile("file")

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	material, err := c.materialService.CreateMaterial(ctx, userID, role, &req, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      material,
		Timestamp: time.Now(),
	})
}

// UpdateMaterial handles material metadata updates
// @Summary Update a material
// @Description Updates a material's title and description. The attached file never changes.
// @Tags materials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Param request body dto.UpdateCourseMaterialRequest true "Updated material information"
// @Success 200 {object} dto.APIResponse{data=dto.CourseMaterialResponse} "Material updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the material owner"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /materials/{id} [put]
func (c *MaterialController) UpdateMaterial(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid material ID")
		errorDetail = errorDetail.WithDetails("Material ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateCourseMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	material, err := c.materialService.UpdateMaterial(ctx, id, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      material,
		Timestamp: time.Now(),
	})
}

// DeleteMaterial handles material deletion
// @Summary Delete a material
// @Description Removes a material and its stored file
// @Tags materials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Material deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid material ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the material owner"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /materials/{id} [delete]
func (c *MaterialController) DeleteMaterial(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid material ID")
		errorDetail = errorDetail.WithDetails("Material ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	if err := c.materialService.DeleteMaterial(ctx, id, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Material deleted successfully"},
		Timestamp: time.Now(),
	})
}
