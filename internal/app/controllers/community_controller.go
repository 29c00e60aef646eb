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

// CommunityController handles community post operations
type CommunityController struct {
	communityService services.CommunityService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService) *CommunityController {
	return &CommunityController{
		communityService: communityService,
	}
}

// GetAllPosts retrieves community posts
// @Summary List community posts
// @Description Retrieves community posts visible to all authenticated users, newest first, with optional author filter and text search
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param authorId query int false "Filter by author user ID"
// @Param q query string false "Search in title and content"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.CommunityPostListResponse} "Posts retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /community-posts [get]
func (c *CommunityController) GetAllPosts(ctx *gin.Context) {
	var filter dto.CommunityPostFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	posts, err := c.communityService.GetAllPosts(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      posts,
		Timestamp: time.Now(),
	})
}

// GetPostByID retrieves a community post by ID
// @Summary Get community post by ID
// @Description Retrieves a specific community post with its author
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.CommunityPostResponse} "Post retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /community-posts/{id} [get]
func (c *CommunityController) GetPostByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		errorDetail = errorDetail.WithDetails("Post ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.communityService.GetPostByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      post,
		Timestamp: time.Now(),
	})
}

// CreatePost handles community post creation
// @Summary Create a community post
// @Description Publishes a post under the authenticated user's name
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCommunityPostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=dto.CommunityPostResponse} "Post created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /community-posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	var req dto.CreateCommunityPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	authorID := ctx.GetInt64("userID")

	post, err := c.communityService.CreatePost(ctx, authorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      post,
		Timestamp: time.Now(),
	})
}

// UpdatePost handles community post updates
// @Summary Update a community post
// @Description Updates a post's title and content. Only the author or an admin may edit.
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.UpdateCommunityPostRequest true "Updated post content"
// @Success 200 {object} dto.APIResponse{data=dto.CommunityPostResponse} "Post updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the post author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /community-posts/{id} [put]
func (c *CommunityController) UpdatePost(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		errorDetail = errorDetail.WithDetails("Post ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateCommunityPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	post, err := c.communityService.UpdatePost(ctx, id, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      post,
		Timestamp: time.Now(),
	})
}

// DeletePost handles community post deletion
// @Summary Delete a community post
// @Description Removes a post. Only the author or an admin may delete.
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Post deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the post author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /community-posts/{id} [delete]
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		errorDetail = errorDetail.WithDetails("Post ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID := ctx.GetInt64("userID")
	role := models.Role(ctx.GetString("role"))

	if err := c.communityService.DeletePost(ctx, id, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Post deleted successfully"},
		Timestamp: time.Now(),
	})
}
