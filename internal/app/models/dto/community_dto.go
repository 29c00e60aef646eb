package dto

import (
	"time"

	"github.com/idil/registrar/internal/app/models"
)

// CommunityPostResponse represents a community board post
type CommunityPostResponse struct {
	ID        int64         `json:"id"`
	AuthorID  int64         `json:"authorId"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Author    *UserResponse `json:"author,omitempty"`
}

// NewCommunityPostResponse maps a post model to its response form
func NewCommunityPostResponse(p *models.CommunityPost) CommunityPostResponse {
	resp := CommunityPostResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Author != nil {
		author := NewUserResponse(p.Author)
		resp.Author = &author
	}
	return resp
}

// CreateCommunityPostRequest represents post creation data
type CreateCommunityPostRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// UpdateCommunityPostRequest represents post update data
type UpdateCommunityPostRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// CommunityPostFilterRequest represents post filter parameters
type CommunityPostFilterRequest struct {
	AuthorID *int64  `form:"authorId"`
	Query    *string `form:"q"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// CommunityPostListResponse represents a list of posts
type CommunityPostListResponse struct {
	Posts []CommunityPostResponse `json:"posts"`
	PaginationInfo
}
