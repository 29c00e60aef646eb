package dto

import (
	"time"

	"github.com/idil/registrar/internal/app/models"
)

// CourseMaterialResponse represents one shared course document
type CourseMaterialResponse struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"courseId"`
	LecturerID  int64     `json:"lecturerId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	File *FileResponse `json:"file,omitempty"`
}

// NewCourseMaterialResponse maps a material model to its response form
func NewCourseMaterialResponse(m *models.CourseMaterial) CourseMaterialResponse {
	resp := CourseMaterialResponse{
		ID:          m.ID,
		CourseID:    m.CourseID,
		LecturerID:  m.LecturerID,
		Title:       m.Title,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
	if m.File != nil {
		file := NewFileResponse(m.File)
		resp.File = &file
	}
	return resp
}

// CreateCourseMaterialRequest represents material creation data.
// Submitted as multipart form data together with the file. The course ID
// comes from the route, not the form.
type CreateCourseMaterialRequest struct {
	CourseID    int64   `form:"-"`
	Title       string  `form:"title" binding:"required"`
	Description *string `form:"description"`
}

// UpdateCourseMaterialRequest represents material update data
type UpdateCourseMaterialRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

// CourseMaterialListResponse represents a list of course materials
type CourseMaterialListResponse struct {
	Materials []CourseMaterialResponse `json:"materials"`
	PaginationInfo
}
