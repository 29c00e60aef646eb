package dto

import (
	"time"

	"github.com/idil/registrar/internal/app/models"
)

// CourseworkResponse represents one graded assignment
type CourseworkResponse struct {
	ID          int64      `json:"id"`
	CourseID    int64      `json:"courseId"`
	LecturerID  int64      `json:"lecturerId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	MaxScore    int        `json:"maxScore"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewCourseworkResponse maps a coursework model to its response form
func NewCourseworkResponse(w *models.Coursework) CourseworkResponse {
	return CourseworkResponse{
		ID:          w.ID,
		CourseID:    w.CourseID,
		LecturerID:  w.LecturerID,
		Title:       w.Title,
		Description: w.Description,
		DueDate:     w.DueDate,
		MaxScore:    w.MaxScore,
		CreatedAt:   w.CreatedAt,
	}
}

// CreateCourseworkRequest represents coursework creation data
type CreateCourseworkRequest struct {
	CourseID    int64      `json:"courseId" binding:"required,gt=0"`
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	MaxScore    int        `json:"maxScore" binding:"omitempty,gte=1,lte=1000"`
}

// UpdateCourseworkRequest represents coursework update data
type UpdateCourseworkRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	MaxScore    int        `json:"maxScore" binding:"omitempty,gte=1,lte=1000"`
}

// CourseworkListResponse represents a list of coursework
type CourseworkListResponse struct {
	Coursework []CourseworkResponse `json:"coursework"`
	PaginationInfo
}
