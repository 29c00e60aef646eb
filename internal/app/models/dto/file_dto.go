package dto

import (
	"time"

	"github.com/idil/registrar/internal/app/models"
)

// FileResponse represents an uploaded file
type FileResponse struct {
	ID        int64     `json:"id" example:"123"`
	FileName  string    `json:"fileName" example:"lecture_slides.pdf"`
	FileURL   string    `json:"fileUrl" example:"uploads/9a1f.pdf"`
	FileSize  int64     `json:"fileSize" example:"1048576"`
	FileType  string    `json:"fileType" example:"application/pdf"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewFileResponse maps a file model to its response form
func NewFileResponse(f *models.File) FileResponse {
	return FileResponse{
		ID:        f.ID,
		FileName:  f.FileName,
		FileURL:   f.FileURL,
		FileSize:  f.FileSize,
		FileType:  f.FileType,
		CreatedAt: f.CreatedAt,
	}
}
