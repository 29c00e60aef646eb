package dto

import "github.com/idil/registrar/internal/app/models"

// ProgramResponse represents basic program information
type ProgramResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	DurationYears int    `json:"durationYears"`
}

// NewProgramResponse maps a program model to its response form
func NewProgramResponse(p *models.Program) ProgramResponse {
	return ProgramResponse{
		ID:            p.ID,
		Name:          p.Name,
		Code:          p.Code,
		DurationYears: p.DurationYears,
	}
}

// CreateProgramRequest represents program creation data
type CreateProgramRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	DurationYears int    `json:"durationYears" binding:"required,gte=1,lte=8"`
}

// UpdateProgramRequest represents program update data
type UpdateProgramRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	DurationYears int    `json:"durationYears" binding:"required,gte=1,lte=8"`
}

// ProgramListResponse represents a list of programs
type ProgramListResponse struct {
	Programs []ProgramResponse `json:"programs"`
	PaginationInfo
}
