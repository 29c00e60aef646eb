package dto

import "github.com/idil/registrar/internal/app/models"

// SectionResponse represents basic section information
type SectionResponse struct {
	ID             int64  `json:"id"`
	ProgramID      int64  `json:"programId"`
	AcademicYearID int64  `json:"academicYearId"`
	Code           string `json:"code" example:"A"`
	YearLevel      int    `json:"yearLevel" example:"2"`
	Capacity       int    `json:"capacity"`

	Program *ProgramResponse `json:"program,omitempty"`
}

// NewSectionResponse maps a section model to its response form
func NewSectionResponse(s *models.Section) SectionResponse {
	resp := SectionResponse{
		ID:             s.ID,
		ProgramID:      s.ProgramID,
		AcademicYearID: s.AcademicYearID,
		Code:           s.Code,
		YearLevel:      s.YearLevel,
		Capacity:       s.Capacity,
	}
	if s.Program != nil {
		program := NewProgramResponse(s.Program)
		resp.Program = &program
	}
	return resp
}

// CreateSectionRequest represents section creation data
type CreateSectionRequest struct {
	ProgramID      int64  `json:"programId" binding:"required,gt=0"`
	AcademicYearID int64  `json:"academicYearId" binding:"required,gt=0"`
	Code           string `json:"code" binding:"required"`
	YearLevel      int    `json:"yearLevel" binding:"required,gte=1,lte=8"`
	Capacity       int    `json:"capacity" binding:"omitempty,gte=0"`
}

// UpdateSectionRequest represents section update data
type UpdateSectionRequest struct {
	Code      string `json:"code" binding:"required"`
	YearLevel int    `json:"yearLevel" binding:"required,gte=1,lte=8"`
	Capacity  int    `json:"capacity" binding:"omitempty,gte=0"`
}

// SectionFilterRequest represents section list filtering parameters
type SectionFilterRequest struct {
	ProgramID      *int64 `form:"programId"`
	AcademicYearID *int64 `form:"academicYearId"`
	YearLevel      *int   `form:"yearLevel"`
	Page           int    `form:"page,default=1" binding:"min=1"`
	PageSize       int    `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// SectionListResponse represents a list of sections
type SectionListResponse struct {
	Sections []SectionResponse `json:"sections"`
	PaginationInfo
}
