package dto

import (
	"time"

	"github.com/idil/registrar/internal/app/models"
)

// AcademicYearResponse represents one academic year
type AcademicYearResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" example:"2025-2026"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsCurrent bool      `json:"isCurrent"`
}

// NewAcademicYearResponse maps an academic year model to its response form
func NewAcademicYearResponse(y *models.AcademicYear) AcademicYearResponse {
	return AcademicYearResponse{
		ID:        y.ID,
		Name:      y.Name,
		StartDate: y.StartDate,
		EndDate:   y.EndDate,
		IsCurrent: y.IsCurrent,
	}
}

// CreateAcademicYearRequest represents academic year creation data
type CreateAcademicYearRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	IsCurrent bool      `json:"isCurrent"`
}

// UpdateAcademicYearRequest represents academic year update data
type UpdateAcademicYearRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	IsCurrent bool      `json:"isCurrent"`
}

// AcademicYearListResponse represents a list of academic years
type AcademicYearListResponse struct {
	AcademicYears []AcademicYearResponse `json:"academicYears"`
	Total         int                    `json:"total"`
}

// SemesterResponse represents one semester
type SemesterResponse struct {
	ID             int64     `json:"id"`
	AcademicYearID int64     `json:"academicYearId"`
	Term           string    `json:"term" example:"FALL"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`

	AcademicYear *AcademicYearResponse `json:"academicYear,omitempty"`
}

// NewSemesterResponse maps a semester model to its response form
func NewSemesterResponse(s *models.Semester) SemesterResponse {
	resp := SemesterResponse{
		ID:             s.ID,
		AcademicYearID: s.AcademicYearID,
		Term:           string(s.Term),
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
	}
	if s.AcademicYear != nil {
		year := NewAcademicYearResponse(s.AcademicYear)
		resp.AcademicYear = &year
	}
	return resp
}

// CreateSemesterRequest represents semester creation data
type CreateSemesterRequest struct {
	AcademicYearID int64     `json:"academicYearId" binding:"required,gt=0"`
	Term           string    `json:"term" binding:"required,oneof=FALL SPRING SUMMER"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	EndDate        time.Time `json:"endDate" binding:"required"`
}

// UpdateSemesterRequest represents semester update data
type UpdateSemesterRequest struct {
	Term      string    `json:"term" binding:"required,oneof=FALL SPRING SUMMER"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// SemesterListResponse represents a list of semesters
type SemesterListResponse struct {
	Semesters []SemesterResponse `json:"semesters"`
	Total     int                `json:"total"`
}
