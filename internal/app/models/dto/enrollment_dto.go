package dto

import (
	"time"

	"github.com/idil/registrar/internal/app/models"
)

// EnrollmentResponse represents one student-section membership
type EnrollmentResponse struct {
	ID             int64     `json:"id"`
	StudentID      int64     `json:"studentId"`
	SectionID      int64     `json:"sectionId"`
	AcademicYearID int64     `json:"academicYearId"`
	SemesterID     int64     `json:"semesterId"`
	Status         string    `json:"status" example:"active"`
	EnrolledAt     time.Time `json:"enrolledAt"`

	Student *StudentProfileResponse `json:"student,omitempty"`
	Section *SectionResponse        `json:"section,omitempty"`
}

// NewEnrollmentResponse maps an enrollment model to its response form
func NewEnrollmentResponse(e *models.SectionEnrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:             e.ID,
		StudentID:      e.StudentID,
		SectionID:      e.SectionID,
		AcademicYearID: e.AcademicYearID,
		SemesterID:     e.SemesterID,
		Status:         string(e.Status),
		EnrolledAt:     e.EnrolledAt,
	}
	if e.Student != nil {
		student := NewStudentProfileResponse(e.Student)
		resp.Student = &student
	}
	if e.Section != nil {
		section := NewSectionResponse(e.Section)
		resp.Section = &section
	}
	return resp
}

// CreateEnrollmentRequest enrolls a student into a section for a term
type CreateEnrollmentRequest struct {
	StudentID  int64 `json:"studentId" binding:"required,gt=0"`
	SectionID  int64 `json:"sectionId" binding:"required,gt=0"`
	SemesterID int64 `json:"semesterId" binding:"required,gt=0"`
}

// UpdateEnrollmentStatusRequest changes an enrollment's status
type UpdateEnrollmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active dropped completed"`
}

// EnrollmentFilterRequest represents enrollment list filtering parameters
type EnrollmentFilterRequest struct {
	StudentID  *int64  `form:"studentId"`
	SectionID  *int64  `form:"sectionId"`
	SemesterID *int64  `form:"semesterId"`
	Status     *string `form:"status" binding:"omitempty,oneof=active dropped completed"`
	Page       int     `form:"page,default=1" binding:"min=1"`
	PageSize   int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// EnrollmentListResponse represents a list of enrollments
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	PaginationInfo
}
