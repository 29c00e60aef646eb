package dto

import (
	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/pkg/roster"
)

// CourseResponse represents basic course information
type CourseResponse struct {
	ID          int64   `json:"id"`
	ProgramID   int64   `json:"programId"`
	Code        string  `json:"code" example:"CS101"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Credits     int     `json:"credits"`

	Program *ProgramResponse `json:"program,omitempty"`
}

// NewCourseResponse maps a course model to its response form
func NewCourseResponse(c *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:          c.ID,
		ProgramID:   c.ProgramID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		Credits:     c.Credits,
	}
	if c.Program != nil {
		program := NewProgramResponse(c.Program)
		resp.Program = &program
	}
	return resp
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	ProgramID   int64   `json:"programId" binding:"required,gt=0"`
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Credits     int     `json:"credits" binding:"required,gte=1,lte=30"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Credits     int     `json:"credits" binding:"required,gte=1,lte=30"`
}

// CourseFilterRequest represents course list filtering parameters
type CourseFilterRequest struct {
	ProgramID *int64  `form:"programId"`
	Query     *string `form:"q"` // Matches code or name
	Page      int     `form:"page,default=1" binding:"min=1"`
	PageSize  int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// CourseListResponse represents a list of courses
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
	PaginationInfo
}

// CourseAssignmentResponse represents one course-to-term assignment
type CourseAssignmentResponse struct {
	ID             int64  `json:"id"`
	CourseID       int64  `json:"courseId"`
	ProgramID      int64  `json:"programId"`
	AcademicYearID int64  `json:"academicYearId"`
	SemesterID     int64  `json:"semesterId"`
	YearLevel      int    `json:"yearLevel"`
	LecturerID     *int64 `json:"lecturerId,omitempty"`

	Course   *CourseResponse `json:"course,omitempty"`
	Lecturer *UserResponse   `json:"lecturer,omitempty"`
}

// NewCourseAssignmentResponse maps an assignment model to its response form
func NewCourseAssignmentResponse(a *models.CourseAssignment) CourseAssignmentResponse {
	resp := CourseAssignmentResponse{
		ID:             a.ID,
		CourseID:       a.CourseID,
		ProgramID:      a.ProgramID,
		AcademicYearID: a.AcademicYearID,
		SemesterID:     a.SemesterID,
		YearLevel:      a.YearLevel,
		LecturerID:     a.LecturerID,
	}
	if a.Course != nil {
		course := NewCourseResponse(a.Course)
		resp.Course = &course
	}
	if a.Lecturer != nil {
		lecturer := NewUserResponse(a.Lecturer)
		resp.Lecturer = &lecturer
	}
	return resp
}

// CreateCourseAssignmentRequest represents assignment creation data
type CreateCourseAssignmentRequest struct {
	CourseID       int64  `json:"courseId" binding:"required,gt=0"`
	ProgramID      int64  `json:"programId" binding:"required,gt=0"`
	AcademicYearID int64  `json:"academicYearId" binding:"required,gt=0"`
	SemesterID     int64  `json:"semesterId" binding:"required,gt=0"`
	YearLevel      int    `json:"yearLevel" binding:"required,gte=1,lte=8"`
	LecturerID     *int64 `json:"lecturerId" binding:"omitempty,gt=0"`
}

// UpdateCourseAssignmentRequest represents assignment update data.
// Only the lecturer can change, the term key is immutable.
type UpdateCourseAssignmentRequest struct {
	LecturerID *int64 `json:"lecturerId" binding:"omitempty,gt=0"`
}

// CourseAssignmentListResponse represents a list of assignments
type CourseAssignmentListResponse struct {
	Assignments []CourseAssignmentResponse `json:"assignments"`
	Total       int                        `json:"total"`
}

// RosterEntryResponse is one student inherited into a course roster
type RosterEntryResponse struct {
	StudentID      int64    `json:"studentId"`
	StudentNo      string   `json:"studentNo"`
	FullName       string   `json:"fullName"`
	ProgramID      int64    `json:"programId"`
	AcademicYearID int64    `json:"academicYearId"`
	SemesterID     int64    `json:"semesterId"`
	SectionCodes   []string `json:"sectionCodes"`
}

// NewRosterEntryResponse maps a computed roster entry to its response form
func NewRosterEntryResponse(e roster.Entry) RosterEntryResponse {
	return RosterEntryResponse{
		StudentID:      e.StudentID,
		StudentNo:      e.StudentNo,
		FullName:       e.FullName,
		ProgramID:      e.ProgramID,
		AcademicYearID: e.AcademicYearID,
		SemesterID:     e.SemesterID,
		SectionCodes:   e.SectionCodes,
	}
}

// CourseRosterResponse represents the computed roster of a course
type CourseRosterResponse struct {
	CourseID int64                 `json:"courseId"`
	Students []RosterEntryResponse `json:"students"`
	Total    int                   `json:"total"`
}
