package dto

import "github.com/idil/registrar/internal/app/models"

// CreateStudentProfileRequest creates a student user together with their profile
type CreateStudentProfileRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	StudentNo string `json:"studentNo" binding:"required,len=8,numeric"`
	ProgramID int64  `json:"programId" binding:"required,gt=0"`
	YearLevel int    `json:"yearLevel" binding:"required,gte=1,lte=8"`
}

// UpdateStudentProfileRequest represents student profile update data.
// The student number is assigned once at creation and cannot change.
type UpdateStudentProfileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	ProgramID int64  `json:"programId" binding:"required,gt=0"`
	YearLevel int    `json:"yearLevel" binding:"required,gte=1,lte=8"`
	IsActive  *bool  `json:"isActive" binding:"required"`
}

// StudentProfileResponse represents a student with their user record
type StudentProfileResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	StudentNo string `json:"studentNo"`
	ProgramID int64  `json:"programId"`
	YearLevel int    `json:"yearLevel"`

	User    *UserResponse    `json:"user,omitempty"`
	Program *ProgramResponse `json:"program,omitempty"`
}

// NewStudentProfileResponse maps a student profile model to its response form
func NewStudentProfileResponse(p *models.StudentProfile) StudentProfileResponse {
	resp := StudentProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		StudentNo: p.StudentNo,
		ProgramID: p.ProgramID,
		YearLevel: p.YearLevel,
	}
	if p.User != nil {
		user := NewUserResponse(p.User)
		resp.User = &user
	}
	if p.Program != nil {
		program := NewProgramResponse(p.Program)
		resp.Program = &program
	}
	return resp
}

// StudentFilterRequest represents student list filtering parameters
type StudentFilterRequest struct {
	ProgramID *int64  `form:"programId"`
	YearLevel *int    `form:"yearLevel"`
	Query     *string `form:"q"` // Matches student number or name
	Page      int     `form:"page,default=1" binding:"min=1"`
	PageSize  int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// StudentProfileListResponse represents a list of student profiles
type StudentProfileListResponse struct {
	Students []StudentProfileResponse `json:"students"`
	PaginationInfo
}
