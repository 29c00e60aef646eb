package dto

import (
	"time"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/pkg/schedule"
)

// AttendanceSessionResponse represents one attendance session with its
// derived status
type AttendanceSessionResponse struct {
	ID         int64     `json:"id"`
	CourseID   int64     `json:"courseId"`
	LecturerID int64     `json:"lecturerId"`
	Title      string    `json:"title"`
	Date       string    `json:"date" example:"2026-03-10"`
	StartTime  string    `json:"startTime" example:"09:00:00"`
	EndTime    string    `json:"endTime" example:"11:00:00"`
	Status     string    `json:"status" example:"active"` // derived, never stored
	CreatedAt  time.Time `json:"createdAt"`

	Course *CourseResponse `json:"course,omitempty"`
}

// NewAttendanceSessionResponse maps a session model plus its derived status
// to the response form
func NewAttendanceSessionResponse(s *models.AttendanceSession, status schedule.Status) AttendanceSessionResponse {
	resp := AttendanceSessionResponse{
		ID:         s.ID,
		CourseID:   s.CourseID,
		LecturerID: s.LecturerID,
		Title:      s.Title,
		Date:       s.Date,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Status:     string(status),
		CreatedAt:  s.CreatedAt,
	}
	if s.Course != nil {
		course := NewCourseResponse(s.Course)
		resp.Course = &course
	}
	return resp
}

// CreateAttendanceSessionRequest represents session creation data
type CreateAttendanceSessionRequest struct {
	CourseID  int64  `json:"courseId" binding:"required,gt=0"`
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// UpdateAttendanceSessionRequest represents session update data
type UpdateAttendanceSessionRequest struct {
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// AttendanceSessionFilterRequest represents session list filtering parameters
type AttendanceSessionFilterRequest struct {
	CourseID *int64  `form:"courseId"`
	Date     *string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Status   *string `form:"status" binding:"omitempty,oneof=upcoming active completed"` // derived, filtered after load
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// AttendanceSessionListResponse represents a list of sessions
type AttendanceSessionListResponse struct {
	Sessions []AttendanceSessionResponse `json:"sessions"`
	PaginationInfo
}

// AttendanceRecordResponse represents one student's attendance outcome
type AttendanceRecordResponse struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"sessionId"`
	StudentID  int64     `json:"studentId"`
	StudentNo  string    `json:"studentNo,omitempty"`
	FullName   string    `json:"fullName,omitempty"`
	Status     string    `json:"status" example:"present"`
	Method     string    `json:"method" example:"qr"`
	Note       *string   `json:"note,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// NewAttendanceRecordResponse maps a record model to its response form
func NewAttendanceRecordResponse(r *models.AttendanceRecord) AttendanceRecordResponse {
	resp := AttendanceRecordResponse{
		ID:         r.ID,
		SessionID:  r.SessionID,
		StudentID:  r.StudentID,
		Status:     string(r.Status),
		Method:     string(r.Method),
		Note:       r.Note,
		RecordedAt: r.RecordedAt,
	}
	if r.Student != nil {
		resp.StudentNo = r.Student.StudentNo
		if r.Student.User != nil {
			resp.FullName = r.Student.User.FullName()
		}
	}
	return resp
}

// AttendanceRecordListResponse represents a session's records
type AttendanceRecordListResponse struct {
	SessionID int64                      `json:"sessionId"`
	Records   []AttendanceRecordResponse `json:"records"`
	Total     int                        `json:"total"`
}

// OverrideAttendanceRequest manually sets a student's attendance outcome.
// It creates the record when the student has none for the session yet.
type OverrideAttendanceRequest struct {
	Status string  `json:"status" binding:"required,oneof=present late absent"`
	Note   *string `json:"note"`
}

// CheckinRequest represents a student QR check-in
type CheckinRequest struct {
	Token string `json:"token" binding:"required"`
}

// CheckinResponse confirms a successful check-in
type CheckinResponse struct {
	SessionID  int64     `json:"sessionId"`
	Status     string    `json:"status" example:"present"`
	RecordedAt time.Time `json:"recordedAt"`
}

// StudentSessionResponse is a session from the student's point of view,
// carrying the student's own attendance outcome when one exists
type StudentSessionResponse struct {
	AttendanceSessionResponse
	MyStatus *string `json:"myStatus,omitempty" example:"present"`
}

// StudentSessionListResponse represents a student's sessions for one day
type StudentSessionListResponse struct {
	Date     string                   `json:"date" example:"2026-03-10"`
	Sessions []StudentSessionResponse `json:"sessions"`
	Total    int                      `json:"total"`
}
