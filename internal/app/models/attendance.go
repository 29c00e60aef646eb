package models

import "time"

// AttendanceSession is one scheduled attendance window for a course.
// Its status (upcoming, active, completed) is always derived from the
// date and time columns against the clock, never stored.
type AttendanceSession struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	LecturerID int64     `json:"lecturerId" db:"lecturer_id"`
	Title      string    `json:"title" db:"title"`
	Date       string    `json:"date" db:"session_date" example:"2026-03-10"` // YYYY-MM-DD
	StartTime  string    `json:"startTime" db:"start_time" example:"09:00:00"`
	EndTime    string    `json:"endTime" db:"end_time" example:"11:00:00"`
	QRToken    string    `json:"-" db:"qr_token"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Course   *Course `json:"course,omitempty"`
	Lecturer *User   `json:"lecturer,omitempty"`
}

// AttendanceRecord is one student's attendance outcome for a session
type AttendanceRecord struct {
	ID         int64            `json:"id" db:"id"`
	SessionID  int64            `json:"sessionId" db:"session_id"`
	StudentID  int64            `json:"studentId" db:"student_id"` // references student_profiles.id
	Status     AttendanceStatus `json:"status" db:"status" example:"present"`
	Method     AttendanceMethod `json:"method" db:"method" example:"qr"`
	Note       *string          `json:"note,omitempty" db:"note"` // Nullable, set on manual overrides
	RecordedAt time.Time        `json:"recordedAt" db:"recorded_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *StudentProfile `json:"student,omitempty"`
}
