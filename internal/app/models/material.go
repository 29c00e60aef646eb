package models

import "time"

// CourseMaterial is a document a lecturer shares with a course
type CourseMaterial struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	LecturerID  int64     `json:"lecturerId" db:"lecturer_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"` // Nullable
	FileID      *int64    `json:"fileId,omitempty" db:"file_id"`          // Nullable
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
	File   *File   `json:"file,omitempty"`
}
