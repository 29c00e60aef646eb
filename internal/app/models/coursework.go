package models

import "time"

// Coursework is a graded assignment attached to a course
type Coursework struct {
	ID          int64      `json:"id" db:"id"`
	CourseID    int64      `json:"courseId" db:"course_id"`
	LecturerID  int64      `json:"lecturerId" db:"lecturer_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"` // Nullable
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`        // Nullable
	MaxScore    int        `json:"maxScore" db:"max_score"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}
