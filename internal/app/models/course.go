package models

import "time"

// Course represents a course in the catalog.
type Course struct {
	ID          int64   `json:"id" db:"id"`
	ProgramID   int64   `json:"programId" db:"program_id"`
	Code        string  `json:"code" db:"code" example:"CS101"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable
	Credits     int     `json:"credits" db:"credits"`

	// Relations (populated when needed)
	Program *Program `json:"program,omitempty"`
}

// CourseAssignment links a course to a program term, optionally naming the
// lecturer who teaches it.
type CourseAssignment struct {
	ID             int64     `json:"id" db:"id"`
	CourseID       int64     `json:"courseId" db:"course_id"`
	ProgramID      int64     `json:"programId" db:"program_id"`
	AcademicYearID int64     `json:"academicYearId" db:"academic_year_id"`
	SemesterID     int64     `json:"semesterId" db:"semester_id"`
	YearLevel      int       `json:"yearLevel" db:"year_level"`
	LecturerID     *int64    `json:"lecturerId,omitempty" db:"lecturer_id"` // Nullable
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Course       *Course       `json:"course,omitempty"`
	Program      *Program      `json:"program,omitempty"`
	AcademicYear *AcademicYear `json:"academicYear,omitempty"`
	Semester     *Semester     `json:"semester,omitempty"`
	Lecturer     *User         `json:"lecturer,omitempty"`
}
