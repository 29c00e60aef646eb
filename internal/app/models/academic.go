package models

import "time"

// AcademicYear represents one academic year such as 2025-2026
type AcademicYear struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" example:"2025-2026"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	IsCurrent bool      `json:"isCurrent" db:"is_current"`
}

// Semester represents a term within an academic year
type Semester struct {
	ID             int64     `json:"id" db:"id"`
	AcademicYearID int64     `json:"academicYearId" db:"academic_year_id"`
	Term           Term      `json:"term" db:"term" example:"FALL"`
	StartDate      time.Time `json:"startDate" db:"start_date"`
	EndDate        time.Time `json:"endDate" db:"end_date"`

	// Relations (populated when needed)
	AcademicYear *AcademicYear `json:"academicYear,omitempty"`
}
