package models

import "time"

// SectionEnrollment represents a student's membership in a section for a
// given term. The program and year level come from the section.
type SectionEnrollment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"` // references student_profiles.id
	SectionID      int64            `json:"sectionId" db:"section_id"`
	AcademicYearID int64            `json:"academicYearId" db:"academic_year_id"`
	SemesterID     int64            `json:"semesterId" db:"semester_id"`
	Status         EnrollmentStatus `json:"status" db:"status" example:"active"`
	EnrolledAt     time.Time        `json:"enrolledAt" db:"enrolled_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student  *StudentProfile `json:"student,omitempty"`
	Section  *Section        `json:"section,omitempty"`
	Semester *Semester       `json:"semester,omitempty"`
}
