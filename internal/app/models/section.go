package models

// Section represents a scheduled cohort of a program-year
type Section struct {
	ID             int64  `json:"id" db:"id"`
	ProgramID      int64  `json:"programId" db:"program_id"`
	AcademicYearID int64  `json:"academicYearId" db:"academic_year_id"`
	Code           string `json:"code" db:"code" example:"A"`
	YearLevel      int    `json:"yearLevel" db:"year_level" example:"2"`
	Capacity       int    `json:"capacity" db:"capacity"`

	// Relations (populated when needed)
	Program      *Program      `json:"program,omitempty"`
	AcademicYear *AcademicYear `json:"academicYear,omitempty"`
}
