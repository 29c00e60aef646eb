package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository              *UserRepository
	TokenRepository             *TokenRepository
	ProgramRepository           *ProgramRepository
	AcademicYearRepository      *AcademicYearRepository
	SemesterRepository          *SemesterRepository
	SectionRepository           *SectionRepository
	CourseRepository            *CourseRepository
	CourseAssignmentRepository  *CourseAssignmentRepository
	StudentProfileRepository    *StudentProfileRepository
	EnrollmentRepository        *EnrollmentRepository
	AttendanceSessionRepository *AttendanceSessionRepository
	AttendanceRecordRepository  *AttendanceRecordRepository
	FileRepository              *FileRepository
	MaterialRepository          *MaterialRepository
	CourseworkRepository        *CourseworkRepository
	CommunityPostRepository     *CommunityPostRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(db),
		TokenRepository:             NewTokenRepository(db),
		ProgramRepository:           NewProgramRepository(db),
		AcademicYearRepository:      NewAcademicYearRepository(db),
		SemesterRepository:          NewSemesterRepository(db),
		SectionRepository:           NewSectionRepository(db),
		CourseRepository:            NewCourseRepository(db),
		CourseAssignmentRepository:  NewCourseAssignmentRepository(db),
		StudentProfileRepository:    NewStudentProfileRepository(db),
		EnrollmentRepository:        NewEnrollmentRepository(db),
		AttendanceSessionRepository: NewAttendanceSessionRepository(db),
		AttendanceRecordRepository:  NewAttendanceRecordRepository(db),
		FileRepository:              NewFileRepository(db),
		MaterialRepository:          NewMaterialRepository(db),
		CourseworkRepository:        NewCourseworkRepository(db),
		CommunityPostRepository:     NewCommunityPostRepository(db),
	}
}
