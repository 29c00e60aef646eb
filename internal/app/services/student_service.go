package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/auth"
	"github.com/idil/registrar/internal/pkg/helpers"
	"github.com/idil/registrar/internal/pkg/logger"
	"github.com/idil/registrar/internal/pkg/schedule"
	"github.com/idil/registrar/internal/pkg/validation"
)

// StudentService defines the interface for student profile administration and
// the student's own dashboard
type StudentService interface {
	GetAllStudents(ctx context.Context, filter *dto.StudentFilterRequest) (*dto.StudentProfileListResponse, error)
	GetStudentByID(ctx context.Context, id int64) (*dto.StudentProfileResponse, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentProfileRequest) (*dto.StudentProfileResponse, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error)
	DeleteStudent(ctx context.Context, id int64) error

	GetDashboard(ctx context.Context, userID int64) (*dto.StudentDashboardResponse, error)
}

type studentServiceImpl struct {
	profileRepo    *repositories.StudentProfileRepository
	programRepo    *repositories.ProgramRepository
	enrollmentRepo *repositories.EnrollmentRepository
	sessionRepo    *repositories.AttendanceSessionRepository
	recordRepo     *repositories.AttendanceRecordRepository
	tokenRepo      *repositories.TokenRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(
	profileRepo *repositories.StudentProfileRepository,
	programRepo *repositories.ProgramRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	sessionRepo *repositories.AttendanceSessionRepository,
	recordRepo *repositories.AttendanceRecordRepository,
	tokenRepo *repositories.TokenRepository,
) StudentService {
	return &studentServiceImpl{
		profileRepo:    profileRepo,
		programRepo:    programRepo,
		enrollmentRepo: enrollmentRepo,
		sessionRepo:    sessionRepo,
		recordRepo:     recordRepo,
		tokenRepo:      tokenRepo,
	}
}

// GetAllStudents retrieves student profiles with filtering and pagination
func (s *studentServiceImpl) GetAllStudents(ctx context.Context, filter *dto.StudentFilterRequest) (*dto.StudentProfileListResponse, error) {
	students, total, err := s.profileRepo.GetAll(ctx, filter.ProgramID, filter.YearLevel, filter.Query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting students: %w", err)
	}

	responses := make([]dto.StudentProfileResponse, 0, len(students))
	for i := range students {
		responses = append(responses, dto.NewStudentProfileResponse(&students[i]))
	}

	return &dto.StudentProfileListResponse{
		Students:       responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetStudentByID retrieves a student profile by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*dto.StudentProfileResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	if profile == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	resp := dto.NewStudentProfileResponse(profile)
	return &resp, nil
}

// CreateStudent creates a student account together with its profile
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	studentNo := strings.TrimSpace(req.StudentNo)
	if !validation.CompiledPatterns.StudentNo.MatchString(studentNo) {
		return nil, apperrors.ErrInvalidStudentNo
	}

	taken, err := s.profileRepo.StudentNoExists(ctx, studentNo)
	if err != nil {
		return nil, fmt.Errorf("error checking student number: %w", err)
	}
	if taken {
		return nil, apperrors.ErrStudentNoAlreadyExists
	}

	program, err := s.programRepo.GetByID(ctx, req.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("error getting program: %w", err)
	}
	if program == nil {
		return nil, apperrors.ErrProgramNotFound
	}
	if req.YearLevel > program.DurationYears {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("year level %d exceeds the %d year duration of %s", req.YearLevel, program.DurationYears, program.Code))
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleStudent,
		IsActive:  true,
	}
	profile := &models.StudentProfile{
		StudentNo: studentNo,
		ProgramID: req.ProgramID,
		YearLevel: req.YearLevel,
	}

	if err := s.profileRepo.CreateWithUser(ctx, user, profile); err != nil {
		return nil, err
	}

	profile.User = user
	profile.Program = program
	resp := dto.NewStudentProfileResponse(profile)
	return &resp, nil
}

// UpdateStudent updates a student's profile and the linked user account.
// The student number never changes after creation.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	if profile == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	program, err := s.programRepo.GetByID(ctx, req.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("error getting program: %w", err)
	}
	if program == nil {
		return nil, apperrors.ErrProgramNotFound
	}
	if req.YearLevel > program.DurationYears {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("year level %d exceeds the %d year duration of %s", req.YearLevel, program.DurationYears, program.Code))
	}

	wasActive := profile.User.IsActive

	profile.ProgramID = req.ProgramID
	profile.YearLevel = req.YearLevel
	profile.User.FirstName = req.FirstName
	profile.User.LastName = req.LastName
	profile.User.IsActive = *req.IsActive

	if err := s.profileRepo.Update(ctx, profile, profile.User); err != nil {
		return nil, err
	}

	// A deactivated account also loses its refresh tokens.
	if wasActive && !profile.User.IsActive {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, profile.UserID); err != nil {
			logger.Warn().Err(err).Int64("userID", profile.UserID).Msg("Failed to revoke tokens of deactivated student")
		}
	}

	profile.Program = program
	resp := dto.NewStudentProfileResponse(profile)
	return &resp, nil
}

// DeleteStudent removes a student profile along with its user account
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting student: %w", err)
	}
	if profile == nil {
		return apperrors.ErrStudentNotFound
	}

	return s.profileRepo.Delete(ctx, id)
}

// GetDashboard assembles the student landing page: profile, active
// enrollments, today's sessions with the student's own outcome, and an
// attendance summary
func (s *studentServiceImpl) GetDashboard(ctx context.Context, userID int64) (*dto.StudentDashboardResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting student profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	active := models.EnrollmentActive
	enrollments, err := s.enrollmentRepo.GetByStudent(ctx, profile.ID, &active)
	if err != nil {
		return nil, fmt.Errorf("error getting enrollments: %w", err)
	}

	enrollmentResponses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		enrollmentResponses = append(enrollmentResponses, dto.NewEnrollmentResponse(&enrollments[i]))
	}

	now := time.Now()
	todaysSessions, err := s.todaysSessions(ctx, profile.ID, now)
	if err != nil {
		return nil, err
	}

	counts, err := s.recordRepo.CountByStatusForStudent(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("error getting attendance summary: %w", err)
	}

	return &dto.StudentDashboardResponse{
		Profile:        dto.NewStudentProfileResponse(profile),
		Enrollments:    enrollmentResponses,
		TodaysSessions: todaysSessions,
		Attendance: dto.AttendanceSummary{
			Present: counts[models.AttendancePresent],
			Late:    counts[models.AttendanceLate],
			Absent:  counts[models.AttendanceAbsent],
		},
	}, nil
}

// todaysSessions loads today's sessions for the student's enrolled courses
// and annotates each with the student's own record, if any
func (s *studentServiceImpl) todaysSessions(ctx context.Context, studentID int64, now time.Time) ([]dto.StudentSessionResponse, error) {
	courseIDs, err := s.enrollmentRepo.GetStudentCourseIDs(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error getting enrolled courses: %w", err)
	}

	responses := make([]dto.StudentSessionResponse, 0)
	if len(courseIDs) == 0 {
		return responses, nil
	}

	sessions, err := s.sessionRepo.GetByCoursesOnDate(ctx, courseIDs, now.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("error getting today's sessions: %w", err)
	}
	if len(sessions) == 0 {
		return responses, nil
	}

	sessionIDs := make([]int64, 0, len(sessions))
	for i := range sessions {
		sessionIDs = append(sessionIDs, sessions[i].ID)
	}
	statuses, err := s.recordRepo.GetStudentStatuses(ctx, sessionIDs, studentID)
	if err != nil {
		return nil, fmt.Errorf("error getting attendance records: %w", err)
	}

	for i := range sessions {
		status := schedule.Derive(sessions[i].Date, sessions[i].StartTime, sessions[i].EndTime, now)
		resp := dto.StudentSessionResponse{
			AttendanceSessionResponse: dto.NewAttendanceSessionResponse(&sessions[i], status),
		}
		if recorded, ok := statuses[sessions[i].ID]; ok {
			mine := string(recorded)
			resp.MyStatus = &mine
		}
		responses = append(responses, resp)
	}

	return responses, nil
}
