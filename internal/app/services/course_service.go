package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/helpers"
	"github.com/idil/registrar/internal/pkg/roster"
	"github.com/idil/registrar/internal/pkg/validation"
)

// CourseService defines the interface for course catalog, assignment and
// roster operations
type CourseService interface {
	GetAllCourses(ctx context.Context, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error)
	GetCourseByID(ctx context.Context, id int64) (*dto.CourseResponse, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, id int64) error

	GetCourseAssignments(ctx context.Context, courseID int64) (*dto.CourseAssignmentListResponse, error)
	GetLecturerAssignments(ctx context.Context, lecturerID int64, semesterID *int64) (*dto.CourseAssignmentListResponse, error)
	CreateAssignment(ctx context.Context, req *dto.CreateCourseAssignmentRequest) (*dto.CourseAssignmentResponse, error)
	UpdateAssignmentLecturer(ctx context.Context, id int64, req *dto.UpdateCourseAssignmentRequest) (*dto.CourseAssignmentResponse, error)
	DeleteAssignment(ctx context.Context, id int64) error

	GetCourseRoster(ctx context.Context, courseID int64) (*dto.CourseRosterResponse, error)
}

type courseServiceImpl struct {
	courseRepo     *repositories.CourseRepository
	programRepo    *repositories.ProgramRepository
	yearRepo       *repositories.AcademicYearRepository
	semesterRepo   *repositories.SemesterRepository
	assignmentRepo *repositories.CourseAssignmentRepository
	enrollmentRepo *repositories.EnrollmentRepository
	userRepo       *repositories.UserRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	programRepo *repositories.ProgramRepository,
	yearRepo *repositories.AcademicYearRepository,
	semesterRepo *repositories.SemesterRepository,
	assignmentRepo *repositories.CourseAssignmentRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	userRepo *repositories.UserRepository,
) CourseService {
	return &courseServiceImpl{
		courseRepo:     courseRepo,
		programRepo:    programRepo,
		yearRepo:       yearRepo,
		semesterRepo:   semesterRepo,
		assignmentRepo: assignmentRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
	}
}

func validateCourseCode(code string) error {
	if !validation.CompiledPatterns.CourseCode.MatchString(code) {
		return apperrors.NewBadRequestError("course code must be 2-4 letters followed by 3-4 digits, e.g. CS101")
	}
	return nil
}

// GetAllCourses retrieves courses with filtering and pagination
func (s *courseServiceImpl) GetAllCourses(ctx context.Context, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error) {
	courses, total, err := s.courseRepo.GetAll(ctx, filter.ProgramID, filter.Query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting courses: %w", err)
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, dto.NewCourseResponse(&courses[i]))
	}

	return &dto.CourseListResponse{
		Courses:        responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// CreateCourse creates a new course in a program's catalog
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if err := validateCourseCode(code); err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, req.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("error getting program: %w", err)
	}
	if program == nil {
		return nil, apperrors.ErrProgramNotFound
	}

	course := &models.Course{
		ProgramID:   req.ProgramID,
		Code:        code,
		Name:        req.Name,
		Description: req.Description,
		Credits:     req.Credits,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	course.Program = program
	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// UpdateCourse updates an existing course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if err := validateCourseCode(code); err != nil {
		return nil, err
	}

	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Code = code
	course.Name = req.Name
	course.Description = req.Description
	course.Credits = req.Credits

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// DeleteCourse deletes a course unless assignments, materials or coursework
// still reference it
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	hasRelations, err := s.courseRepo.HasRelations(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking course relations: %w", err)
	}
	if hasRelations {
		return apperrors.ErrCourseHasRelations
	}

	return s.courseRepo.Delete(ctx, id)
}

// GetCourseAssignments retrieves all term assignments of a course
func (s *courseServiceImpl) GetCourseAssignments(ctx context.Context, courseID int64) (*dto.CourseAssignmentListResponse, error) {
	if _, err := s.getCourse(ctx, courseID); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error getting course assignments: %w", err)
	}

	return newAssignmentListResponse(assignments), nil
}

// GetLecturerAssignments retrieves the assignments a lecturer teaches,
// optionally narrowed to one semester
func (s *courseServiceImpl) GetLecturerAssignments(ctx context.Context, lecturerID int64, semesterID *int64) (*dto.CourseAssignmentListResponse, error) {
	assignments, err := s.assignmentRepo.GetByLecturer(ctx, lecturerID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("error getting lecturer assignments: %w", err)
	}

	return newAssignmentListResponse(assignments), nil
}

// CreateAssignment assigns a course to a program term audience
func (s *courseServiceImpl) CreateAssignment(ctx context.Context, req *dto.CreateCourseAssignmentRequest) (*dto.CourseAssignmentResponse, error) {
	course, err := s.getCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
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

	semester, err := s.semesterRepo.GetByID(ctx, req.SemesterID)
	if err != nil {
		return nil, fmt.Errorf("error getting semester: %w", err)
	}
	if semester == nil {
		return nil, apperrors.ErrSemesterNotFound
	}
	if semester.AcademicYearID != req.AcademicYearID {
		return nil, apperrors.NewBadRequestError("semester does not belong to the given academic year")
	}

	lecturer, err := s.resolveLecturer(ctx, req.LecturerID)
	if err != nil {
		return nil, err
	}

	assignment := &models.CourseAssignment{
		CourseID:       req.CourseID,
		ProgramID:      req.ProgramID,
		AcademicYearID: req.AcademicYearID,
		SemesterID:     req.SemesterID,
		YearLevel:      req.YearLevel,
		LecturerID:     req.LecturerID,
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	assignment.Course = course
	assignment.Lecturer = lecturer
	resp := dto.NewCourseAssignmentResponse(assignment)
	return &resp, nil
}

// UpdateAssignmentLecturer assigns, reassigns or unassigns the lecturer of an
// existing course assignment
func (s *courseServiceImpl) UpdateAssignmentLecturer(ctx context.Context, id int64, req *dto.UpdateCourseAssignmentRequest) (*dto.CourseAssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting assignment: %w", err)
	}
	if assignment == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}

	lecturer, err := s.resolveLecturer(ctx, req.LecturerID)
	if err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.UpdateLecturer(ctx, id, req.LecturerID); err != nil {
		return nil, err
	}

	assignment.LecturerID = req.LecturerID
	assignment.Lecturer = lecturer
	resp := dto.NewCourseAssignmentResponse(assignment)
	return &resp, nil
}

// DeleteAssignment removes a course assignment
func (s *courseServiceImpl) DeleteAssignment(ctx context.Context, id int64) error {
	return s.assignmentRepo.Delete(ctx, id)
}

// GetCourseRoster computes the students a course inherits through its term
// assignments and the matching active section enrollments
func (s *courseServiceImpl) GetCourseRoster(ctx context.Context, courseID int64) (*dto.CourseRosterResponse, error) {
	if _, err := s.getCourse(ctx, courseID); err != nil {
		return nil, err
	}

	keys, err := s.assignmentRepo.GetRosterKeys(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error getting roster keys: %w", err)
	}

	entries := []roster.Entry{}
	if len(keys) > 0 {
		candidates, err := s.enrollmentRepo.GetRosterCandidates(ctx, semesterIDsOf(keys))
		if err != nil {
			return nil, fmt.Errorf("error getting roster candidates: %w", err)
		}
		entries = roster.Build(keys, candidates)
	}

	students := make([]dto.RosterEntryResponse, 0, len(entries))
	for _, entry := range entries {
		students = append(students, dto.NewRosterEntryResponse(entry))
	}

	return &dto.CourseRosterResponse{
		CourseID: courseID,
		Students: students,
		Total:    len(students),
	}, nil
}

func (s *courseServiceImpl) getCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// resolveLecturer loads and checks the user behind an optional lecturer ID.
// A nil ID resolves to no lecturer.
func (s *courseServiceImpl) resolveLecturer(ctx context.Context, lecturerID *int64) (*models.User, error) {
	if lecturerID == nil {
		return nil, nil
	}

	lecturer, err := s.userRepo.GetUserByID(ctx, *lecturerID)
	if err != nil {
		return nil, fmt.Errorf("error getting lecturer: %w", err)
	}
	if lecturer.Role != models.RoleLecturer {
		return nil, apperrors.ErrNotALecturer
	}

	return lecturer, nil
}

func newAssignmentListResponse(assignments []models.CourseAssignment) *dto.CourseAssignmentListResponse {
	responses := make([]dto.CourseAssignmentResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, dto.NewCourseAssignmentResponse(&assignments[i]))
	}

	return &dto.CourseAssignmentListResponse{
		Assignments: responses,
		Total:       len(responses),
	}
}

func semesterIDsOf(keys []roster.Assignment) []int64 {
	seen := make(map[int64]struct{}, len(keys))
	ids := make([]int64, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k.SemesterID]; ok {
			continue
		}
		seen[k.SemesterID] = struct{}{}
		ids = append(ids, k.SemesterID)
	}
	return ids
}
