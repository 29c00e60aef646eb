package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/idil/registrar/internal/app/auth"
	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/helpers"
)

// defaultMaxScore is used when a coursework is created without one
const defaultMaxScore = 100

// CourseworkService defines the interface for coursework operations
type CourseworkService interface {
	GetCourseCoursework(ctx context.Context, courseID, userID int64, role models.Role, page, pageSize int) (*dto.CourseworkListResponse, error)
	GetCourseworkByID(ctx context.Context, id, userID int64, role models.Role) (*dto.CourseworkResponse, error)
	CreateCoursework(ctx context.Context, userID int64, role models.Role, req *dto.CreateCourseworkRequest) (*dto.CourseworkResponse, error)
	UpdateCoursework(ctx context.Context, id, userID int64, role models.Role, req *dto.UpdateCourseworkRequest) (*dto.CourseworkResponse, error)
	DeleteCoursework(ctx context.Context, id, userID int64, role models.Role) error
}

type courseworkServiceImpl struct {
	courseworkRepo *repositories.CourseworkRepository
	authzService   *auth.AuthorizationService
}

// NewCourseworkService creates a new CourseworkService
func NewCourseworkService(
	courseworkRepo *repositories.CourseworkRepository,
	authzService *auth.AuthorizationService,
) CourseworkService {
	return &courseworkServiceImpl{
		courseworkRepo: courseworkRepo,
		authzService:   authzService,
	}
}

// GetCourseCoursework retrieves a course's coursework, newest first. Lecturers
// must teach the course and students must be enrolled in it.
func (s *courseworkServiceImpl) GetCourseCoursework(ctx context.Context, courseID, userID int64, role models.Role, page, pageSize int) (*dto.CourseworkListResponse, error) {
	if err := s.authzService.ValidateCourseAccess(ctx, userID, role, courseID); err != nil {
		return nil, err
	}

	work, total, err := s.courseworkRepo.GetByCourse(ctx, courseID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting coursework: %w", err)
	}

	responses := make([]dto.CourseworkResponse, 0, len(work))
	for i := range work {
		responses = append(responses, dto.NewCourseworkResponse(&work[i]))
	}

	return &dto.CourseworkListResponse{
		Coursework:     responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetCourseworkByID retrieves a coursework the caller may read
func (s *courseworkServiceImpl) GetCourseworkByID(ctx context.Context, id, userID int64, role models.Role) (*dto.CourseworkResponse, error) {
	work, err := s.courseworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting coursework: %w", err)
	}
	if work == nil {
		return nil, apperrors.ErrCourseworkNotFound
	}

	if err := s.authzService.ValidateCourseAccess(ctx, userID, role, work.CourseID); err != nil {
		return nil, err
	}

	resp := dto.NewCourseworkResponse(work)
	return &resp, nil
}

// CreateCoursework publishes a graded assignment for a course the caller teaches
func (s *courseworkServiceImpl) CreateCoursework(ctx context.Context, userID int64, role models.Role, req *dto.CreateCourseworkRequest) (*dto.CourseworkResponse, error) {
	if role != models.RoleAdmin {
		if err := s.authzService.ValidateTeachesCourse(ctx, userID, req.CourseID); err != nil {
			return nil, err
		}
	}

	maxScore := req.MaxScore
	if maxScore == 0 {
		maxScore = defaultMaxScore
	}

	work := &models.Coursework{
		CourseID:    req.CourseID,
		LecturerID:  userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
		MaxScore:    maxScore,
	}

	if err := s.courseworkRepo.Create(ctx, work); err != nil {
		return nil, err
	}

	resp := dto.NewCourseworkResponse(work)
	return &resp, nil
}

// UpdateCoursework edits one of the caller's coursework items
func (s *courseworkServiceImpl) UpdateCoursework(ctx context.Context, id, userID int64, role models.Role, req *dto.UpdateCourseworkRequest) (*dto.CourseworkResponse, error) {
	work, err := s.getOwnedCoursework(ctx, id, userID, role)
	if err != nil {
		return nil, err
	}

	work.Title = strings.TrimSpace(req.Title)
	work.Description = req.Description
	work.DueDate = req.DueDate
	if req.MaxScore != 0 {
		work.MaxScore = req.MaxScore
	}

	if err := s.courseworkRepo.Update(ctx, work); err != nil {
		return nil, err
	}

	resp := dto.NewCourseworkResponse(work)
	return &resp, nil
}

// DeleteCoursework removes one of the caller's coursework items
func (s *courseworkServiceImpl) DeleteCoursework(ctx context.Context, id, userID int64, role models.Role) error {
	if _, err := s.getOwnedCoursework(ctx, id, userID, role); err != nil {
		return err
	}

	return s.courseworkRepo.Delete(ctx, id)
}

// getOwnedCoursework loads a coursework and checks the caller may manage it.
// Admins pass regardless of ownership.
func (s *courseworkServiceImpl) getOwnedCoursework(ctx context.Context, id, userID int64, role models.Role) (*models.Coursework, error) {
	work, err := s.courseworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting coursework: %w", err)
	}
	if work == nil {
		return nil, apperrors.ErrCourseworkNotFound
	}
	if role != models.RoleAdmin && work.LecturerID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	return work, nil
}
