package services

import (
	"context"
	"fmt"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/helpers"
)

// EnrollmentService defines the interface for section enrollment operations
type EnrollmentService interface {
	GetAllEnrollments(ctx context.Context, filter *dto.EnrollmentFilterRequest) (*dto.EnrollmentListResponse, error)
	GetEnrollmentByID(ctx context.Context, id int64) (*dto.EnrollmentResponse, error)
	CreateEnrollment(ctx context.Context, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error)
	UpdateEnrollmentStatus(ctx context.Context, id int64, req *dto.UpdateEnrollmentStatusRequest) (*dto.EnrollmentResponse, error)
	DeleteEnrollment(ctx context.Context, id int64) error
}

type enrollmentServiceImpl struct {
	enrollmentRepo *repositories.EnrollmentRepository
	profileRepo    *repositories.StudentProfileRepository
	sectionRepo    *repositories.SectionRepository
	semesterRepo   *repositories.SemesterRepository
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo *repositories.EnrollmentRepository,
	profileRepo *repositories.StudentProfileRepository,
	sectionRepo *repositories.SectionRepository,
	semesterRepo *repositories.SemesterRepository,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		profileRepo:    profileRepo,
		sectionRepo:    sectionRepo,
		semesterRepo:   semesterRepo,
	}
}

// GetAllEnrollments retrieves enrollments with filtering and pagination
func (s *enrollmentServiceImpl) GetAllEnrollments(ctx context.Context, filter *dto.EnrollmentFilterRequest) (*dto.EnrollmentListResponse, error) {
	var status *models.EnrollmentStatus
	if filter.Status != nil {
		st := models.EnrollmentStatus(*filter.Status)
		status = &st
	}

	enrollments, total, err := s.enrollmentRepo.GetAll(ctx, filter.StudentID, filter.SectionID, filter.SemesterID, status, filter.Page, filter.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting enrollments: %w", err)
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		responses = append(responses, dto.NewEnrollmentResponse(&enrollments[i]))
	}

	return &dto.EnrollmentListResponse{
		Enrollments:    responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetEnrollmentByID retrieves an enrollment by ID
func (s *enrollmentServiceImpl) GetEnrollmentByID(ctx context.Context, id int64) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, apperrors.ErrEnrollmentNotFound
	}

	resp := dto.NewEnrollmentResponse(enrollment)
	return &resp, nil
}

// CreateEnrollment enrolls a student into a section for a semester. The
// enrollment inherits the section's academic year.
func (s *enrollmentServiceImpl) CreateEnrollment(ctx context.Context, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	if profile == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	section, err := s.sectionRepo.GetByID(ctx, req.SectionID)
	if err != nil {
		return nil, fmt.Errorf("error getting section: %w", err)
	}
	if section == nil {
		return nil, apperrors.ErrSectionNotFound
	}

	semester, err := s.semesterRepo.GetByID(ctx, req.SemesterID)
	if err != nil {
		return nil, fmt.Errorf("error getting semester: %w", err)
	}
	if semester == nil {
		return nil, apperrors.ErrSemesterNotFound
	}
	if semester.AcademicYearID != section.AcademicYearID {
		return nil, apperrors.NewBadRequestError("semester does not belong to the section's academic year")
	}

	enrolled, err := s.sectionRepo.CountActiveEnrollments(ctx, section.ID, semester.ID)
	if err != nil {
		return nil, fmt.Errorf("error counting enrollments: %w", err)
	}
	if enrolled >= section.Capacity {
		return nil, apperrors.ErrSectionCapacityExceeded
	}

	enrollment := &models.SectionEnrollment{
		StudentID:  req.StudentID,
		SectionID:  req.SectionID,
		SemesterID: req.SemesterID,
		Status:     models.EnrollmentActive,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	enrollment.Student = profile
	enrollment.Section = section
	resp := dto.NewEnrollmentResponse(enrollment)
	return &resp, nil
}

// UpdateEnrollmentStatus moves an enrollment out of the active state.
// Dropped and completed enrollments are terminal.
func (s *enrollmentServiceImpl) UpdateEnrollmentStatus(ctx context.Context, id int64, req *dto.UpdateEnrollmentStatusRequest) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, apperrors.ErrEnrollmentNotFound
	}

	status := models.EnrollmentStatus(req.Status)
	if status == enrollment.Status {
		resp := dto.NewEnrollmentResponse(enrollment)
		return &resp, nil
	}
	if enrollment.Status != models.EnrollmentActive {
		return nil, apperrors.ErrEnrollmentNotActive
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	enrollment.Status = status
	resp := dto.NewEnrollmentResponse(enrollment)
	return &resp, nil
}

// DeleteEnrollment removes an enrollment row entirely. Prefer a status
// change; deletion is for rows created by mistake.
func (s *enrollmentServiceImpl) DeleteEnrollment(ctx context.Context, id int64) error {
	return s.enrollmentRepo.Delete(ctx, id)
}
