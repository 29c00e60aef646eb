package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
)

// AcademicService defines the interface for academic year and semester operations
type AcademicService interface {
	GetAllAcademicYears(ctx context.Context) (*dto.AcademicYearListResponse, error)
	GetAcademicYearByID(ctx context.Context, id int64) (*dto.AcademicYearResponse, error)
	CreateAcademicYear(ctx context.Context, req *dto.CreateAcademicYearRequest) (*dto.AcademicYearResponse, error)
	UpdateAcademicYear(ctx context.Context, id int64, req *dto.UpdateAcademicYearRequest) (*dto.AcademicYearResponse, error)
	DeleteAcademicYear(ctx context.Context, id int64) error

	GetSemesters(ctx context.Context, academicYearID *int64) (*dto.SemesterListResponse, error)
	GetSemesterByID(ctx context.Context, id int64) (*dto.SemesterResponse, error)
	CreateSemester(ctx context.Context, req *dto.CreateSemesterRequest) (*dto.SemesterResponse, error)
	UpdateSemester(ctx context.Context, id int64, req *dto.UpdateSemesterRequest) (*dto.SemesterResponse, error)
	DeleteSemester(ctx context.Context, id int64) error
}

type academicServiceImpl struct {
	yearRepo     *repositories.AcademicYearRepository
	semesterRepo *repositories.SemesterRepository
}

// NewAcademicService creates a new AcademicService
func NewAcademicService(yearRepo *repositories.AcademicYearRepository, semesterRepo *repositories.SemesterRepository) AcademicService {
	return &academicServiceImpl{
		yearRepo:     yearRepo,
		semesterRepo: semesterRepo,
	}
}

// GetAllAcademicYears retrieves all academic years, newest first
func (s *academicServiceImpl) GetAllAcademicYears(ctx context.Context) (*dto.AcademicYearListResponse, error) {
	years, err := s.yearRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting academic years: %w", err)
	}

	responses := make([]dto.AcademicYearResponse, 0, len(years))
	for i := range years {
		responses = append(responses, dto.NewAcademicYearResponse(&years[i]))
	}

	return &dto.AcademicYearListResponse{AcademicYears: responses, Total: len(responses)}, nil
}

// GetAcademicYearByID retrieves an academic year by ID
func (s *academicServiceImpl) GetAcademicYearByID(ctx context.Context, id int64) (*dto.AcademicYearResponse, error) {
	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting academic year: %w", err)
	}
	if year == nil {
		return nil, apperrors.ErrAcademicYearNotFound
	}

	resp := dto.NewAcademicYearResponse(year)
	return &resp, nil
}

// CreateAcademicYear creates a new academic year
func (s *academicServiceImpl) CreateAcademicYear(ctx context.Context, req *dto.CreateAcademicYearRequest) (*dto.AcademicYearResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewBadRequestError("end date must be after start date")
	}

	year := &models.AcademicYear{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsCurrent: req.IsCurrent,
	}

	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, err
	}

	resp := dto.NewAcademicYearResponse(year)
	return &resp, nil
}

// UpdateAcademicYear updates an existing academic year
func (s *academicServiceImpl) UpdateAcademicYear(ctx context.Context, id int64, req *dto.UpdateAcademicYearRequest) (*dto.AcademicYearResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewBadRequestError("end date must be after start date")
	}

	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting academic year: %w", err)
	}
	if year == nil {
		return nil, apperrors.ErrAcademicYearNotFound
	}

	year.Name = req.Name
	year.StartDate = req.StartDate
	year.EndDate = req.EndDate
	year.IsCurrent = req.IsCurrent

	if err := s.yearRepo.Update(ctx, year); err != nil {
		return nil, err
	}

	resp := dto.NewAcademicYearResponse(year)
	return &resp, nil
}

// DeleteAcademicYear deletes an academic year
func (s *academicServiceImpl) DeleteAcademicYear(ctx context.Context, id int64) error {
	if err := s.yearRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflictError("Academic year still has semesters, sections or assignments attached")
		}
		return err
	}
	return nil
}

// GetSemesters retrieves semesters, optionally for one academic year
func (s *academicServiceImpl) GetSemesters(ctx context.Context, academicYearID *int64) (*dto.SemesterListResponse, error) {
	semesters, err := s.semesterRepo.GetAll(ctx, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("error getting semesters: %w", err)
	}

	responses := make([]dto.SemesterResponse, 0, len(semesters))
	for i := range semesters {
		responses = append(responses, dto.NewSemesterResponse(&semesters[i]))
	}

	return &dto.SemesterListResponse{Semesters: responses, Total: len(responses)}, nil
}

// GetSemesterByID retrieves a semester by ID
func (s *academicServiceImpl) GetSemesterByID(ctx context.Context, id int64) (*dto.SemesterResponse, error) {
	semester, err := s.semesterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting semester: %w", err)
	}
	if semester == nil {
		return nil, apperrors.ErrSemesterNotFound
	}

	resp := dto.NewSemesterResponse(semester)
	return &resp, nil
}

// CreateSemester creates a new semester under an academic year
func (s *academicServiceImpl) CreateSemester(ctx context.Context, req *dto.CreateSemesterRequest) (*dto.SemesterResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewBadRequestError("end date must be after start date")
	}

	year, err := s.yearRepo.GetByID(ctx, req.AcademicYearID)
	if err != nil {
		return nil, fmt.Errorf("error getting academic year: %w", err)
	}
	if year == nil {
		return nil, apperrors.ErrAcademicYearNotFound
	}

	semester := &models.Semester{
		AcademicYearID: req.AcademicYearID,
		Term:           models.Term(req.Term),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}

	if err := s.semesterRepo.Create(ctx, semester); err != nil {
		return nil, err
	}

	semester.AcademicYear = year
	resp := dto.NewSemesterResponse(semester)
	return &resp, nil
}

// UpdateSemester updates an existing semester
func (s *academicServiceImpl) UpdateSemester(ctx context.Context, id int64, req *dto.UpdateSemesterRequest) (*dto.SemesterResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewBadRequestError("end date must be after start date")
	}

	semester, err := s.semesterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting semester: %w", err)
	}
	if semester == nil {
		return nil, apperrors.ErrSemesterNotFound
	}

	semester.Term = models.Term(req.Term)
	semester.StartDate = req.StartDate
	semester.EndDate = req.EndDate

	if err := s.semesterRepo.Update(ctx, semester); err != nil {
		return nil, err
	}

	resp := dto.NewSemesterResponse(semester)
	return &resp, nil
}

// DeleteSemester deletes a semester
func (s *academicServiceImpl) DeleteSemester(ctx context.Context, id int64) error {
	if err := s.semesterRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflictError("Semester still has enrollments or assignments attached")
		}
		return err
	}
	return nil
}
