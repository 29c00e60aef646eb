package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/helpers"
	"github.com/idil/registrar/internal/pkg/validation"
)

// SectionService defines the interface for section operations
type SectionService interface {
	GetAllSections(ctx context.Context, filter *dto.SectionFilterRequest) (*dto.SectionListResponse, error)
	GetSectionByID(ctx context.Context, id int64) (*dto.SectionResponse, error)
	CreateSection(ctx context.Context, req *dto.CreateSectionRequest) (*dto.SectionResponse, error)
	UpdateSection(ctx context.Context, id int64, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error)
	DeleteSection(ctx context.Context, id int64) error
}

type sectionServiceImpl struct {
	sectionRepo *repositories.SectionRepository
	programRepo *repositories.ProgramRepository
	yearRepo    *repositories.AcademicYearRepository
}

// NewSectionService creates a new SectionService
func NewSectionService(
	sectionRepo *repositories.SectionRepository,
	programRepo *repositories.ProgramRepository,
	yearRepo *repositories.AcademicYearRepository,
) SectionService {
	return &sectionServiceImpl{
		sectionRepo: sectionRepo,
		programRepo: programRepo,
		yearRepo:    yearRepo,
	}
}

func validateSectionCode(code string) error {
	if !validation.CompiledPatterns.SectionCode.MatchString(code) {
		return apperrors.NewBadRequestError("section code must be 1-4 uppercase letters or digits")
	}
	return nil
}

// GetAllSections retrieves sections with filtering and pagination
func (s *sectionServiceImpl) GetAllSections(ctx context.Context, filter *dto.SectionFilterRequest) (*dto.SectionListResponse, error) {
	sections, total, err := s.sectionRepo.GetAll(ctx, filter.ProgramID, filter.AcademicYearID, filter.YearLevel, filter.Page, filter.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting sections: %w", err)
	}

	responses := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		responses = append(responses, dto.NewSectionResponse(&sections[i]))
	}

	return &dto.SectionListResponse{
		Sections:       responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetSectionByID retrieves a section by ID
func (s *sectionServiceImpl) GetSectionByID(ctx context.Context, id int64) (*dto.SectionResponse, error) {
	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting section: %w", err)
	}
	if section == nil {
		return nil, apperrors.ErrSectionNotFound
	}

	resp := dto.NewSectionResponse(section)
	return &resp, nil
}

// CreateSection creates a new section
func (s *sectionServiceImpl) CreateSection(ctx context.Context, req *dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if err := validateSectionCode(code); err != nil {
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

	year, err := s.yearRepo.GetByID(ctx, req.AcademicYearID)
	if err != nil {
		return nil, fmt.Errorf("error getting academic year: %w", err)
	}
	if year == nil {
		return nil, apperrors.ErrAcademicYearNotFound
	}

	section := &models.Section{
		ProgramID:      req.ProgramID,
		AcademicYearID: req.AcademicYearID,
		Code:           code,
		YearLevel:      req.YearLevel,
		Capacity:       req.Capacity,
	}

	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, err
	}

	section.Program = program
	resp := dto.NewSectionResponse(section)
	return &resp, nil
}

// UpdateSection updates an existing section
func (s *sectionServiceImpl) UpdateSection(ctx context.Context, id int64, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if err := validateSectionCode(code); err != nil {
		return nil, err
	}

	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting section: %w", err)
	}
	if section == nil {
		return nil, apperrors.ErrSectionNotFound
	}

	if section.Program != nil && req.YearLevel > section.Program.DurationYears {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("year level %d exceeds the %d year duration of %s", req.YearLevel, section.Program.DurationYears, section.Program.Code))
	}

	section.Code = code
	section.YearLevel = req.YearLevel
	section.Capacity = req.Capacity

	if err := s.sectionRepo.Update(ctx, section); err != nil {
		return nil, err
	}

	resp := dto.NewSectionResponse(section)
	return &resp, nil
}

// DeleteSection deletes a section
func (s *sectionServiceImpl) DeleteSection(ctx context.Context, id int64) error {
	if err := s.sectionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflictError("Section still has enrollments attached")
		}
		return err
	}
	return nil
}
