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

// ProgramService defines the interface for program operations
type ProgramService interface {
	GetAllPrograms(ctx context.Context, search *string, page, pageSize int) (*dto.ProgramListResponse, error)
	GetProgramByID(ctx context.Context, id int64) (*dto.ProgramResponse, error)
	CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error)
	UpdateProgram(ctx context.Context, id int64, req *dto.UpdateProgramRequest) (*dto.ProgramResponse, error)
	DeleteProgram(ctx context.Context, id int64) error
}

type programServiceImpl struct {
	programRepo *repositories.ProgramRepository
}

// NewProgramService creates a new ProgramService
func NewProgramService(programRepo *repositories.ProgramRepository) ProgramService {
	return &programServiceImpl{programRepo: programRepo}
}

// GetAllPrograms retrieves programs with search and pagination
func (s *programServiceImpl) GetAllPrograms(ctx context.Context, search *string, page, pageSize int) (*dto.ProgramListResponse, error) {
	programs, total, err := s.programRepo.GetAll(ctx, search, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting programs: %w", err)
	}

	responses := make([]dto.ProgramResponse, 0, len(programs))
	for i := range programs {
		responses = append(responses, dto.NewProgramResponse(&programs[i]))
	}

	return &dto.ProgramListResponse{
		Programs:       responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetProgramByID retrieves a program by ID
func (s *programServiceImpl) GetProgramByID(ctx context.Context, id int64) (*dto.ProgramResponse, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting program: %w", err)
	}
	if program == nil {
		return nil, apperrors.ErrProgramNotFound
	}

	resp := dto.NewProgramResponse(program)
	return &resp, nil
}

// CreateProgram creates a new program
func (s *programServiceImpl) CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error) {
	program := &models.Program{
		Name:          req.Name,
		Code:          req.Code,
		DurationYears: req.DurationYears,
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}

	resp := dto.NewProgramResponse(program)
	return &resp, nil
}

// UpdateProgram updates an existing program
func (s *programServiceImpl) UpdateProgram(ctx context.Context, id int64, req *dto.UpdateProgramRequest) (*dto.ProgramResponse, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting program: %w", err)
	}
	if program == nil {
		return nil, apperrors.ErrProgramNotFound
	}

	taken, err := s.programRepo.ExistsByNameOrCode(ctx, req.Name, req.Code, id)
	if err != nil {
		return nil, fmt.Errorf("error checking program uniqueness: %w", err)
	}
	if taken {
		return nil, apperrors.ErrProgramAlreadyExists
	}

	program.Name = req.Name
	program.Code = req.Code
	program.DurationYears = req.DurationYears

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}

	resp := dto.NewProgramResponse(program)
	return &resp, nil
}

// DeleteProgram deletes a program unless other records still reference it
func (s *programServiceImpl) DeleteProgram(ctx context.Context, id int64) error {
	hasRelations, err := s.programRepo.HasRelations(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking program relations: %w", err)
	}
	if hasRelations {
		return apperrors.ErrProgramHasRelations
	}

	return s.programRepo.Delete(ctx, id)
}
