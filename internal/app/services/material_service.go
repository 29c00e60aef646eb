package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/idil/registrar/internal/app/auth"
	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/filestorage"
	"github.com/idil/registrar/internal/pkg/helpers"
	"github.com/idil/registrar/internal/pkg/logger"
)

// MaterialService defines the interface for course material operations
type MaterialService interface {
	GetCourseMaterials(ctx context.Context, courseID, userID int64, role models.Role, page, pageSize int) (*dto.CourseMaterialListResponse, error)
	GetMaterialByID(ctx context.Context, id, userID int64, role models.Role) (*dto.CourseMaterialResponse, error)
	CreateMaterial(ctx context.Context, userID int64, role models.Role, req *dto.CreateCourseMaterialRequest, fileHeader *multipart.FileHeader) (*dto.CourseMaterialResponse, error)
	UpdateMaterial(ctx context.Context, id, userID int64, role models.Role, req *dto.UpdateCourseMaterialRequest) (*dto.CourseMaterialResponse, error)
	DeleteMaterial(ctx context.Context, id, userID int64, role models.Role) error
}

type materialServiceImpl struct {
	materialRepo *repositories.MaterialRepository
	fileRepo     *repositories.FileRepository
	authzService *auth.AuthorizationService
	fileStorage  *filestorage.LocalStorage
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(
	materialRepo *repositories.MaterialRepository,
	fileRepo *repositories.FileRepository,
	authzService *auth.AuthorizationService,
	fileStorage *filestorage.LocalStorage,
) MaterialService {
	return &materialServiceImpl{
		materialRepo: materialRepo,
		fileRepo:     fileRepo,
		authzService: authzService,
		fileStorage:  fileStorage,
	}
}

// GetCourseMaterials retrieves a course's materials, newest first. Lecturers
// must teach the course and students must be enrolled in it.
func (s *materialServiceImpl) GetCourseMaterials(ctx context.Context, courseID, userID int64, role models.Role, page, pageSize int) (*dto.CourseMaterialListResponse, error) {
	if err := s.authzService.ValidateCourseAccess(ctx, userID, role, courseID); err != nil {
		return nil, err
	}

	materials, total, err := s.materialRepo.GetByCourse(ctx, courseID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting materials: %w", err)
	}

	responses := make([]dto.CourseMaterialResponse, 0, len(materials))
	for i := range materials {
		responses = append(responses, dto.NewCourseMaterialResponse(&materials[i]))
	}

	return &dto.CourseMaterialListResponse{
		Materials:      responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetMaterialByID retrieves a material the caller may read
func (s *materialServiceImpl) GetMaterialByID(ctx context.Context, id, userID int64, role models.Role) (*dto.CourseMaterialResponse, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting material: %w", err)
	}
	if material == nil {
		return nil, apperrors.ErrMaterialNotFound
	}

	if err := s.authzService.ValidateCourseAccess(ctx, userID, role, material.CourseID); err != nil {
		return nil, err
	}

	resp := dto.NewCourseMaterialResponse(material)
	return &resp, nil
}

// CreateMaterial stores the uploaded document and shares it with a course the
// caller teaches
func (s *materialServiceImpl) CreateMaterial(ctx context.Context, userID int64, role models.Role, req *dto.CreateCourseMaterialRequest, fileHeader *multipart.FileHeader) (*dto.CourseMaterialResponse, error) {
	if fileHeader == nil {
		return nil, apperrors.NewBadRequestError("a material file is required")
	}

	if role != models.RoleAdmin {
		if err := s.authzService.ValidateTeachesCourse(ctx, userID, req.CourseID); err != nil {
			return nil, err
		}
	}

	file, err := s.storeFile(ctx, fileHeader, userID)
	if err != nil {
		return nil, err
	}

	material := &models.CourseMaterial{
		CourseID:    req.CourseID,
		LecturerID:  userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		FileID:      &file.ID,
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		s.discardFile(ctx, file)
		return nil, err
	}

	// resource_id is bookkeeping, the material itself is already consistent
	if err := s.fileRepo.UpdateResourceID(ctx, file.ID, material.ID); err != nil {
		logger.Warn().Err(err).Int64("fileID", file.ID).Int64("materialID", material.ID).Msg("Failed to link file to material")
	} else {
		file.ResourceID = material.ID
	}

	material.File = file
	resp := dto.NewCourseMaterialResponse(material)
	return &resp, nil
}

// UpdateMaterial retitles one of the caller's materials. The attached file
// never changes, upload a new material to replace a document.
func (s *materialServiceImpl) UpdateMaterial(ctx context.Context, id, userID int64, role models.Role, req *dto.UpdateCourseMaterialRequest) (*dto.CourseMaterialResponse, error) {
	material, err := s.getOwnedMaterial(ctx, id, userID, role)
	if err != nil {
		return nil, err
	}

	material.Title = strings.TrimSpace(req.Title)
	material.Description = req.Description

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}

	resp := dto.NewCourseMaterialResponse(material)
	return &resp, nil
}

// DeleteMaterial removes one of the caller's materials along with its stored file
func (s *materialServiceImpl) DeleteMaterial(ctx context.Context, id, userID int64, role models.Role) error {
	material, err := s.getOwnedMaterial(ctx, id, userID, role)
	if err != nil {
		return err
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return err
	}

	if material.File != nil {
		s.discardFile(ctx, material.File)
	}

	return nil
}

// getOwnedMaterial loads a material and checks the caller may manage it.
// Admins pass regardless of ownership.
func (s *materialServiceImpl) getOwnedMaterial(ctx context.Context, id, userID int64, role models.Role) (*models.CourseMaterial, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting material: %w", err)
	}
	if material == nil {
		return nil, apperrors.ErrMaterialNotFound
	}
	if role != models.RoleAdmin && material.LecturerID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	return material, nil
}

// storeFile saves the upload to disk and records its metadata
func (s *materialServiceImpl) storeFile(ctx context.Context, fileHeader *multipart.FileHeader, uploadedBy int64) (*models.File, error) {
	fileURL, err := s.fileStorage.SaveFile(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	file := &models.File{
		FileName:     fileHeader.Filename,
		FilePath:     filepath.Base(fileURL),
		FileURL:      fileURL,
		FileSize:     fileHeader.Size,
		FileType:     fileHeader.Header.Get("Content-Type"),
		ResourceType: models.FileTypeCourseMaterial,
		UploadedBy:   uploadedBy,
	}

	fileID, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		_ = s.fileStorage.DeleteFile(file.FilePath)
		return nil, fmt.Errorf("error saving file metadata: %w", err)
	}
	file.ID = fileID

	return file, nil
}

// discardFile drops a file's metadata row and disk content, best effort
func (s *materialServiceImpl) discardFile(ctx context.Context, file *models.File) {
	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		logger.Warn().Err(err).Int64("fileID", file.ID).Msg("Failed to delete file record")
	}
	if err := s.fileStorage.DeleteFile(file.FilePath); err != nil {
		logger.Warn().Err(err).Str("path", file.FilePath).Msg("Failed to delete stored file")
	}
}
