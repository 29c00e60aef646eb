package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/dberrors"
	"github.com/idil/registrar/internal/pkg/helpers"
)

// MaterialRepository handles database operations for course materials
type MaterialRepository struct {
	db *pgxpool.Pool
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create creates a new course material
func (r *MaterialRepository) Create(ctx context.Context, material *models.CourseMaterial) error {
	query := `
		INSERT INTO course_materials (course_id, lecturer_id, title, description, file_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		material.CourseID, material.LecturerID, material.Title, material.Description, material.FileID).
		Scan(&material.ID, &material.CreatedAt, &material.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating material: %w", err)
	}

	return nil
}

const materialSelect = `
	SELECT m.id, m.course_id, m.lecturer_id, m.title, m.description, m.file_id, m.created_at, m.updated_at,
		f.id, f.file_name, f.file_path, f.file_url, f.file_size, f.file_type,
		f.resource_type, f.resource_id, f.uploaded_by, f.created_at, f.updated_at
	FROM course_materials m
	LEFT JOIN files f ON f.id = m.file_id
`

func scanMaterial(row pgx.Row) (*models.CourseMaterial, error) {
	var material models.CourseMaterial
	var fileID *int64
	var fileName, filePath, fileURL, fileType, resourceType *string
	var fileSize, resourceID, uploadedBy *int64
	var fileCreatedAt, fileUpdatedAt *time.Time

	err := row.Scan(
		&material.ID,
		&material.CourseID,
		&material.LecturerID,
		&material.Title,
		&material.Description,
		&material.FileID,
		&material.CreatedAt,
		&material.UpdatedAt,
		&fileID,
		&fileName,
		&filePath,
		&fileURL,
		&fileSize,
		&fileType,
		&resourceType,
		&resourceID,
		&uploadedBy,
		&fileCreatedAt,
		&fileUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if fileID != nil {
		material.File = &models.File{
			ID:           *fileID,
			FileName:     *fileName,
			FilePath:     *filePath,
			FileURL:      *fileURL,
			FileSize:     *fileSize,
			FileType:     *fileType,
			ResourceType: models.FileType(*resourceType),
			UploadedBy:   *uploadedBy,
			CreatedAt:    *fileCreatedAt,
			UpdatedAt:    *fileUpdatedAt,
		}
		if resourceID != nil {
			material.File.ResourceID = *resourceID
		}
	}

	return &material, nil
}

// GetByID retrieves a material by ID with its file
func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*models.CourseMaterial, error) {
	material, err := scanMaterial(r.db.QueryRow(ctx, materialSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving material: %w", err)
	}

	return material, nil
}

// GetByCourse retrieves materials of a course with pagination, newest first
func (r *MaterialRepository) GetByCourse(ctx context.Context, courseID int64, page, pageSize int) ([]models.CourseMaterial, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	query := materialSelect + `
		WHERE m.course_id = $1
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, courseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var materials []models.CourseMaterial
	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		materials = append(materials, *material)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM course_materials WHERE course_id = $1`, courseID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting materials: %w", err)
	}

	return materials, total, nil
}

// Update updates the title and description of a material
func (r *MaterialRepository) Update(ctx context.Context, material *models.CourseMaterial) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE course_materials
		SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3`,
		material.Title, material.Description, material.ID)
	if err != nil {
		return fmt.Errorf("error updating material: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}

	return nil
}

// Delete deletes a material by ID
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting material: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}

	return nil
}
