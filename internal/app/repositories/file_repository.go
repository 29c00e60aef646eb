package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/pkg/apperrors"
)

// FileRepository handles database operations for files
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Create creates a new file record
func (r *FileRepository) Create(ctx context.Context, file *models.File) (int64, error) {
	query := `
		INSERT INTO files (file_name, file_path, file_url, file_size, file_type, resource_type, resource_id, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		file.FileName,
		file.FilePath,
		file.FileURL,
		file.FileSize,
		file.FileType,
		file.ResourceType,
		file.ResourceID,
		file.UploadedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating file: %w", err)
	}

	return id, nil
}

// UpdateResourceID points a file at the resource it belongs to
func (r *FileRepository) UpdateResourceID(ctx context.Context, fileID, resourceID int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE files
		SET resource_id = $1, updated_at = NOW()
		WHERE id = $2`,
		resourceID, fileID)
	if err != nil {
		return fmt.Errorf("error updating file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}

	return nil
}

// Delete deletes a file record
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}

	return nil
}
