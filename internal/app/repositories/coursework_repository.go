package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/dberrors"
)

// CourseworkRepository handles database operations for coursework
type CourseworkRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseworkRepository creates a new CourseworkRepository
func NewCourseworkRepository(db *pgxpool.Pool) *CourseworkRepository {
	return &CourseworkRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new coursework item
func (r *CourseworkRepository) Create(ctx context.Context, work *models.Coursework) error {
	query := `
		INSERT INTO coursework (course_id, lecturer_id, title, description, due_date, max_score)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		work.CourseID, work.LecturerID, work.Title, work.Description, work.DueDate, work.MaxScore).
		Scan(&work.ID, &work.CreatedAt, &work.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating coursework: %w", err)
	}

	return nil
}

// GetByID retrieves a coursework item by ID
func (r *CourseworkRepository) GetByID(ctx context.Context, id int64) (*models.Coursework, error) {
	query := `
		SELECT id, course_id, lecturer_id, title, description, due_date, max_score, created_at, updated_at
		FROM coursework
		WHERE id = $1
	`

	var work models.Coursework
	err := r.db.QueryRow(ctx, query, id).Scan(
		&work.ID,
		&work.CourseID,
		&work.LecturerID,
		&work.Title,
		&work.Description,
		&work.DueDate,
		&work.MaxScore,
		&work.CreatedAt,
		&work.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving coursework: %w", err)
	}

	return &work, nil
}

// GetByCourse retrieves coursework of a course with pagination, earliest due date first
func (r *CourseworkRepository) GetByCourse(ctx context.Context, courseID int64, page, pageSize int) ([]models.Coursework, int64, error) {
	offset := (page - 1) * pageSize

	sql, args, err := r.sb.Select(
		"id", "course_id", "lecturer_id", "title", "description",
		"due_date", "max_score", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("coursework").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("due_date ASC NULLS LAST", "id").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var items []models.Coursework
	var total int64

	for rows.Next() {
		var work models.Coursework
		if err := rows.Scan(
			&work.ID,
			&work.CourseID,
			&work.LecturerID,
			&work.Title,
			&work.Description,
			&work.DueDate,
			&work.MaxScore,
			&work.CreatedAt,
			&work.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		items = append(items, work)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Update updates an existing coursework item
func (r *CourseworkRepository) Update(ctx context.Context, work *models.Coursework) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE coursework
		SET title = $1, description = $2, due_date = $3, max_score = $4, updated_at = NOW()
		WHERE id = $5`,
		work.Title, work.Description, work.DueDate, work.MaxScore, work.ID)
	if err != nil {
		return fmt.Errorf("error updating coursework: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseworkNotFound
	}

	return nil
}

// Delete deletes a coursework item by ID
func (r *CourseworkRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM coursework WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting coursework: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseworkNotFound
	}

	return nil
}
