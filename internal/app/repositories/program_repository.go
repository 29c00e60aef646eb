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

// ProgramRepository handles database operations for degree programs
type ProgramRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new program
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	query := `
		INSERT INTO programs (name, code, duration_years)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, program.Name, program.Code, program.DurationYears).Scan(&program.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgramAlreadyExists
		}
		return fmt.Errorf("error creating program: %w", err)
	}

	return nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `
		SELECT id, name, code, duration_years
		FROM programs
		WHERE id = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&program.ID,
		&program.Name,
		&program.Code,
		&program.DurationYears,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}

// GetAll retrieves programs with optional search and pagination
func (r *ProgramRepository) GetAll(ctx context.Context, search *string, page, pageSize int) ([]models.Program, int64, error) {
	query := r.sb.Select("id", "name", "code", "duration_years", "COUNT(*) OVER() AS total_count").
		From("programs")

	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("code").Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var programs []models.Program
	var total int64

	for rows.Next() {
		var program models.Program
		if err := rows.Scan(
			&program.ID,
			&program.Name,
			&program.Code,
			&program.DurationYears,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		programs = append(programs, program)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return programs, total, nil
}

// ExistsByNameOrCode checks if another program already uses the name or code
func (r *ProgramRepository) ExistsByNameOrCode(ctx context.Context, name, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM programs WHERE (name = $1 OR code = $2) AND id != $3)`,
		name, code, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking program existence: %w", err)
	}

	return exists, nil
}

// HasRelations checks whether any sections, courses or students reference the program
func (r *ProgramRepository) HasRelations(ctx context.Context, id int64) (bool, error) {
	var has bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM sections WHERE program_id = $1)
			OR EXISTS(SELECT 1 FROM courses WHERE program_id = $1)
			OR EXISTS(SELECT 1 FROM student_profiles WHERE program_id = $1)`,
		id).Scan(&has)

	if err != nil {
		return false, fmt.Errorf("error checking program relations: %w", err)
	}

	return has, nil
}

// Update updates an existing program
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	query := `
		UPDATE programs
		SET name = $1, code = $2, duration_years = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		program.Name, program.Code, program.DurationYears, program.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgramAlreadyExists
		}
		return fmt.Errorf("error updating program: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	return nil
}

// Delete deletes a program by ID
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramHasRelations
		}
		return fmt.Errorf("error deleting program: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	return nil
}
