package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/dberrors"
)

// AcademicYearRepository handles database operations for academic years
type AcademicYearRepository struct {
	db *pgxpool.Pool
}

// NewAcademicYearRepository creates a new AcademicYearRepository
func NewAcademicYearRepository(db *pgxpool.Pool) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

// Create creates a new academic year.
// When the year is flagged as current the flag is cleared on every other year first.
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if year.IsCurrent {
		if _, err := tx.Exec(ctx, `UPDATE academic_years SET is_current = FALSE WHERE is_current`); err != nil {
			return fmt.Errorf("error clearing current year flag: %w", err)
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO academic_years (name, start_date, end_date, is_current)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		year.Name, year.StartDate, year.EndDate, year.IsCurrent).Scan(&year.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "academic_years_name_key") {
			return apperrors.ErrAcademicYearAlreadyExists
		}
		return fmt.Errorf("error creating academic year: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByID retrieves an academic year by ID
func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	query := `
		SELECT id, name, start_date, end_date, is_current
		FROM academic_years
		WHERE id = $1
	`

	var year models.AcademicYear
	err := r.db.QueryRow(ctx, query, id).Scan(
		&year.ID,
		&year.Name,
		&year.StartDate,
		&year.EndDate,
		&year.IsCurrent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}

	return &year, nil
}

// GetAll retrieves all academic years ordered by start date, newest first
func (r *AcademicYearRepository) GetAll(ctx context.Context) ([]models.AcademicYear, error) {
	query := `
		SELECT id, name, start_date, end_date, is_current
		FROM academic_years
		ORDER BY start_date DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var years []models.AcademicYear
	for rows.Next() {
		var year models.AcademicYear
		if err := rows.Scan(
			&year.ID,
			&year.Name,
			&year.StartDate,
			&year.EndDate,
			&year.IsCurrent,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		years = append(years, year)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return years, nil
}

// Update updates an existing academic year, clearing the current flag elsewhere when set
func (r *AcademicYearRepository) Update(ctx context.Context, year *models.AcademicYear) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if year.IsCurrent {
		if _, err := tx.Exec(ctx, `UPDATE academic_years SET is_current = FALSE WHERE is_current AND id != $1`, year.ID); err != nil {
			return fmt.Errorf("error clearing current year flag: %w", err)
		}
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE academic_years
		SET name = $1, start_date = $2, end_date = $3, is_current = $4
		WHERE id = $5`,
		year.Name, year.StartDate, year.EndDate, year.IsCurrent, year.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "academic_years_name_key") {
			return apperrors.ErrAcademicYearAlreadyExists
		}
		return fmt.Errorf("error updating academic year: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}

	return tx.Commit(ctx)
}

// Delete deletes an academic year by ID
func (r *AcademicYearRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM academic_years WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error deleting academic year: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}

	return nil
}
