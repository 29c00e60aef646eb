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

// SemesterRepository handles database operations for semesters
type SemesterRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSemesterRepository creates a new SemesterRepository
func NewSemesterRepository(db *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new semester
func (r *SemesterRepository) Create(ctx context.Context, semester *models.Semester) error {
	query := `
		INSERT INTO semesters (academic_year_id, term, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		semester.AcademicYearID, semester.Term, semester.StartDate, semester.EndDate).Scan(&semester.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "semesters_year_term_key") {
			return apperrors.ErrSemesterAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAcademicYearNotFound
		}
		return fmt.Errorf("error creating semester: %w", err)
	}

	return nil
}

// GetByID retrieves a semester by ID together with its academic year
func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*models.Semester, error) {
	query := `
		SELECT s.id, s.academic_year_id, s.term, s.start_date, s.end_date,
			y.id, y.name, y.start_date, y.end_date, y.is_current
		FROM semesters s
		JOIN academic_years y ON y.id = s.academic_year_id
		WHERE s.id = $1
	`

	var semester models.Semester
	var year models.AcademicYear
	err := r.db.QueryRow(ctx, query, id).Scan(
		&semester.ID,
		&semester.AcademicYearID,
		&semester.Term,
		&semester.StartDate,
		&semester.EndDate,
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
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}

	semester.AcademicYear = &year
	return &semester, nil
}

// GetAll retrieves semesters, optionally filtered to one academic year
func (r *SemesterRepository) GetAll(ctx context.Context, academicYearID *int64) ([]models.Semester, error) {
	query := r.sb.Select(
		"s.id", "s.academic_year_id", "s.term", "s.start_date", "s.end_date",
		"y.id", "y.name", "y.start_date", "y.end_date", "y.is_current",
	).
		From("semesters s").
		Join("academic_years y ON y.id = s.academic_year_id").
		OrderBy("s.start_date DESC")

	if academicYearID != nil {
		query = query.Where(squirrel.Eq{"s.academic_year_id": *academicYearID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var semesters []models.Semester
	for rows.Next() {
		var semester models.Semester
		var year models.AcademicYear
		if err := rows.Scan(
			&semester.ID,
			&semester.AcademicYearID,
			&semester.Term,
			&semester.StartDate,
			&semester.EndDate,
			&year.ID,
			&year.Name,
			&year.StartDate,
			&year.EndDate,
			&year.IsCurrent,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		semester.AcademicYear = &year
		semesters = append(semesters, semester)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return semesters, nil
}

// Update updates an existing semester
func (r *SemesterRepository) Update(ctx context.Context, semester *models.Semester) error {
	query := `
		UPDATE semesters
		SET term = $1, start_date = $2, end_date = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		semester.Term, semester.StartDate, semester.EndDate, semester.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "semesters_year_term_key") {
			return apperrors.ErrSemesterAlreadyExists
		}
		return fmt.Errorf("error updating semester: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSemesterNotFound
	}

	return nil
}

// Delete deletes a semester by ID
func (r *SemesterRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM semesters WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error deleting semester: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSemesterNotFound
	}

	return nil
}
