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

// SectionRepository handles database operations for sections
type SectionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSectionRepository creates a new SectionRepository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new section
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	query := `
		INSERT INTO sections (program_id, academic_year_id, code, year_level, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		section.ProgramID, section.AcademicYearID, section.Code, section.YearLevel, section.Capacity).Scan(&section.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "sections_program_year_level_code_key") {
			return apperrors.ErrSectionAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating section: %w", err)
	}

	return nil
}

// GetByID retrieves a section by ID together with its program
func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	query := `
		SELECT s.id, s.program_id, s.academic_year_id, s.code, s.year_level, s.capacity,
			p.id, p.name, p.code, p.duration_years
		FROM sections s
		JOIN programs p ON p.id = s.program_id
		WHERE s.id = $1
	`

	var section models.Section
	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&section.ID,
		&section.ProgramID,
		&section.AcademicYearID,
		&section.Code,
		&section.YearLevel,
		&section.Capacity,
		&program.ID,
		&program.Name,
		&program.Code,
		&program.DurationYears,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}

	section.Program = &program
	return &section, nil
}

// GetAll retrieves sections with filtering and pagination
func (r *SectionRepository) GetAll(ctx context.Context, programID, academicYearID *int64, yearLevel *int, page, pageSize int) ([]models.Section, int64, error) {
	query := r.sb.Select(
		"s.id", "s.program_id", "s.academic_year_id", "s.code", "s.year_level", "s.capacity",
		"p.id", "p.name", "p.code", "p.duration_years",
		"COUNT(*) OVER() AS total_count",
	).
		From("sections s").
		Join("programs p ON p.id = s.program_id")

	if programID != nil {
		query = query.Where(squirrel.Eq{"s.program_id": *programID})
	}
	if academicYearID != nil {
		query = query.Where(squirrel.Eq{"s.academic_year_id": *academicYearID})
	}
	if yearLevel != nil {
		query = query.Where(squirrel.Eq{"s.year_level": *yearLevel})
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("p.code", "s.year_level", "s.code").
		Limit(uint64(pageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	var total int64

	for rows.Next() {
		var section models.Section
		var program models.Program
		if err := rows.Scan(
			&section.ID,
			&section.ProgramID,
			&section.AcademicYearID,
			&section.Code,
			&section.YearLevel,
			&section.Capacity,
			&program.ID,
			&program.Name,
			&program.Code,
			&program.DurationYears,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		section.Program = &program
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return sections, total, nil
}

// CountActiveEnrollments counts active enrollments for a section in a semester
func (r *SectionRepository) CountActiveEnrollments(ctx context.Context, sectionID, semesterID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM section_enrollments
		WHERE section_id = $1 AND semester_id = $2 AND status = 'active'`,
		sectionID, semesterID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	return count, nil
}

// Update updates an existing section
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	query := `
		UPDATE sections
		SET code = $1, year_level = $2, capacity = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		section.Code, section.YearLevel, section.Capacity, section.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "sections_program_year_level_code_key") {
			return apperrors.ErrSectionAlreadyExists
		}
		return fmt.Errorf("error updating section: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

// Delete deletes a section by ID
func (r *SectionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error deleting section: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}
