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

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (program_id, code, name, description, credits)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		course.ProgramID, course.Code, course.Name, course.Description, course.Credits).Scan(&course.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_program_code_key") {
			return apperrors.ErrCourseCodeAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID together with its program
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT c.id, c.program_id, c.code, c.name, c.description, c.credits,
			p.id, p.name, p.code, p.duration_years
		FROM courses c
		JOIN programs p ON p.id = c.program_id
		WHERE c.id = $1
	`

	var course models.Course
	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.ProgramID,
		&course.Code,
		&course.Name,
		&course.Description,
		&course.Credits,
		&program.ID,
		&program.Name,
		&program.Code,
		&program.DurationYears,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	course.Program = &program
	return &course, nil
}

// GetAll retrieves courses with filtering and pagination
func (r *CourseRepository) GetAll(ctx context.Context, programID *int64, search *string, page, pageSize int) ([]models.Course, int64, error) {
	query := r.sb.Select(
		"c.id", "c.program_id", "c.code", "c.name", "c.description", "c.credits",
		"p.id", "p.name", "p.code", "p.duration_years",
		"COUNT(*) OVER() AS total_count",
	).
		From("courses c").
		Join("programs p ON p.id = c.program_id")

	if programID != nil {
		query = query.Where(squirrel.Eq{"c.program_id": *programID})
	}
	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"c.code": pattern},
			squirrel.ILike{"c.name": pattern},
		})
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("c.code").Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	var total int64

	for rows.Next() {
		var course models.Course
		var program models.Program
		if err := rows.Scan(
			&course.ID,
			&course.ProgramID,
			&course.Code,
			&course.Name,
			&course.Description,
			&course.Credits,
			&program.ID,
			&program.Name,
			&program.Code,
			&program.DurationYears,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		course.Program = &program
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// HasRelations checks whether any assignments, materials or coursework reference the course
func (r *CourseRepository) HasRelations(ctx context.Context, id int64) (bool, error) {
	var has bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_assignments WHERE course_id = $1)
			OR EXISTS(SELECT 1 FROM course_materials WHERE course_id = $1)
			OR EXISTS(SELECT 1 FROM coursework WHERE course_id = $1)`,
		id).Scan(&has)

	if err != nil {
		return false, fmt.Errorf("error checking course relations: %w", err)
	}

	return has, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET code = $1, name = $2, description = $3, credits = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Code, course.Name, course.Description, course.Credits, course.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_program_code_key") {
			return apperrors.ErrCourseCodeAlreadyExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseHasRelations
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
