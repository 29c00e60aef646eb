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
	"github.com/idil/registrar/internal/pkg/roster"
)

// CourseAssignmentRepository handles database operations for course assignments
type CourseAssignmentRepository struct {
	db *pgxpool.Pool
}

// NewCourseAssignmentRepository creates a new CourseAssignmentRepository
func NewCourseAssignmentRepository(db *pgxpool.Pool) *CourseAssignmentRepository {
	return &CourseAssignmentRepository{db: db}
}

// Create creates a new course assignment
func (r *CourseAssignmentRepository) Create(ctx context.Context, assignment *models.CourseAssignment) error {
	query := `
		INSERT INTO course_assignments (course_id, program_id, academic_year_id, semester_id, year_level, lecturer_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		assignment.CourseID, assignment.ProgramID, assignment.AcademicYearID,
		assignment.SemesterID, assignment.YearLevel, assignment.LecturerID).
		Scan(&assignment.ID, &assignment.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "course_assignments_offering_key") {
			return apperrors.ErrAssignmentAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating assignment: %w", err)
	}

	return nil
}

const assignmentSelect = `
	SELECT a.id, a.course_id, a.program_id, a.academic_year_id, a.semester_id,
		a.year_level, a.lecturer_id, a.created_at,
		c.id, c.program_id, c.code, c.name, c.description, c.credits,
		u.id, u.email, u.first_name, u.last_name
	FROM course_assignments a
	JOIN courses c ON c.id = a.course_id
	LEFT JOIN users u ON u.id = a.lecturer_id
`

func scanAssignment(row pgx.Row) (*models.CourseAssignment, error) {
	var assignment models.CourseAssignment
	var course models.Course
	var lecturerID *int64
	var lecturerEmail, lecturerFirst, lecturerLast *string

	err := row.Scan(
		&assignment.ID,
		&assignment.CourseID,
		&assignment.ProgramID,
		&assignment.AcademicYearID,
		&assignment.SemesterID,
		&assignment.YearLevel,
		&assignment.LecturerID,
		&assignment.CreatedAt,
		&course.ID,
		&course.ProgramID,
		&course.Code,
		&course.Name,
		&course.Description,
		&course.Credits,
		&lecturerID,
		&lecturerEmail,
		&lecturerFirst,
		&lecturerLast,
	)
	if err != nil {
		return nil, err
	}

	assignment.Course = &course
	if lecturerID != nil {
		assignment.Lecturer = &models.User{
			ID:        *lecturerID,
			Email:     *lecturerEmail,
			FirstName: *lecturerFirst,
			LastName:  *lecturerLast,
			Role:      models.RoleLecturer,
		}
	}

	return &assignment, nil
}

// GetByID retrieves an assignment by ID with its course and lecturer
func (r *CourseAssignmentRepository) GetByID(ctx context.Context, id int64) (*models.CourseAssignment, error) {
	assignment, err := scanAssignment(r.db.QueryRow(ctx, assignmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}

	return assignment, nil
}

// GetByCourse retrieves all assignments for a course
func (r *CourseAssignmentRepository) GetByCourse(ctx context.Context, courseID int64) ([]models.CourseAssignment, error) {
	rows, err := r.db.Query(ctx, assignmentSelect+` WHERE a.course_id = $1 ORDER BY a.id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var assignments []models.CourseAssignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		assignments = append(assignments, *assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// GetByLecturer retrieves assignments taught by a lecturer, optionally scoped to one semester
func (r *CourseAssignmentRepository) GetByLecturer(ctx context.Context, lecturerID int64, semesterID *int64) ([]models.CourseAssignment, error) {
	query := assignmentSelect + ` WHERE a.lecturer_id = $1`
	args := []interface{}{lecturerID}
	if semesterID != nil {
		query += ` AND a.semester_id = $2`
		args = append(args, *semesterID)
	}
	query += ` ORDER BY a.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var assignments []models.CourseAssignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		assignments = append(assignments, *assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// GetRosterKeys retrieves the audience tuples of every assignment for a course
func (r *CourseAssignmentRepository) GetRosterKeys(ctx context.Context, courseID int64) ([]roster.Assignment, error) {
	query := `
		SELECT course_id, program_id, academic_year_id, semester_id, year_level
		FROM course_assignments
		WHERE course_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var keys []roster.Assignment
	for rows.Next() {
		var key roster.Assignment
		if err := rows.Scan(
			&key.CourseID,
			&key.ProgramID,
			&key.AcademicYearID,
			&key.SemesterID,
			&key.YearLevel,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

// UpdateLecturer changes the lecturer on an assignment. A nil lecturer unassigns it.
func (r *CourseAssignmentRepository) UpdateLecturer(ctx context.Context, id int64, lecturerID *int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE course_assignments
		SET lecturer_id = $1
		WHERE id = $2`,
		lecturerID, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error updating assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// Delete deletes an assignment by ID
func (r *CourseAssignmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// LecturerTeachesCourse reports whether the lecturer has any assignment for the course
func (r *CourseAssignmentRepository) LecturerTeachesCourse(ctx context.Context, lecturerID, courseID int64) (bool, error) {
	var teaches bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_assignments WHERE lecturer_id = $1 AND course_id = $2)`,
		lecturerID, courseID).Scan(&teaches)

	if err != nil {
		return false, fmt.Errorf("error checking assignment: %w", err)
	}

	return teaches, nil
}
