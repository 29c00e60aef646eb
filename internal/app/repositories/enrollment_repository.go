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
	"github.com/idil/registrar/internal/pkg/roster"
)

// EnrollmentRepository handles database operations for section enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new enrollment. The academic year is taken from the section.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.SectionEnrollment) error {
	query := `
		INSERT INTO section_enrollments (student_id, section_id, academic_year_id, semester_id, status)
		SELECT $1, s.id, s.academic_year_id, $3, $4
		FROM sections s
		WHERE s.id = $2
		RETURNING id, academic_year_id, enrolled_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		enrollment.StudentID, enrollment.SectionID, enrollment.SemesterID, enrollment.Status).
		Scan(&enrollment.ID, &enrollment.AcademicYearID, &enrollment.EnrolledAt, &enrollment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrSectionNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "section_enrollments_student_section_semester_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

const enrollmentSelect = `
	SELECT se.id, se.student_id, se.section_id, se.academic_year_id, se.semester_id,
		se.status, se.enrolled_at, se.updated_at,
		sp.id, sp.user_id, sp.student_no, sp.program_id, sp.year_level,
		u.id, u.email, u.first_name, u.last_name, u.role, u.is_active, u.created_at, u.updated_at,
		sec.id, sec.program_id, sec.academic_year_id, sec.code, sec.year_level, sec.capacity
	FROM section_enrollments se
	JOIN student_profiles sp ON sp.id = se.student_id
	JOIN users u ON u.id = sp.user_id
	JOIN sections sec ON sec.id = se.section_id
`

func scanEnrollment(row pgx.Row, extra ...interface{}) (*models.SectionEnrollment, error) {
	var enrollment models.SectionEnrollment
	var profile models.StudentProfile
	var user models.User
	var section models.Section

	dest := []interface{}{
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.SectionID,
		&enrollment.AcademicYearID,
		&enrollment.SemesterID,
		&enrollment.Status,
		&enrollment.EnrolledAt,
		&enrollment.UpdatedAt,
		&profile.ID,
		&profile.UserID,
		&profile.StudentNo,
		&profile.ProgramID,
		&profile.YearLevel,
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&section.ID,
		&section.ProgramID,
		&section.AcademicYearID,
		&section.Code,
		&section.YearLevel,
		&section.Capacity,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	profile.User = &user
	enrollment.Student = &profile
	enrollment.Section = &section
	return &enrollment, nil
}

// GetByID retrieves an enrollment by ID with its student and section
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.SectionEnrollment, error) {
	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, enrollmentSelect+` WHERE se.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, nil
}

// GetAll retrieves enrollments with filtering and pagination
func (r *EnrollmentRepository) GetAll(ctx context.Context, studentID, sectionID, semesterID *int64, status *models.EnrollmentStatus, page, pageSize int) ([]models.SectionEnrollment, int64, error) {
	query := r.sb.Select(
		"se.id", "se.student_id", "se.section_id", "se.academic_year_id", "se.semester_id",
		"se.status", "se.enrolled_at", "se.updated_at",
		"sp.id", "sp.user_id", "sp.student_no", "sp.program_id", "sp.year_level",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role", "u.is_active", "u.created_at", "u.updated_at",
		"sec.id", "sec.program_id", "sec.academic_year_id", "sec.code", "sec.year_level", "sec.capacity",
		"COUNT(*) OVER() AS total_count",
	).
		From("section_enrollments se").
		Join("student_profiles sp ON sp.id = se.student_id").
		Join("users u ON u.id = sp.user_id").
		Join("sections sec ON sec.id = se.section_id")

	if studentID != nil {
		query = query.Where(squirrel.Eq{"se.student_id": *studentID})
	}
	if sectionID != nil {
		query = query.Where(squirrel.Eq{"se.section_id": *sectionID})
	}
	if semesterID != nil {
		query = query.Where(squirrel.Eq{"se.semester_id": *semesterID})
	}
	if status != nil {
		query = query.Where(squirrel.Eq{"se.status": *status})
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("se.id").Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var enrollments []models.SectionEnrollment
	var total int64

	for rows.Next() {
		enrollment, err := scanEnrollment(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		enrollments = append(enrollments, *enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

// GetByStudent retrieves all enrollments of one student, newest first
func (r *EnrollmentRepository) GetByStudent(ctx context.Context, studentID int64, status *models.EnrollmentStatus) ([]models.SectionEnrollment, error) {
	query := enrollmentSelect + ` WHERE se.student_id = $1`
	args := []interface{}{studentID}
	if status != nil {
		query += ` AND se.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY se.enrolled_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var enrollments []models.SectionEnrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		enrollments = append(enrollments, *enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// UpdateStatus changes the status of an enrollment
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE section_enrollments
		SET status = $1, updated_at = NOW()
		WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Delete deletes an enrollment by ID
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM section_enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// GetRosterCandidates retrieves roster input rows for enrollments in the given semesters.
// Program, year level and section code come from the joined section. Rows keep
// enrollment insertion order.
func (r *EnrollmentRepository) GetRosterCandidates(ctx context.Context, semesterIDs []int64) ([]roster.Enrollment, error) {
	if len(semesterIDs) == 0 {
		return nil, nil
	}

	sql, args, err := r.sb.Select(
		"se.student_id", "sp.student_no", "u.first_name || ' ' || u.last_name",
		"sec.program_id", "se.academic_year_id", "se.semester_id", "sec.year_level",
		"sec.code", "se.status",
	).
		From("section_enrollments se").
		Join("student_profiles sp ON sp.id = se.student_id").
		Join("users u ON u.id = sp.user_id").
		Join("sections sec ON sec.id = se.section_id").
		Where(squirrel.Eq{"se.semester_id": semesterIDs}).
		OrderBy("se.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var candidates []roster.Enrollment
	for rows.Next() {
		var e roster.Enrollment
		if err := rows.Scan(
			&e.StudentID,
			&e.StudentNo,
			&e.FullName,
			&e.ProgramID,
			&e.AcademicYearID,
			&e.SemesterID,
			&e.YearLevel,
			&e.SectionCode,
			&e.Status,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		candidates = append(candidates, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}

// IsEnrolledInCourse reports whether the student has an active enrollment whose
// section matches any assignment of the course.
func (r *EnrollmentRepository) IsEnrolledInCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	var enrolled bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM course_assignments a
			JOIN section_enrollments se
				ON se.academic_year_id = a.academic_year_id
				AND se.semester_id = a.semester_id
			JOIN sections sec
				ON sec.id = se.section_id
				AND sec.program_id = a.program_id
				AND sec.year_level = a.year_level
			WHERE a.course_id = $1
				AND se.student_id = $2
				AND se.status = 'active'
		)`,
		courseID, studentID).Scan(&enrolled)

	if err != nil {
		return false, fmt.Errorf("error checking course enrollment: %w", err)
	}

	return enrolled, nil
}

// GetStudentCourseIDs retrieves the IDs of courses the student can currently attend,
// derived from active enrollments matched against course assignments.
func (r *EnrollmentRepository) GetStudentCourseIDs(ctx context.Context, studentID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT a.course_id
		FROM course_assignments a
		JOIN section_enrollments se
			ON se.academic_year_id = a.academic_year_id
			AND se.semester_id = a.semester_id
		JOIN sections sec
			ON sec.id = se.section_id
			AND sec.program_id = a.program_id
			AND sec.year_level = a.year_level
		WHERE se.student_id = $1 AND se.status = 'active'
		ORDER BY a.course_id`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var courseIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courseIDs = append(courseIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courseIDs, nil
}
