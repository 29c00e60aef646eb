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

// AttendanceSessionRepository handles database operations for attendance sessions
type AttendanceSessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceSessionRepository creates a new AttendanceSessionRepository
func NewAttendanceSessionRepository(db *pgxpool.Pool) *AttendanceSessionRepository {
	return &AttendanceSessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new attendance session
func (r *AttendanceSessionRepository) Create(ctx context.Context, session *models.AttendanceSession) error {
	query := `
		INSERT INTO attendance_sessions (course_id, lecturer_id, title, session_date, start_time, end_time, qr_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		session.CourseID, session.LecturerID, session.Title,
		session.Date, session.StartTime, session.EndTime, session.QRToken).
		Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "attendance_sessions_qr_token_key") {
			return apperrors.ErrConflict
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating attendance session: %w", err)
	}

	return nil
}

// Dates and clock times are stored as DATE and TIME columns but handled as
// strings everywhere above this layer, so they are read back as text.
const sessionSelect = `
	SELECT s.id, s.course_id, s.lecturer_id, s.title,
		s.session_date::text, to_char(s.start_time, 'HH24:MI:SS'), to_char(s.end_time, 'HH24:MI:SS'),
		s.qr_token, s.created_at,
		c.id, c.program_id, c.code, c.name, c.description, c.credits
	FROM attendance_sessions s
	JOIN courses c ON c.id = s.course_id
`

func scanSession(row pgx.Row) (*models.AttendanceSession, error) {
	var session models.AttendanceSession
	var course models.Course

	err := row.Scan(
		&session.ID,
		&session.CourseID,
		&session.LecturerID,
		&session.Title,
		&session.Date,
		&session.StartTime,
		&session.EndTime,
		&session.QRToken,
		&session.CreatedAt,
		&course.ID,
		&course.ProgramID,
		&course.Code,
		&course.Name,
		&course.Description,
		&course.Credits,
	)
	if err != nil {
		return nil, err
	}

	session.Course = &course
	return &session, nil
}

// GetSessionByID retrieves a session by ID, or nil when it does not exist
func (r *AttendanceSessionRepository) GetSessionByID(ctx context.Context, id int64) (*models.AttendanceSession, error) {
	session, err := scanSession(r.db.QueryRow(ctx, sessionSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving attendance session: %w", err)
	}

	return session, nil
}

// GetSessionByToken retrieves a session by its QR token, or nil when it does not exist
func (r *AttendanceSessionRepository) GetSessionByToken(ctx context.Context, token string) (*models.AttendanceSession, error) {
	session, err := scanSession(r.db.QueryRow(ctx, sessionSelect+` WHERE s.qr_token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving attendance session: %w", err)
	}

	return session, nil
}

// GetByLecturer retrieves sessions created by a lecturer with optional filters,
// newest session first
func (r *AttendanceSessionRepository) GetByLecturer(ctx context.Context, lecturerID int64, courseID *int64, date *string) ([]models.AttendanceSession, error) {
	query := r.sb.Select(
		"s.id", "s.course_id", "s.lecturer_id", "s.title",
		"s.session_date::text", "to_char(s.start_time, 'HH24:MI:SS')", "to_char(s.end_time, 'HH24:MI:SS')",
		"s.qr_token", "s.created_at",
		"c.id", "c.program_id", "c.code", "c.name", "c.description", "c.credits",
	).
		From("attendance_sessions s").
		Join("courses c ON c.id = s.course_id").
		Where(squirrel.Eq{"s.lecturer_id": lecturerID})

	if courseID != nil {
		query = query.Where(squirrel.Eq{"s.course_id": *courseID})
	}
	if date != nil && *date != "" {
		query = query.Where("s.session_date = ?", *date)
	}

	query = query.OrderBy("s.session_date DESC", "s.start_time DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return r.querySessions(ctx, sql, args...)
}

// GetByCoursesOnDate retrieves every session for the given courses on one date,
// ordered by start time
func (r *AttendanceSessionRepository) GetByCoursesOnDate(ctx context.Context, courseIDs []int64, date string) ([]models.AttendanceSession, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	sql, args, err := r.sb.Select(
		"s.id", "s.course_id", "s.lecturer_id", "s.title",
		"s.session_date::text", "to_char(s.start_time, 'HH24:MI:SS')", "to_char(s.end_time, 'HH24:MI:SS')",
		"s.qr_token", "s.created_at",
		"c.id", "c.program_id", "c.code", "c.name", "c.description", "c.credits",
	).
		From("attendance_sessions s").
		Join("courses c ON c.id = s.course_id").
		Where(squirrel.Eq{"s.course_id": courseIDs}).
		Where("s.session_date = ?", date).
		OrderBy("s.start_time", "s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return r.querySessions(ctx, sql, args...)
}

func (r *AttendanceSessionRepository) querySessions(ctx context.Context, sql string, args ...interface{}) ([]models.AttendanceSession, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var sessions []models.AttendanceSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Update updates the title and schedule of a session
func (r *AttendanceSessionRepository) Update(ctx context.Context, session *models.AttendanceSession) error {
	query := `
		UPDATE attendance_sessions
		SET title = $1, session_date = $2, start_time = $3, end_time = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		session.Title, session.Date, session.StartTime, session.EndTime, session.ID)
	if err != nil {
		return fmt.Errorf("error updating attendance session: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}

	return nil
}

// Delete deletes a session by ID
func (r *AttendanceSessionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM attendance_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting attendance session: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}

	return nil
}
