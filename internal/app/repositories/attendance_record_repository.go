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

// AttendanceRecordRepository handles database operations for attendance records
type AttendanceRecordRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRecordRepository creates a new AttendanceRecordRepository
func NewAttendanceRecordRepository(db *pgxpool.Pool) *AttendanceRecordRepository {
	return &AttendanceRecordRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new attendance record. One record per student per session.
func (r *AttendanceRecordRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (session_id, student_id, status, method, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, recorded_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		record.SessionID, record.StudentID, record.Status, record.Method, record.Note).
		Scan(&record.ID, &record.RecordedAt, &record.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "attendance_records_session_student_key") {
			return apperrors.ErrAlreadyCheckedIn
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating attendance record: %w", err)
	}

	return nil
}

const recordSelect = `
	SELECT r.id, r.session_id, r.student_id, r.status, r.method, r.note, r.recorded_at, r.updated_at,
		sp.id, sp.user_id, sp.student_no, sp.program_id, sp.year_level,
		u.id, u.email, u.first_name, u.last_name, u.role, u.is_active, u.created_at, u.updated_at
	FROM attendance_records r
	JOIN student_profiles sp ON sp.id = r.student_id
	JOIN users u ON u.id = sp.user_id
`

func scanRecord(row pgx.Row) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	var profile models.StudentProfile
	var user models.User

	err := row.Scan(
		&record.ID,
		&record.SessionID,
		&record.StudentID,
		&record.Status,
		&record.Method,
		&record.Note,
		&record.RecordedAt,
		&record.UpdatedAt,
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
	)
	if err != nil {
		return nil, err
	}

	profile.User = &user
	record.Student = &profile
	return &record, nil
}

// GetBySessionAndStudent retrieves the record of one student in one session,
// or nil when the student has not checked in
func (r *AttendanceRecordRepository) GetBySessionAndStudent(ctx context.Context, sessionID, studentID int64) (*models.AttendanceRecord, error) {
	record, err := scanRecord(r.db.QueryRow(ctx,
		recordSelect+` WHERE r.session_id = $1 AND r.student_id = $2`, sessionID, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}

	return record, nil
}

// GetBySession retrieves all records of a session ordered by student number
func (r *AttendanceRecordRepository) GetBySession(ctx context.Context, sessionID int64) ([]models.AttendanceRecord, error) {
	rows, err := r.db.Query(ctx, recordSelect+` WHERE r.session_id = $1 ORDER BY sp.student_no`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// UpdateStatus overrides the status and note of a record. An override is a
// manual act, so the method flips to manual as well.
func (r *AttendanceRecordRepository) UpdateStatus(ctx context.Context, id int64, status models.AttendanceStatus, note *string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE attendance_records
		SET status = $1, note = $2, method = $3, updated_at = NOW()
		WHERE id = $4`,
		status, note, models.MethodManual, id)
	if err != nil {
		return fmt.Errorf("error updating attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}

	return nil
}

// GetStudentStatuses retrieves the student's status per session for the given sessions
func (r *AttendanceRecordRepository) GetStudentStatuses(ctx context.Context, sessionIDs []int64, studentID int64) (map[int64]models.AttendanceStatus, error) {
	statuses := make(map[int64]models.AttendanceStatus)
	if len(sessionIDs) == 0 {
		return statuses, nil
	}

	sql, args, err := r.sb.Select("session_id", "status").
		From("attendance_records").
		Where(squirrel.Eq{"session_id": sessionIDs, "student_id": studentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID int64
		var status models.AttendanceStatus
		if err := rows.Scan(&sessionID, &status); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		statuses[sessionID] = status
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// CountByStatusForStudent counts the student's records grouped by status
func (r *AttendanceRecordRepository) CountByStatusForStudent(ctx context.Context, studentID int64) (map[models.AttendanceStatus]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*)
		FROM attendance_records
		WHERE student_id = $1
		GROUP BY status`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AttendanceStatus]int)
	for rows.Next() {
		var status models.AttendanceStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
