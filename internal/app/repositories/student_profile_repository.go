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

// StudentProfileRepository handles database operations for student profiles
type StudentProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentProfileRepository creates a new StudentProfileRepository
func NewStudentProfileRepository(db *pgxpool.Pool) *StudentProfileRepository {
	return &StudentProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateWithUser creates the user account and the student profile in one transaction
func (r *StudentProfileRepository) CreateWithUser(ctx context.Context, user *models.User, profile *models.StudentProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Email, user.Password, user.FirstName, user.LastName, user.Role, user.IsActive).Scan(&user.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	profile.UserID = user.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO student_profiles (user_id, student_no, program_id, year_level)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		profile.UserID, profile.StudentNo, profile.ProgramID, profile.YearLevel).Scan(&profile.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_student_no_key") {
			return apperrors.ErrStudentNoAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}

	return tx.Commit(ctx)
}

const studentProfileSelect = `
	SELECT sp.id, sp.user_id, sp.student_no, sp.program_id, sp.year_level,
		u.id, u.email, u.first_name, u.last_name, u.role, u.is_active, u.created_at, u.updated_at,
		p.id, p.name, p.code, p.duration_years
	FROM student_profiles sp
	JOIN users u ON u.id = sp.user_id
	JOIN programs p ON p.id = sp.program_id
`

func scanStudentProfile(row pgx.Row, extra ...interface{}) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	var user models.User
	var program models.Program

	dest := []interface{}{
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
		&program.ID,
		&program.Name,
		&program.Code,
		&program.DurationYears,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	profile.User = &user
	profile.Program = &program
	return &profile, nil
}

// GetByID retrieves a student profile by ID with its user and program
func (r *StudentProfileRepository) GetByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	profile, err := scanStudentProfile(r.db.QueryRow(ctx, studentProfileSelect+` WHERE sp.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return profile, nil
}

// GetByUserID retrieves a student profile by the owning user ID
func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	profile, err := scanStudentProfile(r.db.QueryRow(ctx, studentProfileSelect+` WHERE sp.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return profile, nil
}

// StudentNoExists checks if a student number is already taken
func (r *StudentProfileRepository) StudentNoExists(ctx context.Context, studentNo string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM student_profiles WHERE student_no = $1)`,
		studentNo).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student number: %w", err)
	}

	return exists, nil
}

// GetAll retrieves student profiles with filtering and pagination
func (r *StudentProfileRepository) GetAll(ctx context.Context, programID *int64, yearLevel *int, search *string, page, pageSize int) ([]models.StudentProfile, int64, error) {
	query := r.sb.Select(
		"sp.id", "sp.user_id", "sp.student_no", "sp.program_id", "sp.year_level",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role", "u.is_active", "u.created_at", "u.updated_at",
		"p.id", "p.name", "p.code", "p.duration_years",
		"COUNT(*) OVER() AS total_count",
	).
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Join("programs p ON p.id = sp.program_id")

	if programID != nil {
		query = query.Where(squirrel.Eq{"sp.program_id": *programID})
	}
	if yearLevel != nil {
		query = query.Where(squirrel.Eq{"sp.year_level": *yearLevel})
	}
	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"sp.student_no": pattern},
			squirrel.ILike{"u.first_name": pattern},
			squirrel.ILike{"u.last_name": pattern},
			squirrel.ILike{"u.email": pattern},
		})
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("sp.student_no").Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var profiles []models.StudentProfile
	var total int64

	for rows.Next() {
		profile, err := scanStudentProfile(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		profiles = append(profiles, *profile)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// Update updates the student profile and the owning user in one transaction
func (r *StudentProfileRepository) Update(ctx context.Context, profile *models.StudentProfile, user *models.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE student_profiles
		SET program_id = $1, year_level = $2
		WHERE id = $3`,
		profile.ProgramID, profile.YearLevel, profile.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	cmdTag, err = tx.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4`,
		user.FirstName, user.LastName, user.IsActive, user.ID)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return tx.Commit(ctx)
}

// Delete removes the student by deleting the owning user row.
// The profile and enrollments go with it through cascading foreign keys.
func (r *StudentProfileRepository) Delete(ctx context.Context, profileID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		DELETE FROM users
		WHERE id = (SELECT user_id FROM student_profiles WHERE id = $1)`,
		profileID)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
