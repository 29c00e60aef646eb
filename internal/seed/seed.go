package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/idil/registrar/internal/app/models"
	appRepos "github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
	pkgAuth "github.com/idil/registrar/internal/pkg/auth"
)

// Default admin credentials for a fresh installation. Change the password
// immediately after the first login.
const (
	defaultAdminEmail    = "admin@registrar.edu"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData seeds the admin account, the current academic year with
// its semesters and a starter program so a fresh database is usable.
// Individual failures are collected and logged, not fatal.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	programRepo := appRepos.NewProgramRepository(dbPool)
	yearRepo := appRepos.NewAcademicYearRepository(dbPool)
	semesterRepo := appRepos.NewSemesterRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Admin account --- //
	if _, err := userRepo.GetUserByEmail(ctx, defaultAdminEmail); err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Msg("Error checking for default admin user")
			finalErr = errors.Join(finalErr, err)
		} else {
			hashed, hashErr := pkgAuth.HashPassword(defaultAdminPassword)
			if hashErr != nil {
				lgr.Error().Err(hashErr).Msg("Error hashing default admin password")
				finalErr = errors.Join(finalErr, hashErr)
			} else {
				admin := &appModels.User{
					Email:     defaultAdminEmail,
					Password:  hashed,
					FirstName: "System",
					LastName:  "Administrator",
					Role:      appModels.RoleAdmin,
					IsActive:  true,
				}
				if _, createErr := userRepo.CreateUser(ctx, admin); createErr != nil && !errors.Is(createErr, apperrors.ErrEmailAlreadyExists) {
					lgr.Error().Err(createErr).Msg("Error creating default admin user")
					finalErr = errors.Join(finalErr, createErr)
				} else {
					lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin user created")
				}
			}
		}
	}

	// --- Current academic year and its semesters --- //
	year := &appModels.AcademicYear{
		Name:      "2026-2027",
		StartDate: time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, time.June, 18, 0, 0, 0, 0, time.UTC),
		IsCurrent: true,
	}
	err := yearRepo.Create(ctx, year)
	if err != nil && !errors.Is(err, apperrors.ErrAcademicYearAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating default academic year")
		finalErr = errors.Join(finalErr, err)
	} else if errors.Is(err, apperrors.ErrAcademicYearAlreadyExists) {
		years, getErr := yearRepo.GetAll(ctx)
		if getErr != nil {
			lgr.Error().Err(getErr).Msg("Error looking up existing academic year")
			finalErr = errors.Join(finalErr, getErr)
		} else {
			for i := range years {
				if years[i].Name == year.Name {
					year = &years[i]
					break
				}
			}
		}
	}

	if year.ID > 0 {
		semesters := []appModels.Semester{
			{
				AcademicYearID: year.ID,
				Term:           appModels.TermFall,
				StartDate:      time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
				EndDate:        time.Date(2027, time.January, 22, 0, 0, 0, 0, time.UTC),
			},
			{
				AcademicYearID: year.ID,
				Term:           appModels.TermSpring,
				StartDate:      time.Date(2027, time.February, 8, 0, 0, 0, 0, time.UTC),
				EndDate:        time.Date(2027, time.June, 18, 0, 0, 0, 0, time.UTC),
			},
		}
		for i := range semesters {
			if err := semesterRepo.Create(ctx, &semesters[i]); err != nil && !errors.Is(err, apperrors.ErrSemesterAlreadyExists) {
				lgr.Error().Err(err).Str("term", string(semesters[i].Term)).Msg("Error creating default semester")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	// --- Starter programs --- //
	programs := []appModels.Program{
		{Name: "Computer Science", Code: "CS", DurationYears: 4},
		{Name: "Software Engineering", Code: "SE", DurationYears: 4},
	}
	for i := range programs {
		if err := programRepo.Create(ctx, &programs[i]); err != nil && !errors.Is(err, apperrors.ErrProgramAlreadyExists) {
			lgr.Error().Err(err).Str("code", programs[i].Code).Msg("Error creating default program")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete")
	}
	return finalErr
}
