package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/logger"
)

// AuthorizationService answers ownership and role questions for the services
type AuthorizationService struct {
	userRepo       *repositories.UserRepository
	sessionRepo    *repositories.AttendanceSessionRepository
	assignmentRepo *repositories.CourseAssignmentRepository
	postRepo       *repositories.CommunityPostRepository
	profileRepo    *repositories.StudentProfileRepository
	enrollmentRepo *repositories.EnrollmentRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	userRepo *repositories.UserRepository,
	sessionRepo *repositories.AttendanceSessionRepository,
	assignmentRepo *repositories.CourseAssignmentRepository,
	postRepo *repositories.CommunityPostRepository,
	profileRepo *repositories.StudentProfileRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
) *AuthorizationService {
	return &AuthorizationService{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		assignmentRepo: assignmentRepo,
		postRepo:       postRepo,
		profileRepo:    profileRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// IsLecturer checks if the user holds the lecturer role
func (s *AuthorizationService) IsLecturer(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user in IsLecturer")
		return false, err
	}
	return user.Role == models.RoleLecturer, nil
}

// ValidateLecturer returns an error unless the user is a lecturer
func (s *AuthorizationService) ValidateLecturer(ctx context.Context, userID int64) error {
	isLecturer, err := s.IsLecturer(ctx, userID)
	if err != nil {
		return err
	}

	if !isLecturer {
		return apperrors.ErrNotALecturer
	}

	return nil
}

// ValidateTeachesCourse returns an error unless the lecturer has an assignment for the course
func (s *AuthorizationService) ValidateTeachesCourse(ctx context.Context, lecturerID, courseID int64) error {
	teaches, err := s.assignmentRepo.LecturerTeachesCourse(ctx, lecturerID, courseID)
	if err != nil {
		return fmt.Errorf("failed to check course assignment: %w", err)
	}

	if !teaches {
		return apperrors.ErrPermissionDenied
	}

	return nil
}

// ValidateCourseAccess returns an error unless the user may read a course's
// content. Lecturers must hold an assignment for the course and students must
// be enrolled in one of its sections. Admins pass regardless.
func (s *AuthorizationService) ValidateCourseAccess(ctx context.Context, userID int64, role models.Role, courseID int64) error {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleLecturer:
		return s.ValidateTeachesCourse(ctx, userID, courseID)
	default:
		profile, err := s.profileRepo.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to check student profile: %w", err)
		}
		if profile == nil {
			return apperrors.ErrStudentNotFound
		}

		enrolled, err := s.enrollmentRepo.IsEnrolledInCourse(ctx, profile.ID, courseID)
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return apperrors.ErrNotEnrolledInCourse
		}
		return nil
	}
}

// ValidateSessionOwnership returns an error unless the user created the session.
// Admins pass regardless of ownership.
func (s *AuthorizationService) ValidateSessionOwnership(ctx context.Context, sessionID, userID int64, role models.Role) error {
	session, err := s.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to check session ownership: %w", err)
	}
	if session == nil {
		return apperrors.ErrSessionNotFound
	}

	if role != models.RoleAdmin && session.LecturerID != userID {
		return apperrors.ErrPermissionDenied
	}

	return nil
}

// ValidatePostOwnership returns an error unless the user authored the post.
// Admins pass regardless of authorship.
func (s *AuthorizationService) ValidatePostOwnership(ctx context.Context, postID, userID int64, role models.Role) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to check post ownership: %w", err)
	}
	if post == nil {
		return apperrors.ErrPostNotFound
	}

	if role != models.RoleAdmin && post.AuthorID != userID {
		return apperrors.ErrPermissionDenied
	}

	return nil
}
