package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idil/registrar/internal/app/auth"
	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/helpers"
	"github.com/idil/registrar/internal/pkg/livefeed"
	"github.com/idil/registrar/internal/pkg/qr"
	"github.com/idil/registrar/internal/pkg/schedule"
)

// AttendanceService defines the interface for attendance sessions, QR
// check-ins and attendance records
type AttendanceService interface {
	GetLecturerSessions(ctx context.Context, lecturerID int64, filter *dto.AttendanceSessionFilterRequest) (*dto.AttendanceSessionListResponse, error)
	GetSessionByID(ctx context.Context, sessionID, userID int64, role models.Role) (*dto.AttendanceSessionResponse, error)
	CreateSession(ctx context.Context, userID int64, role models.Role, req *dto.CreateAttendanceSessionRequest) (*dto.AttendanceSessionResponse, error)
	UpdateSession(ctx context.Context, sessionID, userID int64, role models.Role, req *dto.UpdateAttendanceSessionRequest) (*dto.AttendanceSessionResponse, error)
	DeleteSession(ctx context.Context, sessionID, userID int64, role models.Role) error

	GetSessionQR(ctx context.Context, sessionID, userID int64, role models.Role) ([]byte, error)
	GetSessionRecords(ctx context.Context, sessionID, userID int64, role models.Role) (*dto.AttendanceRecordListResponse, error)
	MarkAttendance(ctx context.Context, sessionID, studentID, userID int64, role models.Role, req *dto.OverrideAttendanceRequest) (*dto.AttendanceRecordResponse, error)

	Checkin(ctx context.Context, userID int64, req *dto.CheckinRequest) (*dto.CheckinResponse, error)
	GetStudentSessions(ctx context.Context, userID int64, date *string) (*dto.StudentSessionListResponse, error)
}

type attendanceServiceImpl struct {
	sessionRepo    *repositories.AttendanceSessionRepository
	recordRepo     *repositories.AttendanceRecordRepository
	profileRepo    *repositories.StudentProfileRepository
	enrollmentRepo *repositories.EnrollmentRepository
	authzService   *auth.AuthorizationService
	qrGenerator    *qr.Generator
	hub            *livefeed.Hub
	lateThreshold  time.Duration
}

// NewAttendanceService creates a new AttendanceService. Check-ins within
// lateThreshold of the session start are present, after it late.
func NewAttendanceService(
	sessionRepo *repositories.AttendanceSessionRepository,
	recordRepo *repositories.AttendanceRecordRepository,
	profileRepo *repositories.StudentProfileRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	authzService *auth.AuthorizationService,
	qrGenerator *qr.Generator,
	hub *livefeed.Hub,
	lateThreshold time.Duration,
) AttendanceService {
	return &attendanceServiceImpl{
		sessionRepo:    sessionRepo,
		recordRepo:     recordRepo,
		profileRepo:    profileRepo,
		enrollmentRepo: enrollmentRepo,
		authzService:   authzService,
		qrGenerator:    qrGenerator,
		hub:            hub,
		lateThreshold:  lateThreshold,
	}
}

// GetLecturerSessions retrieves the lecturer's sessions with their derived
// status. The status filter runs after the query because status is computed
// from the clock, so the page window is applied here rather than in SQL.
func (s *attendanceServiceImpl) GetLecturerSessions(ctx context.Context, lecturerID int64, filter *dto.AttendanceSessionFilterRequest) (*dto.AttendanceSessionListResponse, error) {
	sessions, err := s.sessionRepo.GetByLecturer(ctx, lecturerID, filter.CourseID, filter.Date)
	if err != nil {
		return nil, fmt.Errorf("error getting sessions: %w", err)
	}

	now := time.Now()
	matched := make([]dto.AttendanceSessionResponse, 0, len(sessions))
	for i := range sessions {
		status := schedule.Derive(sessions[i].Date, sessions[i].StartTime, sessions[i].EndTime, now)
		if filter.Status != nil && string(status) != *filter.Status {
			continue
		}
		matched = append(matched, dto.NewAttendanceSessionResponse(&sessions[i], status))
	}

	start := (filter.Page - 1) * filter.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &dto.AttendanceSessionListResponse{
		Sessions:       matched[start:end],
		PaginationInfo: helpers.NewPaginationInfo(int64(len(matched)), filter.Page, filter.PageSize),
	}, nil
}

// GetSessionByID retrieves one of the caller's sessions with derived status
func (s *attendanceServiceImpl) GetSessionByID(ctx context.Context, sessionID, userID int64, role models.Role) (*dto.AttendanceSessionResponse, error) {
	session, err := s.getOwnedSession(ctx, sessionID, userID, role)
	if err != nil {
		return nil, err
	}

	status := schedule.Derive(session.Date, session.StartTime, session.EndTime, time.Now())
	resp := dto.NewAttendanceSessionResponse(session, status)
	return &resp, nil
}

// CreateSession schedules an attendance session for a course the caller
// teaches and mints its check-in token
func (s *attendanceServiceImpl) CreateSession(ctx context.Context, userID int64, role models.Role, req *dto.CreateAttendanceSessionRequest) (*dto.AttendanceSessionResponse, error) {
	startTime, endTime, err := normalizeWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if role != models.RoleAdmin {
		if err := s.authzService.ValidateTeachesCourse(ctx, userID, req.CourseID); err != nil {
			return nil, err
		}
	}

	session := &models.AttendanceSession{
		CourseID:   req.CourseID,
		LecturerID: userID,
		Title:      strings.TrimSpace(req.Title),
		Date:       req.Date,
		StartTime:  startTime,
		EndTime:    endTime,
		QRToken:    uuid.New().String(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	status := schedule.Derive(session.Date, session.StartTime, session.EndTime, time.Now())
	resp := dto.NewAttendanceSessionResponse(session, status)
	return &resp, nil
}

// UpdateSession reschedules or retitles one of the caller's sessions
func (s *attendanceServiceImpl) UpdateSession(ctx context.Context, sessionID, userID int64, role models.Role, req *dto.UpdateAttendanceSessionRequest) (*dto.AttendanceSessionResponse, error) {
	startTime, endTime, err := normalizeWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	session, err := s.getOwnedSession(ctx, sessionID, userID, role)
	if err != nil {
		return nil, err
	}

	session.Title = strings.TrimSpace(req.Title)
	session.Date = req.Date
	session.StartTime = startTime
	session.EndTime = endTime

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	status := schedule.Derive(session.Date, session.StartTime, session.EndTime, time.Now())
	resp := dto.NewAttendanceSessionResponse(session, status)
	return &resp, nil
}

// DeleteSession removes one of the caller's sessions along with its records
func (s *attendanceServiceImpl) DeleteSession(ctx context.Context, sessionID, userID int64, role models.Role) error {
	if err := s.authzService.ValidateSessionOwnership(ctx, sessionID, userID, role); err != nil {
		return err
	}

	return s.sessionRepo.Delete(ctx, sessionID)
}

// GetSessionQR renders the PNG QR code students scan to check in
func (s *attendanceServiceImpl) GetSessionQR(ctx context.Context, sessionID, userID int64, role models.Role) ([]byte, error) {
	session, err := s.getOwnedSession(ctx, sessionID, userID, role)
	if err != nil {
		return nil, err
	}

	png, err := s.qrGenerator.CheckinPNG(session.QRToken)
	if err != nil {
		return nil, fmt.Errorf("error rendering session qr code: %w", err)
	}

	return png, nil
}

// GetSessionRecords retrieves a session's attendance records with student info
func (s *attendanceServiceImpl) GetSessionRecords(ctx context.Context, sessionID, userID int64, role models.Role) (*dto.AttendanceRecordListResponse, error) {
	if err := s.authzService.ValidateSessionOwnership(ctx, sessionID, userID, role); err != nil {
		return nil, err
	}

	records, err := s.recordRepo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error getting attendance records: %w", err)
	}

	responses := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, dto.NewAttendanceRecordResponse(&records[i]))
	}

	return &dto.AttendanceRecordListResponse{
		SessionID: sessionID,
		Records:   responses,
		Total:     len(responses),
	}, nil
}

// MarkAttendance manually sets a student's outcome for a session, creating
// the record when the student never checked in
func (s *attendanceServiceImpl) MarkAttendance(ctx context.Context, sessionID, studentID, userID int64, role models.Role, req *dto.OverrideAttendanceRequest) (*dto.AttendanceRecordResponse, error) {
	session, err := s.getOwnedSession(ctx, sessionID, userID, role)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	if profile == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	enrolled, err := s.enrollmentRepo.IsEnrolledInCourse(ctx, studentID, session.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if !enrolled {
		return nil, apperrors.ErrNotEnrolledInCourse
	}

	status := models.AttendanceStatus(req.Status)

	record, err := s.recordRepo.GetBySessionAndStudent(ctx, sessionID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error getting attendance record: %w", err)
	}
	if record == nil {
		record = &models.AttendanceRecord{
			SessionID: sessionID,
			StudentID: studentID,
			Status:    status,
			Method:    models.MethodManual,
			Note:      req.Note,
		}
		if err := s.recordRepo.Create(ctx, record); err != nil {
			return nil, err
		}
	} else {
		if err := s.recordRepo.UpdateStatus(ctx, record.ID, status, req.Note); err != nil {
			return nil, err
		}
		record.Status = status
		record.Note = req.Note
		record.Method = models.MethodManual
	}

	record.Student = profile
	s.publishEvent(livefeed.EventOverride, record)

	resp := dto.NewAttendanceRecordResponse(record)
	return &resp, nil
}

// Checkin records a student's QR check-in. The session must be active, the
// student enrolled in its course, and the outcome is present within the late
// threshold of the start time and late after it.
func (s *attendanceServiceImpl) Checkin(ctx context.Context, userID int64, req *dto.CheckinRequest) (*dto.CheckinResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting student profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	session, err := s.sessionRepo.GetSessionByToken(ctx, strings.TrimSpace(req.Token))
	if err != nil {
		return nil, fmt.Errorf("error getting session: %w", err)
	}
	if session == nil {
		return nil, apperrors.ErrSessionNotFound
	}

	now := time.Now()
	if schedule.Derive(session.Date, session.StartTime, session.EndTime, now) != schedule.StatusActive {
		return nil, apperrors.ErrSessionNotActive
	}

	enrolled, err := s.enrollmentRepo.IsEnrolledInCourse(ctx, profile.ID, session.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if !enrolled {
		return nil, apperrors.ErrNotEnrolledInCourse
	}

	start, err := schedule.SessionStart(session.Date, session.StartTime)
	if err != nil {
		return nil, fmt.Errorf("error parsing session start: %w", err)
	}
	status := models.AttendancePresent
	if now.After(start.Add(s.lateThreshold)) {
		status = models.AttendanceLate
	}

	record := &models.AttendanceRecord{
		SessionID: session.ID,
		StudentID: profile.ID,
		Status:    status,
		Method:    models.MethodQR,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	record.Student = profile
	s.publishEvent(livefeed.EventCheckin, record)

	return &dto.CheckinResponse{
		SessionID:  session.ID,
		Status:     string(status),
		RecordedAt: record.RecordedAt,
	}, nil
}

// GetStudentSessions retrieves the student's sessions for one day (today by
// default) across all enrolled courses, annotated with their own outcome
func (s *attendanceServiceImpl) GetStudentSessions(ctx context.Context, userID int64, date *string) (*dto.StudentSessionListResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting student profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	now := time.Now()
	day := now.Format("2006-01-02")
	if date != nil && *date != "" {
		if _, err := time.Parse("2006-01-02", *date); err != nil {
			return nil, apperrors.NewBadRequestError("date must be formatted YYYY-MM-DD")
		}
		day = *date
	}

	responses := make([]dto.StudentSessionResponse, 0)

	courseIDs, err := s.enrollmentRepo.GetStudentCourseIDs(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("error getting enrolled courses: %w", err)
	}
	if len(courseIDs) > 0 {
		sessions, err := s.sessionRepo.GetByCoursesOnDate(ctx, courseIDs, day)
		if err != nil {
			return nil, fmt.Errorf("error getting sessions: %w", err)
		}

		sessionIDs := make([]int64, 0, len(sessions))
		for i := range sessions {
			sessionIDs = append(sessionIDs, sessions[i].ID)
		}
		statuses, err := s.recordRepo.GetStudentStatuses(ctx, sessionIDs, profile.ID)
		if err != nil {
			return nil, fmt.Errorf("error getting attendance records: %w", err)
		}

		for i := range sessions {
			status := schedule.Derive(sessions[i].Date, sessions[i].StartTime, sessions[i].EndTime, now)
			resp := dto.StudentSessionResponse{
				AttendanceSessionResponse: dto.NewAttendanceSessionResponse(&sessions[i], status),
			}
			if recorded, ok := statuses[sessions[i].ID]; ok {
				mine := string(recorded)
				resp.MyStatus = &mine
			}
			responses = append(responses, resp)
		}
	}

	return &dto.StudentSessionListResponse{
		Date:     day,
		Sessions: responses,
		Total:    len(responses),
	}, nil
}

// getOwnedSession loads a session and checks the caller may manage it.
// Admins pass regardless of ownership.
func (s *attendanceServiceImpl) getOwnedSession(ctx context.Context, sessionID, userID int64, role models.Role) (*models.AttendanceSession, error) {
	session, err := s.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error getting session: %w", err)
	}
	if session == nil {
		return nil, apperrors.ErrSessionNotFound
	}
	if role != models.RoleAdmin && session.LecturerID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	return session, nil
}

// publishEvent pushes a record to everyone watching the session's live feed
func (s *attendanceServiceImpl) publishEvent(eventType string, record *models.AttendanceRecord) {
	event := &livefeed.Event{
		Type:       eventType,
		SessionID:  record.SessionID,
		RecordID:   record.ID,
		StudentID:  record.StudentID,
		Status:     string(record.Status),
		Method:     string(record.Method),
		RecordedAt: record.RecordedAt,
	}
	if record.Student != nil {
		event.StudentNo = record.Student.StudentNo
		if record.Student.User != nil {
			event.FullName = record.Student.User.FullName()
		}
	}

	s.hub.Publish(event)
}

// normalizeWindow pads the session times to HH:MM:SS and checks their order
func normalizeWindow(startTime, endTime string) (string, string, error) {
	start, err := normalizeClock(startTime)
	if err != nil {
		return "", "", err
	}
	end, err := normalizeClock(endTime)
	if err != nil {
		return "", "", err
	}
	if end <= start {
		return "", "", apperrors.NewBadRequestError("end time must be after start time")
	}
	return start, end, nil
}

func normalizeClock(value string) (string, error) {
	normalized := schedule.NormalizeTime(strings.TrimSpace(value))
	if _, err := time.Parse("15:04:05", normalized); err != nil {
		return "", apperrors.NewBadRequestError(fmt.Sprintf("%q is not a valid HH:MM or HH:MM:SS time", value))
	}
	return normalized, nil
}
