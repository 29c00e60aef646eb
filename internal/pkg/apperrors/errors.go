package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Academic structure errors
var (
	ErrProgramNotFound      = errors.New("program not found")
	ErrProgramAlreadyExists = errors.New("program with this code or name already exists")
	ErrProgramHasRelations  = errors.New("program has associated data and cannot be deleted")

	ErrAcademicYearNotFound      = errors.New("academic year not found")
	ErrAcademicYearAlreadyExists = errors.New("academic year with this name already exists")

	ErrSemesterNotFound      = errors.New("semester not found")
	ErrSemesterAlreadyExists = errors.New("semester already exists for this academic year")

	ErrSectionNotFound      = errors.New("section not found")
	ErrSectionAlreadyExists = errors.New("section with this code already exists for the program and year")
)

// Course and assignment errors
var (
	ErrCourseNotFound          = errors.New("course not found")
	ErrCourseCodeAlreadyExists = errors.New("course with this code already exists")
	ErrCourseHasRelations      = errors.New("course has associated data and cannot be deleted")

	ErrAssignmentNotFound      = errors.New("course assignment not found")
	ErrAssignmentAlreadyExists = errors.New("course is already assigned to this program, year and semester")
	ErrNotALecturer            = errors.New("assigned user is not a lecturer")
)

// Student and enrollment errors
var (
	ErrStudentNotFound         = errors.New("student not found")
	ErrStudentNoAlreadyExists  = errors.New("student number already exists")
	ErrInvalidStudentNo        = errors.New("invalid student number format")
	ErrEnrollmentNotFound      = errors.New("enrollment not found")
	ErrAlreadyEnrolled         = errors.New("student is already enrolled in this section for the term")
	ErrEnrollmentNotActive     = errors.New("enrollment is not active")
	ErrSectionCapacityExceeded = errors.New("section capacity exceeded")
)

// Attendance errors
var (
	ErrSessionNotFound     = errors.New("attendance session not found")
	ErrSessionNotActive    = errors.New("attendance session is not active")
	ErrAlreadyCheckedIn    = errors.New("student already checked in to this session")
	ErrRecordNotFound      = errors.New("attendance record not found")
	ErrNotEnrolledInCourse = errors.New("student is not enrolled in this course")
)

// Content errors
var (
	ErrMaterialNotFound   = errors.New("course material not found")
	ErrCourseworkNotFound = errors.New("coursework not found")
	ErrPostNotFound       = errors.New("community post not found")
	ErrFileNotFound       = errors.New("file not found")
)

// NewResourceNotFoundError creates a custom not-found error with a message.
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a custom conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a custom permission-denied error with a message.
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a custom bad-request error with a message.
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is reports whether err matches target or any error in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError carries an underlying sentinel plus request-specific context.
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the underlying sentinel to errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError wrapping err.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails attaches context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode attaches an error code.
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
