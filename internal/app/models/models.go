package models

// Role defines the user role type
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleLecturer Role = "LECTURER"
	RoleStudent  Role = "STUDENT"
)

// Term represents a semester term
type Term string

const (
	TermFall   Term = "FALL"
	TermSpring Term = "SPRING"
	TermSummer Term = "SUMMER"
)

// EnrollmentStatus classifies a student's membership in a section
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// AttendanceStatus classifies one student's attendance in a session
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceMethod records how an attendance record was produced
type AttendanceMethod string

const (
	MethodQR     AttendanceMethod = "qr"
	MethodManual AttendanceMethod = "manual"
)
