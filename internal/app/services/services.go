// Package services holds the business logic between the HTTP controllers and
// the repositories. Each service validates input, enforces ownership and role
// rules, and maps repository results onto response DTOs.
//
// Services defined in this package:
//   - AuthService: login, token refresh, logout and the current-user lookup
//   - ProgramService: degree program management
//   - AcademicService: academic years and their semesters
//   - SectionService: program sections per academic year
//   - CourseService: courses, teaching assignments and rosters
//   - StudentService: student profiles and the student dashboard
//   - EnrollmentService: section enrollment lifecycle
//   - AttendanceService: attendance sessions, QR check-ins and records
//   - MaterialService: shared course documents
//   - CourseworkService: graded assignments
//   - CommunityService: the campus community board
package services
