package dto

// AttendanceSummary aggregates a student's attendance outcomes
type AttendanceSummary struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
}

// StudentDashboardResponse is the student landing page payload
type StudentDashboardResponse struct {
	Profile        StudentProfileResponse   `json:"profile"`
	Enrollments    []EnrollmentResponse     `json:"enrollments"`
	TodaysSessions []StudentSessionResponse `json:"todaysSessions"`
	Attendance     AttendanceSummary        `json:"attendance"`
}
