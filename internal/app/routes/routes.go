package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/idil/registrar/internal/app/controllers"
	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/middleware"
	"github.com/idil/registrar/internal/pkg/livefeed"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	programController *controllers.ProgramController,
	academicController *controllers.AcademicController,
	sectionController *controllers.SectionController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	enrollmentController *controllers.EnrollmentController,
	attendanceController *controllers.AttendanceController,
	materialController *controllers.MaterialController,
	courseworkController *controllers.CourseworkController,
	communityController *controllers.CommunityController,
	livefeedHandler *livefeed.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	// Every route below requires a valid token and a live account.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	authenticated.Use(authMiddleware.ActiveUserRequired())

	// Profile route
	authenticated.GET("/users/me", authController.Me)

	// Community posts (all authenticated users; authorship enforced in the service)
	posts := authenticated.Group("/community-posts")
	{
		posts.GET("", communityController.GetAllPosts)
		posts.GET("/:id", communityController.GetPostByID)
		posts.POST("", communityController.CreatePost)
		posts.PUT("/:id", communityController.UpdatePost)
		posts.DELETE("/:id", communityController.DeletePost)
	}

	// Course content reads (admin, teaching lecturer or enrolled student;
	// access resolved per course in the services)
	courseContent := authenticated.Group("/courses")
	{
		courseContent.GET("/:id/materials", materialController.GetCourseMaterials)
		courseContent.GET("/:id/coursework", courseworkController.GetCourseCoursework)
	}
	authenticated.GET("/materials/:id", materialController.GetMaterialByID)
	authenticated.GET("/coursework/:id", courseworkController.GetCourseworkByID)

	// --- Admin routes ---
	admin := authenticated.Group("")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		programs := admin.Group("/programs")
		{
			programs.GET("", programController.GetAllPrograms)
			programs.GET("/:id", programController.GetProgramByID)
			programs.POST("", programController.CreateProgram)
			programs.PUT("/:id", programController.UpdateProgram)
			programs.DELETE("/:id", programController.DeleteProgram)
		}

		academicYears := admin.Group("/academic-years")
		{
			academicYears.GET("", academicController.GetAllAcademicYears)
			academicYears.GET("/:id", academicController.GetAcademicYearByID)
			academicYears.POST("", academicController.CreateAcademicYear)
			academicYears.PUT("/:id", academicController.UpdateAcademicYear)
			academicYears.DELETE("/:id", academicController.DeleteAcademicYear)
			academicYears.GET("/:id/semesters", academicController.GetYearSemesters)
		}

		semesters := admin.Group("/semesters")
		{
			semesters.GET("", academicController.GetAllSemesters)
			semesters.GET("/:id", academicController.GetSemesterByID)
			semesters.POST("", academicController.CreateSemester)
			semesters.PUT("/:id", academicController.UpdateSemester)
			semesters.DELETE("/:id", academicController.DeleteSemester)
		}

		sections := admin.Group("/sections")
		{
			sections.GET("", sectionController.GetAllSections)
			sections.GET("/:id", sectionController.GetSectionByID)
			sections.POST("", sectionController.CreateSection)
			sections.PUT("/:id", sectionController.UpdateSection)
			sections.DELETE("/:id", sectionController.DeleteSection)
		}

		courses := admin.Group("/courses")
		{
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/:id", courseController.GetCourseByID)
			courses.POST("", courseController.CreateCourse)
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
			courses.GET("/:id/assignments", courseController.GetCourseAssignments)
			courses.GET("/:id/roster", courseController.GetCourseRoster)
		}

		assignments := admin.Group("/course-assignments")
		{
			assignments.POST("", courseController.CreateAssignment)
			assignments.PUT("/:id", courseController.UpdateAssignment)
			assignments.DELETE("/:id", courseController.DeleteAssignment)
		}

		students := admin.Group("/student-profiles")
		{
			students.GET("", studentController.GetAllStudents)
			students.GET("/:id", studentController.GetStudentByID)
			students.POST("", studentController.CreateStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		enrollments := admin.Group("/enrollments")
		{
			enrollments.GET("", enrollmentController.GetAllEnrollments)
			enrollments.GET("/:id", enrollmentController.GetEnrollmentByID)
			enrollments.POST("", enrollmentController.CreateEnrollment)
			enrollments.PUT("/:id/status", enrollmentController.UpdateEnrollmentStatus)
			enrollments.DELETE("/:id", enrollmentController.DeleteEnrollment)
		}
	}

	// --- Lecturer routes (admins may act on any course) ---
	lecturer := authenticated.Group("")
	lecturer.Use(authMiddleware.RoleRequired(models.RoleLecturer, models.RoleAdmin))
	{
		lecturer.GET("/lecturers/me/assignments", courseController.GetMyAssignments)

		sessions := lecturer.Group("/attendance-sessions")
		{
			sessions.GET("", attendanceController.GetMySessions)
			sessions.GET("/:id", attendanceController.GetSessionByID)
			sessions.POST("", attendanceController.CreateSession)
			sessions.PUT("/:id", attendanceController.UpdateSession)
			sessions.DELETE("/:id", attendanceController.DeleteSession)
			sessions.GET("/:id/qr", attendanceController.GetSessionQR)
			sessions.GET("/:id/records", attendanceController.GetSessionRecords)
			sessions.PUT("/:id/records/:studentId", attendanceController.MarkAttendance)

			// Live check-in feed over websocket
			sessions.GET("/:id/ws", livefeedHandler.HandleConnection)
		}

		lecturer.POST("/courses/:id/materials", materialController.CreateMaterial)
		lecturer.PUT("/materials/:id", materialController.UpdateMaterial)
		lecturer.DELETE("/materials/:id", materialController.DeleteMaterial)

		lecturer.POST("/coursework", courseworkController.CreateCoursework)
		lecturer.PUT("/coursework/:id", courseworkController.UpdateCoursework)
		lecturer.DELETE("/coursework/:id", courseworkController.DeleteCoursework)
	}

	// --- Student routes ---
	student := authenticated.Group("")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/students/me/dashboard", studentController.GetMyDashboard)
		student.GET("/students/me/sessions", studentController.GetMySessions)
		student.POST("/attendance/checkin", attendanceController.Checkin)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
