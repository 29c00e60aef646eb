package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/idil/registrar/docs" // Import generated swagger docs
	appAuth "github.com/idil/registrar/internal/app/auth"
	appControllers "github.com/idil/registrar/internal/app/controllers"
	appMigrations "github.com/idil/registrar/internal/app/migrations"
	appRepos "github.com/idil/registrar/internal/app/repositories"
	appRoutes "github.com/idil/registrar/internal/app/routes"
	appServices "github.com/idil/registrar/internal/app/services"
	"github.com/idil/registrar/internal/config"
	"github.com/idil/registrar/internal/db"
	appMiddleware "github.com/idil/registrar/internal/middleware"
	pkgAuth "github.com/idil/registrar/internal/pkg/auth"
	"github.com/idil/registrar/internal/pkg/filestorage"
	"github.com/idil/registrar/internal/pkg/helpers"
	"github.com/idil/registrar/internal/pkg/livefeed"
	"github.com/idil/registrar/internal/pkg/logger"
	"github.com/idil/registrar/internal/pkg/qr"
	"github.com/idil/registrar/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	ProgramService    appServices.ProgramService
	AcademicService   appServices.AcademicService
	SectionService    appServices.SectionService
	CourseService     appServices.CourseService
	StudentService    appServices.StudentService
	EnrollmentService appServices.EnrollmentService
	AttendanceService appServices.AttendanceService
	MaterialService   appServices.MaterialService
	CourseworkService appServices.CourseworkService
	CommunityService  appServices.CommunityService

	AuthController       *appControllers.AuthController
	ProgramController    *appControllers.ProgramController
	AcademicController   *appControllers.AcademicController
	SectionController    *appControllers.SectionController
	CourseController     *appControllers.CourseController
	StudentController    *appControllers.StudentController
	EnrollmentController *appControllers.EnrollmentController
	AttendanceController *appControllers.AttendanceController
	MaterialController   *appControllers.MaterialController
	CourseworkController *appControllers.CourseworkController
	CommunityController  *appControllers.CommunityController

	AuthMiddleware  *appMiddleware.AuthMiddleware
	Repos           *appRepos.Repositories
	JWTService      *pkgAuth.JWTService
	AuthzService    *appAuth.AuthorizationService
	Hub             *livefeed.Hub
	LivefeedHandler *livefeed.Handler
	Logger          zerolog.Logger
	FileStorage     *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Sweep expired and stale revoked refresh tokens for the lifetime of the process.
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := deps.Repos.TokenRepository.CleanupExpiredTokens(ctx); err != nil {
				lgr.Error().Err(err).Msg("Refresh token cleanup failed")
			}
			cancel()
		}
	}()

	// Initialize file storage. The base URL must match the static file
	// serving endpoint configured in the server.
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.UploadDir, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.AttendanceSessionRepository,
		deps.Repos.CourseAssignmentRepository,
		deps.Repos.CommunityPostRepository,
		deps.Repos.StudentProfileRepository,
		deps.Repos.EnrollmentRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// The live feed hub runs for the lifetime of the process.
	deps.Hub = livefeed.NewHub(lgr)
	go deps.Hub.Run()

	qrGenerator := qr.NewGenerator(cfg.Attendance.CheckinURL, cfg.Attendance.QRSize)
	lateThreshold := helpers.ParseDuration(cfg.Attendance.LateThreshold, 15*time.Minute)

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.StudentProfileRepository,
		deps.JWTService,
		lgr,
	)
	deps.ProgramService = appServices.NewProgramService(deps.Repos.ProgramRepository)
	deps.AcademicService = appServices.NewAcademicService(
		deps.Repos.AcademicYearRepository,
		deps.Repos.SemesterRepository,
	)
	deps.SectionService = appServices.NewSectionService(
		deps.Repos.SectionRepository,
		deps.Repos.ProgramRepository,
		deps.Repos.AcademicYearRepository,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.ProgramRepository,
		deps.Repos.AcademicYearRepository,
		deps.Repos.SemesterRepository,
		deps.Repos.CourseAssignmentRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.UserRepository,
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentProfileRepository,
		deps.Repos.ProgramRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.AttendanceSessionRepository,
		deps.Repos.AttendanceRecordRepository,
		deps.Repos.TokenRepository,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.StudentProfileRepository,
		deps.Repos.SectionRepository,
		deps.Repos.SemesterRepository,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.AttendanceSessionRepository,
		deps.Repos.AttendanceRecordRepository,
		deps.Repos.StudentProfileRepository,
		deps.Repos.EnrollmentRepository,
		deps.AuthzService,
		qrGenerator,
		deps.Hub,
		lateThreshold,
	)
	deps.MaterialService = appServices.NewMaterialService(
		deps.Repos.MaterialRepository,
		deps.Repos.FileRepository,
		deps.AuthzService,
		deps.FileStorage,
	)
	deps.CourseworkService = appServices.NewCourseworkService(
		deps.Repos.CourseworkRepository,
		deps.AuthzService,
	)
	deps.CommunityService = appServices.NewCommunityService(
		deps.Repos.CommunityPostRepository,
		deps.AuthzService,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	// Initialize controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.ProgramController = appControllers.NewProgramController(deps.ProgramService)
	deps.AcademicController = appControllers.NewAcademicController(deps.AcademicService)
	deps.SectionController = appControllers.NewSectionController(deps.SectionService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.AttendanceService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.MaterialController = appControllers.NewMaterialController(deps.MaterialService)
	deps.CourseworkController = appControllers.NewCourseworkController(deps.CourseworkService)
	deps.CommunityController = appControllers.NewCommunityController(deps.CommunityService)

	deps.LivefeedHandler = livefeed.NewHandler(deps.Hub, deps.Repos.AttendanceSessionRepository, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProgramController,
		deps.AcademicController,
		deps.SectionController,
		deps.CourseController,
		deps.StudentController,
		deps.EnrollmentController,
		deps.AttendanceController,
		deps.MaterialController,
		deps.CourseworkController,
		deps.CommunityController,
		deps.LivefeedHandler,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
