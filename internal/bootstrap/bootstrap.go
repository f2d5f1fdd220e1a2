package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/school/internal/app/controllers"
	appMigrations "github.com/yigit/school/internal/app/migrations"
	appRepos "github.com/yigit/school/internal/app/repositories"
	appRoutes "github.com/yigit/school/internal/app/routes"
	appServices "github.com/yigit/school/internal/app/services"
	"github.com/yigit/school/internal/config"
	"github.com/yigit/school/internal/db"
	appMiddleware "github.com/yigit/school/internal/middleware"
	"github.com/yigit/school/internal/pkg/filestorage"
	"github.com/yigit/school/internal/pkg/logger"
	"github.com/yigit/school/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	FacultyService    appServices.FacultyService
	StudentService    appServices.StudentService
	AvatarService     appServices.AvatarService
	FacultyController *appControllers.FacultyController
	StudentController *appControllers.StudentController
	AvatarController  *appControllers.AvatarController
	Repos             *appRepos.Repositories
	FileStorage       *filestorage.LocalStorage
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSize:    cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAge:     cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		},
	})

	lgr := logger.Get()
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Str("logFile", cfg.Logging.File).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the connection pool.
func ConnectDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	return database, nil
}

// RunMigrations applies every pending migration in the configured directory.
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Migrations.Dir
	if _, err := os.Stat(migrationsDir); err != nil {
		lgr.Error().Err(err).Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("dir", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, logger.Named("migrator"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	return nil
}

// SetupDatabase connects, migrates and, when enabled, seeds the default faculties.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := ConnectDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, cfg, database, lgr); err != nil {
		database.Close()
		return nil, err
	}

	if cfg.Seed.Enabled {
		repos := appRepos.NewRepositories(database.Pool)
		if err := seed.CreateDefaultData(ctx, repos.FacultyRepository, lgr); err != nil {
			// Startup continues without the defaults.
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.AvatarsDir)
	if err != nil {
		lgr.Error().Err(err).Str("path", cfg.Storage.AvatarsDir).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	lgr.Info().Str("path", deps.FileStorage.BasePath()).Msg("Avatar storage ready")

	printer := appServices.NewNamePrinter(logger.Named("name-printer"), cfg.Workers.PrintPoolSize)

	deps.FacultyService = appServices.NewFacultyService(deps.Repos.FacultyRepository, deps.Repos.StudentRepository)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.FacultyRepository, printer)
	deps.AvatarService = appServices.NewAvatarService(
		deps.Repos.AvatarRepository,
		deps.Repos.StudentRepository,
		deps.FileStorage,
		database,
	)

	deps.FacultyController = appControllers.NewFacultyController(deps.FacultyService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.AvatarController = appControllers.NewAvatarController(deps.AvatarService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, health appRoutes.HealthChecker, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestLogger(logger.Named("http")),
		gin.Recovery(),
		appMiddleware.MaxBodySize(cfg.Server.MaxUploadBytes),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.FacultyController,
		deps.StudentController,
		deps.AvatarController,
		health,
	)

	return router
}
