package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/lms/internal/app/controllers"
	appMigrations "github.com/yigit/lms/internal/app/migrations"
	appRepos "github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/app/repositories/gormstore"
	appRoutes "github.com/yigit/lms/internal/app/routes"
	appServices "github.com/yigit/lms/internal/app/services"
	"github.com/yigit/lms/internal/app/views"
	"github.com/yigit/lms/internal/config"
	"github.com/yigit/lms/internal/db"
	appMiddleware "github.com/yigit/lms/internal/middleware"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/logger"
	"github.com/yigit/lms/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	IdentityService    appServices.IdentityService
	CourseService      appServices.CourseService
	LessonService      appServices.LessonService
	PageController     *appControllers.PageController
	APIController      *appControllers.APIController
	IdentityMiddleware *appMiddleware.IdentityMiddleware
	Repos              *appRepos.Repositories
	Logger             zerolog.Logger
}

// Storage is an open database together with the repositories built on it
type Storage struct {
	Driver string
	Repos  *appRepos.Repositories
	closer interface{ Close() error }
}

// Close releases the database handle
func (s *Storage) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")

	if cfg.UsesDefaultSecret() {
		lgr.Warn().Msg("SECRET_KEY is not set, sessions are signed with the built-in development key")
	}
	return cfg, lgr, nil
}

// SetupDatabase opens the configured database, prepares its schema and
// seeds the default data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")

	var storage *Storage
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}

		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool, lgr).Migrate(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		storage = &Storage{Driver: cfg.Database.Driver, Repos: appRepos.NewRepositories(database.Pool), closer: database}

	case config.DriverSQLite:
		database, err := db.NewSQLiteDB(cfg.Database.Path)
		if err != nil {
			lgr.Error().Err(err).Str("path", cfg.Database.Path).Msg("Failed to open database")
			return nil, err
		}

		lgr.Info().Msg("Migrating database schema...")
		if err := gormstore.AutoMigrate(database.Gorm); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			_ = database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		storage = &Storage{Driver: cfg.Database.Driver, Repos: gormstore.NewRepositories(database.Gorm), closer: database}

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	lgr.Info().Msg("Database ready.")

	if err := seed.CreateDefaultData(ctx, storage.Repos, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return storage, nil
}

// BuildDependencies initializes application services, middleware and controllers.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.IdentityService = appServices.NewIdentityService(repos.Users)
	deps.CourseService = appServices.NewCourseService(repos)
	deps.LessonService = appServices.NewLessonService(repos, appServices.LessonServiceOptions{
		StrictCompletion: cfg.Access.StrictCompletion,
	})

	store := appMiddleware.NewSessionStore(appMiddleware.SessionOptions{
		SecretKey: cfg.Session.SecretKey,
		Name:      cfg.Session.Name,
		MaxAge:    cfg.Session.MaxAge,
		Secure:    cfg.Session.Secure,
	})
	deps.IdentityMiddleware = appMiddleware.NewIdentityMiddleware(store, cfg.Session.Name, deps.IdentityService)

	deps.PageController = appControllers.NewPageController(deps.CourseService, deps.LessonService)
	deps.APIController = appControllers.NewAPIController(deps.CourseService, deps.LessonService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	templates, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(templates)

	appRoutes.SetupRouter(router,
		deps.PageController,
		deps.APIController,
		deps.IdentityMiddleware,
		cfg.CORS.AllowedOrigins,
	)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			appMiddleware.HandleAPIError(c, fmt.Errorf("no route for %s: %w", c.Request.URL.Path, apperrors.ErrResourceNotFound))
			return
		}
		c.HTML(http.StatusNotFound, appMiddleware.NotFoundTemplate, gin.H{})
	})

	return router, nil
}
