package app

import (
	"time"

	"recruiter/config"
	"recruiter/internal/backend"
	"recruiter/internal/database"
	"recruiter/internal/events"
	"recruiter/internal/handlers/middleware"
	"recruiter/internal/logger"
	"recruiter/internal/preview"
	"recruiter/internal/repositories"
	"recruiter/internal/resource"
	"recruiter/internal/services"
	"recruiter/internal/sessions"
	"recruiter/internal/websockets"

	applicationController "recruiter/internal/controllers/applications"
	publicController "recruiter/internal/controllers/public"
	templateController "recruiter/internal/controllers/templates"
	userController "recruiter/internal/controllers/users"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	Backend      *backend.Client
	Resource     *resource.Cache
	Sessions     *sessions.Store
	Previews     *preview.Service
	Invalidation *services.CacheInvalidationService

	// Repositories
	UserRepo        repositories.UserRepository
	TemplateRepo    repositories.TemplateRepository
	ApplicationRepo repositories.ApplicationRepository
	CompanyRepo     repositories.CompanyRepository

	// Controllers
	UserController        *userController.UserController
	TemplateController    *templateController.TemplateController
	ApplicationController *applicationController.ApplicationController
	PublicController      *publicController.PublicController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New()
	resourceCache := resource.New(eventBus, time.Duration(config.ResourceTTLHours)*time.Hour)

	// Initialize services
	backendClient := backend.New(config, sessions.TokenSource)
	sessionStore := sessions.NewStore(db, config)
	previewService := preview.NewService(db)

	// Initialize repositories
	userRepo := repositories.New(db, backendClient, resourceCache)
	templateRepo := repositories.NewTemplate(db, backendClient, resourceCache)
	applicationRepo := repositories.NewApplication(db, backendClient, resourceCache)
	companyRepo := repositories.NewCompany(db, backendClient, resourceCache)

	invalidation := services.NewCacheInvalidationService(eventBus, applicationRepo)

	// Initialize controllers with repositories and services
	middleware := middleware.New(sessionStore, userRepo, config)
	userController := userController.New(userRepo, sessionStore)
	templateController := templateController.New(templateRepo)
	applicationController := applicationController.New(applicationRepo, templateRepo, previewService)
	publicController := publicController.New(companyRepo, templateRepo)

	websocket, err := websockets.New(eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:              db,
		Config:                config,
		Middleware:            middleware,
		EventBus:              eventBus,
		Websocket:             websocket,
		Backend:               backendClient,
		Resource:              resourceCache,
		Sessions:              sessionStore,
		Previews:              previewService,
		Invalidation:          invalidation,
		UserRepo:              userRepo,
		TemplateRepo:          templateRepo,
		ApplicationRepo:       applicationRepo,
		CompanyRepo:           companyRepo,
		UserController:        userController,
		TemplateController:    templateController,
		ApplicationController: applicationController,
		PublicController:      publicController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Backend,
		a.Resource,
		a.Sessions,
		a.Previews,
		a.Invalidation,
		a.UserRepo,
		a.TemplateRepo,
		a.ApplicationRepo,
		a.CompanyRepo,
		a.UserController,
		a.TemplateController,
		a.ApplicationController,
		a.PublicController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Websocket != nil {
		a.Websocket.Close()
	}

	if a.Invalidation != nil {
		a.Invalidation.Close()
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
