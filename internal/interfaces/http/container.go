package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	customerApp "github.com/orris-inc/helpdesk/internal/application/customer"
	permissionApp "github.com/orris-inc/helpdesk/internal/application/permission"
	supportApp "github.com/orris-inc/helpdesk/internal/application/support"
	ticketUsecases "github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	userUsecases "github.com/orris-inc/helpdesk/internal/application/user/usecases"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/infrastructure/email"
	"github.com/orris-inc/helpdesk/internal/infrastructure/export"
	"github.com/orris-inc/helpdesk/internal/infrastructure/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/ratelimit"
	"github.com/orris-inc/helpdesk/internal/infrastructure/storage"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/i18n"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/services/markdown"
)

// Container holds the infrastructure components, repositories, use cases and
// handlers of the help desk, and owns their shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	loginRateLimit       gin.HandlerFunc
	registerRateLimit    gin.HandlerFunc

	// Infrastructure services shared between sections
	jwtSvc      *auth.JWTService
	hasher      *auth.BcryptPasswordHasher
	policy      *vo.PasswordPolicy
	enforcer    *permission.Enforcer
	txManager   *db.TransactionManager
	catalog     *i18n.Catalog
	renderer    markdown.Renderer
	fileStorage ticketUsecases.FileStorage
	notifier    ticketUsecases.Notifier
	resolver    *ticketUsecases.ScopeResolver
	attachments *ticketUsecases.AttachmentStore
}

// NewContainer wires every component against the given database. The casbin
// policy is rebuilt from the role tables before the container is returned.
func NewContainer(ctx context.Context, gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Auth, Storage, Email
	if err := c.initInfrastructure(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 2: Authorization - Casbin enforcer and policy sync
	if err := c.initAuthorization(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 3: Use cases and application services
	c.initUseCases()

	// Section 4: Handlers and middlewares
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg

	if cfg.Redis.Enabled {
		client, err := initRedis(ctx, &cfg.Redis, c.log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db, c.log)
	c.txManager = db.NewTransactionManager(c.db)

	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	c.policy = vo.DefaultPasswordPolicy()
	if cfg.Auth.Password.MinLength > 0 {
		c.policy.MinLength = cfg.Auth.Password.MinLength
	}
	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessTTL())

	c.catalog = i18n.NewCatalog(cfg.App.Locale)
	c.renderer = markdown.NewRenderer()

	fileStorage, err := storage.New(ctx, cfg.Storage, c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}
	c.fileStorage = fileStorage

	if cfg.Email.Enabled {
		c.notifier = email.NewSMTPNotifier(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			BaseURL:     cfg.Server.BaseURL,
		}, c.catalog)
		c.log.Infow("email notifications enabled", "smtp_host", cfg.Email.SMTPHost)
	} else {
		c.notifier = email.NewNoopNotifier(c.log)
	}

	window := time.Duration(cfg.Auth.RateLimit.WindowSeconds) * time.Second
	limiter := ratelimit.NewRedisRateLimiter(c.redis, cfg.Auth.RateLimit.Requests, window)
	c.loginRateLimit = middleware.RateLimit(limiter, "login", c.log)
	c.registerRateLimit = middleware.RateLimit(limiter, "register", c.log)

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(ctx context.Context, cfg *config.RedisConfig, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.GetAddr())

	return client, nil
}

func (c *Container) initAuthorization(ctx context.Context) error {
	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	c.enforcer = enforcer

	if err := permission.NewPermissionSync(c.db, enforcer, c.log).SyncToCasbin(ctx); err != nil {
		return fmt.Errorf("failed to sync permissions: %w", err)
	}
	return nil
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log

	permissionService := permissionApp.NewService(r.roleRepo, r.permissionRepo, c.enforcer, log)

	c.resolver = ticketUsecases.NewScopeResolver(
		r.customerRepo,
		r.supportRepo,
		userUsecases.NewIdentityLoader(r.userRepo, permissionService),
	)
	c.attachments = ticketUsecases.NewAttachmentStore(c.fileStorage, ticketUsecases.UploadPolicy{
		MaxBytes:          c.cfg.Storage.MaxUploadBytes(),
		AllowedExtensions: c.cfg.Storage.AllowedExtensions,
	}, log)

	c.ucs = &allUseCases{
		loginUC: userUsecases.NewLoginUseCase(r.userRepo, permissionService, c.hasher, c.jwtSvc, log),
		registerUC: userUsecases.NewRegisterUseCase(
			r.userRepo, r.customerRepo, permissionService, c.hasher, c.policy, c.jwtSvc,
			c.txManager, c.cfg.Auth.AllowRegistration, log,
		),
		getCurrentUserUC: userUsecases.NewGetCurrentUserUseCase(
			r.userRepo, r.customerRepo, r.supportRepo, permissionService, c.enforcer, log,
		),

		createUserUC: userUsecases.NewCreateUserUseCase(r.userRepo, permissionService, c.hasher, c.policy, c.txManager, log),
		updateUserUC: userUsecases.NewUpdateUserUseCase(r.userRepo, permissionService, c.hasher, c.policy, c.txManager, log),
		deleteUserUC: userUsecases.NewDeleteUserUseCase(r.userRepo, permissionService, c.txManager, log),
		getUserUC:    userUsecases.NewGetUserUseCase(r.userRepo, permissionService, log),
		listUsersUC:  userUsecases.NewListUsersUseCase(r.userRepo, permissionService, log),

		customerService:   customerApp.NewService(r.customerRepo, r.ticketRepo, log),
		supportService:    supportApp.NewService(r.supportRepo, r.ticketRepo, log),
		permissionService: permissionService,

		createTicketUC: ticketUsecases.NewCreateTicketUseCase(
			r.ticketRepo, r.documentRepo, r.activityRepo, r.customerRepo, r.supportRepo,
			c.resolver, c.attachments, c.txManager, c.notifier, log,
		),
		updateTicketUC: ticketUsecases.NewUpdateTicketUseCase(
			r.ticketRepo, r.documentRepo, r.activityRepo, r.customerRepo, r.supportRepo,
			c.resolver, c.attachments, c.txManager, c.notifier, log,
		),
		deleteTicketUC: ticketUsecases.NewDeleteTicketUseCase(
			r.ticketRepo, r.documentRepo, r.commentRepo, r.activityRepo,
			c.resolver, c.attachments, c.txManager, log,
		),
		getTicketUC: ticketUsecases.NewGetTicketUseCase(
			r.ticketRepo, r.documentRepo, r.commentRepo, r.activityRepo, r.customerRepo, r.supportRepo,
			r.userRepo, c.resolver, c.renderer, log,
		),
		listTicketsUC: ticketUsecases.NewListTicketsUseCase(r.ticketRepo, r.customerRepo, r.supportRepo, c.resolver, log),
		changeStatusUC: ticketUsecases.NewChangeStatusUseCase(
			r.ticketRepo, r.activityRepo, r.customerRepo, c.resolver, c.txManager, c.notifier, log,
		),
		assignTicketUC: ticketUsecases.NewAssignTicketUseCase(
			r.ticketRepo, r.activityRepo, r.customerRepo, r.supportRepo, c.resolver, c.txManager, c.notifier, log,
		),
		addCommentUC: ticketUsecases.NewAddCommentUseCase(
			r.ticketRepo, r.commentRepo, r.activityRepo, r.userRepo, c.resolver, c.attachments,
			c.txManager, c.renderer, log,
		),
		getTicketFileUC: ticketUsecases.NewGetTicketFileUseCase(
			r.ticketRepo, r.documentRepo, r.commentRepo, c.resolver, c.attachments, log,
		),
		exportTicketsUC: ticketUsecases.NewExportTicketsUseCase(
			r.ticketRepo, r.customerRepo, r.supportRepo, c.resolver, export.NewCSVEncoder(), c.catalog, log,
		),
		getTicketStatsUC: ticketUsecases.NewGetTicketStatsUseCase(
			r.ticketRepo, r.customerRepo, r.supportRepo, c.resolver, c.catalog, log,
		),
	}
}

func (c *Container) initHandlers() {
	u := c.ucs
	log := c.log

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(u.permissionService, log)

	c.hdlrs = &allHandlers{
		authHandler:       handlers.NewAuthHandler(u.loginUC, u.registerUC, u.getCurrentUserUC, c.cfg.Auth.Cookie, log),
		userHandler:       handlers.NewUserHandler(u.createUserUC, u.updateUserUC, u.deleteUserUC, u.getUserUC, u.listUsersUC, log),
		permissionHandler: handlers.NewPermissionHandler(u.permissionService, log),
		customerHandler:   handlers.NewCustomerHandler(u.customerService, log),
		supportHandler:    handlers.NewSupportHandler(u.supportService, log),
		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createTicketUC, u.updateTicketUC, u.deleteTicketUC, u.getTicketUC, u.listTicketsUC,
			u.changeStatusUC, u.assignTicketUC, u.addCommentUC, u.getTicketFileUC, log,
		),
		dashboardHandler: handlers.NewDashboardHandler(u.getTicketStatsUC, u.exportTicketsUC, log),
		healthHandler:    handlers.NewHealthHandler(&sqlPinger{db: c.db}, constants.Version),
	}
}

// sqlPinger defers resolving *sql.DB until a health check runs.
type sqlPinger struct {
	db *gorm.DB
}

func (p *sqlPinger) PingContext(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
