package app

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/admingate/domain"
	"github.com/you/admingate/internal/config"
	"github.com/you/admingate/internal/infrastructure/audit"
	"github.com/you/admingate/internal/infrastructure/auth"
	"github.com/you/admingate/internal/infrastructure/database"
	"github.com/you/admingate/internal/infrastructure/notifications"
	"github.com/you/admingate/internal/infrastructure/ratelimit"
	"github.com/you/admingate/internal/infrastructure/repositories"
	"github.com/you/admingate/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	AdminRepo domain.AdminRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	CodeSvc         domain.CodeService
	NotificationSvc domain.NotificationService
	RateLimiter     domain.RateLimiter
	AuditLogger     domain.AuditLogger
	AuthSvc         domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}
	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	c.DB = db
	c.AdminRepo = repositories.NewAdminRepository(db)
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	return nil
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService(0)
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.IntermediateTTL,
		c.Config.AccessTTL,
	)
	c.CodeSvc = services.NewCodeService(services.CodeConfig{
		Length: c.Config.CodeLength,
		TTL:    c.Config.CodeTTL,
	})

	notificationSvc, err := buildNotificationService(c.Config)
	if err != nil {
		return err
	}
	c.NotificationSvc = notificationSvc

	c.RateLimiter = ratelimit.NewRedisLimiter(c.RedisClient, ratelimit.Config{
		domain.EndpointLogin:  {Window: c.Config.LoginLimit.Window, Max: c.Config.LoginLimit.Max},
		domain.EndpointVerify: {Window: c.Config.VerifyLimit.Window, Max: c.Config.VerifyLimit.Max},
		domain.EndpointResend: {Window: c.Config.ResendLimit.Window, Max: c.Config.ResendLimit.Max},
		domain.EndpointReset:  {Window: c.Config.ResetLimit.Window, Max: c.Config.ResetLimit.Max},
	})

	c.AuditLogger = audit.NewLogAuditLogger(nil)

	c.AuthSvc = services.NewAuthService(
		c.AdminRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.CodeSvc,
		c.NotificationSvc,
		c.RateLimiter,
		c.AuditLogger,
		services.AuthConfig{
			MinSecretLength: c.Config.MinSecretLength,
			NotifyTimeout:   c.Config.NotifyTimeout,
		},
	)

	return nil
}

func buildNotificationService(cfg *config.Config) (domain.NotificationService, error) {
	switch cfg.NotifyChannel {
	case "", "email":
		return notifications.NewMailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.NotifyFrom)
	case "sms":
		return notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom), nil
	default:
		return nil, fmt.Errorf("unknown notify channel %q", cfg.NotifyChannel)
	}
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
