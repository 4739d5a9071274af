package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/you/classhub/domain"
	"github.com/you/classhub/internal/config"
	httpx "github.com/you/classhub/internal/http"
	"github.com/you/classhub/internal/http/handlers"
	"github.com/you/classhub/internal/http/middleware"
	"github.com/you/classhub/internal/infrastructure/auth"
	"github.com/you/classhub/internal/infrastructure/database"
	"github.com/you/classhub/internal/infrastructure/notifications"
	"github.com/you/classhub/internal/infrastructure/repositories"
	"github.com/you/classhub/internal/infrastructure/storage"
	"github.com/you/classhub/internal/realtime"
	"github.com/you/classhub/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService
	Mailer      domain.Mailer
	Storage     *storage.LocalStorage
	Hub         *realtime.Hub

	// Repositories
	UserRepo         domain.UserRepository
	OTPSessionRepo   domain.OTPSessionRepository
	HomeworkRepo     domain.HomeworkRepository
	CompletionRepo   domain.CompletionRepository
	NotificationRepo domain.NotificationRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	PolicySvc       domain.PolicyService
	HomeworkSvc     domain.HomeworkService
	CompletionSvc   domain.CompletionService
	NotificationSvc domain.NotificationService
}

// NewContainer connects to Postgres and Redis and wires everything on top
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	rdb := database.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := rdb.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
	}

	mailer, err := notifications.NewMailer(cfg.Mail, os.Stdout)
	if err != nil {
		// OTP requests report the problem; everything else keeps working
		log.Printf("MAIL_DISABLED: provider=%s err=%v", cfg.Mail.Provider, err)
	}

	return NewContainerWith(cfg, db, rdb.Client, mailer)
}

// NewContainerWith wires the application on already opened connections.
// Tables are migrated and RBAC policies seeded.
func NewContainerWith(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer domain.Mailer) (*Container, error) {
	c := &Container{
		Config:      cfg,
		DB:          db,
		RedisClient: rdb,
		Mailer:      mailer,
		Hub:         realtime.NewHub(),
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	store, err := storage.NewLocalStorage(cfg.App.UploadDir)
	if err != nil {
		return nil, err
	}
	c.Storage = store

	c.initRepositories()
	c.initServices()

	if err := c.initPolicies(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OTPSessionRepo = repositories.NewOTPSessionRepository(c.RedisClient)
	c.HomeworkRepo = repositories.NewHomeworkRepository(c.DB)
	c.CompletionRepo = repositories.NewCompletionRepository(c.DB)
	c.NotificationRepo = repositories.NewNotificationRepository(c.DB)
}

func (c *Container) initServices() {
	// Release builds use the bcrypt default; gin's test mode gets the minimum
	if gin.Mode() == gin.TestMode {
		c.PasswordSvc = auth.NewPasswordServiceWithCost(bcrypt.MinCost)
	} else {
		c.PasswordSvc = auth.NewPasswordService()
	}
	c.TokenSvc = auth.NewJWTService(c.Config.JWT.Secret, c.Config.JWT.Issuer, c.Config.JWT.TTL)

	c.OTPSvc = services.NewOTPService(c.UserRepo, c.OTPSessionRepo, c.Mailer, services.OTPConfig{
		TTL:         c.Config.OTP.TTL,
		MaxAttempts: c.Config.OTP.MaxAttempts,
	})
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.OTPSvc)

	c.HomeworkSvc = services.NewHomeworkService(c.HomeworkRepo, c.Hub)
	c.CompletionSvc = services.NewCompletionService(c.CompletionRepo, c.HomeworkRepo)
	c.NotificationSvc = services.NewNotificationService(c.NotificationRepo, c.Hub)
}

func (c *Container) initPolicies() error {
	cas, err := auth.NewCasbinService(c.DB)
	if err != nil {
		return err
	}
	c.Casbin = cas
	c.PolicySvc = services.NewPolicyService(cas.E)

	rules, err := config.LoadPolicies(c.Config.Casbin.PolicyPath)
	if err != nil {
		return err
	}
	added, err := services.SeedPolicies(c.PolicySvc, rules)
	if err != nil {
		return err
	}
	if added > 0 {
		log.Printf("casbin: seeded %d policies", added)
	}
	return nil
}

// Router builds the HTTP handler for the container
func (c *Container) Router() *gin.Engine {
	return httpx.BuildRouter(httpx.Routes{
		Auth:         handlers.NewAuthHandlers(c.AuthSvc),
		Homework:     handlers.NewHomeworkHandlers(c.HomeworkSvc, c.Storage),
		Completion:   handlers.NewCompletionHandlers(c.CompletionSvc),
		Notification: handlers.NewNotificationHandlers(c.NotificationSvc),
		Realtime:     realtime.NewHandler(c.Hub, c.TokenSvc, c.Config.App.ClientURL),
		JWT:          middleware.NewAuthMW(c.TokenSvc),
		Casbin:       middleware.NewCasbinMW(services.NewCasbinEnforcerWrapper(c.Casbin.E)),
		ClientURL:    c.Config.App.ClientURL,
		UploadDir:    c.Storage.Dir(),
	})
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
