package initialize

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"panda-gate/pod/app/controllers"
	"panda-gate/pod/app/db"
	"panda-gate/pod/app/middleware"
	"panda-gate/pod/app/models"
	"panda-gate/pod/app/repo"
	"panda-gate/pod/app/rolecache"
	"panda-gate/pod/app/services"
	"panda-gate/pod/config"
	"panda-gate/pod/global"
	"panda-gate/pod/router"
	"panda-gate/session"
)

type App struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Router http.Handler
	Users  *services.UserService
}

// Build is the pod composition root: config, store, redis role cache,
// signer, services, controllers, router.
func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.ApiToken{}, &models.Notification{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var roleCache *rolecache.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		roleCache = rolecache.New(rdb, time.Duration(cfg.Redis.RoleTTLSec)*time.Second)
	}

	signer, err := session.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer,
		time.Duration(cfg.JWT.ExpDays)*24*time.Hour)
	if err != nil {
		return nil, err
	}

	userRepo := repo.NewUserRepository(gdb)
	envAdmin := cfg.Admin.Email != "" && cfg.Admin.Password != ""
	userSvc := services.NewUserService(userRepo, roleCache, envAdmin)
	notifSvc := services.NewNotificationService(repo.NewNotificationRepository(gdb))
	tokenSvc := services.NewApiTokenService(repo.NewApiTokenRepository(gdb))

	if envAdmin {
		if err := userSvc.EnsureOwner(cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return nil, fmt.Errorf("ensure owner: %w", err)
		}
		global.Logger.Info().Str("email", cfg.Admin.Email).Msg("owner seeded from environment")
	}

	mw := &middleware.Auth{Verifier: signer, Roles: userSvc}
	h := router.New(
		controllers.NewAuthController(userSvc, signer),
		controllers.NewUserController(userSvc),
		controllers.NewAdminController(userSvc, notifSvc),
		controllers.NewNotificationController(notifSvc),
		controllers.NewTokenController(tokenSvc),
		mw,
	)
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Users: userSvc}, nil
}
