package app

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/admingate/domain"
	"github.com/you/admingate/internal/config"
	"github.com/you/admingate/internal/http/handlers"
	httpx "github.com/you/admingate/internal/http"
)

func Run(cfg *config.Config) error {
	configureGin(cfg.GinMode)

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	if err := bootstrapAdmin(context.Background(), container); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(container.AuthSvc)
	router := httpx.BuildRouter(authH, container.TokenSvc)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	srv := &http.Server{Addr: addr, Handler: router}
	return srv.ListenAndServe()
}

// configureGin applies the configured gin mode; unset or unknown values
// keep gin's default.
func configureGin(mode string) {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	}
}

// bootstrapAdmin creates the administrator record on first start so the
// deployment is usable without a manual setup call. Skipped when any
// admin already exists or no bootstrap password is configured.
func bootstrapAdmin(ctx context.Context, c *Container) error {
	count, err := c.AdminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if c.Config.AdminPassword == "" {
		log.Printf("no admin exists and no bootstrap password configured; create one via /auth/create-admin")
		return nil
	}

	_, err = c.AuthSvc.CreateAdmin(ctx, c.Config.AdminEmail, c.Config.AdminPassword, c.Config.AdminName)
	if err != nil && !errors.Is(err, domain.ErrAdminAlreadyExists) {
		return err
	}
	log.Printf("bootstrap admin created: %s", c.Config.AdminEmail)
	return nil
}
