package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SamuelSChaves/works-to-front-sub002/internal/config"
	httpx "github.com/SamuelSChaves/works-to-front-sub002/internal/http"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/http/handlers"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/http/middleware"
)

// Run wires the container, builds the router and serves until interrupted.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.ResetSvc, c.PermSvc, cfg.CookieName, cfg.TokenTTL)
	authMW := middleware.NewAuthMiddleware(c.AuthSvc, cfg.CookieName, cfg.TokenTTL)
	permMW := middleware.NewPermissionMiddleware(c.PermSvc)

	r := httpx.BuildRouter(authH, authMW, permMW)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
