package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/classhub/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Run starts the HTTP server and blocks until SIGINT or SIGTERM
func Run(cfg *config.Config) error {
	if cfg.App.GinMode != "" {
		gin.SetMode(cfg.App.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           container.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
