package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/nexuscrm/datatable/internal/interfaces/middleware"
	"github.com/nexuscrm/datatable/internal/interfaces/rest"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, conn, svcMgr, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	router := rest.NewRouter(rest.Handlers{
		Table:       rest.NewTableHandler(svcMgr.Page),
		Export:      rest.NewExportHandler(svcMgr.Export),
		ExportDir:   svcMgr.Export.Dir(),
		ExportLimit: middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		Middleware:  []gin.HandlerFunc{middleware.Cors()},
	})

	var handler http.Handler = router
	if cfg.Server.Gzip {
		handler = gzhttp.GzipHandler(router)
	}

	svcMgr.StartRetention()

	log.Printf("🚀 Server listening on %s", cfg.Server.Addr())
	log.Printf("💚 Health check:   http://localhost:%s/health", cfg.Server.Port)

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: handler,
	}

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err, ok := <-errCh:
		if ok {
			svcMgr.StopRetention()
			return err
		}
	case <-quit:
	}
	log.Println("Shutting down server...")

	svcMgr.StopRetention()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.Shutdown)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Println("Server exiting")
	return nil
}
