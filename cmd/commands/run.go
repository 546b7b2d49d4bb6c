package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"assetpipe"
	"assetpipe/internal/presentation"
	"assetpipe/internal/presentation/handler"
	"assetpipe/internal/presentation/middleware"
	"assetpipe/pkg/logger"
)

func HandleRun(args []string) {
	cfg := loadConfig(args)

	logger.Info("running assetpipe", "version", assetpipe.StringVersion())

	svc, err := wire(cfg)
	if err != nil {
		ExitOnError(err)
	}
	defer svc.close()

	uploadHandler := handler.NewUploadHandler(svc.ingester)
	listHandler := handler.NewListHandler(svc.lister, svc.folders)
	batchHandler := handler.NewBatchHandler(svc.optimizer, svc.mover, svc.deleter)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		ExposeHeaders: []string{presentation.ReasonTag},
		MaxAge:        86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.BodyLimit(cfg.Default.BodyLimit))
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(20)))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := func(action string) echo.MiddlewareFunc {
		return middleware.AuthMiddleware(action, cfg.Default.Admins)
	}

	e.POST("/assets", uploadHandler.HandleUpload, auth(presentation.ActionUpload))
	e.GET("/assets", listHandler.HandleList, auth(presentation.ActionList))
	e.GET("/folders", listHandler.HandleFolders, auth(presentation.ActionList))
	e.POST("/assets/optimize", batchHandler.HandleOptimize, auth(presentation.ActionOptimize))
	e.POST("/assets/move", batchHandler.HandleMove, auth(presentation.ActionMove))
	e.POST("/assets/delete", batchHandler.HandleDelete, auth(presentation.ActionDelete))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.Default.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		ExitOnError(err)
	}
}
