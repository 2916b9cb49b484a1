package main

import (
	"context"
	"expvar"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"equipment_borrow/app"
	"equipment_borrow/config"
	"equipment_borrow/routes"
	"equipment_borrow/telemetry"
)

func main() {
	config.LoadEnv()
	shutdownTelemetry := telemetry.Setup("equipment-service")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	cfg := app.LoadConfig()
	log.Printf("config: %s", cfg)
	application := app.MustNew(cfg)
	defer application.Close()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	app.Bootstrap(bootCtx, cfg, application.Repo, application.AppSessions())
	cancelBoot()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(expvar.Handler()))

	routes.RegisterRoutes(r, application)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(r, "equipment-service"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
