package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nft-recon/internal/config"
	"nft-recon/internal/handler"
	"nft-recon/internal/metrics"
	"nft-recon/internal/service"
	"nft-recon/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "nft-recon/docs"
)

var (
	loadEnvFunc             = godotenv.Load
	loadConfigFunc          = config.Load
	initTracerFunc          = tracing.InitTracer
	newMetricsFunc          = metrics.New
	newReconcileServiceFunc = service.NewReconcileServiceFromConfig
	newHandlerFunc          = handler.New
	newRouterFunc           = gin.Default
	setupSignalNotify       = signal.Notify
	waitForSignalFunc       = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc     = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc  = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           NFT Recon API
// @version         1.0
// @description     Reconciles Lootex and OpenSea marketplace activity for a token.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	m := newMetricsFunc()
	reconcileService := newReconcileServiceFunc(tracer, cfg, m)

	// Create handlers and routes
	h := newHandlerFunc(tracer, reconcileService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("nft-recon"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
