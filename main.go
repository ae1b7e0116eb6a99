package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/imdes/console/audit"
	"github.com/imdes/console/client"
	"github.com/imdes/console/config"
	"github.com/imdes/console/controller"
	logger "github.com/imdes/console/logging"
	"github.com/imdes/console/middleware"
	"github.com/imdes/console/router"
	"github.com/imdes/console/service"
	"github.com/imdes/console/session"
	"github.com/imdes/console/storage"
	"github.com/imdes/console/store"
	"github.com/imdes/console/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Session persistence: Redis when reachable, in-memory otherwise.
	var kv storage.KV
	var limiter middleware.Limiter
	redisKV, err := storage.NewRedisKV()
	if err != nil {
		logger.Warn("Redis unavailable, session will not survive restarts", zap.Error(err))
		kv = storage.NewMemoryKV()
	} else {
		defer redisKV.Close()
		kv = redisKV
		limiter = redisKV
	}

	sessionStore := session.NewStore(kv, eventBus)

	// Initialize the upstream client and services
	apiClient := client.New(
		config.GetString("upstream.baseURL"),
		config.GetDuration("upstream.timeout"),
		sessionStore,
		config.GetString("upstream.userAgent"),
	)
	services := service.InitializeServices(apiClient, sessionStore)

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	geoClient := audit.NewGeoIPClient(
		config.GetString("geoip.ipLookupURL"),
		config.GetString("geoip.geoLookupURL"),
		config.GetDuration("upstream.timeout"),
	)
	auditLogger := audit.NewLogger(services.AuditLogs, sessionStore, geoClient, eventBus, config.GetString("upstream.userAgent"))

	// Initialize collection stores
	requestStore := store.NewRequestStore(services.Requests, sessionStore, validationUtil, auditLogger)
	auditLogStore := store.NewAuditLogStore(services.AuditLogs)
	ministryStore := store.NewMinistryStore(services.Ministry)
	dataTypeStore := store.NewDataTypeStore(services.DataTypes)

	fetchAll := func() {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return requestStore.Refresh(gctx) })
		g.Go(func() error { return auditLogStore.Refresh(gctx) })
		g.Go(func() error { return ministryStore.Refresh(gctx) })
		g.Go(func() error { return dataTypeStore.Refresh(gctx) })
		if err := g.Wait(); err != nil {
			logger.Warn("Initial collection fetch incomplete", zap.Error(err))
		}
	}

	// Populate once at startup when a session was restored, and again on
	// every sign-in.
	if sessionStore.IsAuthenticated() {
		go fetchAll()
	}
	sessionStore.Subscribe(func(event session.Event) {
		if event.Authenticated {
			go fetchAll()
		}
	})

	// Initialize controllers
	controllers := controller.InitializeControllers(
		services,
		sessionStore,
		requestStore,
		auditLogStore,
		ministryStore,
		dataTypeStore,
		validationUtil,
		auditLogger,
	)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(
		controllers,
		sessionStore,
		limiter,
		config.GetInt("ratelimit.requests"),
		config.GetDuration("ratelimit.duration"),
	)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting console server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
