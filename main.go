package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/williamzujkowski/fantasy-merchant/internal/api"
	"github.com/williamzujkowski/fantasy-merchant/internal/catalog"
	"github.com/williamzujkowski/fantasy-merchant/internal/config"
	"github.com/williamzujkowski/fantasy-merchant/internal/database"
	"github.com/williamzujkowski/fantasy-merchant/internal/market"
	"github.com/williamzujkowski/fantasy-merchant/internal/models"
	"github.com/williamzujkowski/fantasy-merchant/internal/player"
	"github.com/williamzujkowski/fantasy-merchant/internal/trading"
	ws "github.com/williamzujkowski/fantasy-merchant/internal/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database.Path)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize catalog and market
	store := catalog.NewGormStore(db)
	source := catalog.NewDefinitionSource(cfg.Market.ItemSource)
	drifter := market.NewDrifter(cfg.Market.Spread)
	reconciler := catalog.NewReconciler(store, source, drifter)

	hub := ws.NewHub()
	go hub.Run()
	reconciler.OnCycle(func(items []models.Item) {
		hub.BroadcastMarketUpdate(items)
	})

	runCycle := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := reconciler.Run(ctx); err != nil {
			logrus.WithError(err).Error("Catalog reconciliation failed")
		}
	}
	runCycle()

	scheduler, err := market.NewScheduler(cfg.Market.Interval, runCycle)
	if err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	scheduler.Start()

	// Initialize player accounts and trading
	registry := player.NewRegistry(cfg.Player.StartingGold)
	engine := trading.NewEngine()

	janitorStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-janitorStop:
				return
			case <-ticker.C:
				if n := registry.Sweep(cfg.Session.TTL); n > 0 {
					logrus.WithField("accounts", n).Info("Swept idle player accounts")
				}
			}
		}
	}()

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	// Set up Gin router
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api.SetupRoutes(router, store, engine, registry, sessionStore, hub)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	logrus.Infof("Server started on port %d", cfg.Server.Port)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	scheduler.Stop()
	close(janitorStop)

	logrus.Info("Server exited")
}
