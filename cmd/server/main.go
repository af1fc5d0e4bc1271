package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"inforequests/internal/auth"
	"inforequests/internal/database"
	"inforequests/internal/handlers"
	"inforequests/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	logger := newLogger()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := database.InitDB(); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sentAlerts := services.NewSentAlertService(database.GetDB())

	worker := services.NewOverdueAlertWorker(database.GetDB(), sentAlerts, services.NewEmailService(), alertInterval())
	workerDone := worker.Start(ctx)

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1"})
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	router.GET("/health", handlers.HealthHandler)

	protected := router.Group("")
	protected.Use(auth.ServiceAuthMiddleware())
	handlers.NewSentAlertHandler(sentAlerts).Register(protected)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	// Let a pass in progress record what it has sent
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		logger.Warn("overdue alert worker did not stop before shutdown timeout")
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("GIN_MODE") == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func alertInterval() time.Duration {
	raw := os.Getenv("OVERDUE_ALERT_INTERVAL")
	if raw == "" {
		return services.DefaultOverdueAlertInterval
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		zap.L().Warn("invalid OVERDUE_ALERT_INTERVAL, using default",
			zap.String("value", raw), zap.Error(err))
		return services.DefaultOverdueAlertInterval
	}
	return interval
}

func allowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000"}
	}
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
