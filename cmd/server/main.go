package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/echodent/backend/internal/application/catalog"
	ledgerapp "github.com/echodent/backend/internal/application/ledger"
	"github.com/echodent/backend/internal/infrastructure/config"
	"github.com/echodent/backend/internal/infrastructure/event"
	"github.com/echodent/backend/internal/infrastructure/logger"
	"github.com/echodent/backend/internal/infrastructure/persistence"
	"github.com/echodent/backend/internal/infrastructure/timeline"
	"github.com/echodent/backend/internal/interfaces/http/handler"
	"github.com/echodent/backend/internal/interfaces/http/middleware"
	"github.com/echodent/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting clinic ledger backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, mapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Event bus carries post-commit timeline notifications
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(timeline.NewLogHandler(log))
	notifier := timeline.NewNotifier(bus, log)

	// Repositories and the transaction scope
	scope := persistence.NewGormTransactionScope(db.DB)
	procedureRepo := persistence.NewGormProcedureRepository(db.DB)
	staffDirectory := persistence.NewGormStaffDirectory(db.DB)
	patientDirectory := persistence.NewGormPatientDirectory(db.DB)

	// Application services
	procedureService := catalogapp.NewProcedureService(procedureRepo)
	planService := ledgerapp.NewPlanService(scope, staffDirectory, patientDirectory, notifier)
	entryService := ledgerapp.NewEntryService(scope, notifier)
	scheduleService := ledgerapp.NewScheduleService(scope, notifier)
	cashDayService := ledgerapp.NewCashDayService(scope, notifier)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(db, cfg.App.Name, version)).
		Register(handler.NewProcedureHandler(procedureService)).
		Register(handler.NewPlanHandler(planService)).
		Register(handler.NewEntryHandler(entryService)).
		Register(handler.NewScheduleHandler(scheduleService)).
		Register(handler.NewCashDayHandler(cashDayService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// mapGormLogLevel derives the GORM log level from the app log level
func mapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn", "warning":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
