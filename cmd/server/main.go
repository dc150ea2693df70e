package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/everyclass_server/internal/app"
	"github.com/Freeeeeet/everyclass_server/internal/auth"
	"github.com/Freeeeeet/everyclass_server/internal/clock"
	"github.com/Freeeeeet/everyclass_server/internal/config"
	"github.com/Freeeeeet/everyclass_server/internal/controller/api"
	"github.com/Freeeeeet/everyclass_server/internal/counter"
	"github.com/Freeeeeet/everyclass_server/internal/identifier"
	"github.com/Freeeeeet/everyclass_server/internal/repository"
	"github.com/Freeeeeet/everyclass_server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("create db pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	codec, err := identifier.NewCodec(cfg.EncryptionKey)
	if err != nil {
		return fmt.Errorf("create identifier codec: %w", err)
	}

	clk := clock.Real{}
	counters := counter.NewMemoryStore()
	limit := service.CacheLimit{
		Window:       cfg.CalendarCacheWindow,
		Hits:         cfg.CalendarCacheHits,
		ForceRefresh: cfg.CalendarForceRefresh,
	}

	// Репозитории
	privacyRepo := repository.NewPrivacyRepository(pool)
	grantRepo := repository.NewGrantRepository(pool)
	visitRepo := repository.NewVisitRepository(pool)
	tokenRepo := repository.NewCalendarTokenRepository(pool)

	// Сервисы
	privacyService := service.NewPrivacyService(privacyRepo, logger)
	grantService := service.NewGrantService(grantRepo, logger)
	visitService := service.NewVisitService(visitRepo, clk, logger)
	accessService := service.NewAccessService(privacyService, grantService, visitService, logger)
	calendarService := service.NewCalendarService(tokenRepo, counters, accessService, limit, clk, logger)

	scheduler := app.NewScheduler(counters, cfg.CounterPurgeInterval, cfg.CalendarForceRefresh, clk, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.NewHandler(api.Deps{
		Codec:    codec,
		Auth:     auth.NewService(cfg.JWTSecret, cfg.JWTTTL),
		Privacy:  privacyService,
		Grants:   grantService,
		Visits:   visitService,
		Access:   accessService,
		Calendar: calendarService,
		BaseURL:  cfg.BaseURL,
		Logger:   logger,
	}))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
