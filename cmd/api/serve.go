package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpadp "farmlend-backend/internal/adapter/http"
	"farmlend-backend/internal/adapter/middleware"
	"farmlend-backend/internal/adapter/repository/mysql"
	"farmlend-backend/internal/config"
	"farmlend-backend/internal/infrastructure/cache"
	"farmlend-backend/internal/logging"
	"farmlend-backend/internal/session"
	"farmlend-backend/internal/usecase/dashboard"
	"farmlend-backend/internal/usecase/investment"
	"farmlend-backend/internal/usecase/loan"
	"farmlend-backend/internal/usecase/profile"
	"farmlend-backend/internal/usecase/review"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	gdb, err := openDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	// repositories
	loans := mysql.NewLoanRepository(gdb)
	investments := mysql.NewInvestmentRepository(gdb)
	profiles := mysql.NewProfileRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	sessions := session.NewStore(rdb, cfg.SessionTTL())
	resolver := profile.NewResolver(profiles)
	unsubscribe, err := sessions.Subscribe(ctx, resolver.HandleEvent)
	if err != nil {
		return err
	}
	defer unsubscribe()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		echomw.Recover(),
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}),
		requestLogger(log),
	)

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:      httpadp.NewHandler(),
		Session:     httpadp.NewSessionHandler(sessions),
		Loans:       httpadp.NewLoanHandler(loan.NewUsecase(loans)),
		Reviews:     httpadp.NewReviewHandler(review.NewUsecase(loans, tx)),
		Investments: httpadp.NewInvestmentHandler(investment.NewUsecase(loans, investments, tx)),
		Dashboards:  httpadp.NewDashboardHandler(dashboard.NewUsecase(loans, investments, profiles, log.Named("dashboard"))),
	},
		middleware.Auth(sessions, resolver, log.Named("auth")),
		middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log.Named("idempotency")),
	)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("grace", cfg.ShutdownGrace()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace())
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			if v.Latency > time.Second {
				log.Warn("slow request", fields...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
