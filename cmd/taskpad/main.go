package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/taskpad/taskpad/internal/avatar"
	"github.com/taskpad/taskpad/internal/config"
	"github.com/taskpad/taskpad/internal/db"
	"github.com/taskpad/taskpad/internal/handler"
	"github.com/taskpad/taskpad/internal/job"
	"github.com/taskpad/taskpad/internal/repo"
	"github.com/taskpad/taskpad/internal/schedule"
	"github.com/taskpad/taskpad/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "taskpad",
		Short: "taskpad backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run taskpad server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json (optional, env vars override)")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info("starting server",
		zap.Int("port", cfg.Port),
		zap.String("base_path", cfg.BasePath),
		zap.String("avatar_store", cfg.AvatarStore.Type),
	)

	userRepo := repo.NewUserRepo(conn)
	todoRepo := repo.NewTodoRepo(conn)
	revokedRepo := repo.NewRevokedTokenRepo(conn)

	avatarStore, err := avatar.New(cfg.AvatarStore, conn)
	if err != nil {
		return fmt.Errorf("init avatar store: %w", err)
	}

	authService := service.NewAuthService(
		userRepo,
		revokedRepo,
		avatarStore,
		[]byte(cfg.JWTSecret),
		time.Hour*time.Duration(cfg.JWTTTLHours),
		cfg.Cache.IdentitySize,
		time.Second*time.Duration(cfg.Cache.IdentityTTLSeconds),
	)
	todoService := service.NewTodoService(todoRepo)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:       handler.NewAuthHandler(authService),
		Profile:    handler.NewProfileHandler(authService),
		Todos:      handler.NewTodoHandler(todoService),
		Resolver:   authService,
		BasePath:   cfg.BasePath,
		CORSOrigin: cfg.CORSOrigin,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewScheduler()
	if err := scheduler.AddJob(job.NewTokenCleanupJob(revokedRepo), cfg.CleanupCron); err != nil {
		return err
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: router,
	}
	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", srv.Addr))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
