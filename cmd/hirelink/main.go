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

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/hirelink/hirelink/internal/ai"
	"github.com/hirelink/hirelink/internal/config"
	"github.com/hirelink/hirelink/internal/db"
	"github.com/hirelink/hirelink/internal/extract"
	"github.com/hirelink/hirelink/internal/filestore"
	"github.com/hirelink/hirelink/internal/handler"
	"github.com/hirelink/hirelink/internal/job"
	"github.com/hirelink/hirelink/internal/middleware"
	"github.com/hirelink/hirelink/internal/repo"
	"github.com/hirelink/hirelink/internal/schedule"
	"github.com/hirelink/hirelink/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "hirelink",
		Short: "hirelink backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run hirelink server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
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
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

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

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

// buildGenerator chains the primary provider with any configured
// fallbacks. Email generation degrades gracefully when nothing is
// configured.
func buildGenerator(cfg config.AIConfig) (ai.IGenerator, error) {
	if cfg.Provider == "" {
		return nil, nil
	}
	provider, err := ai.NewProvider(cfg.Provider, cfg.Data)
	if err != nil {
		return nil, err
	}
	entries := []ai.GeneratorEntry{
		{Name: cfg.Provider, Generator: ai.NewGenerator(provider, cfg.Model)},
	}
	for _, spec := range cfg.Fallbacks {
		fallback, err := ai.NewProvider(spec.Provider, spec.Data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      spec.Provider,
			Generator: ai.NewGenerator(fallback, spec.Model),
		})
	}
	if len(entries) == 1 {
		return entries[0].Generator, nil
	}
	return ai.NewGroupGenerator(entries), nil
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	ctx := context.Background()
	logutil.GetLogger(ctx).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("extractor", cfg.Extractor.Type),
	)

	userRepo := repo.NewUserRepo(conn)
	jobRepo := repo.NewJobRepo(conn)
	applicationRepo := repo.NewApplicationRepo(conn)
	interviewRepo := repo.NewInterviewRepo(conn)
	notificationRepo := repo.NewNotificationRepo(conn)
	savedJobRepo := repo.NewSavedJobRepo(conn)
	jobVectorRepo := repo.NewJobVectorRepo(conn)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}
	extractor, err := extract.New(cfg.Extractor)
	if err != nil {
		return fmt.Errorf("init extractor: %w", err)
	}

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	notificationService := service.NewNotificationService(notificationRepo)
	jobService := service.NewJobService(jobRepo, savedJobRepo)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, notificationService)
	interviewService := service.NewInterviewService(interviewRepo, applicationRepo, jobRepo, notificationService)
	recommendService := service.NewRecommendService(userRepo, jobRepo, jobVectorRepo)
	resumeService := service.NewResumeService(userRepo, store, extractor, cfg.Resume)

	generator, err := buildGenerator(cfg.AI)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	mailSender := service.NewEmailSender(cfg.Mail)
	emailService := service.NewEmailService(
		ai.NewEmailGenerator(generator),
		mailSender,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
	)

	if cfg.Match.WarmLoad {
		if err := recommendService.WarmLoad(ctx); err != nil {
			logutil.GetLogger(ctx).Warn("warm load skipped, building fresh index", zap.Error(err))
			if _, err := recommendService.Rebuild(ctx); err != nil {
				logutil.GetLogger(ctx).Warn("initial index build failed", zap.Error(err))
			}
		}
	} else {
		if _, err := recommendService.Rebuild(ctx); err != nil {
			logutil.GetLogger(ctx).Warn("initial index build failed", zap.Error(err))
		}
	}

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewMatchRebuildJob(recommendService), cfg.Match.RebuildSpec); err != nil {
		return fmt.Errorf("schedule match rebuild: %w", err)
	}
	if err := scheduler.AddJob(job.NewInterviewReminderJob(interviewService, 24*time.Hour), "0 * * * *"); err != nil {
		return fmt.Errorf("schedule interview reminders: %w", err)
	}
	if err := scheduler.AddJob(job.NewNotificationCleanupJob(notificationService, 30), "30 3 * * *"); err != nil {
		return fmt.Errorf("schedule notification cleanup: %w", err)
	}

	deps := handler.RouterDeps{
		Auth:            handler.NewAuthHandler(authService),
		Profile:         handler.NewProfileHandler(authService, resumeService),
		Jobs:            handler.NewJobHandler(jobService),
		Applications:    handler.NewApplicationHandler(applicationService, resumeService),
		Interviews:      handler.NewInterviewHandler(interviewService),
		Notifications:   handler.NewNotificationHandler(notificationService),
		Recommend:       handler.NewRecommendHandler(recommendService, cfg.Match.DefaultLimit),
		Resume:          handler.NewResumeHandler(resumeService, cfg.Resume),
		Email:           handler.NewEmailHandler(emailService),
		JWTSecret:       []byte(cfg.JWTSecret),
		AnalyzeInterval: 3 * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(runCtx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(ctx).Error("server error", zap.Error(err))
		}
	}()

	<-runCtx.Done()
	logutil.GetLogger(ctx).Info("server stopping...")
	return nil
}
