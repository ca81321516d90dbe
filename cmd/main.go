package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/joho/godotenv"
	"github.com/maxaizer/job-board/internal/api"
	"github.com/maxaizer/job-board/internal/clients/imgbb"
	"github.com/maxaizer/job-board/internal/config"
	"github.com/maxaizer/job-board/internal/logger"
	"github.com/maxaizer/job-board/internal/metrics"
	"github.com/maxaizer/job-board/internal/repositories"
	"github.com/maxaizer/job-board/internal/services"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
)

func newServices(cfg *config.Config, dbContext *repositories.DbContext, bus EventBus.Bus) api.Services {

	mediaClient := imgbb.NewClient(cfg.Media.APIKey, cfg.Media.UploadURL)
	mediaClient.SetRateLimit(cfg.Media.MaxRequestsPerSecond)

	media, err := services.NewMediaService(mediaClient, cfg.Server.StagingDir, cfg.Server.MaxUploadSize(), cfg.Media.Timeout)
	if err != nil {
		log.Fatalf("can't create media service: %v", err)
	}

	jobs, err := repositories.NewCachedJobs(repositories.NewJobsRepository(dbContext.DB), bus)
	if err != nil {
		log.Fatalf("can't create jobs repository: %v", err)
	}

	applications, err := services.NewApplicationService(repositories.NewApplicationsRepository(dbContext.DB), bus)
	if err != nil {
		log.Fatalf("can't create application service: %v", err)
	}

	return api.Services{
		Users:        services.NewUserService(repositories.NewUsersRepository(dbContext.DB), media),
		Jobs:         services.NewJobService(jobs, bus),
		Applications: applications,
		Health:       dbContext,
	}
}

func main() {

	// .env is optional, real environment variables win
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	cleaner, err := services.NewStagingCleaner(cfg.Server.StagingDir, cfg.Server.StagedFileMaxAge)
	if err != nil {
		log.Fatalf("can't create staging cleaner: %v", err)
	}
	defer cleaner.Stop()

	bus := EventBus.New()
	server := api.NewServer(cfg.Server, newServices(cfg, dbContext, bus))

	if err = server.Run(ctx); err != nil {
		log.Errorf("server stopped with error: %v", err)
	}

	log.Info("Shutting down services...")
}
