package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/siteops-admin/internal/auth"
	"github.com/nurpe/siteops-admin/internal/cache"
	"github.com/nurpe/siteops-admin/internal/config"
	"github.com/nurpe/siteops-admin/internal/db"
	"github.com/nurpe/siteops-admin/internal/excel"
	httphandler "github.com/nurpe/siteops-admin/internal/http"
	"github.com/nurpe/siteops-admin/internal/http/middleware"
	"github.com/nurpe/siteops-admin/internal/jobs"
	"github.com/nurpe/siteops-admin/internal/logger"
	"github.com/nurpe/siteops-admin/internal/metrics"
	"github.com/nurpe/siteops-admin/internal/pdf"
	"github.com/nurpe/siteops-admin/internal/repository"
	"github.com/nurpe/siteops-admin/internal/service"
	"github.com/nurpe/siteops-admin/internal/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if cfg.Demo.Seed {
		if err := db.SeedDemo(ctx, database, cfg.Demo, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	companyRepo := repository.NewCompanyRepository(database)
	userRepo := repository.NewUserRepository(database)
	clientRepo := repository.NewClientRepository(database)
	siteRepo := repository.NewSiteRepository(database)
	contractorRepo := repository.NewContractorRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	taskRepo := repository.NewTaskRepository(database)
	unitRepo := repository.NewUnitRepository(database)
	quotationRepo := repository.NewQuotationRepository(database)
	updateRepo := repository.NewProjectUpdateRepository(database)
	dashboardRepo := repository.NewDashboardRepository(database)

	summarizer, closeSummarizer := newSummarizer(ctx, cfg, log)
	defer closeSummarizer()

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	services := httphandler.Services{
		Auth:        service.NewAuthService(userRepo, companyRepo, tokenIssuer),
		Company:     service.NewCompanyService(companyRepo, userRepo),
		Clients:     service.NewClientService(clientRepo),
		Sites:       service.NewSiteService(siteRepo, clientRepo),
		Contractors: service.NewContractorService(contractorRepo),
		Projects:    service.NewProjectService(projectRepo, siteRepo, contractorRepo),
		Tasks:       service.NewTaskService(taskRepo, projectRepo, contractorRepo),
		Units:       service.NewUnitService(unitRepo),
		Quotations: service.NewQuotationService(
			quotationRepo, clientRepo, siteRepo, projectRepo, unitRepo, companyRepo,
			pdf.NewGenerator(cfg.Quotations.Currency), excel.NewGenerator(),
			cfg.Quotations.ValidityDays,
		),
		Updates:   service.NewUpdateService(updateRepo, projectRepo, summarizer),
		Dashboard: service.NewDashboardService(dashboardRepo),
	}

	appMetrics := metrics.New()

	scheduler, err := jobs.NewScheduler(quotationRepo, appMetrics, cfg.Quotations.ExpiryInterval, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init scheduler")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	handler := httphandler.NewHandler(services, cfg.Pagination, companyRepo, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, httphandler.RouterOptions{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Metrics:        appMetrics,
		Log:            log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting admin service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := scheduler.Stop(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown failed")
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newSummarizer returns nil when no GenAI key is configured. Summaries are
// cached in Redis when REDIS_ADDR is set and reachable.
func newSummarizer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (service.Summarizer, func()) {
	noop := func() {}
	if cfg.Summary.APIKey == "" {
		log.Warn().Msg("GENAI_API_KEY is not set, summaries are disabled")
		return nil, noop
	}

	genai, err := summary.NewGenAISummarizer(ctx, cfg.Summary.APIKey, cfg.Summary.Model)
	if err != nil {
		log.Error().Err(err).Msg("failed to init summarizer, summaries are disabled")
		return nil, noop
	}
	if cfg.Redis.Addr == "" {
		return genai, noop
	}

	redisCache := cache.NewRedisCache(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, summaries are not cached")
		_ = redisCache.Close()
		return genai, noop
	}

	cached := summary.NewCachedSummarizer(genai, redisCache, genai.Model(), cfg.Summary.CacheTTL, log)
	return cached, func() { _ = redisCache.Close() }
}
