package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/schemapress/schemapress/app/analytics"
	"github.com/schemapress/schemapress/app/api"
	"github.com/schemapress/schemapress/app/catalog"
	"github.com/schemapress/schemapress/app/cfg"
	"github.com/schemapress/schemapress/app/database"
	"github.com/schemapress/schemapress/app/fixer"
	"github.com/schemapress/schemapress/app/report"
	"github.com/schemapress/schemapress/app/schema"
	"github.com/schemapress/schemapress/app/settings"
	"github.com/schemapress/schemapress/app/sitemap"
	"github.com/schemapress/schemapress/app/tasks"
)

const (
	dailyOptimizeSchedule = "0 3 * * *"
	weeklyReportSchedule  = "0 6 * * 1"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was requested
		return
	}

	slog.Info("Starting SchemaPress server", "version", cfg.GetVersion())

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	productRepo := database.NewProductRepository(db)
	variantRepo := database.NewVariantRepository(db)
	reviewRepo := database.NewReviewRepository(db)
	metaRepo := database.NewMetaRepository(db)
	settingsRepo := database.NewSettingsRepository(db)
	eventRepo := database.NewEventRepository(db)

	store := settings.NewStore(settingsRepo)
	if err := store.Seed(); err != nil {
		slog.Error("Failed to seed settings", "error", err)
		os.Exit(1)
	}

	sourceLoader := catalog.NewSourceLoader(appCfg.SourcesDir)
	sources, err := sourceLoader.LoadAll()
	if err != nil {
		slog.Error("Failed to load catalog sources", "dir", appCfg.SourcesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog sources loaded", "dir", appCfg.SourcesDir, "count", len(sources))

	httpClient := &http.Client{Timeout: 60 * time.Second}

	hooks := schema.NewHooks()
	builder := schema.NewBuilder(hooks)
	schemaService := schema.NewService(builder, productRepo, variantRepo, reviewRepo, metaRepo, store, appCfg.BaseUrl)

	importer := catalog.NewImporter(productRepo, httpClient, appCfg.UserAgent)
	analyticsService := analytics.NewService(productRepo, metaRepo, eventRepo)
	optimizer := tasks.NewSiteOptimizer(productRepo, metaRepo, eventRepo, schemaService, store, appCfg.BaseUrl)
	catalogFixer := fixer.New(productRepo, metaRepo, eventRepo, store, appCfg.BaseUrl)
	sitemapGenerator := sitemap.NewGenerator(productRepo, httpClient, appCfg.BaseUrl, appCfg.PublicDir)
	reportSender := report.NewSender(analyticsService, store, appCfg.SMTPHost, appCfg.SMTPPort, appCfg.SMTPFrom)

	scheduler := tasks.NewScheduler(sources, importer, schemaService)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)

	cronRunner := startCron(scheduler, optimizer, reportSender, store)
	defer cronRunner.Stop()

	handler := api.NewHandler(productRepo, metaRepo, eventRepo, schemaService, analyticsService,
		optimizer, catalogFixer, sitemapGenerator, reportSender, store, scheduler, appCfg.BaseUrl)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// startCron wires the recurring maintenance jobs: the nightly optimization
// run and the weekly report. Each job checks its feature toggle at fire
// time so settings changes take effect without a restart.
func startCron(scheduler tasks.TaskSchedulerInterface, optimizer *tasks.SiteOptimizer,
	reportSender *report.Sender, store *settings.Store) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(dailyOptimizeSchedule, func() {
		cfg, err := store.Load()
		if err != nil {
			slog.Error("Failed to load settings for daily optimization", "error", err)
			return
		}
		if !cfg.DailyOptimize {
			slog.Debug("Daily optimization disabled, skipping")
			return
		}
		if err := scheduler.EnqueueTask(tasks.NewOptimizeSiteTask(optimizer)); err != nil {
			slog.Error("Failed to enqueue daily optimization", "error", err)
		}
	})
	if err != nil {
		slog.Error("Failed to schedule daily optimization", "error", err)
	}

	_, err = c.AddFunc(weeklyReportSchedule, func() {
		cfg, err := store.Load()
		if err != nil {
			slog.Error("Failed to load settings for weekly report", "error", err)
			return
		}
		if !cfg.WeeklyReport {
			slog.Debug("Weekly report disabled, skipping")
			return
		}
		if err := scheduler.EnqueueTask(tasks.NewWeeklyReportTask(reportSender)); err != nil {
			slog.Error("Failed to enqueue weekly report", "error", err)
		}
	})
	if err != nil {
		slog.Error("Failed to schedule weekly report", "error", err)
	}

	c.Start()
	return c
}
