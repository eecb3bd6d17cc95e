package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schemapress/schemapress/app/settings"
	"github.com/schemapress/schemapress/app/sitemap"
)

type GenerateSitemapTask struct {
	Task
	generator *sitemap.Generator
	store     *settings.Store
}

func NewGenerateSitemapTask(generator *sitemap.Generator, store *settings.Store) *GenerateSitemapTask {
	return &GenerateSitemapTask{
		Task:      NewTask(TaskTypeGenerateSitemap, "site"),
		generator: generator,
		store:     store,
	}
}

func (t *GenerateSitemapTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	count, err := t.generator.Generate()
	if err != nil {
		slog.Error("Task failed", "type", "GenerateSitemap", "error", err)
		return fmt.Errorf("failed to generate sitemap: %w", err)
	}

	cfg, err := t.store.Load()
	if err != nil {
		return err
	}
	if cfg.PingSearchEngines {
		t.generator.Ping()
	}

	slog.Info("Task completed",
		"type", "GenerateSitemap",
		"duration", t.GetDuration(),
		"urls", count,
		"pinged", cfg.PingSearchEngines)

	return nil
}
