package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schemapress/schemapress/app/catalog"
)

type ImportCatalogTask struct {
	Task
	Source   *catalog.Source
	importer *catalog.Importer
}

func NewImportCatalogTask(source *catalog.Source, importer *catalog.Importer) *ImportCatalogTask {
	return &ImportCatalogTask{
		Task:     NewTask(TaskTypeImportCatalog, source.Name),
		Source:   source,
		importer: importer,
	}
}

func (t *ImportCatalogTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := t.importer.Run(ctx, t.Source)
	if err != nil {
		slog.Error("Task failed", "type", "ImportCatalog", "source", t.Source.Name, "error", err)
		return fmt.Errorf("failed to import catalog source: %w", err)
	}

	slog.Info("Task completed",
		"type", "ImportCatalog",
		"source", t.Source.Name,
		"duration", t.GetDuration(),
		"total", result.Total,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped)

	return nil
}
