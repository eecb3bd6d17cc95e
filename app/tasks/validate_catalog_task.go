package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schemapress/schemapress/app/schema"
)

type ValidateCatalogTask struct {
	Task
	schema *schema.Service
}

func NewValidateCatalogTask(schemaService *schema.Service) *ValidateCatalogTask {
	return &ValidateCatalogTask{
		Task:   NewTask(TaskTypeValidateCatalog, "catalog"),
		schema: schemaService,
	}
}

func (t *ValidateCatalogTask) Execute(ctx context.Context) error {
	report, err := t.schema.ValidateCatalog(ctx)
	if err != nil {
		slog.Error("Task failed", "type", "ValidateCatalog", "error", err)
		return fmt.Errorf("failed to validate catalog: %w", err)
	}

	slog.Info("Task completed",
		"type", "ValidateCatalog",
		"duration", t.GetDuration(),
		"total", report.Total,
		"valid", report.Valid,
		"invalid", report.Invalid,
		"warnings", report.WithWarnings)

	return nil
}
