package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schemapress/schemapress/app/fixer"
)

type FixErrorsTask struct {
	Task
	fixer *fixer.Fixer
}

func NewFixErrorsTask(f *fixer.Fixer) *FixErrorsTask {
	return &FixErrorsTask{
		Task:  NewTask(TaskTypeFixErrors, "catalog"),
		fixer: f,
	}
}

func (t *FixErrorsTask) Execute(ctx context.Context) error {
	results, err := t.fixer.RunAll(ctx)
	if err != nil {
		slog.Error("Task failed", "type", "FixErrors", "error", err)
		return fmt.Errorf("failed to run fix passes: %w", err)
	}

	changed := 0
	failed := 0
	for _, result := range results {
		changed += result.Changed
		failed += len(result.Errors)
	}

	slog.Info("Task completed",
		"type", "FixErrors",
		"duration", t.GetDuration(),
		"passes", len(results),
		"changed", changed,
		"errors", failed)

	return nil
}
