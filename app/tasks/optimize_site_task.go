package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

type OptimizeSiteTask struct {
	Task
	optimizer *SiteOptimizer
}

func NewOptimizeSiteTask(optimizer *SiteOptimizer) *OptimizeSiteTask {
	return &OptimizeSiteTask{
		Task:      NewTask(TaskTypeOptimizeSite, "site"),
		optimizer: optimizer,
	}
}

func (t *OptimizeSiteTask) Execute(ctx context.Context) error {
	report, err := t.optimizer.Run(ctx)
	if err != nil {
		slog.Error("Task failed", "type", "OptimizeSite", "error", err)
		return fmt.Errorf("failed to optimize site: %w", err)
	}

	slog.Info("Task completed",
		"type", "OptimizeSite",
		"duration", t.GetDuration(),
		"processed", report.Processed,
		"schema_generated", report.SchemaGenerated,
		"schema_valid", report.SchemaValid,
		"faq_pages", report.FAQPages,
		"errors", len(report.Errors))

	return nil
}
