package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schemapress/schemapress/app/report"
)

type WeeklyReportTask struct {
	Task
	sender *report.Sender
}

func NewWeeklyReportTask(sender *report.Sender) *WeeklyReportTask {
	return &WeeklyReportTask{
		Task:   NewTask(TaskTypeWeeklyReport, "site"),
		sender: sender,
	}
}

func (t *WeeklyReportTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.sender.SendWeekly(); err != nil {
		slog.Error("Task failed", "type", "WeeklyReport", "error", err)
		return fmt.Errorf("failed to send weekly report: %w", err)
	}

	slog.Info("Task completed",
		"type", "WeeklyReport",
		"duration", t.GetDuration())

	return nil
}
