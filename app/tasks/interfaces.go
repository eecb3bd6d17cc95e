package tasks

// TaskSchedulerInterface defines the interface for background task
// processing: queue management and worker pool control.
// Example usage:
//
//	scheduler := NewScheduler(sources, importer, schemaService)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewOptimizeSiteTask(optimizer))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
