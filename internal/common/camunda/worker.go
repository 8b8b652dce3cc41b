// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"websearch-action/internal/common/config"
	"websearch-action/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Worker is one opened job worker. The underlying client is owned by the
// caller and is not closed here.
type Worker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// JobWorkerOptions resolves a worker config into the values passed to the
// job worker builder.
func JobWorkerOptions(wcfg config.WorkerConfig) (maxJobsActive int, timeout time.Duration) {
	maxJobsActive = wcfg.MaxJobsActive
	if maxJobsActive <= 0 {
		maxJobsActive = 5
	}
	timeout = config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return maxJobsActive, timeout
}

// StartWorker opens a job worker for taskType. It returns nil when the
// worker is disabled in config.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) *Worker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	maxJobsActive, timeout := JobWorkerOptions(wcfg)
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": maxJobsActive,
		"timeout_ms":    timeout.Milliseconds(),
	})

	return &Worker{worker: jobWorker, logger: log, taskType: taskType}
}

// Stop closes the job worker and waits for in-flight jobs.
func (w *Worker) Stop() {
	if w == nil {
		return
	}
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}
