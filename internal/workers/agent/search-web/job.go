// internal/workers/agent/search-web/job.go
package searchweb

import (
	"context"

	apperrors "websearch-action/internal/common/errors"
	"websearch-action/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// HandleJob serves the search-web service task. The job variables are the
// invocation event; the job completes with the envelope and its summary.
func (h *Handler) HandleJob(client worker.JobClient, job entities.Job) {
	gauge := metrics.WorkerJobsActive.WithLabelValues(TaskType)
	gauge.Inc()
	defer gauge.Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx := WithTransport(context.Background(), TransportZeebe)

	output, err := h.ExecuteJob(ctx, job.Variables)

	cmdCtx, cancel := context.WithTimeout(ctx, h.config.CommandTimeout)
	defer cancel()

	if err != nil {
		h.errHandler.HandleJobError(cmdCtx, client, job, err)
		return
	}

	h.completeJob(cmdCtx, client, job, output)
}

// ExecuteJob runs the invocation for a job's raw variables. Unlike
// HandleRaw, undecodable variables are an error: the process engine
// always sends an object, so anything else is a modelling mistake.
func (h *Handler) ExecuteJob(ctx context.Context, variables string) (*JobOutput, error) {
	event, err := DecodeEvent([]byte(variables))
	if err != nil {
		return nil, err
	}

	_, envelope := h.invoke(ctx, event)
	return &JobOutput{
		SearchWebResult: *envelope,
		SearchSummary:   envelope.Text(),
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *JobOutput) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, apperrors.NewEventDecodeFailedError(err))
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":  job.Key,
		"summary": output.SearchSummary,
	})
}
