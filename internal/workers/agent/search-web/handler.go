// internal/workers/agent/search-web/handler.go
package searchweb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "websearch-action/internal/common/errors"
	"websearch-action/internal/common/logger"
	"websearch-action/internal/common/metrics"
	"websearch-action/internal/common/observability"
	"websearch-action/internal/common/validation"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const TaskType = "search-web"

// Transport labels for logs and metrics.
const (
	TransportDirect = "direct"
	TransportLambda = "lambda"
	TransportZeebe  = "zeebe"
	TransportHTTP   = "http"
	TransportLocal  = "local"
)

var envelopeSchema = validation.MustSchema(EnvelopeSchema)

type HandlerOptions struct {
	Config        *Config
	Searcher      Searcher
	Logger        logger.Logger
	Observability *observability.Observability
}

// Handler turns orchestrator events into search envelopes. It holds no
// per-request state and is safe for concurrent use.
type Handler struct {
	config     *Config
	searcher   Searcher
	logger     logger.Logger
	obs        *observability.Observability
	errHandler *apperrors.ErrorHandler
}

func NewHandler(opts HandlerOptions) *Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = LoadConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	searcher := opts.Searcher
	if searcher == nil {
		searcher = NewStaticSearcher(cfg.StaticResultText)
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:     cfg,
		searcher:   searcher,
		logger:     log,
		obs:        opts.Observability,
		errHandler: apperrors.NewErrorHandler(log),
	}
}

type transportKey struct{}

// WithTransport labels ctx with the entrypoint serving the invocation.
func WithTransport(ctx context.Context, transport string) context.Context {
	return context.WithValue(ctx, transportKey{}, transport)
}

func transportFrom(ctx context.Context) string {
	if t, ok := ctx.Value(transportKey{}).(string); ok && t != "" {
		return t
	}
	return TransportDirect
}

// Handle runs one invocation. It always returns a 200 result; search
// failures are reported inside the envelope text.
func (h *Handler) Handle(ctx context.Context, event Event) HTTPResult {
	result, _ := h.invoke(ctx, event)
	return result
}

// HandleRaw decodes a raw JSON event first. Bodies that are not a JSON
// object are treated as an empty event.
func (h *Handler) HandleRaw(ctx context.Context, raw []byte) HTTPResult {
	event, err := DecodeEvent(raw)
	if err != nil {
		h.logger.Warn("event is not a JSON object, continuing with empty event", map[string]interface{}{
			"error":     err.Error(),
			"errorCode": string(apperrors.GetErrorCode(err)),
		})
	}
	return h.Handle(ctx, event)
}

// DecodeEvent parses raw into an Event. On failure it returns an empty,
// non-nil Event alongside the error.
func DecodeEvent(raw []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return Event{}, apperrors.NewEventDecodeFailedError(err)
	}
	if event == nil {
		return Event{}, apperrors.NewEventDecodeFailedError(fmt.Errorf("event is null"))
	}
	return event, nil
}

func (h *Handler) invoke(ctx context.Context, event Event) (result HTTPResult, envelope *ResponseEnvelope) {
	start := time.Now()
	transport := transportFrom(ctx)
	log := h.logger.With(map[string]interface{}{
		"invocationId": uuid.NewString(),
		"transport":    transport,
	})

	outcome := metrics.OutcomeFailed
	defer func() {
		if r := recover(); r != nil {
			log.Error("invocation panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			envelope = h.buildEnvelope(event, FailureText(h.config.SearchFailedPrefix, fmt.Errorf("%v", r)))
			result = h.encode(envelope, log)
			outcome = metrics.OutcomeFailed
		}
		metrics.InvocationsTotal.WithLabelValues(transport, outcome).Inc()
		h.obs.RecordInvocation(ctx, transport, outcome, time.Since(start))
	}()

	if event == nil {
		event = Event{}
	}
	log.Info("received event", map[string]interface{}{"event": map[string]interface{}(event)})

	query, source := ResolveQuery(event, h.config.DefaultQuery)
	metrics.QuerySourceTotal.WithLabelValues(string(source)).Inc()
	log.Info("resolved query", map[string]interface{}{
		"query":  query,
		"source": string(source),
	})

	var summary string
	summary, outcome = h.search(ctx, log, query)

	envelope = h.buildEnvelope(event, summary)
	result = h.encode(envelope, log)
	return result, envelope
}

func (h *Handler) search(ctx context.Context, log logger.Logger, query string) (string, string) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	provider := h.searcher.Name()
	ctx, span := h.obs.StartSpan(ctx, "search-web.search",
		attribute.String("search.provider", provider),
		attribute.String("search.query", query),
	)
	defer span.End()

	timer := prometheus.NewTimer(metrics.SearchDuration.WithLabelValues(provider))
	result, err := h.searcher.Search(ctx, query)
	timer.ObserveDuration()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.WithError(err).Error("search call failed", map[string]interface{}{
			"errorCode": string(apperrors.GetErrorCode(err)),
			"provider":  provider,
		})
		return FailureText(h.config.SearchFailedPrefix, err), metrics.OutcomeFailed
	}

	if result.StatusCode >= http.StatusBadRequest {
		log.Warn("search provider returned error status", map[string]interface{}{
			"statusCode": result.StatusCode,
			"provider":   provider,
		})
	}

	summary := Summarize(result, h.config.MaxResults, h.config.NoResultsText)
	span.SetAttributes(attribute.Int("search.result_count", len(result.Items)))

	switch {
	case result.StaticText != "":
		return summary, metrics.OutcomeStatic
	case !result.OrganicPresent:
		return summary, metrics.OutcomeNoResults
	default:
		return summary, metrics.OutcomeOK
	}
}

func (h *Handler) buildEnvelope(event Event, summary string) *ResponseEnvelope {
	result := ActionGroupResult{
		ActionGroupName: stringField(event, "actionGroup"),
		APIPath:         stringField(event, "apiPath"),
		HTTPMethod:      stringField(event, "httpMethod"),
		Function:        h.config.FunctionName,
		FunctionResponse: FunctionResponse{
			ResponseBody: ResponseBody{Text: TextBody{Body: summary}},
		},
	}

	return &ResponseEnvelope{
		MessageVersion: h.config.MessageVersion,
		Response: EnvelopeResponse{
			ActionGroupInvocationResults: []ActionGroupResult{result},
		},
	}
}

func (h *Handler) encode(envelope *ResponseEnvelope, log logger.Logger) HTTPResult {
	first := envelope.Response.ActionGroupInvocationResults[0]
	if first.ActionGroupName == nil || first.APIPath == nil || first.HTTPMethod == nil {
		metrics.MissingEnvelopeFieldsTotal.Inc()
		log.Warn("one or more routing fields (actionGroup, apiPath, httpMethod) are missing", map[string]interface{}{
			"actionGroup": first.ActionGroupName,
			"apiPath":     first.APIPath,
			"httpMethod":  first.HTTPMethod,
		})
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		// Only reachable if the envelope types change shape.
		log.Error("failed to encode envelope", map[string]interface{}{"error": err.Error()})
		body = []byte(`{}`)
	}

	if res := envelopeSchema.ValidateBytes(body); !res.Valid {
		log.Warn("envelope does not match schema", map[string]interface{}{"violations": res.Summary()})
	}

	log.Info("constructed envelope", map[string]interface{}{"envelope": envelope})

	return HTTPResult{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
