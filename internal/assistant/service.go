package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
	"github.com/chronomart/chronomart-backend/pkg/logger"
	"github.com/chronomart/chronomart-backend/pkg/metrics"
)

// Service is the assistant entry point: one call per user command.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, req ActionRequest) (ActionResult, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, userID uuid.UUID, intent ResolvedIntent, watch *models.Watch) (ActionResult, error)
}

type referenceResolver interface {
	Resolve(ctx context.Context, intent ResolvedIntent, contextItems []ContextItem) (*models.Watch, string, error)
}

type service struct {
	extractor  Extractor
	resolver   referenceResolver
	dispatcher dispatcher
	metrics    *metrics.AssistantMetrics
	logg       *logger.Logger
}

// ServiceParams bundles the assistant pipeline stages.
type ServiceParams struct {
	Extractor  Extractor
	Resolver   referenceResolver
	Dispatcher dispatcher
	Metrics    *metrics.AssistantMetrics
	Logger     *logger.Logger
}

// NewService wires extract, resolve, and dispatch into one pipeline.
func NewService(params ServiceParams) (Service, error) {
	if params.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if params.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	return &service{
		extractor:  params.Extractor,
		resolver:   params.Resolver,
		dispatcher: params.Dispatcher,
		metrics:    params.Metrics,
		logg:       params.Logger,
	}, nil
}

// Execute runs one command end to end. Extraction and resolution failures
// short-circuit before any mutation: an unresolved item-targeted action is
// never dispatched.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, req ActionRequest) (ActionResult, error) {
	if userID == uuid.Nil {
		return ActionResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}

	started := time.Now()
	intent, err := s.extractor.Extract(ctx, req.Message, req.Context)
	s.metrics.ObserveExtraction(outcomeLabel(err), time.Since(started))
	if err != nil {
		return ActionResult{}, err
	}

	if s.logg != nil {
		ctx = s.logg.WithAction(ctx, string(intent.Action))
		ctx = s.logg.WithFields(ctx, map[string]any{
			"reference": intent.Reference,
			"quantity":  intent.Quantity,
			"mode":      string(intent.Mode),
		})
		s.logg.Info(ctx, "intent extracted")
	}

	var watch *models.Watch
	if intent.Action.RequiresItem() {
		resolved, strategy, err := s.resolver.Resolve(ctx, intent, req.Context)
		if err != nil {
			s.metrics.IncAction(string(intent.Action), "unresolved")
			return ActionResult{}, err
		}
		s.metrics.IncResolution(strategy)
		if s.logg != nil {
			ctx = s.logg.WithFields(ctx, map[string]any{
				"watch_id": resolved.ID.String(),
				"strategy": strategy,
			})
			s.logg.Info(ctx, "reference resolved")
		}
		watch = resolved
	}

	result, err := s.dispatcher.Dispatch(ctx, userID, intent, watch)
	if err != nil {
		s.metrics.IncAction(string(intent.Action), "error")
		return ActionResult{}, err
	}
	s.metrics.IncAction(string(intent.Action), outcomeFromResult(result))
	return result, nil
}

func outcomeLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

func outcomeFromResult(result ActionResult) string {
	if result.Success {
		return "success"
	}
	return "rejected"
}
