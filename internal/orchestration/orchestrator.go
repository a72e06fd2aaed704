package orchestration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/domainflow/internal/errors"
	"github.com/agbru/domainflow/internal/logging"
	"github.com/agbru/domainflow/internal/usecase"
)

// TracerName is the instrumentation scope used for dispatch spans.
const TracerName = "github.com/agbru/domainflow/internal/orchestration"

// State is the lifecycle stage of an Orchestrator.
type State int

const (
	// Idle means no use case has been selected yet.
	Idle State = iota
	// UseCaseBound means a use case is resolved and described.
	UseCaseBound
	// HandlerBound means a request handler is bound as well.
	HandlerBound
	// Dispatched is terminal: the presenter received the response.
	Dispatched
	// Failed is terminal: a step returned an error.
	Failed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case UseCaseBound:
		return "use case bound"
	case HandlerBound:
		return "handler bound"
	case Dispatched:
		return "dispatched"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Orchestrator is a single-use fluent builder that binds one use case, an
// optional handler and its raw arguments, then dispatches it once.
//
// Builder methods return the receiver so calls chain. The first error is
// sticky: it moves the orchestrator to Failed, is reported by Err, turns
// later builder calls into no-ops and is returned by Dispatch.
//
// An Orchestrator is not safe for concurrent use; create one per dispatch.
type Orchestrator struct {
	registry Registry
	logger   logging.Logger
	observer Observer
	tracer   trace.Tracer
	id       string

	state      State
	err        error
	attempted  bool
	useCaseID  string
	descriptor *usecase.Descriptor
	handlerID  string
	handler    Handler
	query      Query
}

// Option configures an Orchestrator during construction.
type Option func(*Orchestrator)

// WithLogger sets the logger used for step and failure entries.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithObserver registers an observer notified when Dispatch returns.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) { o.observer = obs }
}

// WithTracer replaces the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

// WithDispatchID replaces the generated dispatch identifier.
func WithDispatchID(id string) Option {
	return func(o *Orchestrator) { o.id = id }
}

// New creates an idle orchestrator resolving components from registry.
func New(registry Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{registry: registry}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.NopLogger{}
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(TracerName)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	return o
}

// ID returns the dispatch identifier used to correlate log entries.
func (o *Orchestrator) ID() string { return o.id }

// State returns the current lifecycle stage.
func (o *Orchestrator) State() State { return o.state }

// Err returns the sticky error, if any.
func (o *Orchestrator) Err() error { return o.err }

// Descriptor returns the description of the bound use case, nil before
// SelectUseCase succeeds.
func (o *Orchestrator) Descriptor() *usecase.Descriptor { return o.descriptor }

// SelectUseCase resolves id and inspects its entry point.
//
// It fails with apperrors.ResolutionError when the registry cannot provide
// id, and with apperrors.EntryPointError when the use case exposes no entry
// point, both forms, or more than one request parameter.
func (o *Orchestrator) SelectUseCase(id string) *Orchestrator {
	if o.err != nil {
		return o
	}
	if o.state != Idle {
		return o.fail(apperrors.StateError{Op: "select use case", State: o.state.String()})
	}
	o.useCaseID = id

	instance, err := o.resolve(apperrors.KindUseCase, id)
	if err != nil {
		return o.fail(err)
	}
	d, err := usecase.Describe(id, instance)
	if err != nil {
		return o.fail(err)
	}

	o.descriptor = d
	o.query = Query{}
	o.state = UseCaseBound
	o.logger.Debug("use case selected",
		logging.String("dispatch_id", o.id),
		logging.String("usecase", id),
		logging.String("entry_point", d.EntryPoint),
		logging.Int("params", d.ParamCount),
	)
	return o
}

// SelectHandler resolves the request handler bound to the use case. It may
// be called once, after SelectUseCase.
func (o *Orchestrator) SelectHandler(id string) *Orchestrator {
	if o.err != nil {
		return o
	}
	if o.state != UseCaseBound {
		return o.fail(apperrors.StateError{Op: "select handler", State: o.state.String()})
	}

	instance, err := o.resolve(apperrors.KindHandler, id)
	if err != nil {
		return o.fail(err)
	}
	h, ok := instance.(Handler)
	if !ok {
		return o.fail(apperrors.ResolutionError{Kind: apperrors.KindHandler, ID: id, Cause: apperrors.ErrNotAHandler})
	}

	o.handlerID = id
	o.handler = h
	o.state = HandlerBound
	o.logger.Debug("handler selected",
		logging.String("dispatch_id", o.id),
		logging.String("handler", id),
	)
	return o
}

// AddArgument adds a raw input value to the query. Keys are unique.
func (o *Orchestrator) AddArgument(key string, value any) *Orchestrator {
	if o.err != nil {
		return o
	}
	if o.state != UseCaseBound && o.state != HandlerBound {
		return o.fail(apperrors.StateError{Op: "add argument", State: o.state.String()})
	}
	if err := o.query.Add(key, value); err != nil {
		return o.fail(err)
	}
	o.logger.Debug("argument added",
		logging.String("dispatch_id", o.id),
		logging.String("key", key),
	)
	return o
}

// Dispatch validates and normalizes the query through the bound handler,
// invokes the use case and hands its response to presenter. Every failure
// aborts immediately; presenter is only called when all previous steps
// succeed. Errors from the handler, the use case and the presenter are
// returned unchanged.
//
// Dispatch may be called once. Later calls fail with apperrors.StateError.
func (o *Orchestrator) Dispatch(ctx context.Context, presenter Presenter) (err error) {
	if o.attempted {
		return apperrors.StateError{Op: "dispatch", State: o.state.String()}
	}
	o.attempted = true

	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "domainflow.dispatch", trace.WithAttributes(
		attribute.String("usecase.id", o.useCaseID),
		attribute.String("dispatch.id", o.id),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if o.observer != nil {
			o.observer.ObserveDispatch(o.useCaseID, time.Since(start), err)
		}
	}()

	if o.err != nil {
		return o.err
	}
	if o.state != UseCaseBound && o.state != HandlerBound {
		o.fail(apperrors.StateError{Op: "dispatch", State: o.state.String()})
		return o.err
	}
	if presenter == nil {
		o.fail(apperrors.StateError{Op: "dispatch without presenter", State: o.state.String()})
		return o.err
	}

	if err := o.dispatch(ctx, presenter); err != nil {
		o.fail(err)
		return err
	}

	o.state = Dispatched
	o.logger.Debug("use case dispatched",
		logging.String("dispatch_id", o.id),
		logging.String("usecase", o.useCaseID),
		logging.Float64("seconds", time.Since(start).Seconds()),
	)
	return nil
}

func (o *Orchestrator) dispatch(ctx context.Context, presenter Presenter) error {
	d := o.descriptor

	switch {
	case d.ParamCount == 0 && o.handler != nil:
		return apperrors.ConsistencyError{UseCase: d.ID, Method: d.EntryPoint, Reason: apperrors.UnnecessaryHandler}
	case d.ParamCount == 1 && o.handler == nil:
		return apperrors.ConsistencyError{UseCase: d.ID, Method: d.EntryPoint, Reason: apperrors.MissingHandler}
	}

	var request any
	if d.ParamCount == 1 {
		if err := o.handler.Valid(o.query); err != nil {
			return err
		}
		req, err := o.handler.Normalize(o.query)
		if err != nil {
			return err
		}
		if !d.Accepts(req) {
			return apperrors.TypeMismatchError{
				UseCase:  d.ID,
				Method:   d.EntryPoint,
				Expected: d.ExpectedType(),
				Actual:   usecase.TypeName(req),
			}
		}
		request = req
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	response, err := d.Invoke(ctx, request)
	if err != nil {
		return err
	}
	return presenter.Present(response)
}

func (o *Orchestrator) resolve(kind, id string) (any, error) {
	if !o.registry.Has(id) {
		return nil, apperrors.ResolutionError{Kind: kind, ID: id}
	}
	instance, err := o.registry.Get(id)
	if err != nil {
		return nil, apperrors.ResolutionError{Kind: kind, ID: id, Cause: err}
	}
	return instance, nil
}

func (o *Orchestrator) fail(err error) *Orchestrator {
	o.err = err
	o.state = Failed
	o.logger.Error("dispatch step failed", err,
		logging.String("dispatch_id", o.id),
		logging.String("usecase", o.useCaseID),
		logging.String("kind", apperrors.KindOf(err)),
	)
	return o
}
