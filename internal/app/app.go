package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/agbru/domainflow/internal/catalog"
	"github.com/agbru/domainflow/internal/cli"
	"github.com/agbru/domainflow/internal/config"
	apperrors "github.com/agbru/domainflow/internal/errors"
	"github.com/agbru/domainflow/internal/logging"
	"github.com/agbru/domainflow/internal/metrics"
	"github.com/agbru/domainflow/internal/orchestration"
	"github.com/agbru/domainflow/internal/registry"
	"github.com/agbru/domainflow/internal/ui"
)

// Application represents the flowctl application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *registry.Container
	Logger    logging.Logger
	Metrics   *prometheus.Registry
	Collector *metrics.DispatchCollector
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry replaces the built-in catalog with c.
func WithRegistry(c *registry.Container) AppOption {
	return func(a *Application) { a.Registry = c }
}

// WithLogger replaces the console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates an Application from a resolved configuration.
func New(cfg config.AppConfig, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Application{Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(a)
	}

	if a.Registry == nil {
		a.Registry = registry.New()
		if err := catalog.Register(a.Registry); err != nil {
			return nil, fmt.Errorf("registering catalog: %w", err)
		}
	}
	if a.Logger == nil {
		console := zerolog.ConsoleWriter{Out: errWriter, NoColor: cfg.NoColor, TimeFormat: time.TimeOnly}
		a.Logger = logging.NewLeveledLogger(console, "flowctl", cfg.Level().String())
	}

	a.Metrics = prometheus.NewRegistry()
	collector, err := metrics.NewDispatchCollector(a.Metrics)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	a.Collector = collector

	ui.InitTheme(cfg.Theme, cfg.NoColor)
	return a, nil
}

// Dispatch runs one use case through a fresh orchestrator, bounded by the
// configured timeout. It satisfies cli.Dispatcher.
func (a *Application) Dispatch(ctx context.Context, req cli.DispatchRequest, p orchestration.Presenter) error {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	o := orchestration.New(a.Registry,
		orchestration.WithLogger(a.Logger),
		orchestration.WithObserver(a.Collector),
	).SelectUseCase(req.UseCase)
	if req.Handler != "" {
		o.SelectHandler(req.Handler)
	}
	for _, arg := range req.Arguments {
		o.AddArgument(arg.Key, arg.Value)
	}

	err := o.Dispatch(ctx, p)
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "dispatch " + req.UseCase, Limit: a.Config.Timeout}
	}
	return err
}

// RunDispatch dispatches req, writes the response to out in the configured
// format and returns the process exit code.
func (a *Application) RunDispatch(ctx context.Context, req cli.DispatchRequest, out io.Writer) int {
	presenter, err := cli.NewPresenter(a.Config.Format, out)
	if err != nil {
		return a.report(err)
	}
	stop := func() {}
	if a.Config.Format == config.FormatText {
		presenter, stop = cli.WithProgress(presenter, a.ErrWriter, "dispatching "+req.UseCase)
	}
	err = a.Dispatch(ctx, req, presenter)
	stop()
	code := a.report(err)
	if err := a.WriteMetrics(); err != nil {
		a.Logger.Error("writing metrics failed", err, logging.String("path", a.Config.MetricsFile))
	}
	return code
}

// RunShell starts an interactive session reading from in.
func (a *Application) RunShell(ctx context.Context, in io.Reader, out io.Writer) int {
	shell := cli.NewShell(a.Dispatch, a.Registry.IDs, cli.ShellConfig{Format: a.Config.Format})
	shell.SetInput(in)
	shell.SetOutput(out)
	shell.Start(ctx)
	if err := a.WriteMetrics(); err != nil {
		return a.report(err)
	}
	return apperrors.ExitSuccess
}

// WriteMetrics stores the dispatch metrics in Prometheus text format when a
// metrics file is configured.
func (a *Application) WriteMetrics() error {
	if a.Config.MetricsFile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(a.Config.MetricsFile, a.Metrics)
}

// report prints err and maps it to an exit code.
func (a *Application) report(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(a.ErrWriter, "%s %v\n", ui.Error("Error:"), err)
	return apperrors.ExitCode(err)
}
