package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agbru/domainflow/internal/catalog"
	"github.com/agbru/domainflow/internal/cli"
	"github.com/agbru/domainflow/internal/config"
	apperrors "github.com/agbru/domainflow/internal/errors"
	"github.com/agbru/domainflow/internal/orchestration"
	"github.com/agbru/domainflow/internal/ui"
	"github.com/agbru/domainflow/internal/usecase"
)

// exitError carries an exit code out of a RunE handler after the error has
// already been reported.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// exitWith turns a non-zero exit code into an exitError.
func exitWith(code int) error {
	if code == apperrors.ExitSuccess {
		return nil
	}
	return exitError{code: code}
}

// Execute runs flowctl with args and returns the process exit code.
// SIGINT and SIGTERM cancel the running dispatch.
func Execute(args []string, in io.Reader, out, errOut io.Writer, opts ...AppOption) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(in, out, errOut, opts...)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return apperrors.ExitSuccess
	}
	var exitErr exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	// Configuration errors and the flag errors raised by cobra itself.
	fmt.Fprintf(errOut, "%s %v\n", ui.Error("Error:"), err)
	return apperrors.ExitCode(err)
}

// NewRootCommand builds the flowctl command tree. The Application is created
// once flags are parsed; opts are applied to it.
func NewRootCommand(in io.Reader, out, errOut io.Writer, opts ...AppOption) *cobra.Command {
	var application *Application

	root := &cobra.Command{
		Use:   "flowctl",
		Short: "Dispatch use cases through the domainflow orchestrator",
		Long: ui.Heading("flowctl") + ` resolves a use case and its request handler from the
component registry, validates and normalizes the given arguments, invokes
the use case and presents its response.

Examples:
  flowctl list
  flowctl dispatch greet --handler greet.handler --arg name=Ada
  flowctl dispatch echo -H echo.handler -a message=hi -a repeat=2 --format json
  flowctl shell`,
		Version:       catalog.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			application, err = New(cfg, errOut, opts...)
			return err
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	config.RegisterFlags(root.PersistentFlags())

	app := func() *Application { return application }
	root.AddCommand(
		newDispatchCommand(app),
		newListCommand(app),
		newVersionCommand(app),
		newShellCommand(app),
	)
	return root
}

// newDispatchCommand creates the `flowctl dispatch` command.
func newDispatchCommand(app func() *Application) *cobra.Command {
	var (
		handler string
		rawArgs []string
	)

	cmd := &cobra.Command{
		Use:   "dispatch <use-case>",
		Short: "Dispatch a use case",
		Long: `Dispatch a registered use case.

Arguments are passed as repeated key=value pairs and go through the request
handler before the use case is invoked. Use cases that take a request need a
handler; use cases that take none must not be given one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			parsed, err := cli.ParseArguments(rawArgs)
			if err != nil {
				return exitWith(a.report(err))
			}
			req := cli.DispatchRequest{UseCase: args[0], Handler: handler, Arguments: parsed}
			return exitWith(a.RunDispatch(cmd.Context(), req, cmd.OutOrStdout()))
		},
	}
	cmd.Flags().StringVarP(&handler, "handler", "H", "", "request handler identifier")
	cmd.Flags().StringArrayVarP(&rawArgs, "arg", "a", nil, "argument as key=value (repeatable)")
	return cmd
}

// newListCommand creates the `flowctl list` command.
func newListCommand(app func() *Application) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered use cases and handlers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			for _, id := range a.Registry.IDs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Key(fmt.Sprintf("%-16s", id)), ui.Dim(a.describe(id)))
			}
			return nil
		},
	}
}

// describe summarizes what the component registered under id is.
func (a *Application) describe(id string) string {
	instance, err := a.Registry.Get(id)
	if err != nil {
		return "unavailable: " + err.Error()
	}
	if _, ok := instance.(orchestration.Handler); ok {
		return "handler"
	}
	d, err := usecase.Describe(id, instance)
	if err != nil {
		return "invalid: " + err.Error()
	}
	if d.ParamCount == 0 {
		return fmt.Sprintf("use case (%s, no request)", d.EntryPoint)
	}
	return fmt.Sprintf("use case (%s, request %s)", d.EntryPoint, d.ExpectedType())
}

// newVersionCommand creates the `flowctl version` command, which dispatches
// the version use case.
func newVersionCommand(app func() *Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := cli.DispatchRequest{UseCase: catalog.VersionID}
			return exitWith(app().RunDispatch(cmd.Context(), req, cmd.OutOrStdout()))
		},
	}
}

// newShellCommand creates the `flowctl shell` command.
func newShellCommand(app func() *Application) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive dispatch session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return exitWith(app().RunShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()))
		},
	}
}
