package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/agbru/domainflow/internal/config"
	"github.com/agbru/domainflow/internal/format"
	"github.com/agbru/domainflow/internal/orchestration"
	"github.com/agbru/domainflow/internal/ui"
)

// DispatchRequest describes one dispatch issued from the command line.
type DispatchRequest struct {
	UseCase   string
	Handler   string
	Arguments []Argument
}

// Dispatcher runs a dispatch and presents its response with p. It owns the
// dispatch timeout.
type Dispatcher func(ctx context.Context, req DispatchRequest, p orchestration.Presenter) error

// ShellConfig holds configuration for an interactive session.
type ShellConfig struct {
	// Format is the initial output format.
	Format string
}

// Shell is an interactive dispatch session.
type Shell struct {
	config   ShellConfig
	dispatch Dispatcher
	ids      func() []string
	useCase  string
	handler  string
	in       io.Reader
	out      io.Writer
}

// NewShell creates a session that dispatches through dispatch. ids lists the
// registered component identifiers.
func NewShell(dispatch Dispatcher, ids func() []string, cfg ShellConfig) *Shell {
	if cfg.Format == "" {
		cfg.Format = config.FormatText
	}
	return &Shell{
		config:   cfg,
		dispatch: dispatch,
		ids:      ids,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (s *Shell) SetInput(in io.Reader) {
	s.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (s *Shell) SetOutput(out io.Writer) {
	s.out = out
}

// Start reads and runs commands until exit, EOF or cancellation of ctx.
func (s *Shell) Start(ctx context.Context) {
	fmt.Fprintln(s.out, ui.Heading("domainflow interactive shell"))
	s.printHelp()
	fmt.Fprintln(s.out)

	scanner := bufio.NewScanner(s.in)
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(s.out, ui.Accent("flow> "))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintln(s.out, ui.Error("read error: "+err.Error()))
			}
			fmt.Fprintln(s.out, "\nGoodbye!")
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !s.processCommand(ctx, line) {
			return
		}
	}
}

func (s *Shell) printHelp() {
	commands := [][2]string{
		{"dispatch <use-case> [@handler] [key=value...]", "dispatch a use case"},
		{"use <use-case> [@handler]", "select the current use case and handler"},
		{"key=value...", "dispatch the current use case"},
		{"format <" + strings.Join(config.Formats, "|") + ">", "change the output format"},
		{"list", "list registered components"},
		{"status", "display the session state"},
		{"help", "display this help"},
		{"exit / quit", "leave the shell"},
	}
	width := 0
	for _, c := range commands {
		width = max(width, len(c[0]))
	}
	fmt.Fprintln(s.out, "Available commands:")
	for _, c := range commands {
		fmt.Fprintf(s.out, "  %s%s  %s\n", ui.Key(c[0]), strings.Repeat(" ", width-len(c[0])), c[1])
	}
}

// processCommand runs one input line. It returns false when the session
// should end.
func (s *Shell) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "dispatch", "d":
		if len(args) == 0 {
			fmt.Fprintln(s.out, ui.Error("usage: dispatch <use-case> [@handler] [key=value...]"))
			return true
		}
		handler, rest := splitHandler(args[1:])
		s.run(ctx, args[0], handler, rest)
	case "use", "u":
		s.cmdUse(args)
	case "format", "f":
		s.cmdFormat(args)
	case "list", "ls":
		s.cmdList()
	case "status", "st":
		s.cmdStatus()
	case "help", "h", "?":
		s.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintln(s.out, ui.Success("Goodbye!"))
		return false
	default:
		if strings.Contains(parts[0], "=") && s.useCase != "" {
			s.run(ctx, s.useCase, s.handler, parts)
			return true
		}
		fmt.Fprintln(s.out, ui.Error("unknown command: "+cmd))
		fmt.Fprintf(s.out, "Type %s to see available commands.\n", ui.Key("help"))
	}
	return true
}

// splitHandler extracts an "@handler" token from args.
func splitHandler(args []string) (string, []string) {
	var handler string
	rest := make([]string, 0, len(args))
	for _, a := range args {
		if h, ok := strings.CutPrefix(a, "@"); ok && handler == "" {
			handler = h
			continue
		}
		rest = append(rest, a)
	}
	return handler, rest
}

func (s *Shell) run(ctx context.Context, useCase, handler string, rawArgs []string) {
	args, err := ParseArguments(rawArgs)
	if err != nil {
		fmt.Fprintln(s.out, ui.Error("error: "+err.Error()))
		return
	}
	presenter, err := NewPresenter(s.config.Format, s.out)
	if err != nil {
		fmt.Fprintln(s.out, ui.Error("error: "+err.Error()))
		return
	}

	req := DispatchRequest{UseCase: useCase, Handler: handler, Arguments: args}
	start := time.Now()
	if err := s.dispatch(ctx, req, presenter); err != nil {
		fmt.Fprintln(s.out, ui.Error("error: "+err.Error()))
		return
	}
	fmt.Fprintln(s.out, ui.Dim("("+format.Duration(time.Since(start))+")"))
}

func (s *Shell) cmdUse(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, ui.Error("usage: use <use-case> [@handler]"))
		return
	}
	handler, _ := splitHandler(args[1:])
	s.useCase, s.handler = args[0], handler
	fmt.Fprintf(s.out, "Current use case: %s\n", ui.Accent(s.describeCurrent()))
}

func (s *Shell) cmdFormat(args []string) {
	if len(args) == 0 || !slices.Contains(config.Formats, strings.ToLower(args[0])) {
		fmt.Fprintf(s.out, "%s\n", ui.Error(fmt.Sprintf("usage: format <%s>", strings.Join(config.Formats, "|"))))
		return
	}
	s.config.Format = strings.ToLower(args[0])
	fmt.Fprintf(s.out, "Output format: %s\n", ui.Accent(s.config.Format))
}

func (s *Shell) cmdList() {
	ids := s.ids()
	if len(ids) == 0 {
		fmt.Fprintln(s.out, ui.Dim("no registered components"))
		return
	}
	for _, id := range ids {
		marker := "  "
		if id == s.useCase {
			marker = ui.Success("► ")
		}
		fmt.Fprintf(s.out, "%s%s\n", marker, ui.Key(id))
	}
}

func (s *Shell) cmdStatus() {
	fmt.Fprintln(s.out, "Current configuration:")
	fmt.Fprintf(s.out, "  Use case: %s\n", ui.Value(s.describeCurrent()))
	fmt.Fprintf(s.out, "  Format:   %s\n", ui.Value(s.config.Format))
}

func (s *Shell) describeCurrent() string {
	switch {
	case s.useCase == "":
		return "(none)"
	case s.handler == "":
		return s.useCase
	default:
		return s.useCase + " @" + s.handler
	}
}

