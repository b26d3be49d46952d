// Package cmd implements the CLI command structure for tracker.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tracker-go/internal/config"
	"github.com/nibzard/tracker-go/internal/logging"
	"github.com/nibzard/tracker-go/internal/todo"
	"github.com/nibzard/tracker-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrUsage marks errors caused by a malformed command line.
var ErrUsage = errors.New("usage error")

// usageError reports a malformed command line with the expected usage.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func (e *usageError) Is(target error) bool { return target == ErrUsage }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// app carries what every command needs for one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *config.ConfigWithSources
	logger *log.Logger
	store  *todo.Store
	repo   *todo.Repository
	out    *ui.Renderer
	ctx    context.Context
}

// Run executes the tracker CLI against the process streams.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

// RunWithIO executes the tracker CLI with explicit streams.
func RunWithIO(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tracker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, stdout)
		return nil
	}
	subcommand, remainingArgs := remainingArgs[0], remainingArgs[1:]

	// Commands that need neither the logger nor the task file.
	switch subcommand {
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	}

	a, err := newApp(ctx, cws, stdin, stdout, stderr)
	if err != nil {
		return err
	}

	err = a.dispatch(fs, subcommand, remainingArgs)
	if err != nil {
		a.logger.Debug("command failed", "command", subcommand, "err", err, "exit_code", ExitCode(err))
	}
	return err
}

func newApp(ctx context.Context, cws *config.ConfigWithSources, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	cfg := cws.Config
	logger, err := logging.FromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	store, err := todo.NewStore(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("using task file", "path", store.Path())

	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    cws,
		logger: logger,
		store:  store,
		repo:   todo.NewRepository(store, todo.WithLogger(logger)),
		out:    ui.NewRenderer(stdout),
		ctx:    ctx,
	}, nil
}

func (a *app) dispatch(fs *flag.FlagSet, subcommand string, args []string) error {
	switch subcommand {
	case "add":
		return a.addCommand(args)
	case "update":
		return a.updateCommand(args)
	case "delete":
		return a.deleteCommand(args)
	case "mark-todo":
		return a.markCommand(subcommand, todo.StatusTodo, args)
	case "mark-in-progress":
		return a.markCommand(subcommand, todo.StatusInProgress, args)
	case "mark-done":
		return a.markCommand(subcommand, todo.StatusDone, args)
	case "list", "ls":
		return a.listCommand(args)
	case "show":
		return a.showCommand(args)
	case "repo":
		return a.repoCommand(args)
	case "check":
		return a.checkCommand(args)
	case "tui":
		return a.tuiCommand(args)
	case "config":
		return a.configCommand(args)
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, a.stderr)
		return usagef("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	_, err := fmt.Fprintf(w, "tracker version %s\n", Version)
	return err
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tracker - track tasks in a local JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tracker [options] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>            Add a new task")
	fmt.Fprintln(w, "  update <id> <description>    Change a task's description")
	fmt.Fprintln(w, "  delete <id>                  Remove a task")
	fmt.Fprintln(w, "  mark-todo <id>               Mark a task as TODO")
	fmt.Fprintln(w, "  mark-in-progress <id>        Mark a task as IN PROGRESS")
	fmt.Fprintln(w, "  mark-done <id>               Mark a task as DONE")
	fmt.Fprintln(w, "  list [all|todo|in-progress|done]")
	fmt.Fprintln(w, "                               List tasks, optionally by status")
	fmt.Fprintln(w, "  show <id>                    Show a single task")
	fmt.Fprintln(w, "  repo                         Print the task file path")
	fmt.Fprintln(w, "  check [-schema]              Validate the task file, or print its schema")
	fmt.Fprintln(w, "  tui [-refresh d] [status]    Browse tasks interactively")
	fmt.Fprintln(w, "  config [-example]            Show effective configuration")
	fmt.Fprintln(w, "  version                      Show version information")
	fmt.Fprintln(w, "  help                         Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-24s Task file path\n", config.EnvDataFile)
	fmt.Fprintf(w, "  %-24s Log level\n", config.EnvLogLevel)
	fmt.Fprintf(w, "  %-24s Log format\n", config.EnvLogFormat)
	fmt.Fprintf(w, "  %-24s Show timestamps in logs\n", config.EnvLogTimestamps)
	fmt.Fprintf(w, "  %-24s Show caller location in logs\n", config.EnvLogCaller)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 usage, 2 invalid input, 3 not found,")
	fmt.Fprintln(w, "4 corrupt task file, 5 read/write failure, 130 interrupted.")
}

// joinArgs rebuilds a multi-word argument. A leading "--" is dropped so
// descriptions may start with a dash.
func joinArgs(args []string) string {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	return strings.Join(args, " ")
}
