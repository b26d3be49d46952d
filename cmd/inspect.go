package cmd

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/tracker-go/internal/config"
	"github.com/nibzard/tracker-go/internal/todo"
	"github.com/nibzard/tracker-go/internal/ui"
)

// repoCommand prints the resolved task file path.
func (a *app) repoCommand(args []string) error {
	if len(args) != 0 {
		return usagef("usage: tracker repo")
	}
	_, err := fmt.Fprintln(a.stdout, a.store.Path())
	return err
}

// checkCommand validates the task file without modifying it, or prints the
// JSON Schema it is validated against.
func (a *app) checkCommand(args []string) error {
	fs := flag.NewFlagSet("tracker check", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	printSchema := fs.Bool("schema", false, "Print the task file JSON Schema")
	if err := fs.Parse(args); err != nil {
		return usagef("usage: tracker check [-schema]: %v", err)
	}
	if fs.NArg() != 0 {
		return usagef("usage: tracker check [-schema]")
	}
	if *printSchema {
		_, err := a.stdout.Write(todo.Schema())
		return err
	}

	res, err := a.store.Check()
	if err != nil {
		return err
	}
	if !res.Exists {
		return a.out.Infof("%s does not exist yet; it will be created by the first add", res.Path)
	}
	return a.out.Infof("%s is valid: %d tasks (todo %d, in progress %d, done %d), next id %d",
		res.Path,
		res.Tasks,
		res.Counts[todo.StatusTodo],
		res.Counts[todo.StatusInProgress],
		res.Counts[todo.StatusDone],
		res.NextID,
	)
}

// tuiCommand launches the interactive viewer.
func (a *app) tuiCommand(args []string) error {
	fs := flag.NewFlagSet("tracker tui", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	refresh := fs.Duration("refresh", 2*time.Second, "How often the task file is reloaded")
	if err := fs.Parse(args); err != nil {
		return usagef("usage: tracker tui [-refresh d] [status]: %v", err)
	}
	if *refresh <= 0 {
		return &todo.ValidationError{Field: "refresh", Err: fmt.Errorf("must be positive, got %s", *refresh)}
	}
	filter, err := todo.ParseFilter(strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}
	return ui.RunTUI(a.ctx, a.repo, a.store.Path(),
		ui.WithIO(a.stdin, a.stdout),
		ui.WithFilter(filter),
		ui.WithRefresh(*refresh),
	)
}

// configCommand prints the effective configuration with the source of each
// value, or an example config file.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("tracker config", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return usagef("usage: tracker config [-example]: %v", err)
	}
	if fs.NArg() != 0 {
		return usagef("usage: tracker config [-example]")
	}

	if *example {
		_, err := fmt.Fprint(a.stdout, config.ExampleConfig())
		return err
	}

	entries := a.cfg.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Key, e.Value, string(e.Source)})
	}
	if err := a.out.Table([]string{"KEY", "VALUE", "SOURCE"}, rows); err != nil {
		return err
	}
	if file := a.cfg.GetConfigFile(); file != "" {
		_, err := fmt.Fprintf(a.stdout, "Config file: %s\n", file)
		return err
	}
	_, err := fmt.Fprintln(a.stdout, "Config file: none")
	return err
}
