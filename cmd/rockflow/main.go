package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mgomes/rockflow/internal/ctxfile"
	"github.com/mgomes/rockflow/rockflow"
)

// Version is the CLI release string.
var Version = "0.1.0"

func main() {
	if err := newCLIApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLIApp(stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      "rockflow",
		Usage:     "Inspect and exercise rockflow_context builtins",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "Log level: debug|info|warn|error"},
		},
		Commands: []*cli.Command{
			builtinsCmd(),
			callCmd(),
			checkCmd(),
			replCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

var contextFlag = &cli.StringFlag{
	Name:    "context",
	Aliases: []string{"c"},
	Usage:   "YAML or TOML file describing the host context (default: empty context)",
}

// newEngine builds the engine with a console logger on stderr.
func newEngine(c *cli.Context) (*rockflow.Engine, error) {
	logger, err := newLogger(c.App.ErrWriter, c.String("log-level"))
	if err != nil {
		return nil, err
	}
	return rockflow.NewEngine(rockflow.Config{Logger: &logger})
}

func loadContext(c *cli.Context) (rockflow.Context, error) {
	path := c.String("context")
	if path == "" {
		return rockflow.NullContext{}, nil
	}
	return ctxfile.Load(path)
}

func callCmd() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "Evaluate one builtin call expression against a context",
		ArgsUsage: "<expression>",
		Flags:     []cli.Flag{contextFlag},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("rockflow call: expression required")
			}
			engine, err := newEngine(c)
			if err != nil {
				return err
			}
			ctx, err := loadContext(c)
			if err != nil {
				return err
			}
			result, err := newSession(engine, ctx).evaluate(strings.Join(c.Args().Slice(), " "))
			if err != nil {
				return fmt.Errorf("call failed: %w", err)
			}
			fmt.Fprintln(c.App.Writer, result.String())
			return nil
		},
	}
}
