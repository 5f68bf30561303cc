package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/mgomes/rockflow/rockflow"
)

func builtinsCmd() *cli.Command {
	return &cli.Command{
		Name:  "builtins",
		Usage: "List registered builtin signatures",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Value: "**", Usage: "Glob over builtin names ('.' separates segments)"},
		},
		Action: func(c *cli.Context) error {
			engine, err := newEngine(c)
			if err != nil {
				return err
			}
			matched, err := engine.Registry().Match(c.String("filter"))
			if err != nil {
				return err
			}
			if len(matched) == 0 {
				fmt.Fprintln(c.App.Writer, mutedStyle.Render("No builtins match "+c.String("filter")))
				return nil
			}
			for _, b := range matched {
				fmt.Fprintln(c.App.Writer, renderSignature(b))
			}
			return nil
		},
	}
}

func renderSignature(b *rockflow.Builtin) string {
	params := make([]string, len(b.Params))
	for i, p := range b.Params {
		params[i] = p.Name + ": " + typeStyle.Render(string(p.Type))
	}
	sig := promptStyle.Render(b.Name) + "(" + strings.Join(params, ", ") + ")"
	if b.Result != "" {
		sig += " -> " + typeStyle.Render(string(b.Result))
	}
	return sig
}

var typeStyle = lipgloss.NewStyle().Foreground(highlightColor)
