package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mgomes/rockflow/internal/callexpr"
)

type checkIssue struct {
	Line    int
	Column  int
	Message string
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Type-check a file of call expressions (one per line) without running them",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("rockflow check: file path required")
			}
			path, err := filepath.Abs(c.Args().First())
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			engine, err := newEngine(c)
			if err != nil {
				return err
			}
			issues, err := checkFile(newChecker(engine.Registry()), path)
			if err != nil {
				return err
			}
			if len(issues) == 0 {
				fmt.Fprintln(c.App.Writer, "No issues found")
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintf(c.App.Writer, "%s:%d:%d: %s\n", path, issue.Line, issue.Column, issue.Message)
			}
			return fmt.Errorf("check found %d issue(s)", len(issues))
		},
	}
}

func checkFile(chk *checker, path string) ([]checkIssue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read calls: %w", err)
	}
	defer f.Close()

	var issues []checkIssue
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		err := chk.check(line)
		if err == nil {
			continue
		}
		issue := checkIssue{Line: lineNo, Column: 1, Message: err.Error()}
		var perr *callexpr.Error
		if errors.As(err, &perr) {
			issue.Column = perr.Pos.Column
			issue.Message = perr.Msg
		}
		issues = append(issues, issue)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read calls: %w", err)
	}
	return issues, nil
}
