package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"luamend/internal/driver"
	"luamend/internal/ui"
)

// runWithUI executes the run, attaching the interactive progress
// display for directory runs on a TTY.
func runWithUI(cmd *cobra.Command, runner *driver.Runner, path string, mode uiMode) (*driver.Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() || !shouldUseTUI(mode) {
		return runner.Run(cmd.Context(), path)
	}

	files, err := runner.ListFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return runner.Run(cmd.Context(), path)
	}

	events := make(chan ui.Event, len(files))
	runner.OnResult = func(result driver.FileResult) {
		events <- ui.EventFromResult(result)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	type runOutcome struct {
		summary *driver.Summary
		err     error
	}
	done := make(chan runOutcome, 1)
	go func() {
		summary, err := runner.Run(ctx, path)
		close(events)
		done <- runOutcome{summary, err}
	}()

	model := ui.NewProgressModel("luamend process "+path, files, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		// The display failing must not orphan the run.
		cancel()
	}
	outcome := <-done
	return outcome.summary, outcome.err
}
