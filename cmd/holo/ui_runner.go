package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"holoscript/internal/driver"
	"holoscript/internal/ui"
)

type validateOutcome struct {
	result *driver.RunResult
	err    error
}

func runValidateWithUI(ctx context.Context, title string, files []string, path string, opts *driver.Options) (*driver.RunResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan validateOutcome, 1)

	go func() {
		optsCopy := *opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ValidatePath(ctx, path, &optsCopy)
		outcomeCh <- validateOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
