package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sniff/internal/driver"
	"sniff/internal/ui"
)

type detectOutcome struct {
	results []driver.FileResult
	err     error
}

// runDetectWithUI classifies files while a progress view renders to stderr,
// keeping stdout clean for the report.
func runDetectWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan detectOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.DetectFiles(ctx, files, optsCopy)
		outcomeCh <- detectOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the producer from blocking on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
