package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/mvnup/mvnup/event"
)

var _ event.Installation = (*testInstallation)(nil)

type testInstallation struct {
	version string
}

func (i testInstallation) Version() string {
	return i.version
}

func TestHandler_installationStarted(t *testing.T) {

	tests := []struct {
		name       string
		eventFn    func(*testing.T) partybus.Event
		iterations int
	}{
		{
			name: "installation in progress",
			eventFn: func(t *testing.T) partybus.Event {
				prog := event.NewManualStagedProgress(2)
				prog.AtomicStage.Set("installing")
				prog.Manual.Increment()

				return partybus.Event{
					Type:   event.InstallationStartedEvent,
					Source: testInstallation{version: "3.9.9"},
					Value:  progress.StagedProgressable(prog),
				}
			},
		},
		{
			name: "installation complete",
			eventFn: func(t *testing.T) partybus.Event {
				prog := event.NewManualStagedProgress(2)
				prog.Manual.Set(2)
				prog.SetCompleted()

				return partybus.Event{
					Type:   event.InstallationStartedEvent,
					Source: testInstallation{version: "3.9.9"},
					Value:  progress.StagedProgressable(prog),
				}
			},
		},
		{
			name: "installation failed",
			eventFn: func(t *testing.T) partybus.Event {
				prog := event.NewManualStagedProgress(2)
				prog.SetError(errors.New("mirror is down"))

				return partybus.Event{
					Type:   event.InstallationStartedEvent,
					Source: testInstallation{version: "3.9.9"},
					Value:  progress.StagedProgressable(prog),
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the specific color and formatting matters for the snapshot
			t.Setenv("CLICOLOR_FORCE", "1")

			e := tt.eventFn(t)
			handler := New(DefaultHandlerConfig())
			handler.WindowSize = tea.WindowSizeMsg{
				Width:  100,
				Height: 80,
			}

			models := handler.Handle(e)
			require.Len(t, models, 1)
			model := models[0]

			ivm, ok := model.(installationViewModel)
			require.True(t, ok)

			got := runModel(t, ivm, tt.iterations, model.Init())
			t.Log(got)
			snaps.MatchSnapshot(t, got)
		})
	}
}
