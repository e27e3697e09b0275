package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/mvnup/mvnup/event"
	"github.com/mvnup/mvnup/internal/log"
)

var _ tea.Model = (*installationViewModel)(nil)

func (m *Handler) handleInstallationStarted(e partybus.Event) []tea.Model {
	installation, prog, err := event.ParseInstallationStarted(e)
	if err != nil {
		log.WithFields("error", err).Warn("unable to parse event")
		return nil
	}

	return []tea.Model{newInstallationViewModel(installation.Version(), prog, m.WindowSize)}
}

type installationViewModel struct {
	Version  string
	Progress progress.StagedProgressable

	WindowSize tea.WindowSizeMsg
	Spinner    spinner.Model

	TitleStyle   lipgloss.Style
	VersionStyle lipgloss.Style
	StageStyle   lipgloss.Style
	DoneStyle    lipgloss.Style
	ErrorStyle   lipgloss.Style
}

func newInstallationViewModel(version string, prog progress.StagedProgressable, windowSize tea.WindowSizeMsg) installationViewModel {
	return installationViewModel{
		Version:  version,
		Progress: prog,

		Spinner: spinner.New(
			spinner.WithSpinner(
				// matches the same spinner as syft/grype
				spinner.Spinner{
					Frames: strings.Split("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏", ""),
					FPS:    150 * time.Millisecond,
				},
			),
			spinner.WithStyle(
				lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // 13 = high intentity magenta (ANSI 16 bit color code)
			),
		),

		WindowSize: windowSize,

		TitleStyle:   lipgloss.NewStyle().Bold(true),
		VersionStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),     // 214 = orange1 (ANSI 16 bit color code)
		StageStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#777777")), // grey
		DoneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),      // 10 = high intensity green (ANSI 16 bit color code)
		ErrorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),       // 9 = high intensity red (ANSI 16 bit color code)
	}
}

func (m installationViewModel) Init() tea.Cmd {
	return m.Spinner.Tick
}

func (m installationViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		return m, nil

	case spinner.TickMsg:
		spinModel, spinCmd := m.Spinner.Update(msg)
		m.Spinner = spinModel
		return m, spinCmd
	}
	return m, nil
}

func (m installationViewModel) View() string {
	s := strings.Builder{}

	err := m.Progress.Error()

	var status string
	switch {
	case progress.IsErrCompleted(err):
		status = m.DoneStyle.Bold(true).Render("✔")
	case err != nil:
		status = m.ErrorStyle.Bold(true).Render("✘")
	default:
		status = m.Spinner.View()
	}

	s.WriteString(" " + status + " ")
	s.WriteString(m.TitleStyle.Render("Install maven"))
	s.WriteString(" " + m.VersionStyle.Render(m.Version))

	if stage := m.Progress.Stage(); stage != "" {
		s.WriteString("  " + m.StageStyle.Render(stage))
	}

	return s.String()
}
