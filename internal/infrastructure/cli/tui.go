package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/audittrail/trailgauge/internal/application"
	"github.com/audittrail/trailgauge/internal/domain/audit"
	"github.com/audittrail/trailgauge/internal/domain/gauge"
	"github.com/audittrail/trailgauge/internal/infrastructure/wiring"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive audit console",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("TRAILGAUGE_SKIP_TUI_RUN") == "true" {
			return nil
		}
		services, err := loadServices()
		if err != nil {
			return err
		}
		defer services.Log.Sync()

		p := tea.NewProgram(newTUIModel(services), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tuiCmd)
}

// Styles
var (
	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(1).
			PaddingRight(1)

	tuiStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tuiErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tuiOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	tuiBorderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

type keyMap struct {
	Submit key.Binding
	Save   key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Save, k.Copy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Save}, {k.Copy, k.Quit}}
}

var tuiKeys = keyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "audit")),
	Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save report")),
	Copy:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy report")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

// auditDoneMsg carries the completed lifecycle back onto the event loop.
type auditDoneMsg struct {
	result *application.Result
	err    error
}

type statusKind int

const (
	statusNeutral statusKind = iota
	statusOK
	statusFail
)

type tuiModel struct {
	services *wiring.AppServices

	input  textinput.Model
	spin   spinner.Model
	report viewport.Model
	gauge  gaugeView
	help   help.Model

	status     string
	kind       statusKind
	pending    bool
	reportText string
	ready      bool
	width      int
}

func newTUIModel(services *wiring.AppServices) tuiModel {
	input := textinput.New()
	input.Placeholder = "Paste code or ask a question..."
	input.CharLimit = 0
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	duration := time.Duration(services.Config.Gauge.AnimationMillis) * time.Millisecond

	return tuiModel{
		services: services,
		input:    input,
		spin:     spin,
		gauge:    newGaugeView(duration),
		help:     help.New(),
		status:   "Ready.",
	}
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

// submit launches the request lifecycle. The service enforces single-flight
// independently; the pending flag only keeps the UI honest.
func (m *tuiModel) submit() tea.Cmd {
	if m.pending {
		m.status = "An audit is already running."
		m.kind = statusNeutral
		return nil
	}

	query := m.input.Value()
	if _, err := audit.NormalizeQuery(query); err != nil {
		m.status = statusFor(err, m.services.Audit.Endpoint())
		m.kind = statusFail
		return nil
	}

	m.pending = true
	m.status = "Auditing..."
	m.kind = statusNeutral

	// Forced reset to zero, instantaneous by contract.
	m.gauge.retarget(gauge.Zero(), false)

	services := m.services
	return tea.Batch(
		m.spin.Tick,
		func() tea.Msg {
			result, err := services.Audit.Submit(context.Background(), query)
			return auditDoneMsg{result: result, err: err}
		},
	)
}

func (m *tuiModel) finish(msg auditDoneMsg) tea.Cmd {
	m.pending = false

	if msg.err != nil {
		if errors.Is(msg.err, audit.ErrSuperseded) {
			return nil
		}
		m.status = statusFor(msg.err, m.services.Audit.Endpoint())
		m.kind = statusFail
		return m.gauge.retarget(gauge.Zero(), false)
	}

	result := msg.result
	m.reportText = result.Report.Text
	if m.ready {
		m.report.SetContent(m.reportText)
		m.report.GotoTop()
	}

	if result.Score.Known {
		m.status = fmt.Sprintf("Audit complete: %d%% confidence.", result.Visual.DisplayedPercent)
		m.kind = statusOK
		return m.gauge.retarget(result.Visual, true)
	}

	m.status = "Audit complete, but no confidence score was found in the report."
	m.kind = statusOK
	return m.gauge.retarget(result.Visual, false)
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, tuiKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, tuiKeys.Submit):
			cmd := m.submit()
			return m, cmd
		case key.Matches(msg, tuiKeys.Save):
			if m.reportText == "" {
				m.status = "No report to save yet."
				m.kind = statusNeutral
				return m, nil
			}
			path, err := m.services.Exporter.Export(m.reportText)
			if err != nil {
				m.status = fmt.Sprintf("Save failed: %v", err)
				m.kind = statusFail
			} else {
				m.status = fmt.Sprintf("Report saved to %s.", path)
				m.kind = statusOK
			}
			return m, nil
		case key.Matches(msg, tuiKeys.Copy):
			if m.reportText == "" {
				m.status = "No report to copy yet."
				m.kind = statusNeutral
				return m, nil
			}
			if err := m.services.Clipboard.Copy(m.reportText); err != nil {
				m.status = fmt.Sprintf("Copy failed: %v", err)
				m.kind = statusFail
			} else {
				m.status = "Report copied to clipboard."
				m.kind = statusOK
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 6
		m.help.Width = msg.Width
		reportHeight := msg.Height - 12
		if reportHeight < 3 {
			reportHeight = 3
		}
		if !m.ready {
			m.report = viewport.New(msg.Width-4, reportHeight)
			m.report.SetContent(m.reportText)
			m.ready = true
		} else {
			m.report.Width = msg.Width - 4
			m.report.Height = reportHeight
		}
		return m, nil

	case auditDoneMsg:
		cmd := m.finish(msg)
		return m, cmd

	case gaugeFrameMsg:
		cmd := m.gauge.advance(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.ready {
		m.report, cmd = m.report.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m tuiModel) View() string {
	header := tuiHeaderStyle.Render("AuditTrail | " + m.services.Audit.Endpoint())

	status := m.status
	switch m.kind {
	case statusOK:
		status = tuiOKStyle.Render(status)
	case statusFail:
		status = tuiErrStyle.Render(status)
	default:
		status = tuiStatusStyle.Render(status)
	}
	if m.pending {
		status = m.spin.View() + " " + status
	}

	reportView := tuiStatusStyle.Render("No report yet. Submit a question to run an audit.")
	if m.ready && m.reportText != "" {
		reportView = tuiBorderStyle.Render(m.report.View())
	}

	footer := m.help.View(tuiKeys)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.input.View(),
		"",
		m.gauge.view(m.width),
		"",
		status,
		"",
		reportView,
		footer,
	) + "\n"
}
