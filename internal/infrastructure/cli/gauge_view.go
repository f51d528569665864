package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/audittrail/trailgauge/internal/domain/gauge"
)

const gaugeFrameRate = time.Second / 30

// gaugeFrameMsg drives one animation frame. The generation number identifies
// the driver that scheduled it; frames from a superseded driver are dropped,
// so only one animation is ever active per gauge.
type gaugeFrameMsg struct {
	gen int
}

// gaugeView renders the confidence gauge: an animated percent counter, a
// gradient bar, and the band label. The counter interpolates on wall-clock
// time over a fixed duration, so it lands on the target regardless of how
// many frames actually fire.
type gaugeView struct {
	bar       progress.Model
	visual    gauge.VisualState
	from      float64
	displayed float64
	start     time.Time
	duration  time.Duration
	animating bool
	gen       int
}

func newGaugeView(duration time.Duration) gaugeView {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
	)
	return gaugeView{
		bar:      bar,
		visual:   gauge.Zero(),
		duration: duration,
	}
}

// retarget points the gauge at a new visual state. A retarget while a prior
// animation is still running preempts it: the counter continues from whatever
// value is currently displayed toward the new target. With animated false the
// displayed value jumps immediately.
func (g *gaugeView) retarget(v gauge.VisualState, animated bool) tea.Cmd {
	g.gen++
	g.visual = v
	target := float64(v.DisplayedPercent)

	if !animated {
		g.displayed = target
		g.animating = false
		return nil
	}

	g.from = g.displayed
	g.start = time.Now()
	g.animating = true
	return g.frame()
}

func (g *gaugeView) frame() tea.Cmd {
	gen := g.gen
	return tea.Tick(gaugeFrameRate, func(time.Time) tea.Msg {
		return gaugeFrameMsg{gen: gen}
	})
}

// advance applies one frame. Returns the next frame command, or nil once the
// animation has landed or the frame belongs to a preempted driver.
func (g *gaugeView) advance(msg gaugeFrameMsg) tea.Cmd {
	if msg.gen != g.gen || !g.animating {
		return nil
	}

	target := float64(g.visual.DisplayedPercent)
	t := float64(time.Since(g.start)) / float64(g.duration)
	if t >= 1 {
		g.displayed = target
		g.animating = false
		return nil
	}

	g.displayed = g.from + (target-g.from)*easeOutCubic(t)
	return g.frame()
}

// easeOutCubic is the counter's easing curve: fast start, soft landing.
func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func (g *gaugeView) view(width int) string {
	if width > 4 {
		g.bar.Width = width - 4
	}

	bandStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(g.visual.Band.Color))

	counter := "--%"
	if g.visual.Known {
		counter = fmt.Sprintf("%d%%", int(g.displayed+0.5))
	}

	label := g.visual.Band.Label
	header := bandStyle.Bold(true).Render(counter)
	if label != "" {
		header += "  " + bandStyle.Render(label)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		g.bar.ViewAs(g.displayed/100),
	)
}
