package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/gesture"
	"github.com/matzehuels/shelfview/pkg/layout"
	"github.com/matzehuels/shelfview/pkg/pipeline"
	"github.com/matzehuels/shelfview/pkg/scene"
	"github.com/matzehuels/shelfview/pkg/snapshot"
	"github.com/matzehuels/shelfview/pkg/transition"
)

const (
	defaultScrubStep = 0.05
	scaleStep        = 1.1
	barWidth         = 30
)

var (
	scrubHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	scrubHiddenStyle = lipgloss.NewStyle().Foreground(colorDim)
	scrubItemStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	scrubHeadStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	scrubBarStyle    = lipgloss.NewStyle().Foreground(colorCyan)
)

// scrubCommand creates the interactive transition scrubber.
func (c *CLI) scrubCommand() *cobra.Command {
	var (
		from, to      string
		width, height float64
		step          float64
	)

	cmd := &cobra.Command{
		Use:   "scrub [scene.toml|scene.json]",
		Short: "Scrub interactively through a transition",
		Long: `Scrub interactively through a transition between two layouts.

Keys:
  ←/→ h/l   move progress by --step
  +/-       pinch out/in, mapping scale to progress like a gesture would
  enter     release the pinch (commits past the threshold, else cancels)
  f / c     finish / cancel
  space     start a transition back to the other layout
  ↑/↓ j/k   scroll the attribute table
  q         quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newScrubModel(args[0], from, to, width, height, step)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", pipeline.DefaultLayout, "source layout")
	cmd.Flags().StringVar(&to, "to", "grid[0]", "destination layout")
	cmd.Flags().Float64Var(&width, "width", 0, "container width (default: scene bounds)")
	cmd.Flags().Float64Var(&height, "height", 0, "container height (default: scene bounds)")
	cmd.Flags().Float64Var(&step, "step", defaultScrubStep, "progress change per key press")

	return cmd
}

// =============================================================================
// scrubModel - Interactive transition scrubber
// =============================================================================

// scrubModel drives one transition engine from the keyboard. The two
// layouts are kept so space can start the way back.
type scrubModel struct {
	scene  *scene.Scene
	engine *transition.Engine
	a, b   *layout.Layout
	step   float64
	scale  float64

	status string
	offset int
	height int
}

func newScrubModel(path, from, to string, width, height, step float64) (*scrubModel, error) {
	opts := pipeline.Options{ScenePath: path, Layout: to, From: from, Width: width, Height: height}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if !opts.IsTransition() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--from is required")
	}
	if !(step > 0 && step <= 1) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "step must be in (0, 1] (got %g)", step)
	}
	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	return newScrubModelForScene(sc, opts, step)
}

func newScrubModelForScene(sc *scene.Scene, opts pipeline.Options, step float64) (*scrubModel, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	fromPolicy, _ := opts.FromPolicy()
	bounds := pipeline.Bounds(sc, opts)

	a := sc.Layout(fromPolicy)
	a.SetBounds(bounds)
	b := sc.Layout(opts.Policy())
	b.SetBounds(bounds)

	e, err := pipeline.NewEngine(sc, a, b, opts.Focal)
	if err != nil {
		return nil, err
	}
	return &scrubModel{scene: sc, engine: e, a: a, b: b, step: step, scale: 1, height: 15}, nil
}

func (m *scrubModel) Init() tea.Cmd { return nil }

func (m *scrubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			m.nudge(m.step)
		case "left", "h":
			m.nudge(-m.step)
		case "+", "=":
			m.pinch(scaleStep)
		case "-":
			m.pinch(1 / scaleStep)
		case "enter":
			if m.interactive() {
				if m.engine.EndGesture(gesture.Sample{Scale: m.scale}) {
					m.status = "committed"
				} else {
					m.status = "cancelled"
				}
			}
		case "f":
			if !m.engine.Finish() {
				m.status = "nothing to finish"
			}
		case "c":
			if !m.engine.Cancel() {
				m.status = "nothing to cancel"
			}
		case " ":
			m.restart()
		case "down", "j":
			if m.offset < len(m.engine.AllAttributes())-1 {
				m.offset++
			}
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m *scrubModel) interactive() bool {
	return m.engine.State() == transition.StateInteractive
}

func (m *scrubModel) nudge(d float64) {
	if !m.interactive() {
		m.status = "press space to start a transition"
		return
	}
	m.engine.SetProgress(m.engine.Progress() + d)
}

func (m *scrubModel) pinch(f float64) {
	if !m.interactive() {
		m.status = "press space to start a transition"
		return
	}
	m.scale *= f
	m.engine.UpdateGesture(gesture.Sample{Scale: m.scale})
}

// restart begins a transition from the active layout to the other one.
func (m *scrubModel) restart() {
	if m.interactive() {
		m.status = "transition in progress"
		return
	}
	dest := m.b
	if m.engine.ActiveLayout() == m.b {
		dest = m.a
	}
	if _, err := m.engine.Begin(dest, transition.BeginOptions{}); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.scale = 1
}

func (m *scrubModel) View() string {
	var b strings.Builder

	title := m.engine.CurrentLayout().Policy().String()
	if src, ok := m.engine.Source(); ok {
		title = src.Policy().String() + " → " + title
	}
	b.WriteString(StyleTitle.Render(m.scene.Name + "  " + title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ scrub  +/- pinch  ⏎ release  f finish  c cancel  space restart  q quit"))
	b.WriteString("\n\n")

	b.WriteString(progressBar(m.engine.Progress(), barWidth))
	b.WriteString(fmt.Sprintf("  %s  %s", StyleNumber.Render(fmt.Sprintf("%.2f", m.engine.Progress())), StyleValue.Render(m.engine.State().String())))
	if m.interactive() {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  scale %.2f", m.scale)))
	}
	b.WriteString("\n")
	size := m.engine.ContentSize()
	b.WriteString(StyleDim.Render(fmt.Sprintf("content %.0f×%.0f", size.Width, size.Height)))
	if off, ok := m.engine.ContentOffset(); ok {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  offset (%.0f, %.0f)", off.X, off.Y)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.attributeTable())
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(m.status))
	}
	return b.String()
}

func (m *scrubModel) attributeTable() string {
	entries := snapshot.Entries(m.engine.AllAttributes())
	if m.offset >= len(entries) {
		m.offset = max(len(entries)-1, 0)
	}
	end := min(m.offset+m.height, len(entries))
	visible := entries[m.offset:end]

	rows := make([][]string, 0, len(visible))
	for _, e := range visible {
		rows = append(rows, []string{
			e.Kind,
			fmt.Sprintf("%d.%d", e.Section, e.Item),
			fmt.Sprintf("%.0f, %.0f", e.Center.X, e.Center.Y),
			fmt.Sprintf("%.0f×%.0f", e.Size.Width, e.Size.Height),
			fmt.Sprintf("%.2f", e.Rotation),
			fmt.Sprintf("%.2f", e.Alpha),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Path", "Center", "Size", "Rot", "Alpha").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return scrubHeaderStyle
			}
			if row < 0 || row >= len(visible) {
				return lipgloss.NewStyle()
			}
			e := visible[row]
			switch {
			case e.Hidden:
				return scrubHiddenStyle
			case e.Kind == layout.KindHeader.String():
				return scrubHeadStyle
			}
			return scrubItemStyle
		})

	return t.Render() + "\n" + StyleDim.Render(fmt.Sprintf("  [%d-%d/%d]", m.offset+1, end, len(entries)))
}

// progressBar draws p in [0, 1] as a bar of width cells.
func progressBar(p float64, width int) string {
	filled := int(p*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return scrubBarStyle.Render(strings.Repeat("█", filled)) + StyleDim.Render(strings.Repeat("░", width-filled))
}
