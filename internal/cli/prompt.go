package cli

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/ironsheep/image-grid/internal/errors"
	"github.com/ironsheep/image-grid/internal/grid"
)

type choice struct {
	label string
	value string
}

// choiceModel is a single-select list. It quits on enter with the highlighted
// option chosen, or on q/esc/ctrl+c with nothing chosen.
type choiceModel struct {
	title   string
	detail  string
	options []choice
	cursor  int
	chosen  int
}

func newChoiceModel(title, detail string, options []choice) choiceModel {
	return choiceModel{title: title, detail: detail, options: options, chosen: -1}
}

func (m choiceModel) Init() tea.Cmd {
	return nil
}

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = m.cursor
		return m, tea.Quit
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m choiceModel) View() string {
	if m.chosen >= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title) + "\n")
	if m.detail != "" {
		b.WriteString(StyleDim.Render(m.detail) + "\n")
	}
	b.WriteString("\n")
	for i, o := range m.options {
		if i == m.cursor {
			b.WriteString(StyleHighlight.Render(iconInfo+" "+o.label) + "\n")
		} else {
			b.WriteString("  " + o.label + "\n")
		}
	}
	b.WriteString("\n" + StyleDim.Render("↑/↓ move • enter select • q cancel") + "\n")
	return b.String()
}

// selected returns the chosen value, or false when the prompt was cancelled.
func (m choiceModel) selected() (string, bool) {
	if m.chosen < 0 || m.chosen >= len(m.options) {
		return "", false
	}
	return m.options[m.chosen].value, true
}

// promptResolver asks on the terminal whether an undersized source should be
// stretched or padded.
type promptResolver struct {
	in  io.Reader
	out io.Writer
}

func (r promptResolver) ResolveUndersize(ctx context.Context, source, target image.Point) (grid.ResizeMode, error) {
	m := newChoiceModel(
		"Image is smaller than the grid",
		fmt.Sprintf("source %dx%d, grid needs %dx%d", source.X, source.Y, target.X, target.Y),
		[]choice{
			{label: "Resize - stretch to fill the grid", value: string(grid.ResizeStretch)},
			{label: "Pad - center on a filled canvas", value: string(grid.ResizePad)},
		},
	)
	final, err := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(r.in),
		tea.WithOutput(r.out),
	).Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", errors.Wrap(errors.KindValidation, err, "resize prompt")
	}

	v, ok := final.(choiceModel).selected()
	if !ok {
		return "", context.Canceled
	}
	return grid.ParseResizeMode(v)
}

// resolver returns the undersize policy for a --resize value. "ask" prompts
// when stdin is a terminal and fails otherwise.
func (c *CLI) resolver(mode string) (grid.UndersizeResolver, error) {
	if mode == "" || strings.EqualFold(mode, "ask") {
		in := c.stdin()
		if isTerminal(in) {
			return promptResolver{in: in, out: os.Stderr}, nil
		}
		return grid.ResolverFunc(func(_ context.Context, source, target image.Point) (grid.ResizeMode, error) {
			return "", errors.New(errors.KindValidation,
				"source %dx%d is smaller than the %dx%d grid and stdin is not a terminal; pass --resize resize or --resize pad",
				source.X, source.Y, target.X, target.Y)
		}), nil
	}

	m, err := grid.ParseResizeMode(mode)
	if err != nil {
		return nil, err
	}
	return grid.FixedMode(m), nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
