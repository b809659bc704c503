// Package terminal renders charts as styled text bar charts.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mauv0809/rootstats/internal/chart"
)

const defaultWidth = 40

var _ chart.Renderer = (*Renderer)(nil)

// Renderer draws charts onto a writer. A Renderer created without a surface
// owns its output and frames every chart in its own box on stdout.
type Renderer struct {
	out   io.Writer
	owned bool
	width int

	title lipgloss.Style
	label lipgloss.Style
	bar   lipgloss.Style
	value lipgloss.Style
	axis  lipgloss.Style
	frame lipgloss.Style
}

type Option func(*Renderer)

// WithWidth sets the length of the longest bar in cells.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// New returns a renderer that draws onto surface, or onto a fresh stdout
// surface when surface is nil.
func New(surface io.Writer, opts ...Option) *Renderer {
	owned := surface == nil
	if owned {
		surface = os.Stdout
	}
	re := lipgloss.NewRenderer(surface)

	r := &Renderer{
		out:   surface,
		owned: owned,
		width: defaultWidth,
		title: re.NewStyle().Bold(true).MarginBottom(1),
		label: re.NewStyle().Foreground(lipgloss.Color("252")),
		bar:   re.NewStyle().Foreground(lipgloss.Color("63")),
		value: re.NewStyle().Foreground(lipgloss.Color("212")),
		axis:  re.NewStyle().Faint(true).MarginTop(1),
		frame: re.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Render(ctx context.Context, c chart.Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := r.draw(c)
	if r.owned {
		body = r.frame.Render(body)
	}
	if _, err := fmt.Fprintln(r.out, body); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

func (r *Renderer) draw(c chart.Chart) string {
	var parts []string
	if c.Title != "" {
		parts = append(parts, r.title.Render(c.Title))
	}

	rows := chart.Layout(c, r.width)
	if len(rows) == 0 {
		parts = append(parts, "No games recorded yet.")
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s │ %s %s", r.label.Render(row.Label), r.bar.Render(row.Bar), r.value.Render(row.Value)))
	}
	if len(lines) > 0 {
		parts = append(parts, strings.Join(lines, "\n"))
	}

	if caption := axisCaption(c); caption != "" {
		parts = append(parts, r.axis.Render(caption))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func axisCaption(c chart.Chart) string {
	switch {
	case c.XLabel != "" && c.YLabel != "":
		return c.XLabel + " → " + c.YLabel
	case c.XLabel != "":
		return c.XLabel
	default:
		return c.YLabel
	}
}
