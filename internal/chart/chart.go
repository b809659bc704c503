// Package chart turns aggregation maps into bar charts and defines the
// Renderer contract that concrete outputs (terminal, Slack) implement.
package chart

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Bar is one category of a bar chart.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Chart is a renderer-independent bar chart.
type Chart struct {
	Title  string `json:"title,omitempty"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`
	Bars   []Bar  `json:"bars"`
	// IsRate marks values in [0, 1]; bars are scaled against 1 instead of the largest value.
	IsRate bool `json:"is_rate"`
}

// Renderer draws a chart onto some surface.
type Renderer interface {
	Render(ctx context.Context, c Chart) error
}

// Option sets presentation hints on a Chart.
type Option func(*Chart)

func WithTitle(title string) Option {
	return func(c *Chart) { c.Title = title }
}

func WithXLabel(label string) Option {
	return func(c *Chart) { c.XLabel = label }
}

func WithYLabel(label string) Option {
	return func(c *Chart) { c.YLabel = label }
}

// FromCounts builds a chart with one bar per key, sorted by label.
func FromCounts[K ~string](m map[K]int, opts ...Option) Chart {
	bars := make([]Bar, 0, len(m))
	for k, v := range m {
		bars = append(bars, Bar{Label: string(k), Value: float64(v)})
	}
	return build(bars, false, opts)
}

// FromRates builds a chart of rates with one bar per key, sorted by label.
func FromRates[K ~string](m map[K]float64, opts ...Option) Chart {
	bars := make([]Bar, 0, len(m))
	for k, v := range m {
		bars = append(bars, Bar{Label: string(k), Value: v})
	}
	return build(bars, true, opts)
}

func build(bars []Bar, isRate bool, opts []Option) Chart {
	slices.SortFunc(bars, func(a, b Bar) int { return strings.Compare(a.Label, b.Label) })
	c := Chart{Bars: bars, IsRate: isRate}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FormatValue renders v the way bars of this chart are labelled.
func (c Chart) FormatValue(v float64) string {
	if c.IsRate {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Row is one laid-out line of a text bar chart.
type Row struct {
	Label string
	Bar   string
	Value string
}

// BarRune is the glyph used for text bars.
const BarRune = '█'

// Layout scales the bars to at most width runes and pads labels to a common width.
func Layout(c Chart, width int) []Row {
	scale := 1.0
	if !c.IsRate {
		scale = 0
		for _, b := range c.Bars {
			scale = max(scale, b.Value)
		}
	}

	labelWidth := 0
	for _, b := range c.Bars {
		labelWidth = max(labelWidth, utf8.RuneCountInString(b.Label))
	}

	rows := make([]Row, 0, len(c.Bars))
	for _, b := range c.Bars {
		n := 0
		if scale > 0 && b.Value > 0 {
			n = int(b.Value/scale*float64(width) + 0.5)
			n = min(max(n, 1), width)
		}
		rows = append(rows, Row{
			Label: b.Label + strings.Repeat(" ", labelWidth-utf8.RuneCountInString(b.Label)),
			Bar:   strings.Repeat(string(BarRune), n),
			Value: c.FormatValue(b.Value),
		})
	}
	return rows
}

// RenderAll renders charts in order and stops at the first failure.
func RenderAll(ctx context.Context, r Renderer, charts []Chart) error {
	for _, c := range charts {
		if err := r.Render(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
