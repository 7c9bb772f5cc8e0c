package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
)

// Theme colors
var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#A78BFA")
	Info      = lipgloss.Color("#3B82F6")
	TextDim   = lipgloss.Color("#9CA3AF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	FilePathStyle = lipgloss.NewStyle().
			Foreground(Info)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(TextDim)
)

// painter applies styles only when writing to a terminal
type painter struct {
	color bool
}

func newPainter(w io.Writer) painter {
	f, ok := w.(*os.File)
	if !ok {
		return painter{}
	}
	fd := f.Fd()
	return painter{color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

func (p painter) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// tableStyle picks the go-pretty style for the output
func (p painter) tableStyle() table.Style {
	if p.color {
		return table.StyleRounded
	}
	return table.StyleLight
}
