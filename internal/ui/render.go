package ui

import (
	"fmt"
	"strings"

	"onborder/internal/screen"
	"onborder/internal/ui/textutil"

	"github.com/charmbracelet/lipgloss"
)

// blockGap is the number of blank lines between rendered blocks.
const blockGap = 1

// renderedScreen is a screen laid out for the viewport. Offsets and Heights
// are indexed like the screen's blocks and give each block's first line and
// line count within Content.
type renderedScreen struct {
	Content string
	Offsets []int
	Heights []int
}

// renderScreen lays out every block of s top to bottom in screen order.
func renderScreen(s screen.Screen, focus FocusManager, width int) renderedScreen {
	blocks := s.Blocks()
	out := renderedScreen{
		Offsets: make([]int, len(blocks)),
		Heights: make([]int, len(blocks)),
	}
	parts := make([]string, 0, len(blocks))
	line := 0
	for i, b := range blocks {
		r := renderBlock(b, focus.IsFocused(i), width)
		h := lipgloss.Height(r)
		out.Offsets[i] = line
		out.Heights[i] = h
		line += h + blockGap
		parts = append(parts, r)
	}
	out.Content = strings.Join(parts, strings.Repeat("\n", blockGap+1))
	return out
}

// renderBlock renders one block. width is the available width in cells; 0
// means unconstrained.
func renderBlock(b screen.Block, focused bool, width int) string {
	switch d := b.Data.(type) {
	case screen.Image:
		return renderImage(d, width)
	case screen.Header:
		return wrap(headerStyle(d.Level), width).Render(d.Text)
	case screen.Paragraph:
		return wrap(Styles.Body, width).Render(d.Text)
	case screen.List:
		return renderList(d, width)
	case screen.Button:
		if focused {
			return Styles.ButtonFocused.Render(d.Text)
		}
		return Styles.Button.Render(d.Text)
	default:
		return ""
	}
}

func renderList(l screen.List, width int) string {
	lines := make([]string, 0, len(l.Items))
	for i, item := range l.Items {
		mark := "✔"
		if l.Style == "ordered" {
			mark = fmt.Sprintf("%d.", i+1)
		}
		lines = append(lines, Styles.Check.Render(mark)+" "+wrap(Styles.Item, width-lipgloss.Width(mark)-1).Render(item))
	}
	return strings.Join(lines, "\n")
}

func renderImage(img screen.Image, width int) string {
	style := Styles.Image
	if img.WithBorder {
		style = Styles.ImageBorder
	}

	url := img.URL
	if width > 0 {
		url = textutil.TruncateMiddle(url, width-style.GetHorizontalFrameSize())
	}
	lines := []string{Styles.URL.Render(url)}
	if img.Caption != "" {
		lines = append(lines, Styles.Caption.Render(img.Caption))
	}
	if img.WithBackground {
		style = style.Background(Styles.ImageBackground.GetBackground())
	}
	if img.Stretched && width > 0 {
		style = style.Width(width - style.GetHorizontalBorderSize())
	}
	return style.Render(strings.Join(lines, "\n"))
}

// wrap constrains style to width when width is known.
func wrap(style lipgloss.Style, width int) lipgloss.Style {
	if width <= 0 {
		return style
	}
	return style.Width(width)
}
