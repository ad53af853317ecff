package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for focused buttons, borders
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorLink      = "39"  // Blue - for list check marks and urls
	ColorPanel     = "236" // Dark gray - for image backgrounds
)

// Styles contains shared style definitions used by the views and block renderer.
var Styles = struct {
	Title   lipgloss.Style // Bold accent color - for app titles
	Header1 lipgloss.Style // Level 1 headers
	Header2 lipgloss.Style // Level 2 headers
	Header3 lipgloss.Style // Level 3 and deeper
	Body    lipgloss.Style // Paragraph text
	Item    lipgloss.Style // List item text
	Check   lipgloss.Style // List check mark / number

	Image           lipgloss.Style // Image frame without border
	ImageBorder     lipgloss.Style // Image frame with border
	ImageBackground lipgloss.Style // Applied on top of the frame when withBackground is set
	Caption         lipgloss.Style
	URL             lipgloss.Style

	Button        lipgloss.Style // Unfocused button
	ButtonFocused lipgloss.Style // Focused button

	Muted lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Header1: lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Header2: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Header3: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorText)),
	Body: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Item: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorLink)),
	Check: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorLink)),
	Image: lipgloss.NewStyle().
		Padding(0, 1),
	ImageBorder: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	ImageBackground: lipgloss.NewStyle().
		Background(lipgloss.Color(ColorPanel)),
	Caption: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color(ColorText)),
	URL: lipgloss.NewStyle().
		Underline(true).
		Foreground(lipgloss.Color(ColorLink)),
	Button: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Foreground(lipgloss.Color(ColorText)).
		Padding(0, 2),
	ButtonFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true).
		Padding(0, 2),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}

// headerStyle picks the emphasis for a header level. Levels below 1 render
// like level 1.
func headerStyle(level int) lipgloss.Style {
	switch {
	case level <= 1:
		return Styles.Header1
	case level == 2:
		return Styles.Header2
	default:
		return Styles.Header3
	}
}
