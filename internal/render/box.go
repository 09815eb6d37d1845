package render

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// MessageType defines the type of message box to render.
type MessageType int

const (
	InfoMessage MessageType = iota
	SuccessMessage
	WarningMessage
	ErrorMessage
)

const (
	infoPrefix    = "ℹ"
	successPrefix = "✓"
	warningPrefix = "⚠"
	errorPrefix   = "✗"
)

const (
	topLeft     = "╭"
	topRight    = "╮"
	bottomLeft  = "╰"
	bottomRight = "╯"
	horizontal  = "─"
	vertical    = "│"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Box is a builder for framed messages such as check results.
type Box struct {
	messageType MessageType
	title       string
	content     []string
	width       int
}

// NewBox creates a new message box with a specific type.
func NewBox(messageType MessageType, title string) *Box {
	return &Box{
		messageType: messageType,
		title:       title,
		width:       terminalWidth() - 8,
	}
}

// AddLine adds a line of text to the box.
func (b *Box) AddLine(text string) *Box {
	b.content = append(b.content, text)
	return b
}

// AddBullet adds a bulleted line to the box.
func (b *Box) AddBullet(text string) *Box {
	b.content = append(b.content, fmt.Sprintf("• %s", text))
	return b
}

// Render builds and returns the formatted box.
func (b *Box) Render() string {
	style, prefix := b.styleAndPrefix()

	lines := append([]string{b.title}, b.content...)
	contentWidth := b.width - 6
	if contentWidth < 20 {
		contentWidth = 20
	}

	var wrapped []string
	for _, line := range lines {
		if utf8.RuneCountInString(line) <= contentWidth {
			wrapped = append(wrapped, line)
		} else {
			wrapped = append(wrapped, wrapText(line, contentWidth)...)
		}
	}

	boxWidth := 6
	for _, line := range wrapped {
		if n := utf8.RuneCountInString(line) + 6; n > boxWidth {
			boxWidth = n
		}
	}

	var sb strings.Builder
	sb.WriteString(style.Render(topLeft+strings.Repeat(horizontal, boxWidth-2)+topRight) + "\n")

	first := wrapped[0]
	padding := boxWidth - utf8.RuneCountInString(first) - 4 - utf8.RuneCountInString(prefix)
	if padding < 0 {
		padding = 0
	}
	sb.WriteString(fmt.Sprintf("%s %s %s%s %s\n",
		style.Render(vertical),
		style.Bold(true).Render(prefix),
		first,
		strings.Repeat(" ", padding),
		style.Render(vertical)))

	for _, line := range wrapped[1:] {
		padding := boxWidth - utf8.RuneCountInString(line) - 4
		if padding < 0 {
			padding = 0
		}
		sb.WriteString(fmt.Sprintf("%s   %s%s %s\n",
			style.Render(vertical),
			line,
			strings.Repeat(" ", padding),
			style.Render(vertical)))
	}

	sb.WriteString(style.Render(bottomLeft + strings.Repeat(horizontal, boxWidth-2) + bottomRight))
	return sb.String()
}

func (b *Box) styleAndPrefix() (lipgloss.Style, string) {
	switch b.messageType {
	case SuccessMessage:
		return successStyle, successPrefix
	case WarningMessage:
		return warningStyle, warningPrefix
	case ErrorMessage:
		return errorStyle, errorPrefix
	default:
		return infoStyle, infoPrefix
	}
}

// Success renders a success box.
func Success(title string, lines ...string) string {
	box := NewBox(SuccessMessage, title)
	for _, line := range lines {
		box.AddLine(line)
	}
	return box.Render()
}

// Warning renders a warning box.
func Warning(title string, lines ...string) string {
	box := NewBox(WarningMessage, title)
	for _, line := range lines {
		box.AddLine(line)
	}
	return box.Render()
}

// Error renders an error box.
func Error(title string, lines ...string) string {
	box := NewBox(ErrorMessage, title)
	for _, line := range lines {
		box.AddLine(line)
	}
	return box.Render()
}

// terminalWidth returns the terminal width or 80 when stdout is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText wraps text to fit within maxWidth runes.
func wrapText(text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	currentWidth := utf8.RuneCountInString(current)

	for _, word := range words[1:] {
		wordWidth := utf8.RuneCountInString(word)
		if currentWidth+wordWidth+1 <= maxWidth {
			current += " " + word
			currentWidth += wordWidth + 1
		} else {
			lines = append(lines, current)
			current = word
			currentWidth = wordWidth
		}
	}
	return append(lines, current)
}
