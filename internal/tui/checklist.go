package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status of a checklist item.
type Status int

const (
	StatusPending Status = iota
	StatusOK
	StatusWarning
	StatusFailed
)

// Item is one checklist line.
type Item struct {
	Name   string
	Status Status
	Detail string
	Hint   string // shown on its own line for warnings and failures
}

// Checklist renders a titled list of items inside a box.
type Checklist struct {
	Title string
	Items []Item
	Width int // 0 means fit content
}

// Add appends an item.
func (c *Checklist) Add(item Item) {
	c.Items = append(c.Items, item)
}

// Failed reports whether any item failed.
func (c *Checklist) Failed() bool {
	for _, it := range c.Items {
		if it.Status == StatusFailed {
			return true
		}
	}
	return false
}

// View renders the checklist. The border colour reflects the worst status.
func (c Checklist) View() string {
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(BoldStyle.Render(c.Title))
		b.WriteString("\n")
	}
	for i, it := range c.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderItem(it))
	}

	style := BoxStyle
	if c.Failed() {
		style = ErrorBoxStyle
	} else if len(c.Items) > 0 {
		style = SuccessBoxStyle
	}
	if c.Width > 0 {
		style = style.Width(c.Width)
	}
	return style.Render(b.String())
}

func renderItem(it Item) string {
	var icon string
	var style lipgloss.Style
	switch it.Status {
	case StatusOK:
		icon, style = IconSuccess, SuccessStyle
	case StatusWarning:
		icon, style = IconWarning, WarningStyle
	case StatusFailed:
		icon, style = IconError, ErrorStyle
	default:
		icon, style = IconPending, MutedStyle
	}

	line := style.Render(icon) + " " + style.Render(it.Name)
	if it.Detail != "" {
		line += MutedStyle.Render(fmt.Sprintf(" (%s)", it.Detail))
	}
	if it.Hint != "" && (it.Status == StatusWarning || it.Status == StatusFailed) {
		line += "\n    " + MutedStyle.Render(it.Hint)
	}
	return line
}
