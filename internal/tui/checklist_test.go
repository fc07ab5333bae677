package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecklistView(t *testing.T) {
	c := Checklist{Title: "Prerequisites"}
	c.Add(Item{Name: "go", Status: StatusOK, Detail: "1.22.3"})
	c.Add(Item{Name: "git", Status: StatusWarning, Detail: "not found", Hint: "install git"})

	view := c.View()
	assert.Contains(t, view, "─")
	assert.Contains(t, view, "Prerequisites")
	assert.Contains(t, view, IconSuccess)
	assert.Contains(t, view, "go")
	assert.Contains(t, view, "(1.22.3)")
	assert.Contains(t, view, "install git")
	assert.False(t, c.Failed())
}

func TestChecklistFailed(t *testing.T) {
	c := Checklist{}
	c.Add(Item{Name: "cc", Status: StatusFailed, Hint: "set CC"})
	c.Add(Item{Name: "go", Status: StatusOK, Hint: "hidden for ok items"})

	view := c.View()
	assert.True(t, c.Failed())
	assert.Contains(t, view, IconError)
	assert.Contains(t, view, "set CC")
	assert.NotContains(t, view, "hidden for ok items")
}

func TestChecklistWidth(t *testing.T) {
	c := Checklist{Title: "T", Width: 40}
	c.Add(Item{Name: "x", Status: StatusOK})

	for _, line := range strings.Split(c.View(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 42)
	}
}

func TestBoxStyleHasBorder(t *testing.T) {
	assert.Contains(t, BoxStyle.Render("test"), "─")
	assert.NotEmpty(t, string(ColorSuccess))
	assert.NotEmpty(t, string(ColorMuted))
}
