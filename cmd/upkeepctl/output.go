package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"upkeep-server/internal/rest"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	keyStyle   = lipgloss.NewStyle().Bold(true).Width(20)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

func success(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, "✔ "+format+"\n", args...)
}

func renderRecord(r rest.Record) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", r.Entity, r.ID)))
	b.WriteString("\n")
	for _, key := range sortedKeys(r.Values) {
		b.WriteString(keyStyle.Render(key))
		b.WriteString(fmt.Sprint(r.Values[key]))
		b.WriteString("\n")
	}
	if !r.UpdatedAt.IsZero() {
		b.WriteString(mutedStyle.Render("updated " + r.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}
