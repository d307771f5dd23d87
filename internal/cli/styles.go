// SPDX-License-Identifier: EPL-2.0

// Package cli renders the terminal output of the voxclean command.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#2E7D32")
	errorColor   = lipgloss.Color("#C62828")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// Field is one line of a summary.
type Field struct {
	Key   string
	Value string
}

// PrintVersion prints version information
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("voxclean"))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintResult prints a titled, aligned key/value summary.
func PrintResult(w io.Writer, title string, fields []Field) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Key)+1)
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		key := f.Key + ":"
		sb.WriteString(KeyStyle.Render(key + strings.Repeat(" ", width-len(key))))
		sb.WriteString(" ")
		sb.WriteString(ValueStyle.Render(f.Value))
		sb.WriteString("\n")
	}

	fmt.Fprint(w, sb.String())
}
