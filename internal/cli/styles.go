package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette, grounded on the teacher's internal/ui/styles.go: a
// single accent color for highlights, a muted color for secondary info,
// no colored success/error distinction — unicode symbols carry that.
var (
	Accent     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	Muted      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	Bold       = lipgloss.NewStyle().Bold(true)
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
)

var accentColor string

// ConfigureTheme sets the accent color used by styled output from a
// toolconfig.Config.UI.Accent value ("none" disables color entirely).
func ConfigureTheme(accent string) {
	accentColor = accent
	if accent == "" || accent == "none" {
		lipgloss.SetColorProfile(0) // ascii: disable ANSI styling
		return
	}
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true)
}

// isOutputTTY reports whether stdout is a terminal, gating markdown
// rendering the same way the teacher gates markdown rendering.
func isOutputTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}
