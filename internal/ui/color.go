package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ApplyColorProfile picks the colour profile for the process.
// NO_COLOR always wins; otherwise TERM/COLORTERM may raise what termenv detects.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(upgradeProfile(termenv.ColorProfile(), os.Getenv("COLORTERM"), os.Getenv("TERM")))
}

func upgradeProfile(p termenv.Profile, colorterm, term string) termenv.Profile {
	colorterm = strings.ToLower(colorterm)
	switch {
	case colorterm == "truecolor" || colorterm == "24bit":
		if p != termenv.Ascii {
			return termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if p == termenv.Ascii || p == termenv.ANSI {
			return termenv.ANSI256
		}
	}
	return p
}
