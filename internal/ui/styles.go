/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package ui renders stackpilot's terminal output: cost estimates, stack
// listings and deployment progress.
package ui

import (
	"os"

	"charm.land/lipgloss/v2"
)

// Styles contains the styles for rendering command output
type Styles struct {
	Title  lipgloss.Style
	Key    lipgloss.Style
	Value  lipgloss.Style
	Subtle lipgloss.Style
	Bold   lipgloss.Style

	// Semantic styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Whether colours are enabled
	UseColour bool
}

// Colours are optimised based on terminal background (dark vs light).
func NewStyles(useColour bool) *Styles {
	s := &Styles{UseColour: useColour}

	if !useColour {
		// Plain mode - empty styles pass text through unchanged.
		plainStyle := lipgloss.NewStyle()
		s.Title = plainStyle
		s.Key = plainStyle
		s.Value = plainStyle
		s.Subtle = plainStyle
		s.Bold = plainStyle.Bold(true)
		s.Success = plainStyle
		s.Warning = plainStyle
		s.Error = plainStyle
		return s
	}

	hasDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	var (
		titleText   string
		keyText     string
		subtleText  string
		successText string
		warningText string
		errorText   string
	)

	if hasDark {
		titleText = "12"  // Bright Blue
		keyText = "14"    // Cyan
		subtleText = "8"  // Dark Grey
		successText = "10"
		warningText = "11"
		errorText = "9"
	} else {
		titleText = "4" // Blue
		keyText = "6"   // Cyan
		subtleText = "8"
		successText = "2"
		warningText = "3"
		errorText = "1"
	}

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(titleText))

	s.Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color(keyText))

	s.Value = lipgloss.NewStyle()

	s.Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(subtleText))

	s.Bold = lipgloss.NewStyle().Bold(true)

	s.Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color(successText)).
		Bold(true)

	s.Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color(warningText)).
		Bold(true)

	s.Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color(errorText)).
		Bold(true)

	return s
}

// StatusStyle picks the semantic style for an orchestrator status string
func (s *Styles) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "COMPLETE":
		return s.Success
	case "FAILED", "ROLLED_BACK":
		return s.Error
	case "TIMED_OUT":
		return s.Warning
	default:
		return s.Value
	}
}

// ShouldUseColour determines if colour output should be used
func ShouldUseColour() bool {
	// Check NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}

	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	// Character device means stdout is a terminal
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
