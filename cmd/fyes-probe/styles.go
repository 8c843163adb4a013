// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/charmbracelet/lipgloss"

const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray - used for secondary text.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess is green - used for matching cases.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError is red - used for mismatches and failures.
	ColorError = lipgloss.Color("#EF4444")
	// ColorHighlight is blue - used for paths and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	PathStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// diffStyle indents mismatch details under their case.
	diffStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(4)
)
