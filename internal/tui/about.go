package tui

import "strings"

// renderAbout renders the about panel
func (a *App) renderAbout() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("About"))
	b.WriteString("\n")

	accel := "Software encoding"
	if a.state.Caps.HWAccel {
		accel = "VAAPI hardware acceleration available"
	}

	lines := []string{
		normalItemStyle.Bold(true).Render("video-estados") + " " + mutedItemStyle.Render(a.version),
		"",
		"Converts downloaded videos for WhatsApp status.",
		"Outputs are H.264 baseline with AAC audio and no metadata.",
		"",
		accel,
	}
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Press any key to go back"))
	return b.String()
}
