package tui

import "strings"

// renderPicker renders the folder picker
func (a *App) renderPicker() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Choose a folder"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(a.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(a.picker.View())
	b.WriteString("\n")
	b.WriteString(a.help.View(pickerKeys{a.keys}))
	return b.String()
}
