package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cuivienor/video-estados/internal/transcode"
)

// renderMain renders the main screen
func (a *App) renderMain() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("WhatsApp Status Converter"))
	b.WriteString("  ")
	b.WriteString(a.renderAccelBadge())
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Re-encode a folder of videos so WhatsApp accepts them as status"))
	b.WriteString("\n\n")

	b.WriteString(a.renderFolder())
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(a.renderInfoPanel()))
	b.WriteString("\n\n")

	if progress := a.renderProgress(); progress != "" {
		b.WriteString(progress)
		b.WriteString("\n\n")
	}

	b.WriteString(a.renderButton())
	b.WriteString("\n")

	if a.toast != "" {
		b.WriteString("\n")
		b.WriteString(toastStyle.Render(a.toast))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a *App) renderAccelBadge() string {
	switch {
	case !a.state.CapsKnown:
		return cpuBadge.Render("probing…")
	case a.state.Caps.HWAccel:
		return gpuBadge.Render("GPU")
	default:
		return cpuBadge.Render("CPU")
	}
}

// renderFolder renders the folder row and its video preview
func (a *App) renderFolder() string {
	var b strings.Builder

	b.WriteString(sectionHeaderStyle.Render("FOLDER"))
	b.WriteString("\n")

	if a.state.Dir == "" {
		b.WriteString(mutedItemStyle.Render("  No folder selected. Press [o] to choose one."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %s\n", normalItemStyle.Bold(true).Render(filepath.Base(a.state.Dir))))
	b.WriteString(fmt.Sprintf("  %s\n", mutedItemStyle.Render(a.state.Dir)))

	count := len(a.state.Files)
	countStr := fmt.Sprintf("%d videos", count)
	if count == 1 {
		countStr = "1 video"
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", countStr, mutedItemStyle.Render(a.state.Preview())))
	return b.String()
}

// renderInfoPanel lists what the conversion does
func (a *App) renderInfoPanel() string {
	lines := []string{
		fmt.Sprintf("Video  H.264 %s %s, %s", transcode.VideoProfile, transcode.VideoLevel, transcode.PixelFormat),
		fmt.Sprintf("Audio  AAC %s stereo, 44.1 kHz", transcode.AudioBitrate),
		"Privacy  location, device and date metadata removed",
	}
	if a.state.Caps.HWAccel {
		lines = append(lines, successStyle.Render("GPU  VAAPI H.264 acceleration detected"))
	}
	lines = append(lines, fmt.Sprintf("Output  %s/<name>%s%s", transcode.DestinationDirName, transcode.OutputSuffix, transcode.OutputExt))
	return strings.Join(lines, "\n")
}

// renderProgress renders the bar and label, or nothing before the first batch
func (a *App) renderProgress() string {
	if a.state.Phase == PhaseIdle && a.state.Label == "" {
		return ""
	}
	label := a.state.Label
	if a.state.Report != nil && !a.state.Report.AllSucceeded {
		label = errorStyle.Render(label)
	} else {
		label = labelStyle(label).Render(label)
	}
	return a.progress.ViewAs(a.state.Fraction) + "\n" + label
}

func (a *App) renderButton() string {
	text := a.state.ButtonLabel()
	switch a.state.Phase {
	case PhaseRunning:
		return a.spinner.View() + " " + buttonDisabledStyle.Render(text)
	case PhaseDone:
		return buttonDoneStyle.Render(glyphOK + " " + text)
	}
	if !a.state.CanConvert() {
		return buttonDisabledStyle.Render(text)
	}
	return buttonStyle.Render("▶ " + text)
}
