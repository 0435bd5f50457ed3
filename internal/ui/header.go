package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := "  "

	parts := []string{
		styles.Logo.Render("framewatch"),
		m.renderPollState(),
		styles.MutedText.Render("every") + " " + styles.Text.Render(formatInterval(m.host.interval)),
	}

	snap := m.snapshot
	switch {
	case snap.IsOffline():
		parts = append(parts, styles.DangerText.Render(fmt.Sprintf("OFFLINE (%d failures)", snap.ConsecutiveFailures)))
	case snap.LastError != nil:
		parts = append(parts, styles.WarningText.Render("reload failed"))
	case !snap.HasResource:
		parts = append(parts, styles.WarningText.Render("Loading..."))
	}

	parts = append(parts,
		styles.MutedText.Render("updated")+" "+styles.Text.Render(formatAge(time.Now(), snap.LastUpdated)),
	)

	if m.location != "" {
		parts = append(parts, styles.FaintText.Render(truncateMiddle(m.location, 48)))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func (m Model) renderPollState() string {
	styles := m.theme.Styles()
	switch {
	case m.host.polling():
		return styles.SuccessText.Render("● LIVE")
	case m.host.doc.Hidden():
		return styles.WarningText.Render("○ PAUSED")
	default:
		return styles.MutedText.Render("○ IDLE")
	}
}

// renderBody renders the resource and, while it is shown, the copy
// notification above it.
func (m Model) renderBody() string {
	styles := m.theme.Styles()
	content := m.viewport.View()
	if !m.snapshot.HasResource && !m.showLogs {
		content = styles.MutedText.Render("Nothing loaded yet.")
		if m.snapshot.LastError != nil {
			content = styles.DangerText.Render(m.snapshot.LastError.Error())
		}
	}
	body := styles.Body.
		Width(max(m.width-2, 0)).
		Height(max(m.height-4, 0)).
		Render(content)

	if !m.host.notificationVisible() {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Right, m.renderToast(), body)
}

func (m Model) renderToast() string {
	styles := m.theme.Styles()
	if m.copyErr != nil {
		return styles.Toast.Foreground(lipgloss.Color(m.theme.Danger)).
			Render("Copy failed: " + m.copyErr.Error())
	}
	return styles.Toast.Render("Copied to clipboard")
}

// renderFooter renders the key hints and the last reload error.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	line := m.help.ShortHelpView(m.keys.ShortHelp())
	if err := m.snapshot.LastError; err != nil && m.snapshot.HasResource {
		line = styles.DangerText.Render(truncateMiddle(err.Error(), 60)) + "  " + line
	}
	return styles.Footer.Width(m.width).Render(line)
}

// truncateMiddle shortens s to limit runes, keeping both ends.
func truncateMiddle(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 3
	head := keep / 2
	tail := keep - head
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}
