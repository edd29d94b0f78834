package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/userdesk/internal/reqres"
	"github.com/five82/userdesk/internal/state"
)

const panelWidth = 56

// renderMain renders the full UI.
func (m Model) renderMain() string {
	sections := []string{
		m.renderHeader(),
		m.renderForm(),
		m.renderCreated(),
		m.renderFetched(),
	}
	if m.showActivity {
		sections = append(sections, m.renderActivity())
	}
	if banner := m.renderBanner(); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections, m.renderCommandBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the logo, connectivity and theme line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	conn := styles.SuccessText.Render("● online")
	if !m.snapshot.Connected {
		conn = styles.DangerText.Render("● offline")
	}

	parts := []string{
		styles.Logo.Render("userdesk"),
		conn,
	}
	if m.snapshot.IsLoading() {
		parts = append(parts, m.spinner.View()+styles.MutedText.Render(" working"))
	}
	parts = append(parts, styles.FaintText.Render(m.theme.Name))

	header := styles.Header
	if m.width > 0 {
		header = header.Width(m.width)
	}
	return header.Render(strings.Join(parts, "  "))
}

// renderForm renders the create-user form.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	labels := [fieldCount]string{"Name ", "Email"}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Create user"))
	b.WriteString("\n")
	for i := range m.inputs {
		label := styles.MutedText.Render(labels[i])
		if i == m.focus {
			label = styles.AccentText.Render(labels[i])
		}
		b.WriteString(label)
		b.WriteString("  ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	if m.formErr != "" {
		b.WriteString(styles.WarningText.Render(m.formErr))
	} else {
		b.WriteString(styles.FaintText.Render("enter to submit"))
	}

	return m.panel(true).Render(b.String())
}

// renderCreated renders the create slot.
func (m Model) renderCreated() string {
	styles := m.theme.Styles()
	slot := m.snapshot.Create

	var body string
	switch slot.Phase() {
	case state.PhaseLoading:
		body = m.spinner.View() + styles.MutedText.Render(" Creating user...")
	case state.PhaseSuccess:
		user, _ := slot.Value()
		body = formatCreated(user, styles)
	case state.PhaseFailure:
		msg, _ := slot.Err()
		body = styles.DangerText.Render(msg)
	default:
		body = styles.FaintText.Render("No user created yet")
	}

	return m.panel(false).Render(m.slotTitle("Created", slot.Phase()) + "\n" + body)
}

// renderFetched renders the fetch slot.
func (m Model) renderFetched() string {
	styles := m.theme.Styles()
	slot := m.snapshot.Fetch

	var body string
	switch slot.Phase() {
	case state.PhaseLoading:
		body = m.spinner.View() + styles.MutedText.Render(" Fetching user...")
	case state.PhaseSuccess:
		user, _ := slot.Value()
		body = formatFetched(user, styles)
	case state.PhaseFailure:
		msg, _ := slot.Err()
		body = styles.DangerText.Render(msg)
	default:
		body = styles.FaintText.Render("No user fetched yet")
	}

	return m.panel(false).Render(m.slotTitle("Fetched", slot.Phase()) + "\n" + body)
}

func (m Model) slotTitle(title string, phase state.Phase) string {
	styles := m.theme.Styles()
	return styles.Text.Bold(true).Render(title) + " " + styles.PhaseStyle(phase).Render(phase.String())
}

func formatCreated(user reqres.CreatedUserRecord, styles Styles) string {
	lines := []string{
		styles.Text.Render(user.Name),
	}
	if email := user.EmailOrEmpty(); email != "" {
		lines = append(lines, styles.MutedText.Render(email))
	}
	lines = append(lines, styles.FaintText.Render(fmt.Sprintf("id %s  created %s", user.ID, user.CreatedAt)))
	return strings.Join(lines, "\n")
}

func formatFetched(user reqres.UserRecord, styles Styles) string {
	lines := []string{
		styles.Text.Render(fmt.Sprintf("#%d %s", user.ID, user.FullName())),
		styles.MutedText.Render(user.Email),
	}
	if user.AvatarURL != "" {
		lines = append(lines, styles.FaintText.Render(user.AvatarURL))
	}
	return strings.Join(lines, "\n")
}

// renderActivity renders the tail of the log file.
func (m Model) renderActivity() string {
	styles := m.theme.Styles()

	body := styles.FaintText.Render("No activity yet")
	if len(m.activity) > 0 {
		lines := make([]string, len(m.activity))
		for i, line := range m.activity {
			lines[i] = styles.MutedText.Render(line)
		}
		body = strings.Join(lines, "\n")
	}

	return m.panel(false).Render(styles.Text.Bold(true).Render("Activity") + "\n" + body)
}

// renderBanner renders the success toast or the error banner. The toast
// wins while it is visible.
func (m Model) renderBanner() string {
	styles := m.theme.Styles()

	if m.snapshot.ShowSuccessToast {
		text := "User created"
		if m.snapshot.ToastSlot == state.SlotFetch {
			text = "User fetched"
		}
		return styles.Toast.Render("✓ " + text)
	}
	if msg := m.snapshot.ErrorMessage(); msg != "" {
		return styles.DangerText.Render("Error: "+msg) + styles.FaintText.Render("  esc to dismiss")
	}
	return ""
}

// renderCommandBar renders the short help line.
func (m Model) renderCommandBar() string {
	footer := m.theme.Styles().Footer
	if m.width > 0 {
		footer = footer.Width(m.width)
	}
	return footer.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) panel(focused bool) lipgloss.Style {
	style := m.theme.Styles().Panel.Width(panelWidth)
	if focused {
		style = style.BorderForeground(lipgloss.Color(m.theme.BorderFocus))
	}
	return style
}
