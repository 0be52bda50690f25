package tui

import (
	"fmt"
	"strings"

	"github.com/coopdesk/memberdesk/internal/app/desk"
	"github.com/coopdesk/memberdesk/internal/domain"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.screen.Snapshot()
	switch {
	case snap.PageError != nil && snap.PageError.Kind == desk.LoadFailure:
		return m.renderLoadError(snap)
	case !snap.Loaded:
		return containerStyle.Render(headerStyle.Render(" Members ") + "\n\nLoading...")
	}

	switch m.view {
	case viewDetail:
		return m.renderDetail(snap)
	case viewForm:
		return m.renderForm(snap)
	case viewConfirmDelete:
		return m.renderConfirm(snap)
	default:
		return m.renderList(snap)
	}
}

func (m Model) renderLoadError(snap desk.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(" Members ") + "\n\n")
	b.WriteString(errorStyle.Render("Error: "+snap.PageError.Message) + "\n")
	if snap.PageError.Err != nil {
		b.WriteString(dimStyle.Render(snap.PageError.Err.Error()) + "\n")
	}
	b.WriteString("\n" + keyHelp("q", "quit"))
	return containerStyle.Render(b.String())
}

func (m Model) renderList(snap desk.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(" Members ") + "  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d", len(snap.Visible), len(snap.Members))) + "\n\n")
	b.WriteString(m.search.View() + "\n")
	if snap.PageError != nil {
		b.WriteString(errorStyle.Render(snap.PageError.Message) + "\n")
	}
	b.WriteString("\n")
	if len(snap.Visible) == 0 {
		b.WriteString(dimStyle.Render("No members found.") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}
	b.WriteString(keyHelp("enter", "details", "ctrl+n", "add", "ctrl+e", "edit", "ctrl+d", "delete", "esc", "quit"))
	return containerStyle.Render(b.String())
}

func (m Model) renderDetail(snap desk.Snapshot) string {
	sel := snap.Selected
	if sel == nil {
		return m.renderList(snap)
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(" "+sel.FullName()+" ") + "\n")
	b.WriteString(sectionStyle.Render("┃ Member Details") + "\n")
	b.WriteString(labelStyle.Render("Account No.") + valueStyle.Render(accountLabel(*sel)) + "\n")
	for _, f := range domain.Fields() {
		b.WriteString(labelStyle.Render(f.Label()) + valueStyle.Render(sel.Get(f)) + "\n")
	}
	b.WriteString("\n" + keyHelp("e", "edit", "d", "delete", "esc", "back"))
	return containerStyle.Render(b.String())
}

func (m Model) renderForm(snap desk.Snapshot) string {
	title := "Add Member"
	if snap.Mode == desk.EditingExisting {
		title = "Edit Member"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(" "+title+" ") + "\n")
	if snap.FormError != nil {
		b.WriteString(errorStyle.Render(snap.FormError.Message) + "\n")
	}
	b.WriteString("\n")
	for i, fi := range m.inputs {
		label := labelStyle
		if i == m.focus {
			label = focusedLabelStyle
		}
		name := fi.field.Label()
		if fi.field == domain.FieldFirstName || fi.field == domain.FieldLastName {
			name += " *"
		}
		b.WriteString(label.Render(name))
		if fi.isPicker() {
			v := fi.value()
			if v == "" {
				v = "(unset)"
			}
			b.WriteString(valueStyle.Render("< " + v + " >"))
		} else {
			b.WriteString(fi.input.View())
			if fi.field == domain.FieldBirthDate {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  %s to %s", domain.BirthDateHintMin, domain.BirthDateHintMax)))
			}
		}
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString("\n" + dimStyle.Render("Saving..."))
	}
	b.WriteString("\n" + keyHelp("tab", "next", "←/→", "choose", "enter", "save", "esc", "cancel"))
	return containerStyle.Render(b.String())
}

func (m Model) renderConfirm(snap desk.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(" Delete Member ") + "\n\n")
	for _, mem := range snap.Members {
		if mem.ID == m.pending {
			b.WriteString(valueStyle.Render(mem.FullName()) + dimStyle.Render("  "+accountLabel(mem)) + "\n\n")
			break
		}
	}
	b.WriteString(desk.DeletePrompt + "\n")
	b.WriteString("\n" + keyHelp("y", "yes", "n", "no"))
	return containerStyle.Render(b.String())
}
