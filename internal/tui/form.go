package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/coopdesk/memberdesk/internal/domain"
)

// formInput is one row of the add/edit form: a text input, or a picker when
// options is set. Option 0 of a picker is always "" (unset).
type formInput struct {
	field   domain.Field
	input   textinput.Model
	options []string
	choice  int
}

func (f formInput) isPicker() bool { return f.options != nil }

func (f formInput) value() string {
	if f.isPicker() {
		return f.options[f.choice]
	}
	return f.input.Value()
}

func pickerOptions(f domain.Field) []string {
	switch f {
	case domain.FieldGender:
		return append([]string{""}, lo.Map(domain.Genders(), func(g domain.Gender, _ int) string { return string(g) })...)
	case domain.FieldRelationshipStatus:
		return append([]string{""}, lo.Map(domain.RelationshipStatuses(), func(s domain.RelationshipStatus, _ int) string { return string(s) })...)
	default:
		return nil
	}
}

func newFormInputs(fields domain.MemberFields) []formInput {
	out := make([]formInput, 0, len(domain.Fields()))
	for _, f := range domain.Fields() {
		fi := formInput{field: f, options: pickerOptions(f)}
		v := fields.Get(f)
		if fi.isPicker() {
			fi.choice = max(slices.Index(fi.options, v), 0)
		} else {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = f.Label()
			if f == domain.FieldBirthDate {
				ti.Placeholder = "YYYY-MM-DD"
				ti.CharLimit = len("2006-01-02")
			}
			ti.SetValue(v)
			fi.input = ti
		}
		out = append(out, fi)
	}
	return out
}

// focusForm moves focus to input i, blurring the others.
func (m *Model) focusForm(i int) tea.Cmd {
	n := len(m.inputs)
	if n == 0 {
		return nil
	}
	m.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range m.inputs {
		if m.inputs[j].isPicker() {
			continue
		}
		if j == m.focus {
			cmd = m.inputs[j].input.Focus()
		} else {
			m.inputs[j].input.Blur()
		}
	}
	return cmd
}

// cycle moves the focused picker by delta and pushes the choice into the draft.
func (m *Model) cycle(delta int) {
	fi := &m.inputs[m.focus]
	if !fi.isPicker() {
		return
	}
	n := len(fi.options)
	fi.choice = ((fi.choice+delta)%n + n) % n
	m.screen.SetField(fi.field, fi.value())
}
