package desk

import "github.com/coopdesk/memberdesk/internal/domain"

// DraftKind tags the active draft.
type DraftKind int

const (
	DraftNone DraftKind = iota
	DraftNew
	DraftEdit
)

// Draft is the single in-progress form. Only DraftEdit carries an ID.
type Draft struct {
	Kind   DraftKind
	ID     domain.MemberID
	Fields domain.MemberFields
}

// Mode is what the screen shows.
type Mode int

const (
	Idle Mode = iota
	Composing
	EditingExisting
)

func (m Mode) String() string {
	switch m {
	case Composing:
		return "Composing"
	case EditingExisting:
		return "EditingExisting"
	default:
		return "Idle"
	}
}

func (d Draft) Mode() Mode {
	switch d.Kind {
	case DraftNew:
		return Composing
	case DraftEdit:
		return EditingExisting
	default:
		return Idle
	}
}

// Event drives the draft reducer.
type Event interface{ isEvent() }

// StartCompose opens an empty new-member draft, discarding any edit.
type StartCompose struct{}

// StartEdit opens an edit draft pre-populated from Member, discarding any new-member draft.
type StartEdit struct{ Member domain.Member }

// SetField changes one field of the active draft. Ignored when no draft is active.
type SetField struct {
	Field domain.Field
	Value string
}

// Cancel closes the form without saving.
type Cancel struct{}

// Submitted closes the form after the store accepted the draft.
type Submitted struct{}

func (StartCompose) isEvent() {}
func (StartEdit) isEvent()    {}
func (SetField) isEvent()     {}
func (Cancel) isEvent()       {}
func (Submitted) isEvent()    {}

// Reduce returns the draft that follows d after ev.
func Reduce(d Draft, ev Event) Draft {
	switch ev := ev.(type) {
	case StartCompose:
		return Draft{Kind: DraftNew}
	case StartEdit:
		return Draft{Kind: DraftEdit, ID: ev.Member.ID, Fields: ev.Member.MemberFields}
	case SetField:
		if d.Kind == DraftNone {
			return d
		}
		d.Fields = d.Fields.With(ev.Field, ev.Value)
		return d
	case Cancel, Submitted:
		return Draft{}
	default:
		return d
	}
}

// validateDraft enforces the one rule the desk checks itself.
func validateDraft(f domain.MemberFields) bool {
	return domain.NormalizeHumanName(f.FirstName) != "" && domain.NormalizeHumanName(f.LastName) != ""
}
