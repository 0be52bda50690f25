// Package printform renders a printable membership form, blank or pre-filled
// from a member record.
package printform

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/coopdesk/memberdesk/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	formTemplate *template.Template
	formOnce     sync.Once
	formErr      error
)

type row struct {
	Field domain.Field
	Label string
	Value string
}

type choice struct {
	Value   string
	Checked bool
}

type formData struct {
	Title         string
	AccountNumber string
	Rows          []row
	Genders       []choice
	Statuses      []choice
}

// Render writes the membership form to w. A nil member yields a blank form.
func Render(w io.Writer, m *domain.Member) error {
	formOnce.Do(func() {
		formTemplate, formErr = template.New("printform").ParseFS(templateFS, "templates/*.tmpl")
	})
	if formErr != nil {
		return fmt.Errorf("parse membership form: %w", formErr)
	}
	if err := formTemplate.ExecuteTemplate(w, "membership_form", newFormData(m)); err != nil {
		return fmt.Errorf("render membership form: %w", err)
	}
	return nil
}

func newFormData(m *domain.Member) formData {
	var f domain.MemberFields
	d := formData{Title: "Membership Form"}
	if m != nil {
		f = m.MemberFields
		d.AccountNumber = m.AccountNumber
		if name := f.FullName(); name != "" {
			d.Title = "Membership Form - " + name
		}
	}

	for _, fld := range domain.Fields() {
		if fld == domain.FieldGender || fld == domain.FieldRelationshipStatus {
			continue
		}
		d.Rows = append(d.Rows, row{Field: fld, Label: fld.Label(), Value: f.Get(fld)})
	}
	for _, g := range domain.Genders() {
		d.Genders = append(d.Genders, choice{Value: string(g), Checked: g == f.Gender})
	}
	for _, s := range domain.RelationshipStatuses() {
		d.Statuses = append(d.Statuses, choice{Value: string(s), Checked: s == f.RelationshipStatus})
	}
	return d
}
