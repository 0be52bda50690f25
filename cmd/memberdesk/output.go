package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/coopdesk/memberdesk/internal/domain"
)

var (
	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	detailLabel     = lipgloss.NewStyle().Bold(true).Width(22)
)

func accountLabel(m domain.Member) string {
	if m.AccountNumber == "" {
		return "No Account"
	}
	return m.AccountNumber
}

func writeMemberTable(w io.Writer, ms []domain.Member) error {
	if len(ms) == 0 {
		_, err := fmt.Fprintln(w, "No members found.")
		return err
	}
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{string(m.ID), accountLabel(m), m.FullName(), m.Email, m.PhoneNumber})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Account No.", "Name", "Email", "Phone").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeMemberDetail(w io.Writer, m domain.Member) error {
	lines := []string{
		detailLabel.Render("ID") + string(m.ID),
		detailLabel.Render("Account No.") + accountLabel(m),
	}
	for _, f := range domain.Fields() {
		lines = append(lines, detailLabel.Render(f.Label())+m.Get(f))
	}
	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
	return err
}
