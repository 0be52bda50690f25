package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coopdesk/memberdesk/internal/adapters/printform"
	"github.com/coopdesk/memberdesk/internal/app/desk"
	"github.com/coopdesk/memberdesk/internal/domain"
)

func (c *cli) newListCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members, optionally filtered",
		Long: `List members in store order.

--query keeps members whose full name contains the text (ignoring case) or
whose account number contains it exactly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := c.newScreen()
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			s.SetQuery(query)
			return writeMemberTable(cmd.OutOrStdout(), s.Visible())
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	return cmd
}

func (c *cli) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of one member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.newScreen()
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			id := domain.MemberID(args[0])
			if !s.Select(id) {
				return fmt.Errorf("member %s not found", id)
			}
			return writeMemberDetail(cmd.OutOrStdout(), *s.Snapshot().Selected)
		},
	}
}

// fieldFlags binds one string flag per editable member field.
type fieldFlags map[domain.Field]*string

func bindFieldFlags(cmd *cobra.Command) fieldFlags {
	ff := fieldFlags{}
	for _, f := range domain.Fields() {
		name := strings.ReplaceAll(string(f), "_", "-")
		usage := f.Label()
		switch f {
		case domain.FieldBirthDate:
			usage += " (YYYY-MM-DD)"
		case domain.FieldGender:
			usage += " (" + joinEnum(domain.Genders()) + ")"
		case domain.FieldRelationshipStatus:
			usage += " (" + joinEnum(domain.RelationshipStatuses()) + ")"
		}
		ff[f] = cmd.Flags().String(name, "", usage)
	}
	return ff
}

// apply copies the flags the user set into the open draft.
func (ff fieldFlags) apply(cmd *cobra.Command, s *desk.Screen) {
	for _, f := range domain.Fields() {
		if cmd.Flags().Changed(strings.ReplaceAll(string(f), "_", "-")) {
			s.SetField(f, *ff[f])
		}
	}
}

func joinEnum[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func (c *cli) newAddCmd() *cobra.Command {
	var ff fieldFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member",
		Long: `Add a member. First and last names are required.

Example:
  memberdesk add --first-name Ana --last-name Cruz --gender Female`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := c.newScreen()
			s.StartCompose()
			ff.apply(cmd, s)
			if err := s.Submit(cmd.Context()); err != nil {
				return err
			}
			ms := s.Snapshot().Members
			return writeMemberDetail(cmd.OutOrStdout(), ms[len(ms)-1])
		},
	}
	ff = bindFieldFlags(cmd)
	return cmd
}

func (c *cli) newEditCmd() *cobra.Command {
	var ff fieldFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a member",
		Long: `Change fields of a member. Only the flags given are changed; pass an empty
value to clear a field.

Example:
  memberdesk edit 12 --last-name Santos --pstatus Married`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.newScreen()
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			id := domain.MemberID(args[0])
			if !s.StartEdit(id) {
				return fmt.Errorf("member %s not found", id)
			}
			ff.apply(cmd, s)
			if err := s.Submit(cmd.Context()); err != nil {
				return err
			}
			m, _ := s.Lookup(id)
			return writeMemberDetail(cmd.OutOrStdout(), m)
		},
	}
	ff = bindFieldFlags(cmd)
	return cmd
}

func (c *cli) newDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a member after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.newScreen()
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			id := domain.MemberID(args[0])
			if _, ok := s.Lookup(id); !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "No member with id %s; nothing deleted.\n", id)
				return nil
			}
			confirm := desk.AlwaysConfirm
			if !yes {
				confirm = promptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
			}
			if err := s.Delete(cmd.Context(), id, confirm); err != nil {
				return err
			}
			if _, still := s.Lookup(id); !still {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted member %s.\n", id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (c *cli) newPrintCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "print [id]",
		Short: "Write a printable membership form as HTML",
		Long: `Write a printable membership form as HTML, pre-filled from the member with
the given id, or blank without one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var m *domain.Member
			if len(args) == 1 {
				s := c.newScreen()
				if err := s.Load(cmd.Context()); err != nil {
					return err
				}
				found, ok := s.Lookup(domain.MemberID(args[0]))
				if !ok {
					return fmt.Errorf("member %s not found", args[0])
				}
				m = &found
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, createErr := os.Create(out)
				if createErr != nil {
					return fmt.Errorf("create %s: %w", out, createErr)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				w = f
			}
			return printform.Render(w, m)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file (- for stdout)")
	return cmd
}

// promptConfirmer asks on out and reads a y/N answer from in.
func promptConfirmer(in io.Reader, out io.Writer) desk.Confirmer {
	r := bufio.NewReader(in)
	return desk.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	})
}
