package members

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coopdesk/memberdesk/internal/domain"
	clockport "github.com/coopdesk/memberdesk/internal/ports/out/clock"
	"github.com/coopdesk/memberdesk/internal/ports/out/memberrepo"
)

const birthDateLayout = "2006-01-02"

type Service struct {
	repo memberrepo.Repository
	clk  clockport.Clock

	newMemberID func() domain.MemberID
}

func NewService(repo memberrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		clk:  clk,
		newMemberID: func() domain.MemberID {
			return domain.MemberID(uuid.NewString())
		},
	}
}

// ListMembers returns every member in account-number order.
func (s *Service) ListMembers(ctx context.Context) ([]domain.Member, error) {
	ms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomain(m))
	}
	return out, nil
}

func (s *Service) GetMember(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, notFound(string(id))
		}
		return domain.Member{}, err
	}
	return toDomain(m), nil
}

func (s *Service) CreateMember(ctx context.Context, in MemberInput) (domain.Member, error) {
	fields, err := validateInput(in)
	if err != nil {
		return domain.Member{}, err
	}

	now := s.clk.Now()
	created, err := s.repo.Create(ctx, memberrepo.Member{
		ID:           s.newMemberID(),
		MemberFields: fields,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.Member{}, err
	}
	return toDomain(created), nil
}

// UpdateMember replaces every client-supplied field of an existing member.
// The account number and creation time are kept.
func (s *Service) UpdateMember(ctx context.Context, id domain.MemberID, in MemberInput) (domain.Member, error) {
	fields, err := validateInput(in)
	if err != nil {
		return domain.Member{}, err
	}

	updated, err := s.repo.Update(ctx, memberrepo.Member{
		ID:           id,
		MemberFields: fields,
		UpdatedAt:    s.clk.Now(),
	})
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, notFound(string(id))
		}
		return domain.Member{}, err
	}
	return toDomain(updated), nil
}

func (s *Service) DeleteMember(ctx context.Context, id domain.MemberID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return notFound(string(id))
		}
		return err
	}
	return nil
}

func validateInput(in MemberInput) (domain.MemberFields, error) {
	details := map[string]any{}

	f := domain.MemberFields{
		FirstName:   domain.NormalizeHumanName(in.FirstName),
		MiddleName:  domain.NormalizeHumanName(in.MiddleName),
		LastName:    domain.NormalizeHumanName(in.LastName),
		Email:       strings.TrimSpace(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		BirthDate:   strings.TrimSpace(in.BirthDate),
		Religion:    strings.TrimSpace(in.Religion),
		Address:     strings.TrimSpace(in.Address),
	}
	if f.FirstName == "" {
		details[string(domain.FieldFirstName)] = "must be non-empty"
	}
	if f.LastName == "" {
		details[string(domain.FieldLastName)] = "must be non-empty"
	}
	if f.Email != "" {
		if err := validateEmail(f.Email); err != nil {
			details[string(domain.FieldEmail)] = err.Error()
		}
	}
	if f.BirthDate != "" {
		if _, err := time.Parse(birthDateLayout, f.BirthDate); err != nil {
			details[string(domain.FieldBirthDate)] = "must be a date in YYYY-MM-DD form"
		}
	}
	g, err := domain.ParseGender(in.Gender)
	if err != nil {
		details[string(domain.FieldGender)] = err.Error()
	}
	f.Gender = g
	rs, err := domain.ParseRelationshipStatus(in.RelationshipStatus)
	if err != nil {
		details[string(domain.FieldRelationshipStatus)] = err.Error()
	}
	f.RelationshipStatus = rs

	if len(details) > 0 {
		return domain.MemberFields{}, validationError("invalid member", details)
	}
	return f, nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return err
	}
	// Ensure no "Name <email@x>" format sneaks in.
	if addr.Address != email {
		return errors.New("must be a bare email address")
	}
	return nil
}

func toDomain(m memberrepo.Member) domain.Member {
	out := domain.Member{
		ID:           m.ID,
		MemberFields: m.MemberFields,
	}
	if m.AccountNumber > 0 {
		out.AccountNumber = strconv.FormatInt(m.AccountNumber, 10)
	}
	return out
}
