package memberrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/coopdesk/memberdesk/internal/adapters/postgres"
	"github.com/coopdesk/memberdesk/internal/domain"
	"github.com/coopdesk/memberdesk/internal/ports/out/memberrepo"
)

const birthDateLayout = "2006-01-02"

const selectColumns = `
	m.id,
	m.external_id,
	m.first_name,
	m.middle_name,
	m.last_name,
	m.email,
	m.phone_number,
	m.birth_date,
	m.religion,
	m.address,
	m.gender,
	m.relationship_status,
	m.created_at,
	m.updated_at
`

// Repo is a Postgres implementation of memberrepo.Repository.
// The bigserial primary key doubles as the account number.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, m memberrepo.Member) (memberrepo.Member, error) {
	if r.pool == nil {
		return memberrepo.Member{}, errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(m.ID))
	if err != nil {
		return memberrepo.Member{}, fmt.Errorf("invalid member id: %w", err)
	}
	birthDate, err := parseBirthDate(m.BirthDate)
	if err != nil {
		return memberrepo.Member{}, err
	}

	var out memberrepo.Member
	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var rowID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO members (
				external_id,
				first_name,
				middle_name,
				last_name,
				email,
				phone_number,
				birth_date,
				religion,
				address,
				gender,
				relationship_status,
				created_at,
				updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id
		`,
			id,
			m.FirstName,
			m.MiddleName,
			m.LastName,
			m.Email,
			m.PhoneNumber,
			birthDate,
			m.Religion,
			m.Address,
			string(m.Gender),
			string(m.RelationshipStatus),
			m.CreatedAt.UTC(),
			m.UpdatedAt.UTC(),
		).Scan(&rowID)
		if err != nil {
			if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
				if pe.ConstraintName == "members_external_id_unique" {
					return memberrepo.ErrAlreadyExists
				}
			}
			return err
		}
		out, err = getMemberByExternalID(ctx, tx, id)
		return err
	})
	if err != nil {
		return memberrepo.Member{}, err
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, m memberrepo.Member) (memberrepo.Member, error) {
	if r.pool == nil {
		return memberrepo.Member{}, errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(m.ID))
	if err != nil {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	birthDate, err := parseBirthDate(m.BirthDate)
	if err != nil {
		return memberrepo.Member{}, err
	}

	var out memberrepo.Member
	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `
			UPDATE members
			SET first_name = $2,
			    middle_name = $3,
			    last_name = $4,
			    email = $5,
			    phone_number = $6,
			    birth_date = $7,
			    religion = $8,
			    address = $9,
			    gender = $10,
			    relationship_status = $11,
			    updated_at = $12
			WHERE external_id = $1
		`,
			id,
			m.FirstName,
			m.MiddleName,
			m.LastName,
			m.Email,
			m.PhoneNumber,
			birthDate,
			m.Religion,
			m.Address,
			string(m.Gender),
			string(m.RelationshipStatus),
			m.UpdatedAt.UTC(),
		)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return memberrepo.ErrNotFound
		}
		out, err = getMemberByExternalID(ctx, tx, id)
		return err
	})
	if err != nil {
		return memberrepo.Member{}, err
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.MemberID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return memberrepo.ErrNotFound
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM members WHERE external_id = $1`, uid)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return memberrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (memberrepo.Member, error) {
	if r.pool == nil {
		return memberrepo.Member{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	return getMemberByExternalID(ctx, r.pool, uid)
}

func (r *Repo) List(ctx context.Context) ([]memberrepo.Member, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM members m ORDER BY m.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]memberrepo.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// --- helpers ---

func parseBirthDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date %q: %w", s, err)
	}
	return &t, nil
}

func scanMember(row interface {
	Scan(dest ...any) error
}) (memberrepo.Member, error) {
	var (
		accountNumber int64
		externalID    uuid.UUID
		birthDate     *time.Time
		gender        string
		status        string
		m             memberrepo.Member
	)
	if err := row.Scan(
		&accountNumber,
		&externalID,
		&m.FirstName,
		&m.MiddleName,
		&m.LastName,
		&m.Email,
		&m.PhoneNumber,
		&birthDate,
		&m.Religion,
		&m.Address,
		&gender,
		&status,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return memberrepo.Member{}, memberrepo.ErrNotFound
		}
		return memberrepo.Member{}, err
	}
	m.ID = domain.MemberID(externalID.String())
	m.AccountNumber = accountNumber
	if birthDate != nil {
		m.BirthDate = birthDate.Format(birthDateLayout)
	}
	m.Gender = domain.Gender(gender)
	m.RelationshipStatus = domain.RelationshipStatus(status)
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}

func getMemberByExternalID(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, id uuid.UUID) (memberrepo.Member, error) {
	row := q.QueryRow(ctx, `SELECT `+selectColumns+` FROM members m WHERE m.external_id = $1`, id)
	return scanMember(row)
}
