package restclient

import (
	"encoding/json"

	"github.com/oapi-codegen/nullable"

	"github.com/coopdesk/memberdesk/internal/domain"
)

// fieldsDTO carries client-supplied fields. Email and birth date are left out
// when empty so the store treats them as unset.
type fieldsDTO struct {
	FirstName          string `json:"first_name"`
	MiddleName         string `json:"middle_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email,omitempty"`
	PhoneNumber        string `json:"phone_number"`
	BirthDate          string `json:"birth_date,omitempty"`
	Religion           string `json:"religion"`
	Address            string `json:"address"`
	Gender             string `json:"gender"`
	RelationshipStatus string `json:"pstatus"`
}

type updateDTO struct {
	MemID string `json:"memId"`
	fieldsDTO
}

type memberDTO struct {
	MemID              domain.MemberID                `json:"memId"`
	AccountN           nullable.Nullable[json.Number] `json:"accountN"`
	FirstName          string                         `json:"first_name"`
	MiddleName         string                         `json:"middle_name"`
	LastName           string                         `json:"last_name"`
	Email              string                         `json:"email"`
	PhoneNumber        string                         `json:"phone_number"`
	BirthDate          string                         `json:"birth_date"`
	Religion           string                         `json:"religion"`
	Address            string                         `json:"address"`
	Gender             string                         `json:"gender"`
	RelationshipStatus string                         `json:"pstatus"`
}

func fieldsToDTO(f domain.MemberFields) fieldsDTO {
	return fieldsDTO{
		FirstName:          f.FirstName,
		MiddleName:         f.MiddleName,
		LastName:           f.LastName,
		Email:              f.Email,
		PhoneNumber:        f.PhoneNumber,
		BirthDate:          f.BirthDate,
		Religion:           f.Religion,
		Address:            f.Address,
		Gender:             string(f.Gender),
		RelationshipStatus: string(f.RelationshipStatus),
	}
}

func (d memberDTO) toDomain() domain.Member {
	m := domain.Member{
		ID: d.MemID,
		MemberFields: domain.MemberFields{
			FirstName:          d.FirstName,
			MiddleName:         d.MiddleName,
			LastName:           d.LastName,
			Email:              d.Email,
			PhoneNumber:        d.PhoneNumber,
			BirthDate:          d.BirthDate,
			Religion:           d.Religion,
			Address:            d.Address,
			Gender:             domain.Gender(d.Gender),
			RelationshipStatus: domain.RelationshipStatus(d.RelationshipStatus),
		},
	}
	if d.AccountN.IsSpecified() && !d.AccountN.IsNull() {
		if n, err := d.AccountN.Get(); err == nil {
			m.AccountNumber = n.String()
		}
	}
	return m
}
