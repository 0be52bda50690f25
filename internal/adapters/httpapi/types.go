package httpapi

import (
	"encoding/json"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/coopdesk/memberdesk/internal/app/members"
	"github.com/coopdesk/memberdesk/internal/domain"
)

// Member is the wire representation of a member record.
type Member struct {
	MemID              string                         `json:"memId"`
	AccountN           nullable.Nullable[json.Number] `json:"accountN,omitempty"`
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

// MemberRequest is the body of POST /members/ and PUT /members/{memberId}/.
// Email and birth date are optional; when present they must be well-formed.
type MemberRequest struct {
	FirstName          string                                 `json:"first_name"`
	MiddleName         string                                 `json:"middle_name,omitempty"`
	LastName           string                                 `json:"last_name"`
	Email              nullable.Nullable[openapi_types.Email] `json:"email,omitempty"`
	PhoneNumber        string                                 `json:"phone_number,omitempty"`
	BirthDate          nullable.Nullable[openapi_types.Date]  `json:"birth_date,omitempty"`
	Religion           string                                 `json:"religion,omitempty"`
	Address            string                                 `json:"address,omitempty"`
	Gender             string                                 `json:"gender,omitempty"`
	RelationshipStatus string                                 `json:"pstatus,omitempty"`
}

// ErrorResponse is the error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code      string                            `json:"code"`
	Message   string                            `json:"message"`
	Details   nullable.Nullable[map[string]any] `json:"details,omitempty"`
	RequestId nullable.Nullable[string]         `json:"requestId,omitempty"`
}

func memberFromDomain(m domain.Member) Member {
	out := Member{
		MemID:              string(m.ID),
		FirstName:          m.FirstName,
		MiddleName:         m.MiddleName,
		LastName:           m.LastName,
		Email:              m.Email,
		PhoneNumber:        m.PhoneNumber,
		BirthDate:          m.BirthDate,
		Religion:           m.Religion,
		Address:            m.Address,
		Gender:             string(m.Gender),
		RelationshipStatus: string(m.RelationshipStatus),
	}
	if m.AccountNumber != "" {
		out.AccountN = nullable.NewNullableWithValue(json.Number(m.AccountNumber))
	} else {
		out.AccountN = nullable.NewNullNullable[json.Number]()
	}
	return out
}

func memberInputFromRequest(b MemberRequest) members.MemberInput {
	in := members.MemberInput{
		FirstName:          b.FirstName,
		MiddleName:         b.MiddleName,
		LastName:           b.LastName,
		PhoneNumber:        b.PhoneNumber,
		Religion:           b.Religion,
		Address:            b.Address,
		Gender:             b.Gender,
		RelationshipStatus: b.RelationshipStatus,
	}
	if b.Email.IsSpecified() && !b.Email.IsNull() {
		if v, err := b.Email.Get(); err == nil {
			in.Email = string(v)
		}
	}
	if b.BirthDate.IsSpecified() && !b.BirthDate.IsNull() {
		if v, err := b.BirthDate.Get(); err == nil {
			in.BirthDate = v.String()
		}
	}
	return in
}
