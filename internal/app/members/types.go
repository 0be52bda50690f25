package members

import "github.com/coopdesk/memberdesk/internal/domain"

// MemberInput is the full set of client-supplied fields for create and replace.
// Email and BirthDate are optional; empty means unset.
type MemberInput struct {
	FirstName          string
	MiddleName         string
	LastName           string
	Email              string
	PhoneNumber        string
	BirthDate          string // YYYY-MM-DD
	Religion           string
	Address            string
	Gender             string
	RelationshipStatus string
}

// InputFromFields adapts domain fields (as sent by the desk) to a service input.
func InputFromFields(f domain.MemberFields) MemberInput {
	return MemberInput{
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
