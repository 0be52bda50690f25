package domain

import "fmt"

// Gender is the closed set of genders a member record may carry.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOthers Gender = "Others"
)

// Genders lists every valid Gender in picker order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOthers}
}

func (g Gender) Valid() bool {
	for _, v := range Genders() {
		if g == v {
			return true
		}
	}
	return false
}

// ParseGender accepts the empty string (unset) or one of Genders.
func ParseGender(s string) (Gender, error) {
	g := Gender(NormalizeHumanName(s))
	if g == "" || g.Valid() {
		return g, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// RelationshipStatus is the closed set of relationship statuses.
type RelationshipStatus string

const (
	StatusSingle         RelationshipStatus = "Single"
	StatusMarried        RelationshipStatus = "Married"
	StatusDivorced       RelationshipStatus = "Divorced"
	StatusWidowed        RelationshipStatus = "Widowed"
	StatusInRelationship RelationshipStatus = "In a relationship"
	StatusEngaged        RelationshipStatus = "Engaged"
	StatusBaak           RelationshipStatus = "Baak"
)

// RelationshipStatuses lists every valid RelationshipStatus in picker order.
func RelationshipStatuses() []RelationshipStatus {
	return []RelationshipStatus{
		StatusSingle,
		StatusMarried,
		StatusDivorced,
		StatusWidowed,
		StatusInRelationship,
		StatusEngaged,
		StatusBaak,
	}
}

func (s RelationshipStatus) Valid() bool {
	for _, v := range RelationshipStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// ParseRelationshipStatus accepts the empty string (unset) or one of RelationshipStatuses.
func ParseRelationshipStatus(s string) (RelationshipStatus, error) {
	st := RelationshipStatus(NormalizeHumanName(s))
	if st == "" || st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("unknown relationship status %q", s)
}

// MemberFields is everything a client supplies for a member record.
// BirthDate is kept as entered (YYYY-MM-DD); the store owns its interpretation.
type MemberFields struct {
	FirstName          string
	MiddleName         string
	LastName           string
	Email              string
	PhoneNumber        string
	BirthDate          string
	Religion           string
	Address            string
	Gender             Gender
	RelationshipStatus RelationshipStatus
}

// Member is a member record as held by the remote store.
type Member struct {
	ID MemberID
	// AccountNumber is computed by the store and is display-only. Empty means none assigned.
	AccountNumber string

	MemberFields
}

// FullName renders first, middle and last name, skipping empty parts.
func (f MemberFields) FullName() string {
	return JoinName(f.FirstName, f.MiddleName, f.LastName)
}

// Field names one editable member field. Values match the remote API's JSON names.
type Field string

const (
	FieldFirstName          Field = "first_name"
	FieldMiddleName         Field = "middle_name"
	FieldLastName           Field = "last_name"
	FieldEmail              Field = "email"
	FieldPhoneNumber        Field = "phone_number"
	FieldBirthDate          Field = "birth_date"
	FieldReligion           Field = "religion"
	FieldAddress            Field = "address"
	FieldGender             Field = "gender"
	FieldRelationshipStatus Field = "pstatus"
)

// Fields lists the editable fields in form order.
func Fields() []Field {
	return []Field{
		FieldFirstName,
		FieldMiddleName,
		FieldLastName,
		FieldEmail,
		FieldBirthDate,
		FieldPhoneNumber,
		FieldReligion,
		FieldAddress,
		FieldGender,
		FieldRelationshipStatus,
	}
}

// Label is the human-readable name of the field.
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldMiddleName:
		return "Middle Name"
	case FieldLastName:
		return "Last Name"
	case FieldEmail:
		return "Email"
	case FieldPhoneNumber:
		return "Phone Number"
	case FieldBirthDate:
		return "Birth Date"
	case FieldReligion:
		return "Religion"
	case FieldAddress:
		return "Address"
	case FieldGender:
		return "Gender"
	case FieldRelationshipStatus:
		return "Relationship Status"
	default:
		return string(f)
	}
}

// Get returns the current value of field f.
func (m MemberFields) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return m.FirstName
	case FieldMiddleName:
		return m.MiddleName
	case FieldLastName:
		return m.LastName
	case FieldEmail:
		return m.Email
	case FieldPhoneNumber:
		return m.PhoneNumber
	case FieldBirthDate:
		return m.BirthDate
	case FieldReligion:
		return m.Religion
	case FieldAddress:
		return m.Address
	case FieldGender:
		return string(m.Gender)
	case FieldRelationshipStatus:
		return string(m.RelationshipStatus)
	default:
		return ""
	}
}

// With returns a copy of m with field f set to v. Unknown fields leave m unchanged.
// Values are stored as typed; enum membership is checked by whoever accepts the record.
func (m MemberFields) With(f Field, v string) MemberFields {
	switch f {
	case FieldFirstName:
		m.FirstName = v
	case FieldMiddleName:
		m.MiddleName = v
	case FieldLastName:
		m.LastName = v
	case FieldEmail:
		m.Email = v
	case FieldPhoneNumber:
		m.PhoneNumber = v
	case FieldBirthDate:
		m.BirthDate = v
	case FieldReligion:
		m.Religion = v
	case FieldAddress:
		m.Address = v
	case FieldGender:
		m.Gender = Gender(v)
	case FieldRelationshipStatus:
		m.RelationshipStatus = RelationshipStatus(v)
	}
	return m
}

// Birth-date bounds offered as form hints. Not enforced.
const (
	BirthDateHintMin = "1950-01-01"
	BirthDateHintMax = "2005-12-31"
)
