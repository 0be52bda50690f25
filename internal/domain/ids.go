package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MemberID is the identifier the remote store assigns to a member record.
// We model it as opaque: the desk never invents or parses one.
type MemberID string

// UnmarshalJSON accepts both JSON strings and JSON numbers, since stores differ
// in how they expose their primary keys.
func (id *MemberID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = MemberID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("member id: %w", err)
	}
	*id = MemberID(n.String())
	return nil
}
