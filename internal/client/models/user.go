package models

import (
	"bytes"
	"encoding/json"
)

// UserRef is a user as embedded in other payloads. The backend sends either
// a nested object or a bare primary key depending on the serializer.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
}

func (u *UserRef) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*u = UserRef{ID: id}
		return nil
	}
	type plain UserRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = UserRef(p)
	return nil
}

// Label is the username when known, otherwise "#id".
func (u *UserRef) Label() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return "#" + itoa(u.ID)
}
