package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CurrentUserStorageKey is the session storage key holding the signed-in user.
const CurrentUserStorageKey = "currentUser"

var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Role of the mock user
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User is the mock current-user record
type User struct {
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Encode serializes the user record for session storage
func (u *User) Encode() ([]byte, error) {
	return json.Marshal(u)
}

// DecodeUser parses the stored user record. Absent, null or nameless
// records return ErrNotLoggedIn; malformed JSON is wrapped in a distinct
// error but also satisfies errors.Is(err, ErrNotLoggedIn).
func DecodeUser(raw []byte) (*User, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, ErrNotLoggedIn
	}

	var user User
	if err := json.Unmarshal([]byte(trimmed), &user); err != nil {
		return nil, fmt.Errorf("%w: decoding user: %v", ErrNotLoggedIn, err)
	}
	if strings.TrimSpace(user.Name) == "" {
		return nil, ErrNotLoggedIn
	}
	if user.Role == "" {
		user.Role = RoleMember
	}
	return &user, nil
}
