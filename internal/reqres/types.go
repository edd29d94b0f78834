package reqres

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// UserRecord mirrors the user object returned by GET /users/{id}.
type UserRecord struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar"`
}

// FullName joins first and last name.
func (u UserRecord) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Support mirrors the support block reqres attaches to single-user responses.
type Support struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// UserEnvelope mirrors the full GET /users/{id} payload.
type UserEnvelope struct {
	Data    UserRecord `json:"data"`
	Support Support    `json:"support"`
}

// CreateUserRequest is the POST /users body.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreatedUserRecord mirrors the POST /users response.
//
// The API echoes either an email or a job field. When only job is present,
// Email carries the same string so callers can keep reading Email.
type CreatedUserRecord struct {
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Job       *string `json:"job,omitempty"`
	ID        string  `json:"id"`
	CreatedAt string  `json:"createdAt"`
}

// EmailOrEmpty returns Email or "" when absent.
func (c CreatedUserRecord) EmailOrEmpty() string {
	if c.Email == nil {
		return ""
	}
	return *c.Email
}

// UnmarshalJSON implements the email/job fallback.
func (c *CreatedUserRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      *string         `json:"name"`
		Email     json.RawMessage `json:"email"`
		Job       json.RawMessage `json:"job"`
		ID        json.RawMessage `json:"id"`
		CreatedAt *string         `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Name == nil {
		return errors.New("created user: missing name")
	}
	if raw.CreatedAt == nil {
		return errors.New("created user: missing createdAt")
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}

	out := CreatedUserRecord{Name: *raw.Name, ID: id, CreatedAt: *raw.CreatedAt}
	if email, ok := optionalString(raw.Email); ok {
		out.Email = &email
	} else if job, ok := optionalString(raw.Job); ok {
		out.Job = &job
		out.Email = &job
	}
	*c = out
	return nil
}

// optionalString decodes a JSON string, treating null, absent, and
// non-string values as missing.
func optionalString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", false
	}
	return *s, true
}

// decodeID accepts the id as a JSON string or number.
func decodeID(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", errors.New("created user: missing id")
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", fmt.Errorf("created user: id: %w", err)
	}
	return n.String(), nil
}
