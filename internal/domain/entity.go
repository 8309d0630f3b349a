package domain

import (
	"encoding/json"
	"time"
)

// Entity is a schemaless service object. uuid, type and name are the only
// properties every entity carries.
type Entity map[string]any

func (e Entity) String(key string) string {
	if e == nil {
		return ""
	}
	value, _ := e[key].(string)
	return value
}

func (e Entity) UUID() string { return e.String("uuid") }
func (e Entity) Type() string { return e.String("type") }
func (e Entity) Name() string { return e.String("name") }

type User struct {
	UUID      string `json:"uuid"`
	Username  string `json:"username"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Activated bool   `json:"activated,omitempty"`
	Picture   string `json:"picture,omitempty"`
}

type Message struct {
	UUID      string         `json:"uuid"`
	Timestamp int64          `json:"timestamp,omitempty"`
	Category  string         `json:"category,omitempty"`
	Body      map[string]any `json:"-"`
}

// UnmarshalJSON keeps every property of the message in Body, including the
// well-known ones.
func (m *Message) UnmarshalJSON(data []byte) error {
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	type plain Message
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	*m = Message(known)
	m.Body = body
	return nil
}

// APIResponse mirrors the JSON document returned by every endpoint.
type APIResponse struct {
	Action           string              `json:"action,omitempty"`
	Application      string              `json:"application,omitempty"`
	Path             string              `json:"path,omitempty"`
	URI              string              `json:"uri,omitempty"`
	Timestamp        int64               `json:"timestamp,omitempty"`
	Duration         int64               `json:"duration,omitempty"`
	Organization     string              `json:"organization,omitempty"`
	ApplicationName  string              `json:"applicationName,omitempty"`
	Entities         []Entity            `json:"entities,omitempty"`
	Cursor           string              `json:"cursor,omitempty"`
	Count            int                 `json:"count,omitempty"`
	Params           map[string][]string `json:"params,omitempty"`
	Data             json.RawMessage     `json:"data,omitempty"`
	Messages         []Message           `json:"messages,omitempty"`
	Last             string              `json:"last,omitempty"`
	Queue            string              `json:"queue,omitempty"`
	AccessToken      string              `json:"access_token,omitempty"`
	ExpiresIn        int64               `json:"expires_in,omitempty"`
	User             *User               `json:"user,omitempty"`
	Error            string              `json:"error,omitempty"`
	ErrorDescription string              `json:"error_description,omitempty"`
	Exception        string              `json:"exception,omitempty"`
}

func (r *APIResponse) FirstEntity() (Entity, bool) {
	if r == nil || len(r.Entities) == 0 {
		return nil, false
	}
	return r.Entities[0], true
}

func (r *APIResponse) TokenExpiry(now time.Time) time.Time {
	if r == nil || r.ExpiresIn <= 0 {
		return time.Time{}
	}
	return now.Add(time.Duration(r.ExpiresIn) * time.Second)
}
