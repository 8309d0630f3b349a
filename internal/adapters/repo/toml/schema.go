package toml

import (
	"fmt"
	"time"

	"github.com/bnema/usergrid-go/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Default  string          `toml:"default,omitempty"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}
	return nil
}

func (s fileSchema) find(name domain.ProfileName) int {
	for i, entry := range s.Profiles {
		if entry.Name == string(name) {
			return i
		}
	}
	return -1
}

type profileSchema struct {
	Name         string      `toml:"name"`
	BaseURL      string      `toml:"base_url,omitempty"`
	Organization string      `toml:"organization"`
	Application  string      `toml:"application"`
	Username     string      `toml:"username,omitempty"`
	Token        tokenSchema `toml:"token,omitempty"`
	UpdatedAt    string      `toml:"updated_at,omitempty"`
}

type tokenSchema struct {
	Ref       string `toml:"ref,omitempty"`
	ExpiresAt string `toml:"expires_at,omitempty"`
}

func toSchema(profile domain.Profile) profileSchema {
	return profileSchema{
		Name:         string(profile.Name),
		BaseURL:      profile.BaseURL,
		Organization: profile.OrganizationID,
		Application:  profile.ApplicationID,
		Username:     profile.Username,
		Token: tokenSchema{
			Ref:       profile.TokenRef,
			ExpiresAt: formatTime(profile.TokenExpiresAt),
		},
		UpdatedAt: formatTime(profile.UpdatedAt),
	}
}

func fromSchema(entry profileSchema) domain.Profile {
	return domain.Profile{
		Name:           domain.ProfileName(entry.Name),
		BaseURL:        entry.BaseURL,
		OrganizationID: entry.Organization,
		ApplicationID:  entry.Application,
		Username:       entry.Username,
		TokenRef:       entry.Token.Ref,
		TokenExpiresAt: parseTime(entry.Token.ExpiresAt),
		UpdatedAt:      parseTime(entry.UpdatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
