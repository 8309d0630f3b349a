package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.usergrid.com"

type ProfileName string

// Profile is a saved target (organization and application on one server)
// plus the reference of the access token obtained for it.
type Profile struct {
	Name           ProfileName
	BaseURL        string
	OrganizationID string
	ApplicationID  string
	Username       string
	TokenRef       string
	TokenExpiresAt time.Time
	UpdatedAt      time.Time
}

func (p Profile) Validate() error {
	if strings.TrimSpace(string(p.Name)) == "" {
		return fmt.Errorf("profile name is required")
	}
	if strings.TrimSpace(p.OrganizationID) == "" {
		return fmt.Errorf("organization id is required")
	}
	if strings.TrimSpace(p.ApplicationID) == "" {
		return fmt.Errorf("application id is required")
	}
	if p.BaseURL != "" {
		parsed, err := url.Parse(p.BaseURL)
		if err != nil {
			return fmt.Errorf("parse base url: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("base url must use http or https")
		}
	}

	return nil
}

func (p Profile) ResolvedBaseURL() string {
	if strings.TrimSpace(p.BaseURL) == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(p.BaseURL, "/")
}

// DefaultTokenRef is where the access token of a profile lives in the secret
// store.
func (p Profile) DefaultTokenRef() string {
	return fmt.Sprintf("usergrid/%s/%s/%s/token", p.Name, p.OrganizationID, p.ApplicationID)
}
