package application

import (
	"time"

	"github.com/bnema/usergrid-go/internal/domain"
)

type ConfigureProfileCommand struct {
	Name           domain.ProfileName
	BaseURL        string
	OrganizationID string
	ApplicationID  string
	MakeDefault    bool
}

// RememberLoginCommand persists the token a login returned.
type RememberLoginCommand struct {
	Name      domain.ProfileName
	Username  string
	Token     string
	ExpiresAt time.Time
}
