package application

import "github.com/bnema/usergrid-go/internal/domain"

type ProfileSummary struct {
	Profile  domain.Profile
	Default  bool
	LoggedIn bool
}
