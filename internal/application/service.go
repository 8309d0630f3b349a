package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/ports"
)

// Service manages saved profiles and the tokens obtained for them.
type Service struct {
	repo  ports.ProfileRepository
	store ports.TokenStore
	clock ports.Clock
}

func NewService(repo ports.ProfileRepository, store ports.TokenStore, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		repo:  repo,
		store: store,
		clock: clock,
	}
}

// Configure creates the profile or retargets an existing one. Retargeting
// keeps the stored login only when organization, application and server are
// unchanged.
func (s *Service) Configure(ctx context.Context, cmd ConfigureProfileCommand) (domain.Profile, error) {
	profile, err := s.repo.GetByName(ctx, cmd.Name)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return domain.Profile{}, fmt.Errorf("get profile: %w", err)
		}
		profile = domain.Profile{Name: cmd.Name}
	}

	retargeted := profile.OrganizationID != cmd.OrganizationID ||
		profile.ApplicationID != cmd.ApplicationID ||
		profile.ResolvedBaseURL() != (domain.Profile{BaseURL: cmd.BaseURL}).ResolvedBaseURL()
	staleRef := ""
	if retargeted && profile.TokenRef != "" {
		staleRef = profile.TokenRef
		profile.TokenRef = ""
		profile.Username = ""
		profile.TokenExpiresAt = time.Time{}
	}

	profile.BaseURL = strings.TrimSpace(cmd.BaseURL)
	profile.OrganizationID = strings.TrimSpace(cmd.OrganizationID)
	profile.ApplicationID = strings.TrimSpace(cmd.ApplicationID)
	profile.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Save(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	if cmd.MakeDefault {
		if err := s.repo.SetDefault(ctx, profile.Name); err != nil {
			return domain.Profile{}, fmt.Errorf("set default profile: %w", err)
		}
	}
	if staleRef != "" {
		if err := s.store.Delete(ctx, staleRef); err != nil {
			return profile, fmt.Errorf("delete token of previous target: %w", err)
		}
	}

	return profile, nil
}

// Resolve returns the named profile, or the default one when name is empty.
func (s *Service) Resolve(ctx context.Context, name domain.ProfileName) (domain.Profile, error) {
	if name == "" {
		defaultName, err := s.repo.Default(ctx)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("resolve default profile: %w", err)
		}
		name = defaultName
	}

	profile, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *Service) List(ctx context.Context) ([]ProfileSummary, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	defaultName, err := s.repo.Default(ctx)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("resolve default profile: %w", err)
	}

	summaries := make([]ProfileSummary, 0, len(profiles))
	for _, profile := range profiles {
		summaries = append(summaries, ProfileSummary{
			Profile:  profile,
			Default:  profile.Name == defaultName,
			LoggedIn: profile.TokenRef != "",
		})
	}
	return summaries, nil
}

// Token returns the stored token of profile, "" when it has none or the
// store lost it.
func (s *Service) Token(ctx context.Context, profile domain.Profile) (string, error) {
	if profile.TokenRef == "" {
		return "", nil
	}

	token, err := s.store.Get(ctx, profile.TokenRef)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read profile token: %w", err)
	}
	return token, nil
}

// RememberLogin stores the token first and the profile second, deleting the
// new token again when the profile cannot be saved.
func (s *Service) RememberLogin(ctx context.Context, cmd RememberLoginCommand) error {
	if strings.TrimSpace(cmd.Token) == "" {
		return domain.InvalidInput("token is required")
	}

	profile, err := s.repo.GetByName(ctx, cmd.Name)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	previousRef := profile.TokenRef

	ref := profile.DefaultTokenRef()
	if err := s.store.Put(ctx, ref, cmd.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	profile.Username = cmd.Username
	profile.TokenRef = ref
	profile.TokenExpiresAt = cmd.ExpiresAt
	profile.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Save(ctx, profile); err != nil {
		if rollbackErr := s.store.Delete(ctx, ref); rollbackErr != nil {
			return fmt.Errorf("save profile login and rollback stored token: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save profile login: %w", err)
	}

	if previousRef != "" && previousRef != ref {
		if err := s.store.Delete(ctx, previousRef); err != nil {
			return fmt.Errorf("delete previous token: %w", err)
		}
	}
	return nil
}

// Forget drops the stored login of the profile.
func (s *Service) Forget(ctx context.Context, name domain.ProfileName) error {
	profile, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if profile.TokenRef == "" {
		return nil
	}
	original := profile

	ref := profile.TokenRef
	profile.TokenRef = ""
	profile.Username = ""
	profile.TokenExpiresAt = time.Time{}
	profile.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile logout: %w", err)
	}
	if err := s.store.Delete(ctx, ref); err != nil {
		if restoreErr := s.repo.Save(ctx, original); restoreErr != nil {
			return fmt.Errorf("delete token and restore profile: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
