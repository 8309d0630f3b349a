package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	filestore "github.com/bnema/usergrid-go/internal/adapters/secrets/file"
	tomlrepo "github.com/bnema/usergrid-go/internal/adapters/repo/toml"
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

func mockAnyContext() any {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func workProfile() domain.Profile {
	return domain.Profile{Name: "work", OrganizationID: "acme", ApplicationID: "pets"}
}

func TestServiceRememberLoginStoresTokenThenProfile(t *testing.T) {
	repo := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockTokenStore(t)
	service := NewService(repo, store, fixedClock{testNow})

	expires := testNow.Add(time.Hour)
	repo.EXPECT().GetByName(mockAnyContext(), domain.ProfileName("work")).Return(workProfile(), nil)
	store.EXPECT().Put(mockAnyContext(), "usergrid/work/acme/pets/token", "tok").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), domain.Profile{
		Name:           "work",
		OrganizationID: "acme",
		ApplicationID:  "pets",
		Username:       "ann",
		TokenRef:       "usergrid/work/acme/pets/token",
		TokenExpiresAt: expires,
		UpdatedAt:      testNow,
	}).Return(nil)

	err := service.RememberLogin(context.Background(), RememberLoginCommand{Name: "work", Username: "ann", Token: "tok", ExpiresAt: expires})
	require.NoError(t, err)
}

func TestServiceRememberLoginRollsBackTokenWhenSaveFails(t *testing.T) {
	repo := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockTokenStore(t)
	service := NewService(repo, store, fixedClock{testNow})

	repo.EXPECT().GetByName(mockAnyContext(), domain.ProfileName("work")).Return(workProfile(), nil)
	store.EXPECT().Put(mockAnyContext(), "usergrid/work/acme/pets/token", "tok").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), mock.Anything).Return(errors.New("disk full"))
	store.EXPECT().Delete(mockAnyContext(), "usergrid/work/acme/pets/token").Return(errors.New("pass locked"))

	err := service.RememberLogin(context.Background(), RememberLoginCommand{Name: "work", Token: "tok"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "rollback stored token")
	assert.ErrorContains(t, err, "disk full")
	assert.ErrorContains(t, err, "pass locked")
}

func TestServiceRememberLoginDeletesPreviousRef(t *testing.T) {
	repo := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockTokenStore(t)
	service := NewService(repo, store, fixedClock{testNow})

	profile := workProfile()
	profile.TokenRef = "legacy/ref"
	repo.EXPECT().GetByName(mockAnyContext(), domain.ProfileName("work")).Return(profile, nil)
	store.EXPECT().Put(mockAnyContext(), "usergrid/work/acme/pets/token", "tok").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil)
	store.EXPECT().Delete(mockAnyContext(), "legacy/ref").Return(nil)

	require.NoError(t, service.RememberLogin(context.Background(), RememberLoginCommand{Name: "work", Token: "tok"}))
}

func TestServiceRememberLoginRejectsEmptyToken(t *testing.T) {
	service := NewService(mocks.NewMockProfileRepository(t), mocks.NewMockTokenStore(t), fixedClock{testNow})

	err := service.RememberLogin(context.Background(), RememberLoginCommand{Name: "work"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServiceTokenTreatsMissingSecretAsLoggedOut(t *testing.T) {
	store := mocks.NewMockTokenStore(t)
	service := NewService(mocks.NewMockProfileRepository(t), store, fixedClock{testNow})

	profile := workProfile()
	token, err := service.Token(context.Background(), profile)
	require.NoError(t, err)
	assert.Empty(t, token)

	profile.TokenRef = "usergrid/work/acme/pets/token"
	store.EXPECT().Get(mockAnyContext(), profile.TokenRef).Return("", domain.ErrSecretNotFound).Once()
	token, err = service.Token(context.Background(), profile)
	require.NoError(t, err)
	assert.Empty(t, token)

	store.EXPECT().Get(mockAnyContext(), profile.TokenRef).Return("", errors.New("gpg failed")).Once()
	_, err = service.Token(context.Background(), profile)
	require.ErrorContains(t, err, "gpg failed")
}

func TestServiceForgetRestoresProfileWhenDeleteFails(t *testing.T) {
	repo := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockTokenStore(t)
	service := NewService(repo, store, fixedClock{testNow})

	profile := workProfile()
	profile.TokenRef = "usergrid/work/acme/pets/token"
	profile.Username = "ann"

	repo.EXPECT().GetByName(mockAnyContext(), domain.ProfileName("work")).Return(profile, nil)
	repo.EXPECT().Save(mockAnyContext(), domain.Profile{
		Name:           "work",
		OrganizationID: "acme",
		ApplicationID:  "pets",
		UpdatedAt:      testNow,
	}).Return(nil).Once()
	store.EXPECT().Delete(mockAnyContext(), "usergrid/work/acme/pets/token").Return(errors.New("locked"))
	repo.EXPECT().Save(mockAnyContext(), profile).Return(nil).Once()

	err := service.Forget(context.Background(), "work")
	require.ErrorContains(t, err, "delete token")
}

func TestServiceResolveUsesDefault(t *testing.T) {
	repo := mocks.NewMockProfileRepository(t)
	service := NewService(repo, mocks.NewMockTokenStore(t), fixedClock{testNow})

	repo.EXPECT().Default(mockAnyContext()).Return(domain.ProfileName("work"), nil)
	repo.EXPECT().GetByName(mockAnyContext(), domain.ProfileName("work")).Return(workProfile(), nil)

	profile, err := service.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "acme", profile.OrganizationID)
}

func TestServiceWithTomlRepositoryAndFileStore(t *testing.T) {
	dir := t.TempDir()
	config := viper.New()
	config.Set("profiles.path", filepath.Join(dir, "profiles.toml"))
	repo, err := tomlrepo.NewRepository(config)
	require.NoError(t, err)
	store := filestore.NewStore(filepath.Join(dir, "tokens.toml"))
	service := NewService(repo, store, fixedClock{testNow})
	ctx := context.Background()

	_, err = service.Configure(ctx, ConfigureProfileCommand{Name: "work", OrganizationID: "acme", ApplicationID: "pets"})
	require.NoError(t, err)
	_, err = service.Configure(ctx, ConfigureProfileCommand{Name: "home", OrganizationID: "me", ApplicationID: "notes", MakeDefault: true})
	require.NoError(t, err)

	require.NoError(t, service.RememberLogin(ctx, RememberLoginCommand{Name: "work", Username: "ann", Token: "tok-1"}))

	profile, err := service.Resolve(ctx, "work")
	require.NoError(t, err)
	token, err := service.Token(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	summaries, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.True(t, summaries[0].LoggedIn)
	assert.False(t, summaries[0].Default)
	assert.True(t, summaries[1].Default)

	_, err = service.Configure(ctx, ConfigureProfileCommand{Name: "work", OrganizationID: "acme", ApplicationID: "zoo"})
	require.NoError(t, err)
	profile, err = service.Resolve(ctx, "work")
	require.NoError(t, err)
	assert.Empty(t, profile.TokenRef)
	_, err = store.Get(ctx, "usergrid/work/acme/pets/token")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	require.NoError(t, service.RememberLogin(ctx, RememberLoginCommand{Name: "home", Token: "tok-2"}))
	require.NoError(t, service.Forget(ctx, "home"))
	profile, err = service.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileName("home"), profile.Name)
	assert.Empty(t, profile.TokenRef)
}
