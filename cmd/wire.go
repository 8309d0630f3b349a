package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bnema/usergrid-go/internal/adapters/device"
	responseadapter "github.com/bnema/usergrid-go/internal/adapters/render/response"
	tomlrepo "github.com/bnema/usergrid-go/internal/adapters/repo/toml"
	chainstore "github.com/bnema/usergrid-go/internal/adapters/secrets/chain"
	filestore "github.com/bnema/usergrid-go/internal/adapters/secrets/file"
	"github.com/bnema/usergrid-go/internal/adapters/transport/httpx"
	"github.com/bnema/usergrid-go/internal/application"
	"github.com/bnema/usergrid-go/internal/client"
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/ports"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type app struct {
	service   *application.Service
	render    func(domain.Response, responseadapter.RenderOptions) (string, error)
	devices   ports.DeviceIDSource
	transport ports.Transport
	logger    *log.Logger
	env       clientEnv
}

// clientEnv overrides the selected profile, field by field.
type clientEnv struct {
	BaseURL     string
	Org         string
	App         string
	Logging     bool
	MaxChannels int
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".usergrid")

	tokenStore, err := wireTokenStore(filepath.Join(configDir, "tokens.toml"))
	if err != nil {
		return nil, fmt.Errorf("wire token store: %w", err)
	}

	maxChannels, err := strconv.Atoi(envOrDefault("UG_MAX_CHANNELS", "0"))
	if err != nil {
		return nil, fmt.Errorf("parse UG_MAX_CHANNELS: %w", err)
	}

	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(log.DebugLevel)

	return &app{
		service:   application.NewService(repo, tokenStore, ports.SystemClock{}),
		render:    responseadapter.Render,
		devices:   device.NewFileSource(filepath.Join(configDir, "device_id")),
		transport: httpx.New(http.DefaultClient),
		logger:    logger,
		env: clientEnv{
			BaseURL:     envOrDefault("UG_BASE_URL", ""),
			Org:         envOrDefault("UG_ORG", ""),
			App:         envOrDefault("UG_APP", ""),
			Logging:     isTruthy(envOrDefault("UG_LOGGING", "")),
			MaxChannels: maxChannels,
		},
	}, nil
}

// wireTokenStore prefers pass. UG_TOKEN_STORE=file keeps tokens in the
// token file only.
func wireTokenStore(path string) (ports.TokenStore, error) {
	if strings.EqualFold(envOrDefault("UG_TOKEN_STORE", ""), "file") {
		return filestore.NewStore(path), nil
	}
	return chainstore.NewPassFirstWithFileFallback(path)
}

// session is a client bound to one profile, with the stored token restored.
type session struct {
	profile domain.Profile
	client  *client.Client
}

func (a *app) openSession(ctx context.Context, name string, logging bool) (*session, error) {
	profile, err := a.service.Resolve(ctx, domain.ProfileName(name))
	if err != nil {
		if a.env.Org == "" || a.env.App == "" {
			return nil, fmt.Errorf("%w (configure one with `ug profile set` or set UG_ORG and UG_APP)", err)
		}
		profile = domain.Profile{}
	}

	baseURL := firstNonEmpty(a.env.BaseURL, profile.BaseURL)
	org := firstNonEmpty(a.env.Org, profile.OrganizationID)
	appID := firstNonEmpty(a.env.App, profile.ApplicationID)

	c, err := client.New(client.Config{
		BaseURL:        baseURL,
		OrganizationID: org,
		ApplicationID:  appID,
		Logging:        logging || a.env.Logging,
		MaxChannels:    a.env.MaxChannels,
		Logger:         a.logger,
		Transport:      a.transport,
		Devices:        a.devices,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	token, err := a.service.Token(ctx, profile)
	if err != nil {
		return nil, err
	}
	if token != "" {
		c.Session().SetAccessToken(token)
	}

	return &session{profile: profile, client: c}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
