package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/ports"
	"github.com/pelletier/go-toml/v2"
)

const (
	storeDirMode  = 0o700
	tokenFileMode = 0o600
)

type tokenFile struct {
	Tokens map[string]tokenEntry `toml:"tokens"`
}

type tokenEntry struct {
	Token   string    `toml:"token"`
	SavedAt time.Time `toml:"saved_at"`
}

// Store keeps every token in one TOML file readable only by its owner.
type Store struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path), now: time.Now}
}

func (s *Store) Put(ctx context.Context, ref string, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := normalizeRef(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Tokens[key] = tokenEntry{Token: token, SavedAt: s.now().UTC()}
	return s.save(doc)
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := normalizeRef(ref)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}
	entry, ok := doc.Tokens[key]
	if !ok {
		return "", fmt.Errorf("token %q: %w", key, domain.ErrSecretNotFound)
	}
	return entry.Token, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := normalizeRef(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Tokens[key]; !ok {
		return nil
	}
	delete(doc.Tokens, key)
	return s.save(doc)
}

func (s *Store) load() (tokenFile, error) {
	doc := tokenFile{Tokens: map[string]tokenEntry{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return tokenFile{}, fmt.Errorf("read token file: %w", err)
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return tokenFile{}, fmt.Errorf("decode token file: %w", err)
	}
	if doc.Tokens == nil {
		doc.Tokens = map[string]tokenEntry{}
	}
	return doc, nil
}

func (s *Store) save(doc tokenFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), storeDirMode); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, tokenFileMode); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

func normalizeRef(ref string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(ref), "/")
	if trimmed == "" {
		return "", errors.New("token ref is empty")
	}
	return trimmed, nil
}
