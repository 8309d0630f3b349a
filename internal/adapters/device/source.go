package device

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/usergrid-go/internal/ports"
	"github.com/google/uuid"
)

const (
	dirMode  = 0o700
	fileMode = 0o600
)

// FileSource keeps a random device id in a file, created on first use.
type FileSource struct {
	path string

	mu sync.Mutex
	id string
}

var _ ports.DeviceIDSource = (*FileSource)(nil)

func NewFileSource(path string) *FileSource {
	return &FileSource{path: filepath.Clean(path)}
}

func (s *FileSource) DeviceID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.id != "" {
		return s.id, nil
	}

	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		id, parseErr := uuid.Parse(strings.TrimSpace(string(data)))
		if parseErr != nil {
			return "", fmt.Errorf("parse device id in %s: %w", s.path, parseErr)
		}
		s.id = id.String()
		return s.id, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read device id: %w", err)
	}

	id := uuid.New().String()
	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return "", fmt.Errorf("create device id directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(id+"\n"), fileMode); err != nil {
		return "", fmt.Errorf("write device id: %w", err)
	}

	s.id = id
	return id, nil
}

// Static is a fixed device id.
type Static string

func (s Static) DeviceID(context.Context) (string, error) { return string(s), nil }
