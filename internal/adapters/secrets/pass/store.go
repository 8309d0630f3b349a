package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps tokens in the password store, one entry per ref.
type Store struct {
	run runFunc
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, ref string, token string) error {
	_, err := s.exec(ctx, "put", ref, token+"\n", "insert", "-m", "-f", ref)
	return err
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	stdout, err := s.exec(ctx, "get", ref, "", "show", ref)
	if err != nil {
		return "", err
	}

	// The first line is the token; pass users keep notes below it.
	token, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(token, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	_, err := s.exec(ctx, "delete", ref, "", "rm", "-f", ref)
	if errors.Is(err, domain.ErrSecretNotFound) {
		return nil
	}
	return err
}

func (s *Store) exec(ctx context.Context, op, ref, input string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(ref) == "" {
		return "", errors.New("token ref is empty")
	}

	stdout, stderr, err := s.run(ctx, input, args...)
	if err == nil {
		return stdout, nil
	}
	if strings.Contains(stderr, "is not in the password store") {
		return "", fmt.Errorf("pass %s %q: %w", op, ref, domain.ErrSecretNotFound)
	}
	if stderr == "" {
		return "", fmt.Errorf("pass %s %q: %w", op, ref, err)
	}
	return "", fmt.Errorf("pass %s %q: %w: %s", op, ref, err, stderr)
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
