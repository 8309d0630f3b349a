package client

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/usergrid-go/internal/domain"
)

var ErrInvalidDelegate = errors.New("delegate must implement OnResponse(domain.Response) or be a func(domain.Response)")

// Delegate receives the terminal envelope of every call dispatched while it
// is installed, once per call.
type Delegate interface {
	OnResponse(domain.Response)
}

type DelegateFunc func(domain.Response)

func (f DelegateFunc) OnResponse(resp domain.Response) { f(resp) }

// Session is the mutable state one client carries between calls: the access
// token, the user it belongs to and the delegate routing Dispatch.
type Session struct {
	mu         sync.RWMutex
	token      string
	expiresAt  time.Time
	user       *domain.User
	delegate   Delegate
	generation uint64
}

func newSession() *Session {
	return &Session{generation: 1}
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoggedInUser returns a copy of the user of the current token, nil when
// nobody is logged in or the token was issued to an application.
func (s *Session) LoggedInUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *Session) Delegate() Delegate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate
}

// TokenExpiresAt is zero when the server gave no lifetime.
func (s *Session) TokenExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// SetAccessToken restores a token obtained earlier, e.g. from a token store.
func (s *Session) SetAccessToken(token string) {
	s.setAuth(token, time.Time{}, nil)
}

func (s *Session) setAuth(token string, expiresAt time.Time, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = expiresAt
	s.user = user
}

func (s *Session) clearAuth() {
	s.setAuth("", time.Time{}, nil)
}

// clearAuthIf forgets the token only while it is still token.
func (s *Session) clearAuthIf(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == token {
		s.token = ""
		s.expiresAt = time.Time{}
		s.user = nil
	}
}

// route returns the installed delegate and its generation.
func (s *Session) route() (Delegate, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delegate, s.generation
}

func (s *Session) current(generation uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation == generation
}

// swap installs delegate and returns the generation it replaced.
func (s *Session) swap(delegate Delegate) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.generation
	s.generation++
	s.delegate = delegate
	return previous
}

// asDelegate accepts what SetDelegate documents and nothing else.
func asDelegate(target any) (Delegate, error) {
	switch typed := target.(type) {
	case nil:
		return nil, nil
	case Delegate:
		return typed, nil
	case func(domain.Response):
		if typed == nil {
			return nil, nil
		}
		return DelegateFunc(typed), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidDelegate, target)
	}
}
