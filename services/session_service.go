package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/delgatito/pizzaria-app/client"
	"github.com/delgatito/pizzaria-app/models"
	"github.com/delgatito/pizzaria-app/storage"
	"github.com/delgatito/pizzaria-app/utils"
)

// SessionService owns the authentication token and the current-user record.
// CurrentUser is non-nil exactly while a verified or logged-in session is
// active; nothing else in the program mutates session state.
type SessionService struct {
	api    *client.Gateway
	store  *storage.SessionStore
	logger *logrus.Logger

	mu      sync.Mutex
	token   string
	current *models.User
}

func NewSessionService(api *client.Gateway, store *storage.SessionStore, logger *logrus.Logger) *SessionService {
	return &SessionService{api: api, store: store, logger: logger}
}

// Login authenticates, persists the returned token and caches the user
// record. Backend failures are passed through verbatim; no generic text ever
// replaces the server's message.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, newValidationError("missing-fields", "Por favor, preencha todos os campos")
	}

	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveToken(result.Token); err != nil {
		// The session still works for this run; only persistence failed.
		s.logger.Warnf("failed to persist token: %v", err)
	}

	s.mu.Lock()
	s.token = result.Token
	user := result.User
	s.current = &user
	s.mu.Unlock()

	s.logger.Infof("login ok: %s (role=%s)", user.Email, user.Role)
	return &user, nil
}

// RegisterInput is the sign-up form. Validation happens locally before any
// network call.
type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Address         string
	Password        string
	ConfirmPassword string
}

func (s *SessionService) Register(ctx context.Context, in RegisterInput) error {
	if err := validateRegistration(in); err != nil {
		return err
	}

	return s.api.Register(ctx, client.RegisterRequest{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		Password: in.Password,
	})
}

func validateRegistration(in RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Phone) == "" ||
		strings.TrimSpace(in.Address) == "" ||
		in.Password == "" {
		return newValidationError("missing-fields", "Por favor, preencha todos os campos")
	}
	if in.Password != in.ConfirmPassword {
		return newValidationError("password-mismatch", "As senhas não coincidem")
	}
	if len(in.Password) < 6 {
		return newValidationError("password-too-short", "A senha deve ter pelo menos 6 caracteres")
	}
	return nil
}

// VerifyToken resumes a persisted session at startup. Without a stored token
// it returns ErrNoSession with no network call. A token whose JWT exp claim
// has already passed is dropped locally for the same reason. Verification
// failure clears the stored token so the next start goes straight to login.
func (s *SessionService) VerifyToken(ctx context.Context) (*models.User, error) {
	token, err := s.store.Token()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoSession
	}

	if utils.TokenExpired(token, time.Now()) {
		s.logger.Info("stored token is expired, discarding")
		if err := s.store.Clear(); err != nil {
			s.logger.Warnf("failed to clear expired token: %v", err)
		}
		return nil, ErrNoSession
	}

	user, err := s.api.VerifyToken(ctx, token)
	if err != nil {
		if clearErr := s.store.Clear(); clearErr != nil {
			s.logger.Warnf("failed to clear rejected token: %v", clearErr)
		}
		return nil, err
	}

	s.mu.Lock()
	s.token = token
	s.current = user
	s.mu.Unlock()

	s.logger.Infof("session resumed: %s", user.Email)
	return user, nil
}

// Logout clears the persisted token and the in-memory session. It never
// calls the network.
func (s *SessionService) Logout() {
	s.mu.Lock()
	s.token = ""
	s.current = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Warnf("failed to clear stored token: %v", err)
	}
}

// CurrentUser returns the active user record, or nil when logged out.
func (s *SessionService) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// Token returns the active bearer token, "" when logged out. Implements the
// TokenSource the order components consume.
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *SessionService) Authenticated() bool {
	return s.CurrentUser() != nil
}

// TokenSource hands the current bearer token to components that make
// authenticated calls without owning session state.
type TokenSource interface {
	Token() string
}
