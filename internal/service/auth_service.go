package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"password_vault/internal/models"
	"password_vault/internal/repository"
)

const maxUsernameLen = 150

// AuthService handles registration, login and first-admin bootstrap.
type AuthService struct {
	store  repository.Store
	hasher PasswordHasher
	tokens TokenIssuer

	dummyOnce   sync.Once
	dummyDigest string
}

func NewAuthService(store repository.Store, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens}
}

// Register hashes password and creates a regular user.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	digest, err := s.prepare(username, password)
	if err != nil {
		return nil, err
	}
	u, err := s.store.Users().Create(ctx, &models.User{Username: username, PasswordHash: digest})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	return u, nil
}

// Login verifies credentials and returns a signed access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(password, s.dummy())
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("load user: %w", err)
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	tok, err := s.tokens.Issue(strconv.FormatInt(u.ID, 10), u.IsAdmin)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}

// BootstrapAdmin creates the first administrator. Once any admin exists it
// fails with ErrAdminAlreadyExists.
func (s *AuthService) BootstrapAdmin(ctx context.Context, username, password string) (*models.User, error) {
	if err := s.ensureNoAdmin(ctx, s.store); err != nil {
		return nil, err
	}
	digest, err := s.prepare(username, password)
	if err != nil {
		return nil, err
	}

	var created *models.User
	err = s.store.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		if err := s.ensureNoAdmin(ctx, st); err != nil {
			return err
		}
		u, err := st.Users().Create(ctx, &models.User{Username: username, PasswordHash: digest, IsAdmin: true})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("create admin: %w", err)
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) ensureNoAdmin(ctx context.Context, st repository.Store) error {
	exists, err := st.Users().AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return ErrAdminAlreadyExists
	}
	return nil
}

// prepare validates the credentials pair and returns the password digest.
func (s *AuthService) prepare(username, password string) (string, error) {
	if err := validateUsername(username); err != nil {
		return "", err
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return digest, nil
}

// dummy returns a digest that no real password matches, computed once.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		d, err := s.hasher.Hash("vault-dummy-password")
		if err == nil {
			s.dummyDigest = d
		}
	})
	return s.dummyDigest
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("%w: username exceeds %d characters", ErrValidation, maxUsernameLen)
	}
	return nil
}
