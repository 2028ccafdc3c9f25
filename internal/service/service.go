package service

import (
	"context"

	"password_vault/internal/models"
	"password_vault/internal/repository"
	"password_vault/internal/token"
)

// PasswordHasher is satisfied by *hasher.Bcrypt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// SecretCipher is satisfied by *cipher.Cipher.
type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(token string) (string, error)
}

// TokenIssuer is satisfied by *token.Service.
type TokenIssuer interface {
	Issue(subject string, isAdmin bool) (string, error)
	Validate(raw string) (token.Identity, error)
}

type Authorization interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	BootstrapAdmin(ctx context.Context, username, password string) (*models.User, error)
}

// Access turns an Authorization header into a user, optionally requiring admin.
type Access interface {
	Resolve(ctx context.Context, authorizationHeader string, requireAdmin bool) (*models.User, error)
}

// Vault exposes owner-scoped credential CRUD with transparent encryption.
type Vault interface {
	Create(ctx context.Context, ownerID int64, c models.Credential) (*models.Credential, error)
	List(ctx context.Context, ownerID int64) ([]models.Credential, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Credential, error)
	Update(ctx context.Context, ownerID, id int64, upd models.CredentialUpdate) (*models.Credential, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// Admin exposes user management for administrators.
type Admin interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, actorID, userID int64) (int64, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Access
	Vault
	Admin
}

// NewService wires the store and the crypto primitives into concrete services.
func NewService(store repository.Store, hasher PasswordHasher, cipher SecretCipher, tokens TokenIssuer) *Service {
	return &Service{
		Authorization: NewAuthService(store, hasher, tokens),
		Access:        NewAccessGuard(store, tokens),
		Vault:         NewVaultService(store, cipher),
		Admin:         NewAdminService(store),
	}
}
