package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"password_vault/internal/models"
	"password_vault/internal/repository"
)

const maxFieldLen = 255

// VaultService stores credentials encrypted and returns them decrypted,
// always scoped to the owner resolved by the access guard.
type VaultService struct {
	store  repository.Store
	cipher SecretCipher
}

func NewVaultService(store repository.Store, cipher SecretCipher) *VaultService {
	return &VaultService{store: store, cipher: cipher}
}

func (s *VaultService) Create(ctx context.Context, ownerID int64, c models.Credential) (*models.Credential, error) {
	if err := validateCredential(c.Service, c.Username, c.Password, true); err != nil {
		return nil, err
	}
	ct, err := s.cipher.Encrypt(c.Password)
	if err != nil {
		return nil, fmt.Errorf("encrypt secret: %w", err)
	}
	e, err := s.store.Entries().Create(ctx, &models.PasswordEntry{
		Service:           c.Service,
		Username:          c.Username,
		EncryptedPassword: ct,
		OwnerID:           ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return &models.Credential{ID: e.ID, Service: e.Service, Username: e.Username, Password: c.Password}, nil
}

// List decrypts every entry of ownerID. One undecryptable entry fails the
// whole call.
func (s *VaultService) List(ctx context.Context, ownerID int64) ([]models.Credential, error) {
	entries, err := s.store.Entries().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	out := make([]models.Credential, 0, len(entries))
	for i := range entries {
		c, err := s.reveal(&entries[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *VaultService) Get(ctx context.Context, ownerID, id int64) (*models.Credential, error) {
	e, err := s.load(ctx, s.store, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.reveal(e)
}

// Update applies the non-empty fields of upd. A new password is re-encrypted;
// otherwise the stored ciphertext is kept as is.
func (s *VaultService) Update(ctx context.Context, ownerID, id int64, upd models.CredentialUpdate) (*models.Credential, error) {
	if err := validateCredential(upd.Service, upd.Username, upd.Password, false); err != nil {
		return nil, err
	}

	var out *models.Credential
	err := s.store.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		e, err := s.load(ctx, st, ownerID, id)
		if err != nil {
			return err
		}
		if upd.Service != "" {
			e.Service = upd.Service
		}
		if upd.Username != "" {
			e.Username = upd.Username
		}
		if upd.Password != "" {
			ct, err := s.cipher.Encrypt(upd.Password)
			if err != nil {
				return fmt.Errorf("encrypt secret: %w", err)
			}
			e.EncryptedPassword = ct
		}
		if err := st.Entries().Update(ctx, e); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: password entry %d", ErrNotFound, id)
			}
			return fmt.Errorf("update entry: %w", err)
		}
		out, err = s.reveal(e)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *VaultService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.store.Entries().DeleteForOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: password entry %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (s *VaultService) load(ctx context.Context, st repository.Store, ownerID, id int64) (*models.PasswordEntry, error) {
	e, err := st.Entries().GetForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: password entry %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load entry: %w", err)
	}
	return e, nil
}

func (s *VaultService) reveal(e *models.PasswordEntry) (*models.Credential, error) {
	plain, err := s.cipher.Decrypt(e.EncryptedPassword)
	if err != nil {
		return nil, fmt.Errorf("entry %d: %w", e.ID, err)
	}
	return &models.Credential{ID: e.ID, Service: e.Service, Username: e.Username, Password: plain}, nil
}

// validateCredential checks field presence (on create) and length (always).
func validateCredential(service, username, password string, create bool) error {
	if create {
		switch {
		case strings.TrimSpace(service) == "":
			return fmt.Errorf("%w: service is required", ErrValidation)
		case strings.TrimSpace(username) == "":
			return fmt.Errorf("%w: username is required", ErrValidation)
		case password == "":
			return fmt.Errorf("%w: password is required", ErrValidation)
		}
	}
	if len(service) > maxFieldLen || len(username) > maxFieldLen {
		return fmt.Errorf("%w: field exceeds %d characters", ErrValidation, maxFieldLen)
	}
	return nil
}
