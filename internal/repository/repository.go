package repository

import (
	"context"
	"database/sql"

	"password_vault/internal/dbx"
	"password_vault/internal/models"
)

// Users persists account records.
type Users interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
	AdminExists(ctx context.Context) (bool, error)
}

// Entries persists encrypted credential records. Every read and write is
// scoped by owner id.
type Entries interface {
	Create(ctx context.Context, e *models.PasswordEntry) (*models.PasswordEntry, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.PasswordEntry, error)
	GetForOwner(ctx context.Context, id, ownerID int64) (*models.PasswordEntry, error)
	Update(ctx context.Context, e *models.PasswordEntry) error
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}

// Store is the vault's unit of work: repositories bound to one handle, plus
// a way to run several calls atomically.
type Store interface {
	Users() Users
	Entries() Entries
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

// Repository implements Store on database/sql.
type Repository struct {
	db      *sql.DB
	q       dbx.DBTX
	dialect Dialect
	inTx    bool
}

var _ Store = (*Repository)(nil)

func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{db: db, q: db, dialect: dialect}
}

func (r *Repository) Users() Users {
	return NewUserRepository(r.q, r.dialect)
}

func (r *Repository) Entries() Entries {
	return NewEntryRepository(r.q, r.dialect)
}

// WithinTx runs fn against a transactional Store. Calls made on a Store that
// is already transactional join the outer transaction.
func (r *Repository) WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	if r.inTx {
		return fn(ctx, r)
	}
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &Repository{db: r.db, q: tx, dialect: r.dialect, inTx: true})
	})
}
