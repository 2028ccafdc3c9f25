package repository

import (
	"context"
	"fmt"

	"password_vault/internal/dbx"
	"password_vault/internal/models"
)

type EntryRepository struct {
	db      dbx.DBTX
	dialect Dialect
}

func NewEntryRepository(db dbx.DBTX, dialect Dialect) *EntryRepository {
	return &EntryRepository{db: db, dialect: dialect}
}

var _ Entries = (*EntryRepository)(nil)

const (
	insertEntrySQL = `INSERT INTO password_entries (service, username, encrypted_password, owner_id)
		VALUES (?, ?, ?, ?) RETURNING id`
	selectEntriesByOwnerSQL = `SELECT id, service, username, encrypted_password, owner_id
		FROM password_entries WHERE owner_id = ? ORDER BY id`
	selectEntryForOwnerSQL = `SELECT id, service, username, encrypted_password, owner_id
		FROM password_entries WHERE id = ? AND owner_id = ?`
	updateEntrySQL = `UPDATE password_entries SET service = ?, username = ?, encrypted_password = ?
		WHERE id = ? AND owner_id = ?`
	deleteEntryForOwnerSQL = `DELETE FROM password_entries WHERE id = ? AND owner_id = ?`
	deleteEntriesByOwnerSQL = `DELETE FROM password_entries WHERE owner_id = ?`
)

func (r *EntryRepository) Create(ctx context.Context, e *models.PasswordEntry) (*models.PasswordEntry, error) {
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(insertEntrySQL),
		e.Service, e.Username, e.EncryptedPassword, e.OwnerID).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("insert entry for owner %d: %w", e.OwnerID, err)
	}
	return e, nil
}

func (r *EntryRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.PasswordEntry, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(selectEntriesByOwnerSQL), ownerID)
	if err != nil {
		return nil, fmt.Errorf("list entries for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	entries := make([]models.PasswordEntry, 0)
	for rows.Next() {
		var e models.PasswordEntry
		if err := rows.Scan(&e.ID, &e.Service, &e.Username, &e.EncryptedPassword, &e.OwnerID); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// GetForOwner returns ErrNotFound both for a missing id and for an id owned
// by someone else.
func (r *EntryRepository) GetForOwner(ctx context.Context, id, ownerID int64) (*models.PasswordEntry, error) {
	var e models.PasswordEntry
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(selectEntryForOwnerSQL), id, ownerID).
		Scan(&e.ID, &e.Service, &e.Username, &e.EncryptedPassword, &e.OwnerID)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("select entry %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("select entry %d: %w", id, err)
	}
	return &e, nil
}

// Update overwrites service, username and ciphertext of an owned entry.
func (r *EntryRepository) Update(ctx context.Context, e *models.PasswordEntry) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(updateEntrySQL),
		e.Service, e.Username, e.EncryptedPassword, e.ID, e.OwnerID)
	if err != nil {
		return fmt.Errorf("update entry %d: %w", e.ID, err)
	}
	return expectAffected(res, fmt.Sprintf("update entry %d", e.ID))
}

func (r *EntryRepository) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(deleteEntryForOwnerSQL), id, ownerID)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return expectAffected(res, fmt.Sprintf("delete entry %d", id))
}

// DeleteByOwner removes every entry of ownerID and reports how many went.
func (r *EntryRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(deleteEntriesByOwnerSQL), ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete entries for owner %d: %w", ownerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete entries for owner %d: rows affected: %w", ownerID, err)
	}
	return n, nil
}
