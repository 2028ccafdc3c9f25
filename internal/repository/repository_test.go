package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRepository_WithinTx_Commit(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteEntriesByOwnerSQL)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(deleteUserSQL)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewRepository(db, DialectSQLite)
	err := repo.WithinTx(context.Background(), func(ctx context.Context, s Store) error {
		if _, err := s.Entries().DeleteByOwner(ctx, 4); err != nil {
			return err
		}
		// nested call joins the outer transaction
		return s.WithinTx(ctx, func(ctx context.Context, s Store) error {
			return s.Users().Delete(ctx, 4)
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRepository_WithinTx_Rollback(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteEntriesByOwnerSQL)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(deleteUserSQL)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewRepository(db, DialectSQLite)
	err := repo.WithinTx(context.Background(), func(ctx context.Context, s Store) error {
		if _, err := s.Entries().DeleteByOwner(ctx, 4); err != nil {
			return err
		}
		return s.Users().Delete(ctx, 4)
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDialect_Rebind(t *testing.T) {
	q := `UPDATE t SET a = ?, b = ? WHERE id = ?`
	if got := DialectSQLite.Rebind(q); got != q {
		t.Fatalf("sqlite must keep placeholders, got %q", got)
	}
	want := `UPDATE t SET a = $1, b = $2 WHERE id = $3`
	if got := DialectPostgres.Rebind(q); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"sqlite", DialectSQLite, false},
		{"SQLite3", DialectSQLite, false},
		{"postgres", DialectPostgres, false},
		{"pgx", DialectPostgres, false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDialect(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%q: unexpected err %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%q: want %q, got %q", tt.in, tt.want, got)
		}
	}
	if DialectPostgres.DriverName() != "pgx" || DialectSQLite.DriverName() != "sqlite" {
		t.Fatalf("unexpected driver names")
	}
}
