package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"password_vault/internal/cipher"
	"password_vault/internal/hasher"
	"password_vault/internal/logger"
	"password_vault/internal/models"
	"password_vault/internal/repository"
	"password_vault/internal/repository/db"
	"password_vault/internal/token"

	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	svc    *Service
	store  *repository.Repository
	cipher *cipher.Cipher
	tokens *token.Service
	now    time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := db.InitDB(context.Background(), repository.DialectSQLite, dsn, logger.Nop())
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	h, err := hasher.New(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hasher.New: %v", err)
	}
	c, err := cipher.New(bytes.Repeat([]byte{9}, cipher.KeySize))
	if err != nil {
		t.Fatalf("cipher.New: %v", err)
	}

	env := &testEnv{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	tk, err := token.NewService([]byte("service-test-secret"), 30*time.Minute, token.WithClock(func() time.Time { return env.now }))
	if err != nil {
		t.Fatalf("token.NewService: %v", err)
	}

	env.store = repository.NewRepository(conn, repository.DialectSQLite)
	env.cipher = c
	env.tokens = tk
	env.svc = NewService(env.store, h, c, tk)
	return env
}

func (e *testEnv) register(t *testing.T, username, password string) *models.User {
	t.Helper()
	u, err := e.svc.Register(context.Background(), username, password)
	if err != nil {
		t.Fatalf("Register(%q): %v", username, err)
	}
	return u
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	tok, err := e.svc.Login(context.Background(), username, password)
	if err != nil {
		t.Fatalf("Login(%q): %v", username, err)
	}
	return "Bearer " + tok
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
