package handlers

import (
	"context"
	"net/http"

	"password_vault/internal/models"
	"password_vault/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser  *models.User
	registerErr   error
	loginToken    string
	loginErr      error
	bootstrapUser *models.User
	bootstrapErr  error

	lastUsername string
	lastPassword string
}

func (m *mockAuth) Register(ctx context.Context, username, password string) (*models.User, error) {
	m.lastUsername, m.lastPassword = username, password
	return m.registerUser, m.registerErr
}
func (m *mockAuth) Login(ctx context.Context, username, password string) (string, error) {
	m.lastUsername, m.lastPassword = username, password
	return m.loginToken, m.loginErr
}
func (m *mockAuth) BootstrapAdmin(ctx context.Context, username, password string) (*models.User, error) {
	m.lastUsername, m.lastPassword = username, password
	return m.bootstrapUser, m.bootstrapErr
}

type mockAccess struct {
	user *models.User
	err  error

	lastHeader       string
	lastRequireAdmin bool
	calls            int
}

func (m *mockAccess) Resolve(ctx context.Context, header string, requireAdmin bool) (*models.User, error) {
	m.calls++
	m.lastHeader = header
	m.lastRequireAdmin = requireAdmin
	if m.err != nil {
		return nil, m.err
	}
	if requireAdmin && (m.user == nil || !m.user.IsAdmin) {
		return nil, service.ErrForbidden
	}
	return m.user, nil
}

type mockVault struct {
	cred    *models.Credential
	creds   []models.Credential
	err     error
	deleted int

	lastOwner  int64
	lastID     int64
	lastCreate models.Credential
	lastUpdate models.CredentialUpdate
}

func (m *mockVault) Create(ctx context.Context, ownerID int64, c models.Credential) (*models.Credential, error) {
	m.lastOwner, m.lastCreate = ownerID, c
	return m.cred, m.err
}
func (m *mockVault) List(ctx context.Context, ownerID int64) ([]models.Credential, error) {
	m.lastOwner = ownerID
	return m.creds, m.err
}
func (m *mockVault) Get(ctx context.Context, ownerID, id int64) (*models.Credential, error) {
	m.lastOwner, m.lastID = ownerID, id
	return m.cred, m.err
}
func (m *mockVault) Update(ctx context.Context, ownerID, id int64, upd models.CredentialUpdate) (*models.Credential, error) {
	m.lastOwner, m.lastID, m.lastUpdate = ownerID, id, upd
	return m.cred, m.err
}
func (m *mockVault) Delete(ctx context.Context, ownerID, id int64) error {
	m.lastOwner, m.lastID = ownerID, id
	if m.err == nil {
		m.deleted++
	}
	return m.err
}

type mockAdmin struct {
	users   []models.User
	removed int64
	err     error

	lastActor int64
	lastUser  int64
}

func (m *mockAdmin) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.users, m.err
}
func (m *mockAdmin) DeleteUser(ctx context.Context, actorID, userID int64) (int64, error) {
	m.lastActor, m.lastUser = actorID, userID
	return m.removed, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
