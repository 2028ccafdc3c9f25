package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"password_vault/internal/models"
	"password_vault/internal/repository"
)

// AccessGuard resolves bearer tokens into users. The stored record decides
// the role; the token's is_admin claim is never trusted for authorization.
type AccessGuard struct {
	store  repository.Store
	tokens TokenIssuer
}

func NewAccessGuard(store repository.Store, tokens TokenIssuer) *AccessGuard {
	return &AccessGuard{store: store, tokens: tokens}
}

func (g *AccessGuard) Resolve(ctx context.Context, authorizationHeader string, requireAdmin bool) (*models.User, error) {
	raw, ok := bearerToken(authorizationHeader)
	if !ok {
		return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthenticated)
	}
	id, err := g.tokens.Validate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	userID, err := strconv.ParseInt(id.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrUnauthenticated)
	}

	u, err := g.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d no longer exists", ErrUnauthenticated, userID)
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if requireAdmin && !u.IsAdmin {
		return nil, ErrForbidden
	}
	return u, nil
}

// bearerToken extracts the credentials of a "Bearer <token>" header. The
// scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
