package service

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrForbidden          = errors.New("admin privileges required")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidOperation   = errors.New("invalid operation")

	ErrUsernameTaken      = fmt.Errorf("%w: username already registered", ErrConflict)
	ErrAdminAlreadyExists = fmt.Errorf("%w: admin already exists", ErrConflict)
)
