// Package password_vault holds the JSON shapes exchanged over the HTTP API.
package password_vault

// CredentialsInput is the body of register, login and admin bootstrap.
type CredentialsInput struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cr3t"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
	IsAdmin  bool   `json:"is_admin" example:"false"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

// PasswordInput creates a stored credential.
type PasswordInput struct {
	Service  string `json:"service" binding:"required" example:"github"`
	Username string `json:"username" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"hunter2"`
}

// PasswordUpdateInput changes only the fields that are present and non-empty.
type PasswordUpdateInput struct {
	Service  string `json:"service,omitempty" example:"github"`
	Username string `json:"username,omitempty" example:"alice@example.com"`
	Password string `json:"password,omitempty" example:"correct-horse"`
}

// PasswordResponse is a stored credential with its password decrypted.
type PasswordResponse struct {
	ID       int64  `json:"id" example:"7"`
	Service  string `json:"service" example:"github"`
	Username string `json:"username" example:"alice@example.com"`
	Password string `json:"password" example:"hunter2"`
}

type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// DeleteUserResponse reports how many stored credentials went with the user.
type DeleteUserResponse struct {
	Status         string `json:"status" example:"deleted"`
	DeletedEntries int64  `json:"deleted_entries" example:"3"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"could not validate credentials"`
}
