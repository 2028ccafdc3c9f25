package models

// PasswordEntry is a stored credential. Only ciphertext is ever persisted.
type PasswordEntry struct {
	ID                int64  `json:"id"`
	Service           string `json:"service"`
	Username          string `json:"username"`
	EncryptedPassword string `json:"-"`
	OwnerID           int64  `json:"-"`
}

// Credential is a PasswordEntry with its secret decrypted for the owner.
type Credential struct {
	ID       int64  `json:"id"`
	Service  string `json:"service"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialUpdate carries a partial update; empty fields are left unchanged.
type CredentialUpdate struct {
	Service  string
	Username string
	Password string
}
