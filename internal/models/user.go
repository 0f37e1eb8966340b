package models

// User represents a registered account that owns invoices.
type User struct {
	// ID is the store-assigned unique identifier.
	ID int64 `json:"id"`

	// Email is the user's login identity (unique, case-sensitive as stored).
	Email string `json:"email"`

	// PasswordHash is the bcrypt digest of the password.
	// Never serialized, never plaintext.
	PasswordHash string `json:"-"`

	// IsActive marks whether the account is enabled. Defaults to true.
	IsActive bool `json:"is_active"`
}
