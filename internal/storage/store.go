// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/invotrack/invotrack/internal/models"
)

// Sentinel errors returned by Store implementations. Handlers map these to
// HTTP statuses with errors.Is; no error message inspection anywhere.
var (
	// ErrNotFound is returned when a row does not exist or is owned by a
	// different user. Implementations must not distinguish the two cases.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned by CreateUser when the email is already
	// registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNumberTaken is returned by CreateInvoice when the invoice number
	// exists anywhere in the store, regardless of owner.
	ErrNumberTaken = errors.New("invoice number already exists")

	// ErrNegativeAmount is returned when an invoice amount below zero
	// reaches the store.
	ErrNegativeAmount = errors.New("invoice amount cannot be negative")
)

// InvoiceUpdate carries the fields of a partial invoice update.
// Nil fields are left unchanged.
type InvoiceUpdate struct {
	Amount *float64
	Date   *models.Date
}

// Store defines the interface for user and invoice persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the handler layer.
//
// Every invoice operation is scoped to the owning user: an invoice that
// exists but belongs to someone else behaves exactly like a missing one.
// All mutating operations are atomic; a failure mid-operation leaves the
// store unchanged.
type Store interface {
	// CreateUser persists a new user with the given bcrypt digest and
	// returns it with the assigned ID. Fails with ErrEmailTaken.
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)

	// GetUserByEmail retrieves a user by email.
	// Returns ErrNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// DeleteUser removes a user and, by cascade, all invoices they own.
	DeleteUser(ctx context.Context, id int64) error

	// ListInvoices returns all invoices owned by userID in insertion order.
	ListInvoices(ctx context.Context, userID int64) ([]models.Invoice, error)

	// GetInvoice retrieves a single invoice owned by userID.
	GetInvoice(ctx context.Context, userID, invoiceID int64) (*models.Invoice, error)

	// CreateInvoice persists a new invoice for userID and returns it with
	// the assigned ID. Fails with ErrNumberTaken or ErrNegativeAmount.
	CreateInvoice(ctx context.Context, userID int64, number string, amount float64, date models.Date) (*models.Invoice, error)

	// UpdateInvoice applies a partial update to an invoice owned by userID
	// and returns the updated row.
	UpdateInvoice(ctx context.Context, userID, invoiceID int64, upd InvoiceUpdate) (*models.Invoice, error)

	// DeleteInvoice removes an invoice owned by userID.
	DeleteInvoice(ctx context.Context, userID, invoiceID int64) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
