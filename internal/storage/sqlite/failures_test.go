package sqlite

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/invotrack/invotrack/internal/storage"
)

// These tests inject driver failures with sqlmock to verify that every
// mutating operation rolls back instead of leaving partial writes.

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &SQLiteStore{db: db}, mock
}

func TestCreateInvoiceRollsBackOnInsertFailure(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("disk I/O error")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM invoices")).
		WithArgs("INV-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invoices")).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := store.CreateInvoice(context.Background(), 1, "INV-1", 10.0, mustDate(t, "2024-01-01"))
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped insert error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateInvoiceRollsBackOnCommitFailure(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("commit failed")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM invoices")).
		WithArgs("INV-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invoices")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(boom)

	_, err := store.CreateInvoice(context.Background(), 1, "INV-1", 10.0, mustDate(t, "2024-01-01"))
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped commit error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateUserRollsBackOnInsertFailure(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("database is locked")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM users")).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := store.CreateUser(context.Background(), "a@x.com", "digest")
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped insert error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// capturedUniqueViolation produces a real driver UNIQUE-constraint error
// from a throwaway database, for replaying through sqlmock.
func capturedUniqueViolation(t *testing.T) error {
	t.Helper()
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "race@example.com", "digest")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if _, err := store.CreateInvoice(ctx, user.ID, "INV-RACE", 1.0, mustDate(t, "2024-01-01")); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	_, err = store.db.ExecContext(ctx,
		"INSERT INTO invoices (invoice_number, invoice_amount, invoice_date, user_id) VALUES (?, ?, ?, ?)",
		"INV-RACE", 1.0, "2024-01-01", user.ID,
	)
	if err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
	return err
}

func TestCreateInvoiceTranslatesConstraintRaceToConflict(t *testing.T) {
	// Two concurrent creates can both pass the pre-check before either
	// commits; the loser's INSERT then trips the UNIQUE constraint. That
	// backstop must surface as ErrNumberTaken, not an internal failure.
	driverErr := capturedUniqueViolation(t)

	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM invoices")).
		WithArgs("INV-RACE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invoices")).
		WillReturnError(driverErr)
	mock.ExpectRollback()

	_, err := store.CreateInvoice(context.Background(), 1, "INV-RACE", 10.0, mustDate(t, "2024-01-01"))
	if !errors.Is(err, storage.ErrNumberTaken) {
		t.Errorf("expected ErrNumberTaken, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateUserTranslatesConstraintRaceToConflict(t *testing.T) {
	driverErr := capturedUniqueViolation(t)

	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM users")).
		WithArgs("race@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(driverErr)
	mock.ExpectRollback()

	_, err := store.CreateUser(context.Background(), "race@example.com", "digest")
	if !errors.Is(err, storage.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateInvoiceRollsBackOnUpdateFailure(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("constraint failed")

	rows := sqlmock.NewRows([]string{"id", "invoice_number", "invoice_amount", "invoice_date", "user_id"}).
		AddRow(3, "INV-3", 10.0, "2024-01-01", 1)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, invoice_number, invoice_amount, invoice_date, user_id FROM invoices")).
		WithArgs(int64(3), int64(1)).
		WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE invoices SET")).
		WillReturnError(boom)
	mock.ExpectRollback()

	amount := 99.0
	_, err := store.UpdateInvoice(context.Background(), 1, 3, storage.InvoiceUpdate{Amount: &amount})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped update error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
