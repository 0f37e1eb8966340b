package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/invotrack/invotrack/internal/models"
	"github.com/invotrack/invotrack/internal/storage"
)

// CreateInvoice inserts a new invoice for userID inside a transaction.
// The uniqueness check covers the whole table: a number taken by another
// user's invoice is just as taken.
func (s *SQLiteStore) CreateInvoice(ctx context.Context, userID int64, number string, amount float64, date models.Date) (*models.Invoice, error) {
	if amount < 0 {
		return nil, storage.ErrNegativeAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM invoices WHERE invoice_number = ?", number,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check invoice number: %w", err)
	}
	if exists > 0 {
		return nil, storage.ErrNumberTaken
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO invoices (invoice_number, invoice_amount, invoice_date, user_id) VALUES (?, ?, ?, ?)",
		number, amount, date.String(), userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrNumberTaken
		}
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Invoice{
		ID:     id,
		Number: number,
		Amount: amount,
		Date:   date,
		UserID: userID,
	}, nil
}

// ListInvoices returns all invoices owned by userID, ordered by insertion.
func (s *SQLiteStore) ListInvoices(ctx context.Context, userID int64) ([]models.Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, invoice_number, invoice_amount, invoice_date, user_id FROM invoices WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}
	return invoices, nil
}

// GetInvoice retrieves a single invoice scoped to its owner. An invoice
// belonging to another user is indistinguishable from a missing one.
func (s *SQLiteStore) GetInvoice(ctx context.Context, userID, invoiceID int64) (*models.Invoice, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, invoice_number, invoice_amount, invoice_date, user_id FROM invoices WHERE id = ? AND user_id = ?",
		invoiceID, userID,
	)
	inv, err := scanInvoice(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return inv, err
}

// UpdateInvoice applies a partial update inside a transaction. Only amount
// and date can change; number and owner are immutable after creation.
func (s *SQLiteStore) UpdateInvoice(ctx context.Context, userID, invoiceID int64, upd storage.InvoiceUpdate) (*models.Invoice, error) {
	if upd.Amount != nil && *upd.Amount < 0 {
		return nil, storage.ErrNegativeAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		"SELECT id, invoice_number, invoice_amount, invoice_date, user_id FROM invoices WHERE id = ? AND user_id = ?",
		invoiceID, userID,
	)
	inv, err := scanInvoice(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if upd.Amount != nil {
		inv.Amount = *upd.Amount
	}
	if upd.Date != nil {
		inv.Date = *upd.Date
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE invoices SET invoice_amount = ?, invoice_date = ? WHERE id = ? AND user_id = ?",
		inv.Amount, inv.Date.String(), invoiceID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inv, nil
}

// DeleteInvoice removes an invoice scoped to its owner.
func (s *SQLiteStore) DeleteInvoice(ctx context.Context, userID, invoiceID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE id = ? AND user_id = ?",
		invoiceID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanInvoice reads an invoice row, parsing the stored date string.
func scanInvoice(scan func(dest ...any) error) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var dateStr string
	if err := scan(&inv.ID, &inv.Number, &inv.Amount, &dateStr, &inv.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}
	date, err := models.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored date: %w", err)
	}
	inv.Date = date
	return inv, nil
}
