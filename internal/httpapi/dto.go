package httpapi

import (
	"errors"
	"fmt"

	"github.com/invotrack/invotrack/internal/models"
)

// errMissingCredentials is shared by register and login validation.
var errMissingCredentials = errors.New("email and password are required")

// maxPasswordLen is bcrypt's input limit; longer passwords would fail
// hashing, so they are rejected as invalid input instead.
const maxPasswordLen = 72

// registerRequest is the payload for POST /register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) validate() error {
	if r.Email == "" || r.Password == "" {
		return errMissingCredentials
	}
	if len(r.Password) > maxPasswordLen {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLen)
	}
	return nil
}

// loginRequest is the payload for POST /login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) validate() error {
	if r.Email == "" || r.Password == "" {
		return errMissingCredentials
	}
	return nil
}

// loginResponse is the body for a successful login.
type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// messageResponse is the body for operations that only report an outcome.
type messageResponse struct {
	Message string `json:"message"`
}

// createInvoiceRequest is the payload for POST /invoices.
//
// Amount is a pointer so a missing field is distinguishable from zero.
// A non-numeric amount fails JSON decoding before validation runs.
type createInvoiceRequest struct {
	Number string   `json:"invoice_number"`
	Amount *float64 `json:"invoice_amount"`
	Date   *string  `json:"invoice_date"`
}

func (r createInvoiceRequest) validate() error {
	if r.Number == "" {
		return errors.New("invoice_number is required")
	}
	if r.Amount == nil {
		return errors.New("invoice_amount is required")
	}
	if *r.Amount < 0 {
		return errors.New("invoice amount cannot be negative")
	}
	return nil
}

// updateInvoiceRequest is the payload for PUT /invoices/{id}.
// Only fields present in the request are modified.
type updateInvoiceRequest struct {
	Amount *float64 `json:"invoice_amount"`
	Date   *string  `json:"invoice_date"`
}

func (r updateInvoiceRequest) validate() error {
	if r.Amount != nil && *r.Amount < 0 {
		return errors.New("invoice amount cannot be negative")
	}
	return nil
}

// parseDateField parses an optional "YYYY-MM-DD" field. An absent field
// falls back to today; a present-but-invalid value is rejected, never
// silently defaulted.
func parseDateField(raw *string) (models.Date, error) {
	if raw == nil {
		return models.Today(), nil
	}
	date, err := models.ParseDate(*raw)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid date format, use %s", models.DateLayout)
	}
	return date, nil
}
