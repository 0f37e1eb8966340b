package models

// Invoice is a single invoice owned by exactly one user.
//
// Ownership is fixed at creation: UserID never changes across updates.
type Invoice struct {
	// ID is the store-assigned unique identifier.
	ID int64 `json:"id"`

	// Number is the invoice number, unique across the whole store,
	// not just per user.
	Number string `json:"invoice_number"`

	// Amount is the invoice total. Always >= 0.
	Amount float64 `json:"invoice_amount"`

	// Date is the issue date. Defaults to the creation date when the
	// client omits it.
	Date Date `json:"invoice_date"`

	// UserID references the owning user.
	UserID int64 `json:"user_id"`
}
