package model

import "time"

// OtherExpense is a miscellaneous dated expense (fuel, repairs, fees).
type OtherExpense struct {
	ID            string    `json:"id"`
	FactoryID     string    `json:"factory_id"`
	Date          string    `json:"date"`
	ExpenseType   string    `json:"expense_type"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	VendorName    string    `json:"vendor_name"`
	ReceiptNumber string    `json:"receipt_number"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OtherExpenseUpdate lists the patchable expense fields.
type OtherExpenseUpdate struct {
	Date          *string  `json:"date"`
	ExpenseType   *string  `json:"expense_type"`
	Description   *string  `json:"description"`
	Amount        *float64 `json:"amount"`
	VendorName    *string  `json:"vendor_name"`
	ReceiptNumber *string  `json:"receipt_number"`
	Notes         *string  `json:"notes"`
}
