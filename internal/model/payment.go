package model

import "time"

// EmployeePayment records a wage payout or advance. Employees are referenced
// by name, not id, mirroring how the ledger is kept on paper.
type EmployeePayment struct {
	ID           string    `json:"id"`
	FactoryID    string    `json:"factory_id"`
	Date         string    `json:"date"`
	EmployeeName string    `json:"employee_name"`
	Amount       float64   `json:"amount"`
	PaymentType  string    `json:"payment_type"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
