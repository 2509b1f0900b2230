package model

import "time"

// Employee is a worker on a factory's payroll. DailyWage may be unset for
// piece-rate workers.
type Employee struct {
	ID        string    `json:"id"`
	FactoryID string    `json:"factory_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	DailyWage *float64  `json:"daily_wage"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployeeUpdate lists the patchable employee fields.
type EmployeeUpdate struct {
	Name      *string  `json:"name"`
	Phone     *string  `json:"phone"`
	Role      *string  `json:"role"`
	DailyWage *float64 `json:"daily_wage"`
	IsActive  *bool    `json:"is_active"`
}
