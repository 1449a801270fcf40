package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	FullName         string          `json:"fullName"`
	Role             string          `json:"role"`
	JoiningDate      time.Time       `json:"joiningDate"`
	BirthDate        *time.Time      `json:"birthDate,omitempty"`
	BaseSalary       decimal.Decimal `json:"baseSalary"`
	IsActive         bool            `json:"isActive"`
	YearlyFreeLeaves decimal.Decimal `json:"yearlyFreeLeaves"`
	FreeLeavesLeft   decimal.Decimal `json:"freeLeavesLeft"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Credential carries what the login handler needs, nothing else.
type Credential struct {
	EmployeeID   string
	Email        string
	Role         string
	PasswordHash string
	IsActive     bool
}
