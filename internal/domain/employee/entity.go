package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         int64
	Name       string
	PhoneNo    string
	Address    string
	Role       string
	JoinDate   time.Time
	BaseSalary decimal.Decimal
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
