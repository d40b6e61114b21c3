package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the repeat cadence of a recurring obligation or debt plan.
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Yearly   Frequency = "yearly"
)

// RecurringDefinition is a template for a repeating obligation. NextDate is
// advanced exactly once per settlement and always from the scheduled date,
// never from the payment date, so late payments do not drift the schedule.
type RecurringDefinition struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"` // unsigned magnitude
	Frequency Frequency       `json:"frequency"`
	NextDate  time.Time       `json:"nextDate"`
	AuditFields
}
