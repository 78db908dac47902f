package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentEntry row shape shared by the sale_payments and expense_payments
// tables. ParentID maps to sale_id or bill_id depending on the table.
type PaymentEntry struct {
	PaymentID   string          `db:"payment_id"`
	ParentID    string          `db:"parent_id"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentDate time.Time       `db:"payment_date"`
	Reference   string          `db:"reference"`
	Note        string          `db:"note"`
	AuditFields
}
