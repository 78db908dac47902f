package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseBill row in the expense_bills table. Same denormalized balance
// columns as FlatSale.
type ExpenseBill struct {
	BillID        string          `db:"bill_id"`
	TenantID      string          `db:"tenant_id"`
	ProjectID     string          `db:"project_id"`
	VendorName    string          `db:"vendor_name"`
	BillNumber    string          `db:"bill_number"`
	BillDate      time.Time       `db:"bill_date"`
	Category      string          `db:"category"`
	Note          string          `db:"note"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaidAmount    decimal.Decimal `db:"paid_amount"`
	PaymentStatus string          `db:"payment_status"`
	AuditFields
}
