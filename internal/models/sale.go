package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlatSale row in the flat_sales table. paid_amount and payment_status are
// denormalized and only ever written together with a payment row in one
// transaction.
type FlatSale struct {
	SaleID        string          `db:"sale_id"`
	TenantID      string          `db:"tenant_id"`
	ProjectID     string          `db:"project_id"`
	CustomerID    string          `db:"customer_id"`
	FlatNumber    string          `db:"flat_number"`
	SaleDate      time.Time       `db:"sale_date"`
	Note          string          `db:"note"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaidAmount    decimal.Decimal `db:"paid_amount"`
	PaymentStatus string          `db:"payment_status"`
	AuditFields
}
