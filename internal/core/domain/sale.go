package domain

import "time"

// FlatSale records the sale of one flat in a project to a customer. It is a
// balance-carrying aggregate: the embedded Balance tracks how much of the
// agreed sale price has been received, and owns a collection of PaymentEntry
// children keyed by payment ID.
type FlatSale struct {
	SaleID     string    `json:"saleID"` // Primary key (UUID)
	TenantID   string    `json:"tenantID"`
	ProjectID  string    `json:"projectID"`
	CustomerID string    `json:"customerID"`
	FlatNumber string    `json:"flatNumber"`
	SaleDate   time.Time `json:"saleDate"`
	Note       string    `json:"note"`
	Balance
	AuditFields
	// Payments are loaded separately when requested.
	Payments []PaymentEntry `json:"payments,omitempty"`
}
