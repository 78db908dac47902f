package domain

import "time"

// ExpenseBill records a vendor bill against a project. It is the second
// balance-carrying aggregate: the embedded Balance tracks how much of the
// bill has been settled through its PaymentEntry children.
type ExpenseBill struct {
	BillID     string    `json:"billID"` // Primary key (UUID)
	TenantID   string    `json:"tenantID"`
	ProjectID  string    `json:"projectID"`
	VendorName string    `json:"vendorName"`
	BillNumber string    `json:"billNumber"`
	BillDate   time.Time `json:"billDate"`
	Category   string    `json:"category"` // Material, labour, etc., descriptive only
	Note       string    `json:"note"`
	Balance
	AuditFields
	Payments []PaymentEntry `json:"payments,omitempty"`
}
