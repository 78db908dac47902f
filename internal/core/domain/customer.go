package domain

// Customer is a buyer registered under a tenant.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary key (UUID)
	TenantID   string `json:"tenantID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
