package models

// Customer row in the customers table.
type Customer struct {
	CustomerID string `db:"customer_id"`
	TenantID   string `db:"tenant_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	Email      string `db:"email"`
	Address    string `db:"address"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
