package models

// Project row in the projects table.
type Project struct {
	ProjectID   string `db:"project_id"`
	TenantID    string `db:"tenant_id"`
	Name        string `db:"name"`
	Address     string `db:"address"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
