package domain

// Project is a real-estate project (site/building) owned by a tenant.
// Flat sales and expense bills both hang off a project.
type Project struct {
	ProjectID   string `json:"projectID"` // Primary key (UUID)
	TenantID    string `json:"tenantID"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
