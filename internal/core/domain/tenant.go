package domain

import "time"

// Tenant represents one isolated builder/agency environment containing
// projects, customers, sales and expenses. All repository operations are
// scoped by tenant ID; there is no cross-tenant data access.
type Tenant struct {
	TenantID    string `json:"tenantID"` // Primary key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// UserTenantRole defines the possible roles a user can have within a tenant.
type UserTenantRole string

const (
	RoleAdmin    UserTenantRole = "ADMIN"
	RoleMember   UserTenantRole = "MEMBER"
	RoleReadOnly UserTenantRole = "READONLY"
	RoleRemoved  UserTenantRole = "REMOVED"
)

// Allows reports whether a user holding this role may act at the required level.
func (r UserTenantRole) Allows(required UserTenantRole) bool {
	rank := map[UserTenantRole]int{RoleReadOnly: 1, RoleMember: 2, RoleAdmin: 3}
	have, ok := rank[r]
	if !ok {
		return false
	}
	want, ok := rank[required]
	if !ok {
		return false
	}
	return have >= want
}

// UserTenant represents the membership of a user in a tenant.
type UserTenant struct {
	UserID   string         `json:"userID"`
	TenantID string         `json:"tenantID"`
	Role     UserTenantRole `json:"role"`
	JoinedAt time.Time      `json:"joinedAt"`
}
