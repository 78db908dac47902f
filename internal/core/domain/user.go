package domain

// User represents an application user. The password hash never leaves the
// identity service layer.
type User struct {
	UserID       string `json:"userID"` // Primary key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsDeleted    bool   `json:"isDeleted"`
	AuditFields
}
