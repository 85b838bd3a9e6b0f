package domain

// UserRole defines the role of an account.
type UserRole string

const (
	RoleOwner UserRole = "OWNER"
	RoleMitra UserRole = "MITRA"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleOwner || r == RoleMitra
}

// User represents an owner or partner (mitra) account.
type User struct {
	UserID            string   `json:"userID"`
	Role              UserRole `json:"role"`
	Name              string   `json:"name"`
	Username          string   `json:"username"`
	Email             *string  `json:"email,omitempty"`
	PasswordHash      string   `json:"-"`
	Phone             string   `json:"phone"`
	BankName          string   `json:"bankName"`
	BankAccountNumber string   `json:"bankAccountNumber"`
	BankAccountHolder string   `json:"bankAccountHolder"`
	IsActive          bool     `json:"isActive"`
	AuditFields
}

// Actor returns the service-level identity of the user.
func (u User) Actor() Actor {
	return Actor{UserID: u.UserID, Role: u.Role}
}

// UserSummary is the compact reference embedded in lead and project views.
type UserSummary struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
}

// GoogleUserInfo holds the profile returned by Google after the code exchange.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
