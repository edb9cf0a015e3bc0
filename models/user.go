package models

// Roles the backend assigns to accounts. The client only ever acts as a
// customer; admin and master accounts are redirected to the admin surface,
// which is a different product.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleMaster   = "master"
)

type User struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

// IsStaff reports whether the account belongs on the admin surface instead
// of the ordering client.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleMaster
}
