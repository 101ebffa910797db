package auth

import "errors"

// Role is the closed set of principal roles. Role controls which routes
// a principal can reach, nothing finer-grained.
type Role string

const (
	RoleOwner      Role = "OWNER"
	RoleManager    Role = "MANAGER"
	RoleStaff      Role = "STAFF"
	RoleCustomer   Role = "CUSTOMER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleManager, RoleStaff, RoleCustomer, RoleSuperAdmin:
		return true
	}
	return false
}

var (
	// ErrEmailTaken is returned when signing up an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login. The message is
	// the same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned when no user with the given ID exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRole is returned for a role outside the closed set.
	ErrInvalidRole = errors.New("invalid role")
)

// User is one registered principal. PasswordHash never leaves the server.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	BusinessName string `json:"businessName"`
	Role         Role   `json:"role"`
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// persistedUser is the storage shape; unlike the API shape it carries
// the password hash.
type persistedUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	BusinessName string `json:"businessName"`
	Role         Role   `json:"role"`
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// LoginLog is one audit entry appended on every successful login.
type LoginLog struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	UserEmail    string `json:"userEmail"`
	BusinessName string `json:"businessName"`
	Role         Role   `json:"role"`
	Timestamp    string `json:"timestamp"`
	IPAddress    string `json:"ipAddress"`
}
