package auth

// Role is carried in the access token and decides which routes a caller may use.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)
