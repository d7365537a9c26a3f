package entity

type User struct {
	ID    uint64
	Email string
	Name  string
	Role  Role
}

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleCourier  Role = "courier"
)

func ValidRoles() []string {
	return []string{
		string(RoleCustomer),
		string(RoleAdmin),
		string(RoleCourier),
	}
}

func IsValidRole(r string) bool {
	for _, validRole := range ValidRoles() {
		if validRole == r {
			return true
		}
	}
	return false
}
