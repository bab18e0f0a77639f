package enum

// AdminRole is the permission level of a back-office operator
type AdminRole string

const (
	AdminRoleAdmin AdminRole = "admin"
	AdminRoleStaff AdminRole = "staff"
)

func (r AdminRole) IsValid() bool {
	return r == AdminRoleAdmin || r == AdminRoleStaff
}
