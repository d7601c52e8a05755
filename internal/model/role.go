package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // ADMIN, SUPERVISOR, EMPLOYEE
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleAdmin      = "ADMIN"
	RoleSupervisor = "SUPERVISOR"
	RoleEmployee   = "EMPLOYEE"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Company-wide access: warehouses, catalog, supervisors, statistics",
	},
	{
		Code:        RoleSupervisor,
		Name:        "Supervisor",
		Description: "Manages one warehouse unit: employees, purchases, unit statistics",
	},
	{
		Code:        RoleEmployee,
		Name:        "Employee",
		Description: "Sells products and records transactions within the assigned unit",
	},
}
