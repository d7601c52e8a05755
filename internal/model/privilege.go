package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "stock:sell"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// Warehouse units
	{Code: "unit:view", Name: "View Warehouse Units"},
	{Code: "unit:create", Name: "Create Warehouse Unit"},
	{Code: "unit:delete", Name: "Delete Warehouse Unit"},
	// Product catalog
	{Code: "product:view", Name: "View Catalog"},
	{Code: "product:create", Name: "Create Product"},
	// Stock ledger
	{Code: "stock:view", Name: "View Stock"},
	{Code: "stock:sell", Name: "Sell Stock"},
	{Code: "stock:purchase", Name: "Purchase Stock"},
	// Transaction log
	{Code: "transaction:view", Name: "View Transactions"},
	// Reports
	{Code: "report:unit", Name: "View Unit Statistics"},
	{Code: "report:company", Name: "View Company Statistics"},
	// Staff management
	{Code: "staff:view", Name: "View Staff"},
	{Code: "staff:create", Name: "Create Staff"},
	{Code: "staff:update", Name: "Update Staff"},
	{Code: "staff:delete", Name: "Delete Staff"},
}

// RolePrivileges maps each default role to the privilege codes it is seeded
// with. ADMIN is assigned every privilege and is intentionally absent here.
var RolePrivileges = map[string][]string{
	RoleSupervisor: {
		"unit:view", "product:view",
		"stock:view", "stock:sell", "stock:purchase",
		"transaction:view", "report:unit",
		"staff:view", "staff:create", "staff:update", "staff:delete",
	},
	RoleEmployee: {
		"unit:view", "product:view",
		"stock:view", "stock:sell",
		"transaction:view",
	},
}
