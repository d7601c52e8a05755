package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated user. Supervisors and employees are bound to
// a warehouse unit through UnitCode; admins carry no unit.
type User struct {
	BaseModel
	Username   string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"username" validate:"required"`
	Password   string      `gorm:"type:varchar(255);not null" json:"-"` // hidden from JSON
	Name       string      `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Surname    string      `gorm:"type:varchar(255);not null" json:"surname" validate:"required"`
	RoleID     *uint       `gorm:"index" json:"role_id"`
	Role       *Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	UnitCode   *string     `gorm:"type:varchar(10);index" json:"unit_code,omitempty"` // nil for admins
	IsActive   bool        `gorm:"default:true" json:"is_active"`
	Privileges []Privilege `gorm:"many2many:user_privileges;" json:"privileges,omitempty"`

	// For single session enforcement
	TokenVersion string `gorm:"type:varchar(255);default:''" json:"-"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// HasPrivilege checks if the user has a specific privilege
func (u *User) HasPrivilege(code string) bool {
	for _, p := range u.Privileges {
		if p.Code == code {
			return true
		}
	}
	return false
}

// GetPrivilegeCodes returns a slice of all privilege codes for this user
func (u *User) GetPrivilegeCodes() []string {
	codes := make([]string, len(u.Privileges))
	for i, p := range u.Privileges {
		codes[i] = p.Code
	}
	return codes
}

// RoleCode returns the role code or "" when no role is assigned.
func (u *User) RoleCode() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Code
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID         uuid.UUID   `json:"id"`
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Surname    string      `json:"surname"`
	RoleID     *uint       `json:"role_id,omitempty"`
	Role       *Role       `json:"role,omitempty"`
	UnitCode   *string     `json:"unit_code,omitempty"`
	IsActive   bool        `json:"is_active"`
	Privileges []Privilege `json:"privileges"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Surname:    u.Surname,
		RoleID:     u.RoleID,
		Role:       u.Role,
		UnitCode:   u.UnitCode,
		IsActive:   u.IsActive,
		Privileges: u.Privileges,
		CreatedAt:  u.CreatedAt,
	}
}
