package models

import (
	"time"
)

// User represents an operator account.
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type User struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"unique;not null" json:"username"`
	PinHash     string     `gorm:"column:pin_hash;not null" json:"-"`
	FullName    string     `gorm:"column:full_name" json:"fullName"`
	Email       string     `json:"email,omitempty"`
	PhoneNumber string     `gorm:"column:phone_number" json:"phoneNumber,omitempty"`
	Active      bool       `gorm:"default:true" json:"active"`
	Superuser   bool       `gorm:"default:false" json:"superuser"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"createdAt"`
	LastLogin   *time.Time `gorm:"column:last_login" json:"lastLogin,omitempty"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// Role groups permissions
type Role struct {
	ID          int32  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:role_name;unique;not null" json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `gorm:"default:true" json:"active"`
}

// TableName specifies the table name for Role model
func (Role) TableName() string {
	return "roles"
}

// Permission is a single named capability
type Permission struct {
	ID          int32  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:permission_name;unique;not null" json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Active      bool   `gorm:"default:true" json:"active"`
}

// TableName specifies the table name for Permission model
func (Permission) TableName() string {
	return "permissions"
}

// UserRole joins users to roles
type UserRole struct {
	UserID int64 `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	RoleID int32 `gorm:"primaryKey;autoIncrement:false" json:"roleId"`
}

// TableName specifies the table name
func (UserRole) TableName() string {
	return "user_roles"
}

// RolePermission joins roles to permissions; a grant is effective only
// while the granted flag is true
type RolePermission struct {
	RoleID       int32 `gorm:"primaryKey;autoIncrement:false" json:"roleId"`
	PermissionID int32 `gorm:"primaryKey;autoIncrement:false" json:"permissionId"`
	Granted      bool  `gorm:"default:true" json:"granted"`
}

// TableName specifies the table name
func (RolePermission) TableName() string {
	return "role_permissions"
}

// AuthenticatedUser is the result of a successful credential lookup:
// the user plus the active roles and the deduplicated union of granted
// permissions
type AuthenticatedUser struct {
	User        User         `json:"user"`
	Roles       []Role       `json:"roles"`
	Permissions []Permission `json:"permissions"`
}

// HasPermission checks permission membership by name.
// The superuser flag short-circuits every check to granted.
func (a *AuthenticatedUser) HasPermission(name string) bool {
	if a.User.Superuser {
		return true
	}
	for _, p := range a.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// HasRole checks role membership by name
func (a *AuthenticatedUser) HasRole(name string) bool {
	for _, r := range a.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
