// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole is the authorization role of a user.
type UserRole string

const (
	// RoleUser is the default role assigned on join.
	RoleUser UserRole = "USER"
	// RoleAdmin marks an administrator.
	RoleAdmin UserRole = "ADMIN"
)

// User represents a registered account. UserName is the unique display name
// every service operation resolves the actor by.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserName  string         `gorm:"uniqueIndex;size:64;not null" json:"user_name"`
	Password  string         `gorm:"not null" json:"-"`
	Role      UserRole       `gorm:"type:varchar(16);default:'USER';not null" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
