package models

import (
	"strings"
	"time"
)

// User statuses tracked by the application layer. Status is advisory
// metadata; IsActive is what actually gates login.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User is the sole domain entity: credentials plus profile and role metadata.
type User struct {
	ID           uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string     `gorm:"column:username;type:text;not null;uniqueIndex"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FirstName    string     `gorm:"column:first_name;not null;default:''"`
	LastName     string     `gorm:"column:last_name;not null;default:''"`
	Phone        *string    `gorm:"column:phone"`
	Role         string     `gorm:"column:role;not null;default:''"`
	Department   *string    `gorm:"column:department"`
	Status       string     `gorm:"column:status;not null;default:'active'"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	IsStaff      bool       `gorm:"column:is_staff;not null;default:false"`
	IsSuperuser  bool       `gorm:"column:is_superuser;not null;default:false"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	DateJoined   time.Time  `gorm:"column:date_joined;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// FullName derives the display name; it is never persisted.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
