package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleRetail      UserRole = "RETAIL"
	RoleDistributor UserRole = "DISTRIBUTOR"
	RoleAdmin       UserRole = "ADMIN"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	RoleCode     UserRole       `gorm:"type:varchar(20);default:'RETAIL'" json:"role_code"` // pricing/eligibility role
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
