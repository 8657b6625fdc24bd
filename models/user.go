package models

import "time"

type UserRole string

const (
	UserRoleCitizen UserRole = "citizen"
	UserRoleStaff   UserRole = "staff"
	UserRoleAdmin   UserRole = "admin"
)

type User struct {
	UID        uint      `gorm:"primaryKey;column:u_id" json:"u_id"`
	Username   string    `gorm:"size:50;not null;unique" json:"username"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Email      *string   `gorm:"size:100" json:"email"`
	FullName   *string   `gorm:"size:100" json:"full_name"`
	Phone      *string   `gorm:"size:20" json:"phone"`
	Role       string    `gorm:"type:user_role;default:'citizen';not null" json:"role"`
	Department *string   `gorm:"size:100" json:"department"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
