package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleChairman  UserRole = "chairman"
	RoleCaretaker UserRole = "caretaker"
	RoleGoodBoy   UserRole = "goodboy"
	RoleTrader    UserRole = "trader"
	RoleVendor    UserRole = "vendor"
)

// User is the identity record every domain role (Chairman, Caretaker,
// GoodBoy, Trader) hangs off. Authorization scope is derived from Role
// plus the linked role record, not from the user row itself.
type User struct {
	ID           string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	FullName     string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber  string    `gorm:"type:varchar(20);index" json:"phone_number"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'trader'" json:"role"`
	ProfileImage string    `gorm:"type:text" json:"profile_image,omitempty"` // S3 URL
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
