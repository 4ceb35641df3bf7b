package models

import (
	"gorm.io/gorm"

	"golang.org/x/crypto/bcrypt"
)

// Account roles.
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleLeader     = "to_truong"
)

// User is an administrative account. Passwords are bcrypt-hashed and
// never serialized.
type User struct {
	BaseModel
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"`
	FullName string `gorm:"type:varchar(100)" json:"fullName"`
	Email    string `gorm:"type:varchar(100)" json:"email"`
	Role     string `gorm:"type:varchar(20);not null;default:to_truong" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave hashes the password when it is not already a bcrypt hash.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password != "" && len(u.Password) < 60 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hashed)
	}
	return nil
}

// CheckPassword compares a plaintext candidate with the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
