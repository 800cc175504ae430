// Package model defines the database entities.
package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleSeeker = "seeker"
	RoleLister = "lister"
)

// Verification statuses.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// User is an account row. The account subsystem owns it; the realtime and
// matching cores only read it.
type User struct {
	gorm.Model

	// Uuid is the public user id, "U" + timestamped random string.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null"`

	Email    string `gorm:"column:email;uniqueIndex;type:varchar(100);not null"`
	FullName string `gorm:"column:full_name;type:varchar(50);not null"`
	Phone    string `gorm:"column:phone;type:varchar(20)"`

	// Role is one of seeker, lister.
	Role string `gorm:"column:role;type:varchar(20);not null"`

	// VerificationStatus is one of pending, verified, rejected.
	VerificationStatus string `gorm:"column:verification_status;type:varchar(20);default:pending"`

	// Password stores the bcrypt hash, never the plaintext.
	Password string `gorm:"column:password;type:varchar(100);not null"`

	LastOnlineAt  sql.NullTime `gorm:"column:last_online_at"`
	LastOfflineAt sql.NullTime `gorm:"column:last_offline_at"`

	// RawPassword receives the plaintext from the API layer and is hashed
	// into Password by BeforeSave. Never persisted or serialised.
	RawPassword string `gorm:"-" json:"-"`
}

// TableName maps the struct to the users table.
func (User) TableName() string {
	return "users"
}

// BeforeSave hashes RawPassword into Password when one is supplied.
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
