package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the closed set of principal roles. Anything outside the set is
// rejected at the boundary; records never hold an unknown role.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleWorker  Role = "worker"
)

// ParseRole validates a raw role string against the closed set
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleTeacher, RoleWorker:
		return Role(s), true
	}
	return "", false
}

// User is the persisted identity record. A non-nil OTP means the account is
// still pending email verification and must be rejected at login.
type User struct {
	gorm.Model
	Name         string `gorm:"column:name;not null"`
	Email        string `gorm:"column:email;unique;not null"`
	Mobile       string `gorm:"column:mobile"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         Role   `gorm:"column:role;not null;check:role IN ('student','teacher','worker')"`

	// Pending verification state, cleared atomically on successful verify
	OTP          *string    `gorm:"column:otp"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`

	// Pending recovery state, overwritten by a newer request, cleared on use
	ResetToken     *string    `gorm:"column:reset_token;index:idx_users_reset_token,where:reset_token IS NOT NULL"`
	ResetExpiresAt *time.Time `gorm:"column:reset_expires_at"`

	// Opaque course ids owned by the course service
	AllocatedCourses datatypes.JSONSlice[string] `gorm:"column:allocated_courses"`
}

// Verified reports whether the account completed OTP verification
func (u *User) Verified() bool {
	return u.OTP == nil
}
