package dto

import (
	"time"

	"github.com/edustack/academy-api/internal/model"
)

// UserResponse is the sanitized view of a user record. Password hash, OTP and
// reset-token state never leave the service layer.
type UserResponse struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Mobile           string     `json:"mobile,omitempty"`
	Role             model.Role `json:"role"`
	Verified         bool       `json:"verified"`
	AllocatedCourses []string   `json:"allocated_courses,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewUserResponse strips credential and pending-secret fields from a record
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Mobile:           user.Mobile,
		Role:             user.Role,
		Verified:         user.Verified(),
		AllocatedCourses: user.AllocatedCourses,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

type UpdateProfileRequest struct {
	Name   string `json:"name" binding:"omitempty,min=2,max=100"`
	Email  string `json:"email" binding:"omitempty,email"`
	Mobile string `json:"mobile" binding:"omitempty,min=10,max=15"`
}

type AllocateCourseRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}
