package service

import (
	"context"
	"time"

	"github.com/edustack/academy-api/internal/model"
)

// UserStore is the credential-store contract the flows depend on. The
// consume operations are conditional writes: they report whether the secret
// matched and was cleared in the same statement, which is what makes OTP and
// reset tokens single-use under concurrent requests.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) error
	ConsumeOTP(ctx context.Context, email, code string, now time.Time) (bool, error)
	SetResetToken(ctx context.Context, id uint, token string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (bool, error)
	AllocateCourse(ctx context.Context, id uint, courseID string) error
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
}
