package repository

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/edustack/academy-api/internal/errors"
	"github.com/edustack/academy-api/internal/model"
	"github.com/edustack/academy-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository is the credential store. Reads used inside the auth flows
// return the full record including password hash and pending secrets; the
// service layer sanitizes anything handed back to a client.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user record. A unique violation on email is returned
// as ErrEmailExists so the flows never leak driver errors.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailExists
		}
		logger.GetLogger().Error("Failed to create user",
			zap.String("email", user.Email),
			zap.Error(result.Error),
		)
		return result.Error
	}

	logger.GetLogger().Info("User created",
		zap.String("email", user.Email),
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return nil
}

// GetByEmail finds a user by exact email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// GetByID finds a user by primary key
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// UpdateProfile applies a partial update to mutable profile fields. Email
// uniqueness is enforced both here (index) and by the caller's pre-check.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailExists
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ConsumeOTP clears the pending OTP iff the stored code matches and the
// expiry window is still open. Check and clear are one conditional UPDATE so
// two concurrent attempts can never both succeed.
func (r *UserRepository) ConsumeOTP(ctx context.Context, email, code string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND otp = ? AND otp_expires_at > ?", email, code, now).
		Updates(map[string]interface{}{
			"otp":            nil,
			"otp_expires_at": nil,
		})
	if result.Error != nil {
		logger.GetLogger().Error("Failed to consume otp",
			zap.String("email", email),
			zap.Error(result.Error),
		)
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// SetResetToken stores a new pending reset token, overwriting any prior one.
// Only the most recent request is ever valid.
func (r *UserRepository) SetResetToken(ctx context.Context, id uint, token string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_token":      token,
		"reset_expires_at": expiresAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ConsumeResetToken sets the new password hash and clears the reset state in
// a single conditional UPDATE keyed on the presented token and its expiry.
// Zero rows means the token was unknown, expired or already consumed.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("reset_token = ? AND reset_expires_at > ?", token, now).
		Updates(map[string]interface{}{
			"password_hash":    newPasswordHash,
			"reset_token":      nil,
			"reset_expires_at": nil,
		})
	if result.Error != nil {
		logger.GetLogger().Error("Failed to consume reset token",
			zap.Error(result.Error),
		)
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// AllocateCourse appends an opaque course id to the user's allocation set.
// The row is locked for the read-modify-write so concurrent allocations to
// the same user serialize.
func (r *UserRepository) AllocateCourse(ctx context.Context, id uint, courseID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
			return err
		}

		for _, existing := range user.AllocatedCourses {
			if existing == courseID {
				return nil // already allocated
			}
		}

		user.AllocatedCourses = append(user.AllocatedCourses, courseID)
		return tx.Model(&user).Update("allocated_courses", user.AllocatedCourses).Error
	})
}

// ListByRole returns all users holding the given role
func (r *UserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	var users []model.User
	result := r.db.WithContext(ctx).Where("role = ?", role).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}
