package service

import (
	"context"
	"errors"
	"strings"

	"github.com/edustack/academy-api/internal/dto"
	apperrors "github.com/edustack/academy-api/internal/errors"
	"github.com/edustack/academy-api/internal/model"
	"github.com/edustack/academy-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService is the read-model and profile side of the identity core, plus
// the worker-gated resource operations downstream routes need.
type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// GetByID returns the sanitized record for an authenticated subject
func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := dto.NewUserResponse(user)
	return &response, nil
}

// UpdateProfile applies a partial update to name, email and mobile. Password
// and role are not reachable through this path. An email change re-checks
// uniqueness before committing.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Mobile != "" {
		updates["mobile"] = strings.TrimSpace(req.Mobile)
	}
	if req.Email != "" {
		email := strings.TrimSpace(req.Email)

		existing, err := s.store.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.ErrEmailExists
		}

		updates["email"] = email
	}

	if len(updates) > 0 {
		if err := s.store.UpdateProfile(ctx, id, updates); err != nil {
			if apperrors.IsDomainError(err) {
				return nil, err
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}

		logger.GetLogger().Info("Profile updated",
			zap.Uint("user_id", id),
			zap.Int("field_count", len(updates)),
		)
	}

	return s.GetByID(ctx, id)
}

// ListByRole returns sanitized users holding a role; worker-gated at the
// route layer
func (s *UserService) ListByRole(ctx context.Context, role model.Role) ([]dto.UserResponse, error) {
	users, err := s.store.ListByRole(ctx, role)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}
	return responses, nil
}

// AllocateCourse attaches an opaque course id to a user's allocation set.
// The course entity itself belongs to the course service; only the reference
// lives here.
func (s *UserService) AllocateCourse(ctx context.Context, id uint, courseID string) (*dto.UserResponse, error) {
	if err := s.store.AllocateCourse(ctx, id, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.GetLogger().Info("Course allocated",
		zap.Uint("user_id", id),
		zap.String("course_id", courseID),
	)

	return s.GetByID(ctx, id)
}
