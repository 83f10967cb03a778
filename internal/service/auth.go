package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edustack/academy-api/internal/dto"
	apperrors "github.com/edustack/academy-api/internal/errors"
	"github.com/edustack/academy-api/internal/mailer"
	"github.com/edustack/academy-api/internal/model"
	"github.com/edustack/academy-api/internal/revocation"
	"github.com/edustack/academy-api/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthConfig carries the flow-level knobs: secret lifetimes, the operator
// mailbox that receives worker OTPs and signup notices, and the public base
// URL embedded in reset links.
type AuthConfig struct {
	OTPTTL          time.Duration
	ResetTokenTTL   time.Duration
	OperatorMailbox string
	BaseURL         string
}

// AuthService orchestrates registration, OTP verification, sessions and
// password recovery.
type AuthService struct {
	store    UserStore
	tokens   *TokenService
	registry revocation.Registry
	mail     mailer.Dispatcher
	cfg      AuthConfig
}

func NewAuthService(store UserStore, tokens *TokenService, registry revocation.Registry, mail mailer.Dispatcher, cfg AuthConfig) *AuthService {
	return &AuthService{
		store:    store,
		tokens:   tokens,
		registry: registry,
		mail:     mail,
		cfg:      cfg,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// Register creates a Pending user record and dispatches its OTP. The worker
// role's OTP is redirected to the operator mailbox: claiming that role
// requires an operator to hand the code over.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role, ok := model.ParseRole(req.Role)
	if !ok {
		return nil, apperrors.ErrInvalidRole
	}

	// Pre-check duplicates for a clean error; the unique index is the
	// authoritative guard against a concurrent create
	if _, err := s.store.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	code, err := s.tokens.GenerateOTP()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	expiresAt := time.Now().Add(s.cfg.OTPTTL)

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Mobile:       strings.TrimSpace(req.Mobile),
		PasswordHash: passwordHash,
		Role:         role,
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	}

	if err := s.store.Create(ctx, user); err != nil {
		if apperrors.IsDomainError(err) {
			return nil, err
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	body, err := mailer.RenderOTP(user.Name, code, s.cfg.OTPTTL)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	recipient := user.Email
	if role == model.RoleWorker {
		recipient = s.cfg.OperatorMailbox
	}

	// The response asserts the OTP email went out, so a dispatch failure
	// must fail the request rather than silently succeed
	if err := s.mail.Send(ctx, recipient, "Verify your account", body); err != nil {
		logger.GetLogger().Error("OTP dispatch failed during registration",
			zap.String("email", user.Email),
			zap.Error(err),
		)
		return nil, apperrors.WrapError(apperrors.ErrMailDelivery, err)
	}

	logger.GetLogger().Info("User registered, otp dispatched",
		zap.String("email", user.Email),
		zap.String("role", string(role)),
		zap.Bool("operator_gated", role == model.RoleWorker),
	)

	response := dto.NewUserResponse(user)
	return &response, nil
}

// VerifyOTP moves a Pending record to Active. Wrong code, expired window,
// unknown email and replayed code all collapse into the same failure.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*dto.UserResponse, error) {
	// Read the profile before consuming: once the conditional clear commits,
	// nothing below may fail the request
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidOTP
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	consumed, err := s.store.ConsumeOTP(ctx, email, code, time.Now())
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !consumed {
		return nil, apperrors.ErrInvalidOTP
	}

	user.OTP = nil
	user.OTPExpiresAt = nil

	// Operator heads-up for self-service signups; best effort only, the
	// verification itself already committed
	if user.Role != model.RoleWorker {
		if body, rerr := mailer.RenderSignupNotice(user.Name, user.Email, string(user.Role)); rerr == nil {
			if serr := s.mail.Send(ctx, s.cfg.OperatorMailbox, "New signup verified", body); serr != nil {
				logger.GetLogger().Warn("Signup notice dispatch failed",
					zap.String("email", user.Email),
					zap.Error(serr),
				)
			}
		}
	}

	logger.GetLogger().Info("User verified",
		zap.String("email", user.Email),
		zap.Uint("user_id", user.ID),
	)

	response := dto.NewUserResponse(user)
	return &response, nil
}

// Login checks credentials and issues a bearer token. The unverified check
// runs before the password comparison so the client can prompt for the OTP,
// without revealing whether the password was also wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password: no account enumeration
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !user.Verified() {
		return nil, apperrors.ErrAccountUnverified
	}

	if !checkPassword(user.PasswordHash, password) {
		logger.GetLogger().Warn("Login failed: incorrect password",
			zap.String("email", email),
			zap.Uint("user_id", user.ID),
		)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.GetLogger().Info("User logged in",
		zap.String("email", email),
		zap.Uint("user_id", user.ID),
	)

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(time.Until(expiresAt).Seconds()),
		User:      dto.NewUserResponse(user),
	}, nil
}

// Logout revokes the exact presented token for the remainder of its natural
// lifetime. Revoking an already-revoked token succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ErrUnauthorized
	}

	ttl := s.tokens.RemainingTTL(token)
	if ttl <= 0 {
		// Natural expiry already rejects it; nothing to record
		return nil
	}

	if err := s.registry.Revoke(ctx, token, ttl); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return nil
}

// RequestReset issues a fresh reset token and mails the reset link. A newer
// request overwrites any pending token, so only the latest is ever valid.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token, err := s.tokens.GenerateResetToken()
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	expiresAt := time.Now().Add(s.cfg.ResetTokenTTL)

	if err := s.store.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.cfg.BaseURL, "/"), token)
	body, err := mailer.RenderReset(user.Name, link, s.cfg.ResetTokenTTL)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.mail.Send(ctx, user.Email, "Reset your password", body); err != nil {
		logger.GetLogger().Error("Reset link dispatch failed",
			zap.String("email", user.Email),
			zap.Error(err),
		)
		return apperrors.WrapError(apperrors.ErrMailDelivery, err)
	}

	logger.GetLogger().Info("Password reset requested",
		zap.String("email", user.Email),
		zap.Uint("user_id", user.ID),
	)

	return nil
}

// ResetPassword consumes a reset token. Unknown, expired and already-used
// tokens are indistinguishable to the caller.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	newHash, err := hashPassword(newPassword)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	consumed, err := s.store.ConsumeResetToken(ctx, token, newHash, time.Now())
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !consumed {
		return apperrors.ErrResetInvalid
	}

	logger.GetLogger().Info("Password reset completed")

	return nil
}
