package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/edustack/academy-api/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

const otpLength = 6

// TokenService issues and verifies bearer tokens and generates the one-time
// secrets used by the registration and recovery flows.
type TokenService struct {
	secretKey string
	issuer    string
	ttl       time.Duration
}

func NewTokenService(secretKey, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		issuer:    issuer,
		ttl:       ttl,
	}
}

// TTL returns the configured token lifetime
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed bearer token scoped to the user's id and role
func (s *TokenService) Issue(userID uint, role model.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iss":  s.issuer,
		"exp":  expiresAt.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// Verify checks signature and expiry and returns the token's subject and
// role. It performs no I/O; revocation is the middleware's concern.
func (s *TokenService) Verify(tokenString string) (uint, model.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", errors.New("missing subject claim")
	}

	roleClaim, ok := claims["role"].(string)
	if !ok {
		return 0, "", errors.New("missing role claim")
	}
	role, ok := model.ParseRole(roleClaim)
	if !ok {
		return 0, "", errors.New("unknown role claim")
	}

	return uint(sub), role, nil
}

// RemainingTTL reports how long until the token's exp claim elapses, used to
// size revocation entries. Invalid or already-expired tokens report zero.
func (s *TokenService) RemainingTTL(tokenString string) time.Duration {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.secretKey), nil
	})
	if err != nil || !token.Valid {
		return 0
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}

	remaining := time.Until(exp.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GenerateOTP produces a short numeric code from crypto/rand. The code is
// never derived from request data.
func (s *TokenService) GenerateOTP() (string, error) {
	const digits = "0123456789"

	b := make([]byte, otpLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	for i := range b {
		b[i] = digits[int(b[i])%len(digits)]
	}
	return string(b), nil
}

// GenerateResetToken produces a 32-byte (256-bit) opaque token
func (s *TokenService) GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
