package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/edustack/academy-api/internal/dto"
	apperrors "github.com/edustack/academy-api/internal/errors"
	"github.com/edustack/academy-api/internal/model"
	"github.com/edustack/academy-api/internal/revocation"
	"gorm.io/gorm"
)

const operatorMailbox = "operator@academy.test"

// fakeStore is a map-backed UserStore with the same conditional-write
// semantics as the SQL repository.
type fakeStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[uint]*model.User)}
}

func (s *fakeStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailExists
		}
	}

	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	return nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeStore) UpdateProfile(_ context.Context, id uint, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := updates["mobile"]; ok {
		u.Mobile = v.(string)
	}
	return nil
}

func (s *fakeStore) ConsumeOTP(_ context.Context, email, code string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email != email || u.OTP == nil || u.OTPExpiresAt == nil {
			continue
		}
		if *u.OTP == code && u.OTPExpiresAt.After(now) {
			u.OTP = nil
			u.OTPExpiresAt = nil
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) SetResetToken(_ context.Context, id uint, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.ResetToken = &token
	u.ResetExpiresAt = &expiresAt
	return nil
}

func (s *fakeStore) ConsumeResetToken(_ context.Context, token, newPasswordHash string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ResetToken == nil || u.ResetExpiresAt == nil {
			continue
		}
		if *u.ResetToken == token && u.ResetExpiresAt.After(now) {
			u.PasswordHash = newPasswordHash
			u.ResetToken = nil
			u.ResetExpiresAt = nil
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) AllocateCourse(_ context.Context, id uint, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, existing := range u.AllocatedCourses {
		if existing == courseID {
			return nil
		}
	}
	u.AllocatedCourses = append(u.AllocatedCourses, courseID)
	return nil
}

func (s *fakeStore) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

// raw returns the live record, letting tests tamper with secret expiries
func (s *fakeStore) raw(email string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

type sentMail struct {
	to      string
	subject string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject})
	return nil
}

func (m *fakeMailer) last() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func newTestAuth() (*AuthService, *fakeStore, *fakeMailer, *revocation.MemoryRegistry) {
	store := newFakeStore()
	mail := &fakeMailer{}
	registry := revocation.NewMemoryRegistry()
	tokens := NewTokenService("test-secret", "academy-test", time.Hour)

	svc := NewAuthService(store, tokens, registry, mail, AuthConfig{
		OTPTTL:          5 * time.Minute,
		ResetTokenTTL:   15 * time.Minute,
		OperatorMailbox: operatorMailbox,
		BaseURL:         "https://academy.test",
	})
	return svc, store, mail, registry
}

func registerRequest(email, role string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Mobile:   "08123456789",
		Password: "correct-horse",
		Role:     role,
	}
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil {
		t.Fatalf("Expected a domain error, got %v", err)
	}
	return domainErr.Code
}

func TestRegisterCreatesPendingUser(t *testing.T) {
	svc, store, mail, _ := newTestAuth()
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest("student@academy.test", "student"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Email != "student@academy.test" {
		t.Errorf("Unexpected email in response: %s", resp.Email)
	}
	if resp.Verified {
		t.Error("Expected a freshly registered user to be unverified")
	}

	user := store.raw("student@academy.test")
	if user == nil {
		t.Fatal("Expected user to be persisted")
	}
	if user.OTP == nil || len(*user.OTP) != otpLength {
		t.Error("Expected a pending otp on the record")
	}
	if user.OTPExpiresAt == nil || !user.OTPExpiresAt.After(time.Now()) {
		t.Error("Expected a future otp expiry")
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("Password must not be stored in the clear")
	}

	last, ok := mail.last()
	if !ok {
		t.Fatal("Expected an otp email")
	}
	if last.to != "student@academy.test" {
		t.Errorf("Expected otp sent to the registrant, got %s", last.to)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store, _, _ := newTestAuth()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("dup@academy.test", "student")); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	_, err := svc.Register(ctx, registerRequest("dup@academy.test", "teacher"))
	if code := errorCode(t, err); code != "EMAIL_EXISTS" {
		t.Errorf("Expected EMAIL_EXISTS, got %s", code)
	}
	if len(store.users) != 1 {
		t.Errorf("Expected a single record, got %d", len(store.users))
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	svc, _, mail, _ := newTestAuth()

	_, err := svc.Register(context.Background(), registerRequest("x@academy.test", "admin"))
	if code := errorCode(t, err); code != "INVALID_ROLE" {
		t.Errorf("Expected INVALID_ROLE, got %s", code)
	}
	if mail.count() != 0 {
		t.Error("Expected no mail for a rejected registration")
	}
}

func TestRegisterWorkerOTPGoesToOperator(t *testing.T) {
	svc, _, mail, _ := newTestAuth()

	if _, err := svc.Register(context.Background(), registerRequest("worker@academy.test", "worker")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	last, ok := mail.last()
	if !ok {
		t.Fatal("Expected an otp email")
	}
	if last.to != operatorMailbox {
		t.Errorf("Expected worker otp redirected to %s, got %s", operatorMailbox, last.to)
	}
}

func TestRegisterMailFailure(t *testing.T) {
	svc, _, mail, _ := newTestAuth()
	mail.err = errors.New("smtp: connection refused")

	_, err := svc.Register(context.Background(), registerRequest("x@academy.test", "student"))
	if code := errorCode(t, err); code != "MAIL_DELIVERY_FAILED" {
		t.Errorf("Expected MAIL_DELIVERY_FAILED, got %s", code)
	}
}

func TestVerifyOTPActivatesAccount(t *testing.T) {
	svc, store, mail, _ := newTestAuth()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("student@academy.test", "student")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	code := *store.raw("student@academy.test").OTP

	resp, err := svc.VerifyOTP(ctx, "student@academy.test", code)
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if !resp.Verified {
		t.Error("Expected verified response")
	}
	if store.raw("student@academy.test").OTP != nil {
		t.Error("Expected otp cleared after consumption")
	}

	// Self-service signups trigger an operator heads-up after activation
	last, ok := mail.last()
	if !ok || last.to != operatorMailbox {
		t.Errorf("Expected signup notice to the operator, got %+v", last)
	}
}

func TestVerifyOTPSingleUse(t *testing.T) {
	svc, store, _, _ := newTestAuth()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("student@academy.test", "student")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	code := *store.raw("student@academy.test").OTP

	if _, err := svc.VerifyOTP(ctx, "student@academy.test", code); err != nil {
		t.Fatalf("First verification failed: %v", err)
	}

	_, err := svc.VerifyOTP(ctx, "student@academy.test", code)
	if errCode := errorCode(t, err); errCode != "INVALID_OTP" {
		t.Errorf("Expected replay to fail with INVALID_OTP, got %s", errCode)
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc, store, _, _ := newTestAuth()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("student@academy.test", "student")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.VerifyOTP(ctx, "student@academy.test", "000000x")
	if errCode := errorCode(t, err); errCode != "INVALID_OTP" {
		t.Errorf("Expected INVALID_OTP, got %s", errCode)
	}
	if store.raw("student@academy.test").OTP == nil {
		t.Error("Expected otp to survive a failed attempt")
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, store, _, _ := newTestAuth()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("student@academy.test", "student")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user := store.raw("student@academy.test")
	code := *user.OTP
	past := time.Now().Add(-time.Minute)
	user.OTPExpiresAt = &past

	_, err := svc.VerifyOTP(ctx, "student@academy.test", code)
	if errCode := errorCode(t, err); errCode != "INVALID_OTP" {
		t.Errorf("Expected expired otp to fail with INVALID_OTP, got %s", errCode)
	}
}

func TestVerifyOTPUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestAuth()

	_, err := svc.VerifyOTP(context.Background(), "nobody@academy.test", "123456")
	if code := errorCode(t, err); code != "INVALID_OTP" {
		t.Errorf("Expected INVALID_OTP for unknown email, got %s", code)
	}
}

// consumeTrackingStore fails reads once the otp was consumed, exercising the
// window between the committed activation and the response.
type consumeTrackingStore struct {
	*fakeStore
	consumed bool
}

func (s *consumeTrackingStore) ConsumeOTP(ctx context.Context, email, code string, now time.Time) (bool, error) {
	ok, err := s.fakeStore.ConsumeOTP(ctx, email, code, now)
	if ok {
		s.consumed = true
	}
	return ok, err
}

func (s *consumeTrackingStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.consumed {
		return nil, errors.New("store unavailable")
	}
	return s.fakeStore.GetByEmail(ctx, email)
}

func TestVerifyOTPSucceedsWhenReadFailsAfterConsume(t *testing.T) {
	base := newFakeStore()
	store := &consumeTrackingStore{fakeStore: base}
	mail := &fakeMailer{}
	tokens := NewTokenService("test-secret", "academy-test", time.Hour)
	svc := NewAuthService(store, tokens, revocation.NewMemoryRegistry(), mail, AuthConfig{
		OTPTTL:          5 * time.Minute,
		ResetTokenTTL:   15 * time.Minute,
		OperatorMailbox: operatorMailbox,
		BaseURL:         "https://academy.test",
	})
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("student@academy.test", "student")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	code := *base.raw("student@academy.test").OTP

	// The activation commits on consume; a store failure afterwards must not
	// turn the response into an error
	resp, err := svc.VerifyOTP(ctx, "student@academy.test", code)
	if err != nil {
		t.Fatalf("VerifyOTP failed despite committed activation: %v", err)
	}
	if !resp.Verified {
		t.Error("Expected verified response")
	}
	if base.raw("student@academy.test").OTP != nil {
		t.Error("Expected otp cleared in the store")
	}
}

func TestVerifyOTPWorkerSkipsSignupNotice(t *testing.T) {
	svc, store, mail, _ := newTestAuth()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("worker@academy.test", "worker")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	code := *store.raw("worker@academy.test").OTP

	if _, err := svc.VerifyOTP(ctx, "worker@academy.test", code); err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}

	// Just the otp dispatch; the operator already knows about this account
	if mail.count() != 1 {
		t.Errorf("Expected 1 mail, got %d", mail.count())
	}
}

func registerAndVerify(t *testing.T, svc *AuthService, store *fakeStore, email, role string) {
	t.Helper()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest(email, role)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	code := *store.raw(email).OTP
	if _, err := svc.VerifyOTP(ctx, email, code); err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, store, _, _ := newTestAuth()
	ctx := context.Background()
	registerAndVerify(t, svc, store, "teacher@academy.test", "teacher")

	resp, err := svc.Login(ctx, "teacher@academy.test", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Expected a bearer token")
	}
	if resp.ExpiresIn <= 0 || resp.ExpiresIn > 3600 {
		t.Errorf("Unexpected expires_in: %d", resp.ExpiresIn)
	}

	userID, role, err := svc.tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("Issued token failed verification: %v", err)
	}
	if role != model.RoleTeacher {
		t.Errorf("Expected teacher role claim, got %s", role)
	}
	if userID != resp.User.ID {
		t.Errorf("Token subject %d does not match user %d", userID, resp.User.ID)
	}
}

func TestLoginUnverified(t *testing.T) {
	svc, _, _, _ := newTestAuth()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("pending@academy.test", "student")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Correct and wrong passwords both report the unverified state, so the
	// client is told to verify without leaking credential validity
	for _, password := range []string{"correct-horse", "wrong-password"} {
		_, err := svc.Login(ctx, "pending@academy.test", password)
		if code := errorCode(t, err); code != "ACCOUNT_UNVERIFIED" {
			t.Errorf("Expected ACCOUNT_UNVERIFIED for password %q, got %s", password, code)
		}
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, store, _, _ := newTestAuth()
	ctx := context.Background()
	registerAndVerify(t, svc, store, "teacher@academy.test", "teacher")

	_, wrongPassErr := svc.Login(ctx, "teacher@academy.test", "wrong-password")
	_, unknownErr := svc.Login(ctx, "nobody@academy.test", "correct-horse")

	if code := errorCode(t, wrongPassErr); code != "INVALID_CREDENTIALS" {
		t.Errorf("Expected INVALID_CREDENTIALS for wrong password, got %s", code)
	}
	if code := errorCode(t, unknownErr); code != "INVALID_CREDENTIALS" {
		t.Errorf("Expected INVALID_CREDENTIALS for unknown email, got %s", code)
	}
	if apperrors.GetErrorMessage(wrongPassErr) != apperrors.GetErrorMessage(unknownErr) {
		t.Error("Wrong password and unknown email must be indistinguishable")
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, store, _, registry := newTestAuth()
	ctx := context.Background()
	registerAndVerify(t, svc, store, "teacher@academy.test", "teacher")

	resp, err := svc.Login(ctx, "teacher@academy.test", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if revoked, _ := registry.IsRevoked(ctx, resp.Token); !revoked {
		t.Error("Expected token to be revoked after logout")
	}

	// Logging out twice is fine
	if err := svc.Logout(ctx, resp.Token); err != nil {
		t.Errorf("Repeated logout failed: %v", err)
	}
}

func TestLogoutEmptyToken(t *testing.T) {
	svc, _, _, _ := newTestAuth()

	err := svc.Logout(context.Background(), "")
	if code := errorCode(t, err); code != "UNAUTHORIZED" {
		t.Errorf("Expected UNAUTHORIZED, got %s", code)
	}
}

func TestLogoutExpiredTokenIsNoop(t *testing.T) {
	svc, _, _, registry := newTestAuth()

	expired := NewTokenService("test-secret", "academy-test", -time.Minute)
	token, _, err := expired.Issue(1, model.RoleStudent)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if registry.Len() != 0 {
		t.Error("Expected no registry entry for an already-expired token")
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, store, mail, _ := newTestAuth()
	ctx := context.Background()
	registerAndVerify(t, svc, store, "teacher@academy.test", "teacher")

	if err := svc.RequestReset(ctx, "teacher@academy.test"); err != nil {
		t.Fatalf("RequestReset failed: %v", err)
	}
	last, ok := mail.last()
	if !ok || last.to != "teacher@academy.test" {
		t.Errorf("Expected reset link mailed to the account owner, got %+v", last)
	}

	user := store.raw("teacher@academy.test")
	if user.ResetToken == nil {
		t.Fatal("Expected a pending reset token")
	}
	token := *user.ResetToken

	if err := svc.ResetPassword(ctx, token, "new-password-1"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := svc.Login(ctx, "teacher@academy.test", "correct-horse"); err == nil {
		t.Error("Expected old password to be rejected after reset")
	}
	if _, err := svc.Login(ctx, "teacher@academy.test", "new-password-1"); err != nil {
		t.Errorf("Expected new password to be accepted, got %v", err)
	}
}

func TestResetTokenSingleUse(t *testing.T) {
	svc, store, _, _ := newTestAuth()
	ctx := context.Background()
	registerAndVerify(t, svc, store, "teacher@academy.test", "teacher")

	if err := svc.RequestReset(ctx, "teacher@academy.test"); err != nil {
		t.Fatalf("RequestReset failed: %v", err)
	}
	token := *store.raw("teacher@academy.test").ResetToken

	if err := svc.ResetPassword(ctx, token, "new-password-1"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	err := svc.ResetPassword(ctx, token, "new-password-2")
	if code := errorCode(t, err); code != "RESET_INVALID" {
		t.Errorf("Expected replay to fail with RESET_INVALID, got %s", code)
	}
	if _, loginErr := svc.Login(ctx, "teacher@academy.test", "new-password-2"); loginErr == nil {
		t.Error("Replayed token must not change the password")
	}
}

func TestResetTokenExpired(t *testing.T) {
	svc, store, _, _ := newTestAuth()
	ctx := context.Background()
	registerAndVerify(t, svc, store, "teacher@academy.test", "teacher")

	if err := svc.RequestReset(ctx, "teacher@academy.test"); err != nil {
		t.Fatalf("RequestReset failed: %v", err)
	}

	user := store.raw("teacher@academy.test")
	token := *user.ResetToken
	past := time.Now().Add(-time.Minute)
	user.ResetExpiresAt = &past

	err := svc.ResetPassword(ctx, token, "new-password-1")
	if code := errorCode(t, err); code != "RESET_INVALID" {
		t.Errorf("Expected RESET_INVALID for expired token, got %s", code)
	}
}

func TestResetTokenSuperseded(t *testing.T) {
	svc, store, _, _ := newTestAuth()
	ctx := context.Background()
	registerAndVerify(t, svc, store, "teacher@academy.test", "teacher")

	if err := svc.RequestReset(ctx, "teacher@academy.test"); err != nil {
		t.Fatalf("First RequestReset failed: %v", err)
	}
	first := *store.raw("teacher@academy.test").ResetToken

	if err := svc.RequestReset(ctx, "teacher@academy.test"); err != nil {
		t.Fatalf("Second RequestReset failed: %v", err)
	}
	second := *store.raw("teacher@academy.test").ResetToken

	if first == second {
		t.Fatal("Expected a fresh token per request")
	}

	err := svc.ResetPassword(ctx, first, "new-password-1")
	if code := errorCode(t, err); code != "RESET_INVALID" {
		t.Errorf("Expected superseded token to fail with RESET_INVALID, got %s", code)
	}
	if err := svc.ResetPassword(ctx, second, "new-password-1"); err != nil {
		t.Errorf("Expected latest token to work, got %v", err)
	}
}

func TestRequestResetUnknownEmail(t *testing.T) {
	svc, _, mail, _ := newTestAuth()

	err := svc.RequestReset(context.Background(), "nobody@academy.test")
	if code := errorCode(t, err); code != "USER_NOT_FOUND" {
		t.Errorf("Expected USER_NOT_FOUND, got %s", code)
	}
	if mail.count() != 0 {
		t.Error("Expected no mail for an unknown account")
	}
}

func TestRequestResetMailFailure(t *testing.T) {
	svc, store, mail, _ := newTestAuth()
	ctx := context.Background()
	registerAndVerify(t, svc, store, "teacher@academy.test", "teacher")

	mail.err = errors.New("smtp: connection refused")

	err := svc.RequestReset(ctx, "teacher@academy.test")
	if code := errorCode(t, err); code != "MAIL_DELIVERY_FAILED" {
		t.Errorf("Expected MAIL_DELIVERY_FAILED, got %s", code)
	}
}
