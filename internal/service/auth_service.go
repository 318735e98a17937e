package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
	"github.com/yusufkecer/fittrack-backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	resetTokenTTL     = 15 * time.Minute
	maxResetAttempts  = 5
)

var (
	errInvalidCredentials = domain.NewAppError(http.StatusUnauthorized, domain.CodeInvalidCredential, "invalid email or password")
	errInvalidRefresh     = domain.NewAppError(http.StatusUnauthorized, domain.CodeInvalidRefresh, "invalid or expired refresh token")
	errAccountInactive    = domain.NewAppError(http.StatusForbidden, domain.CodeAccountInactive, "account is deactivated")
)

type UserStore interface {
	Create(ctx context.Context, email, passwordHash, name string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	Deactivate(ctx context.Context, id int64) error
}

type RefreshTokenStore interface {
	Replace(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	GetValid(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshToken, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}

type ResetTokenStore interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetValidByEmailAndToken(ctx context.Context, email, token string, now time.Time) (*domain.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64) error
	RecordFailedAttempt(ctx context.Context, email string, now time.Time, maxAttempts int) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

type Mailer interface {
	SendPasswordReset(to, token string) error
}

type AuthService struct {
	users      UserStore
	refresh    RefreshTokenStore
	resets     ResetTokenStore
	mailer     Mailer
	tokens     *TokenManager
	refreshTTL time.Duration
	log        *zap.Logger
	now        func() time.Time
}

func NewAuthService(
	users UserStore,
	refresh RefreshTokenStore,
	resets ResetTokenStore,
	mailer Mailer,
	tokens *TokenManager,
	refreshTTL time.Duration,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		refresh:    refresh,
		resets:     resets,
		mailer:     mailer,
		tokens:     tokens,
		refreshTTL: refreshTTL,
		log:        log,
		now:        time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func checkPasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return domain.NewAppError(http.StatusBadRequest, domain.CodeWeakPassword,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash is compared against when the email is unknown so both login
// failures pay the same bcrypt cost.
var dummyHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("fittrack-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to build dummy hash: %v", err))
	}
	return string(hash)
})

// HashRefreshToken is the form refresh tokens are stored in.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// issue signs a new access token and replaces the user's refresh token.
func (s *AuthService) issue(ctx context.Context, u *domain.User) (*domain.AuthResult, error) {
	now := s.now()
	access, err := s.tokens.Generate(u.ID, u.Email, now)
	if err != nil {
		return nil, err
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.refresh.Replace(ctx, u.ID, HashRefreshToken(refresh), now.Add(s.refreshTTL)); err != nil {
		return nil, err
	}
	return &domain.AuthResult{
		User:         u,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	email := normalizeEmail(req.Email)
	if err := checkPasswordStrength(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewAppError(http.StatusBadRequest, domain.CodeRegistration, "email already in use")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	id, err := s.users.Create(ctx, email, hash, name)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, domain.NewAppError(http.StatusBadRequest, domain.CodeRegistration, "email already in use")
		}
		return nil, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %d vanished after insert", id)
	}
	return s.issue(ctx, u)
}

// Login fails with the same error whether the email is unknown or the
// password is wrong.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		checkPassword(dummyHash(), req.Password)
		return nil, errInvalidCredentials
	}
	if !checkPassword(u.PasswordHash, req.Password) {
		return nil, errInvalidCredentials
	}
	if !u.IsActive {
		return nil, errAccountInactive
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLogin = &now
	return s.issue(ctx, u)
}

func (s *AuthService) Refresh(ctx context.Context, token string) (*domain.AuthResult, error) {
	stored, err := s.refresh.GetValid(ctx, HashRefreshToken(token), s.now())
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errInvalidRefresh
	}

	u, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errInvalidRefresh
	}
	if !u.IsActive {
		return nil, errAccountInactive
	}
	return s.issue(ctx, u)
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.refresh.DeleteByUserID(ctx, userID)
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFound("user not found")
	}
	return u, nil
}

// ChangePassword invalidates every refresh token of the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req domain.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return domain.NewAppError(http.StatusBadRequest, domain.CodeMissingPasswords,
			"current and new password are required")
	}
	if err := checkPasswordStrength(req.NewPassword); err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NewNotFound("user not found")
	}
	if !checkPassword(u.PasswordHash, req.CurrentPassword) {
		return domain.NewAppError(http.StatusBadRequest, domain.CodeInvalidPassword, "current password is incorrect")
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	return s.refresh.DeleteByUserID(ctx, userID)
}

// Deactivate disables the account after re-checking the password and
// invalidates every refresh token of the user.
func (s *AuthService) Deactivate(ctx context.Context, userID int64, password string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NewNotFound("user not found")
	}
	if !checkPassword(u.PasswordHash, password) {
		return domain.NewAppError(http.StatusBadRequest, domain.CodeInvalidPassword, "password is incorrect")
	}

	if err := s.users.Deactivate(ctx, userID); err != nil {
		return err
	}
	return s.refresh.DeleteByUserID(ctx, userID)
}

// ForgotPassword mails a 6-digit reset code when the email belongs to an
// active account. Unknown emails are a silent no-op.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil || !u.IsActive {
		return nil
	}

	if err := s.resets.DeleteByUserID(ctx, u.ID); err != nil {
		s.log.Warn("failed to delete old reset tokens", zap.Int64("user_id", u.ID), zap.Error(err))
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}
	if err := s.resets.Create(ctx, u.ID, otp, s.now().Add(resetTokenTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(email, otp); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	s.log.Info("password reset email sent", zap.Int64("user_id", u.ID))
	return nil
}

// ResetPassword consumes a reset code and invalidates every refresh token of
// the user. Each wrong code counts against the outstanding codes of the
// account; after maxResetAttempts misses they stop working.
func (s *AuthService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	if err := checkPasswordStrength(req.Password); err != nil {
		return err
	}

	email := normalizeEmail(req.Email)
	now := s.now()
	token, err := s.resets.GetValidByEmailAndToken(ctx, email, req.Token, now)
	if err != nil {
		return err
	}
	if token == nil {
		if err := s.resets.RecordFailedAttempt(ctx, email, now, maxResetAttempts); err != nil {
			return err
		}
		return domain.NewAppError(http.StatusBadRequest, domain.CodeInvalidReset, "invalid or expired reset code")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, token.UserID, hash); err != nil {
		return err
	}
	if err := s.resets.MarkUsed(ctx, token.ID); err != nil {
		return err
	}
	return s.refresh.DeleteByUserID(ctx, token.UserID)
}
