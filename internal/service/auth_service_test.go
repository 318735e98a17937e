package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/fittrack-backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byID   map[int64]*domain.User
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUsers) add(email, password string, active bool) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &domain.User{ID: f.nextID, Email: email, Name: "Test", PasswordHash: string(hash), IsActive: active}
	f.byID[u.ID] = u
	f.nextID++
	return u
}

func (f *fakeUsers) Create(_ context.Context, email, hash, name string) (int64, error) {
	u := &domain.User{ID: f.nextID, Email: email, Name: name, PasswordHash: hash, IsActive: true}
	f.byID[u.ID] = u
	f.nextID++
	return u.ID, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.byID[id].PasswordHash = hash
	return nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	f.byID[id].LastLogin = &at
	return nil
}

func (f *fakeUsers) Deactivate(_ context.Context, id int64) error {
	f.byID[id].IsActive = false
	return nil
}

type fakeRefresh struct {
	byUser map[int64]domain.RefreshToken
}

func (f *fakeRefresh) Replace(_ context.Context, userID int64, hash string, exp time.Time) error {
	f.byUser[userID] = domain.RefreshToken{UserID: userID, TokenHash: hash, ExpiresAt: exp}
	return nil
}

func (f *fakeRefresh) GetValid(_ context.Context, hash string, now time.Time) (*domain.RefreshToken, error) {
	for _, t := range f.byUser {
		if t.TokenHash == hash && t.ExpiresAt.After(now) {
			c := t
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRefresh) DeleteByUserID(_ context.Context, userID int64) error {
	delete(f.byUser, userID)
	return nil
}

type fakeResets struct {
	tokens []domain.PasswordResetToken
	users  *fakeUsers
}

func (f *fakeResets) Create(_ context.Context, userID int64, token string, exp time.Time) error {
	f.tokens = append(f.tokens, domain.PasswordResetToken{ID: int64(len(f.tokens) + 1), UserID: userID, Token: token, ExpiresAt: exp})
	return nil
}

func (f *fakeResets) GetValidByEmailAndToken(_ context.Context, email, token string, now time.Time) (*domain.PasswordResetToken, error) {
	for i := range f.tokens {
		t := f.tokens[i]
		u := f.users.byID[t.UserID]
		if u.Email == email && t.Token == token && !t.Used && t.ExpiresAt.After(now) {
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeResets) MarkUsed(_ context.Context, id int64) error {
	f.tokens[id-1].Used = true
	return nil
}

func (f *fakeResets) RecordFailedAttempt(_ context.Context, email string, now time.Time, maxAttempts int) error {
	for i := range f.tokens {
		t := &f.tokens[i]
		if f.users.byID[t.UserID].Email != email || t.Used || !t.ExpiresAt.After(now) {
			continue
		}
		t.Attempts++
		t.Used = t.Attempts >= maxAttempts
	}
	return nil
}

func (f *fakeResets) DeleteByUserID(_ context.Context, userID int64) error {
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	f.tokens = kept
	return nil
}

type fakeMailer struct {
	to, token string
}

func (m *fakeMailer) SendPasswordReset(to, token string) error {
	m.to, m.token = to, token
	return nil
}

type authFixture struct {
	svc     *AuthService
	users   *fakeUsers
	refresh *fakeRefresh
	resets  *fakeResets
	mailer  *fakeMailer
}

func newAuthFixture() *authFixture {
	users := newFakeUsers()
	refresh := &fakeRefresh{byUser: map[int64]domain.RefreshToken{}}
	resets := &fakeResets{users: users}
	mailer := &fakeMailer{}
	svc := NewAuthService(users, refresh, resets, mailer,
		NewTokenManager("test-secret-value", 7*24*time.Hour), 30*24*time.Hour, zap.NewNop())
	return &authFixture{svc: svc, users: users, refresh: refresh, resets: resets, mailer: mailer}
}

func requireCode(t *testing.T, err error, status int, code string) {
	t.Helper()
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.Status)
	assert.Equal(t, code, appErr.Code)
}

func TestRegisterIssuesTokens(t *testing.T) {
	f := newAuthFixture()

	res, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Email: "  Ana@Example.com ", Password: "supersecret", Name: "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", res.User.Email)
	assert.NotEmpty(t, res.AccessToken)
	assert.Len(t, res.RefreshToken, 64)
	assert.Equal(t, int64(7*24*3600), res.ExpiresIn)

	stored := f.refresh.byUser[res.User.ID]
	assert.Equal(t, HashRefreshToken(res.RefreshToken), stored.TokenHash)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), stored.ExpiresAt, 5*time.Second)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.users.add("ana@example.com", "supersecret", true)

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Email: "ana@example.com", Password: "supersecret", Name: "Ana",
	})
	requireCode(t, err, http.StatusBadRequest, domain.CodeRegistration)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Email: "ana@example.com", Password: "short", Name: "Ana",
	})
	requireCode(t, err, http.StatusBadRequest, domain.CodeWeakPassword)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture()
	f.users.add("ana@example.com", "supersecret", true)

	_, wrongPassword := f.svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "nope-nope"})
	_, unknownEmail := f.svc.Login(context.Background(), domain.LoginRequest{Email: "bob@example.com", Password: "supersecret"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	a, _ := domain.AsAppError(wrongPassword)
	b, _ := domain.AsAppError(unknownEmail)
	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, http.StatusUnauthorized, a.Status)
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	f := newAuthFixture()
	u := f.users.add("ana@example.com", "supersecret", true)

	res, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotNil(t, res.User.LastLogin)
	assert.NotNil(t, f.users.byID[u.ID].LastLogin)
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newAuthFixture()
	f.users.add("ana@example.com", "supersecret", false)

	_, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	requireCode(t, err, http.StatusForbidden, domain.CodeAccountInactive)
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newAuthFixture()
	f.users.add("ana@example.com", "supersecret", true)
	first, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	second, err := f.svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = f.svc.Refresh(context.Background(), first.RefreshToken)
	requireCode(t, err, http.StatusUnauthorized, domain.CodeInvalidRefresh)
}

func TestRefreshRejectsInactiveUser(t *testing.T) {
	f := newAuthFixture()
	u := f.users.add("ana@example.com", "supersecret", true)
	res, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	f.users.byID[u.ID].IsActive = false
	_, err = f.svc.Refresh(context.Background(), res.RefreshToken)
	requireCode(t, err, http.StatusForbidden, domain.CodeAccountInactive)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture()
	u := f.users.add("ana@example.com", "supersecret", true)
	_, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	err = f.svc.ChangePassword(context.Background(), u.ID, domain.ChangePasswordRequest{CurrentPassword: "supersecret"})
	requireCode(t, err, http.StatusBadRequest, domain.CodeMissingPasswords)

	err = f.svc.ChangePassword(context.Background(), u.ID, domain.ChangePasswordRequest{CurrentPassword: "wrong-one", NewPassword: "brand-new-pass"})
	requireCode(t, err, http.StatusBadRequest, domain.CodeInvalidPassword)

	err = f.svc.ChangePassword(context.Background(), u.ID, domain.ChangePasswordRequest{CurrentPassword: "supersecret", NewPassword: "brand-new-pass"})
	require.NoError(t, err)
	assert.Empty(t, f.refresh.byUser, "refresh tokens must be invalidated")

	_, err = f.svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestDeactivate(t *testing.T) {
	f := newAuthFixture()
	u := f.users.add("ana@example.com", "supersecret", true)
	_, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	err = f.svc.Deactivate(context.Background(), u.ID, "wrong-one")
	requireCode(t, err, http.StatusBadRequest, domain.CodeInvalidPassword)

	require.NoError(t, f.svc.Deactivate(context.Background(), u.ID, "supersecret"))
	assert.False(t, f.users.byID[u.ID].IsActive)
	assert.Empty(t, f.refresh.byUser)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture()
	u := f.users.add("ana@example.com", "supersecret", true)
	_, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "ANA@example.com"))
	assert.Equal(t, "ana@example.com", f.mailer.to)
	assert.Len(t, f.mailer.token, 6)

	err = f.svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Email: "ana@example.com", Token: "000000x", Password: "another-pass",
	})
	requireCode(t, err, http.StatusBadRequest, domain.CodeInvalidReset)

	req := domain.ResetPasswordRequest{Email: "ana@example.com", Token: f.mailer.token, Password: "another-pass"}
	require.NoError(t, f.svc.ResetPassword(context.Background(), req))
	assert.True(t, checkPassword(f.users.byID[u.ID].PasswordHash, "another-pass"))
	assert.Empty(t, f.refresh.byUser)

	err = f.svc.ResetPassword(context.Background(), req)
	requireCode(t, err, http.StatusBadRequest, domain.CodeInvalidReset)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.svc.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, f.mailer.to)
	assert.Empty(t, f.resets.tokens)
}

func TestResetCodeBurnsAfterRepeatedMisses(t *testing.T) {
	f := newAuthFixture()
	u := f.users.add("ana@example.com", "supersecret", true)
	require.NoError(t, f.svc.ForgotPassword(context.Background(), "ana@example.com"))
	code := f.mailer.token

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	for i := 0; i < maxResetAttempts; i++ {
		err := f.svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
			Email: "ana@example.com", Token: wrong, Password: "another-pass",
		})
		requireCode(t, err, http.StatusBadRequest, domain.CodeInvalidReset)
	}
	require.Len(t, f.resets.tokens, 1)
	assert.True(t, f.resets.tokens[0].Used)

	err := f.svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Email: "ana@example.com", Token: code, Password: "another-pass",
	})
	requireCode(t, err, http.StatusBadRequest, domain.CodeInvalidReset)
	assert.True(t, checkPassword(f.users.byID[u.ID].PasswordHash, "supersecret"))
}

func TestResetCodeSurvivesFewMisses(t *testing.T) {
	f := newAuthFixture()
	f.users.add("ana@example.com", "supersecret", true)
	require.NoError(t, f.svc.ForgotPassword(context.Background(), "ana@example.com"))
	code := f.mailer.token

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	for i := 0; i < maxResetAttempts-1; i++ {
		_ = f.svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
			Email: "ana@example.com", Token: wrong, Password: "another-pass",
		})
	}
	assert.Equal(t, maxResetAttempts-1, f.resets.tokens[0].Attempts)

	require.NoError(t, f.svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Email: "ana@example.com", Token: code, Password: "another-pass",
	}))
}

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9]{6}$`, otp)
	}
}

func TestLoginUnknownEmailPaysBcrypt(t *testing.T) {
	f := newAuthFixture()
	dummyHash()

	start := time.Now()
	_, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "ghost@example.com", Password: "whatever-pass"})
	requireCode(t, err, http.StatusUnauthorized, domain.CodeInvalidCredential)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)

	cost, err := bcrypt.Cost([]byte(dummyHash()))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
