package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/victorexecutive/ops-service/internal/apperror"
	"github.com/victorexecutive/ops-service/internal/domain"
	"github.com/victorexecutive/ops-service/internal/repository"
	"github.com/victorexecutive/ops-service/pkg/hash"
	"github.com/victorexecutive/ops-service/pkg/token"
)

// --- mocks ---

type mockUserRepo struct {
	getByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	updateLastLoginFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]*domain.User, error) { return nil, nil }

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(ctx, id)
	}
	return nil
}

// memoryLedger is a map-backed RefreshTokenRepository with the same
// contract as the postgres implementation.
type memoryLedger struct {
	records map[string]*domain.RefreshTokenRecord
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{records: make(map[string]*domain.RefreshTokenRecord)}
}

func (l *memoryLedger) Insert(_ context.Context, record *domain.RefreshTokenRecord) error {
	for _, existing := range l.records {
		if existing.ID == record.ID {
			return apperror.Conflict("refresh token already exists")
		}
	}
	copied := *record
	l.records[record.Token] = &copied
	return nil
}

func (l *memoryLedger) FindByValue(_ context.Context, tokenValue string) (*domain.RefreshTokenRecord, error) {
	record, ok := l.records[tokenValue]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (l *memoryLedger) DeleteByValue(_ context.Context, tokenValue string) (bool, error) {
	if _, ok := l.records[tokenValue]; !ok {
		return false, nil
	}
	delete(l.records, tokenValue)
	return true, nil
}

func (l *memoryLedger) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	for tokenValue, record := range l.records {
		if record.UserID == userID {
			delete(l.records, tokenValue)
		}
	}
	return nil
}

func (l *memoryLedger) countForUser(userID uuid.UUID) int {
	n := 0
	for _, record := range l.records {
		if record.UserID == userID {
			n++
		}
	}
	return n
}

var _ repository.UserRepository = (*mockUserRepo)(nil)
var _ repository.RefreshTokenRepository = (*memoryLedger)(nil)

// --- fixtures ---

const testPassword = "VictorAdmin!2025"

func newTestUser(t *testing.T) *domain.User {
	t.Helper()

	passwordHash, err := hash.HashPasswordWithCost(testPassword, 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	return &domain.User{
		ID:           uuid.New(),
		Email:        "admin@victorexecutive.com",
		PasswordHash: passwordHash,
		FullName:     "Victor Platform Admin",
		Role:         domain.RoleVictorAdmin,
		Status:       domain.UserStatusActive,
	}
}

func newTestService(user *domain.User, ledger *memoryLedger) *AuthService {
	userRepo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if user != nil && email == user.Email {
				copied := *user
				return &copied, nil
			}
			return nil, nil
		},
	}

	codec := token.NewCodec("access-secret", "refresh-secret", 15*time.Minute, 30*24*time.Hour, "victor-ops-test")
	return NewAuthService(userRepo, ledger, codec, zap.NewNop())
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	appErr, ok := err.(*apperror.Error)
	if !ok {
		t.Fatalf("error = %v, want *apperror.Error", err)
	}
	if appErr.Code != apperror.CodeUnauthorized {
		t.Fatalf("code = %q, want %q", appErr.Code, apperror.CodeUnauthorized)
	}
}

// --- tests ---

func TestLoginSuccess(t *testing.T) {
	user := newTestUser(t)
	ledger := newMemoryLedger()
	svc := newTestService(user, ledger)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "admin@victorexecutive.com",
		Password: testPassword,
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("token pair incomplete")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("tokenType = %q, want Bearer", resp.TokenType)
	}
	if resp.ExpiresIn <= 0 {
		t.Errorf("expiresIn = %d, want > 0", resp.ExpiresIn)
	}
	if resp.User.Role != domain.RoleVictorAdmin {
		t.Errorf("user role = %q, want VictorAdmin", resp.User.Role)
	}
	if got := ledger.countForUser(user.ID); got != 1 {
		t.Errorf("ledger records for user = %d, want 1", got)
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	user := newTestUser(t)
	svc := newTestService(user, newMemoryLedger())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Admin@VictorExecutive.com ",
		Password: testPassword,
	})
	if err != nil {
		t.Fatalf("Login with unnormalized email: %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(u *domain.User)
		email    string
		password string
	}{
		{"wrong password", nil, "admin@victorexecutive.com", "nope"},
		{"unknown email", nil, "ghost@victorexecutive.com", testPassword},
		{"disabled account", func(u *domain.User) { u.Status = domain.UserStatusDisabled }, "admin@victorexecutive.com", testPassword},
		{"invite pending", func(u *domain.User) { u.Status = domain.UserStatusInvitePending }, "admin@victorexecutive.com", testPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := newTestUser(t)
			if tt.mutate != nil {
				tt.mutate(user)
			}
			svc := newTestService(user, newMemoryLedger())

			_, err := svc.Login(context.Background(), LoginRequest{Email: tt.email, Password: tt.password})
			if err == nil {
				t.Fatal("Login succeeded, want Unauthorized")
			}
			assertUnauthorized(t, err)

			// Failure messages must not reveal which check failed.
			if err.Error() != invalidCredentials {
				t.Errorf("message = %q, want %q", err.Error(), invalidCredentials)
			}
		})
	}
}

func TestLoginRevokesPriorSession(t *testing.T) {
	user := newTestUser(t)
	ledger := newMemoryLedger()
	svc := newTestService(user, ledger)

	first, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: testPassword})
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	// Second device logs in; device one's session must die.
	if _, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: testPassword}); err != nil {
		t.Fatalf("second login: %v", err)
	}

	if got := ledger.countForUser(user.ID); got != 1 {
		t.Fatalf("ledger records for user = %d, want 1", got)
	}

	if _, err := svc.Refresh(context.Background(), first.RefreshToken); err == nil {
		t.Error("refresh with revoked token succeeded")
	} else {
		assertUnauthorized(t, err)
	}
}

func TestRefreshRotates(t *testing.T) {
	user := newTestUser(t)
	ledger := newMemoryLedger()
	svc := newTestService(user, ledger)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: testPassword})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if pair.RefreshToken == login.RefreshToken {
		t.Error("refresh token was not rotated")
	}
	if got := ledger.countForUser(user.ID); got != 1 {
		t.Errorf("ledger records for user = %d, want 1", got)
	}

	// The original token is consumed: a second use must fail.
	if _, err := svc.Refresh(context.Background(), login.RefreshToken); err == nil {
		t.Fatal("second refresh with same token succeeded")
	} else {
		assertUnauthorized(t, err)
	}

	// The rotated token still works.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); err != nil {
		t.Errorf("refresh with rotated token: %v", err)
	}
}

func TestRefreshUnknownToken(t *testing.T) {
	svc := newTestService(newTestUser(t), newMemoryLedger())

	_, err := svc.Refresh(context.Background(), "never-issued")
	if err == nil {
		t.Fatal("refresh with unknown token succeeded")
	}
	assertUnauthorized(t, err)
}

func TestRefreshExpiredRecordRejected(t *testing.T) {
	user := newTestUser(t)
	ledger := newMemoryLedger()
	svc := newTestService(user, ledger)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: testPassword})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Age the ledger record past expiry; the signature still verifies, but
	// the ledger is authoritative.
	ledger.records[login.RefreshToken].ExpiresAt = time.Now().Add(-time.Hour)

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	if err == nil {
		t.Fatal("refresh with expired record succeeded")
	}
	assertUnauthorized(t, err)

	if _, ok := ledger.records[login.RefreshToken]; ok {
		t.Error("expired record was not cleaned up")
	}
}

func TestRefreshBadSignatureCleansRecord(t *testing.T) {
	user := newTestUser(t)
	ledger := newMemoryLedger()
	svc := newTestService(user, ledger)

	// A record whose stored value is not a token this codec issued.
	stale := &domain.RefreshTokenRecord{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     "tampered-token-value",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	if err := ledger.Insert(context.Background(), stale); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := svc.Refresh(context.Background(), stale.Token)
	if err == nil {
		t.Fatal("refresh with unverifiable token succeeded")
	}
	assertUnauthorized(t, err)

	if _, ok := ledger.records[stale.Token]; ok {
		t.Error("unverifiable record was not cleaned up")
	}
}

func TestLogout(t *testing.T) {
	user := newTestUser(t)
	ledger := newMemoryLedger()
	svc := newTestService(user, ledger)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: testPassword})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), login.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if got := ledger.countForUser(user.ID); got != 0 {
		t.Errorf("ledger records after logout = %d, want 0", got)
	}

	// Logging out again, or with garbage, still succeeds.
	if err := svc.Logout(context.Background(), login.RefreshToken); err != nil {
		t.Errorf("repeat logout: %v", err)
	}
	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Errorf("logout with unknown token: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Errorf("logout with empty token: %v", err)
	}
}
