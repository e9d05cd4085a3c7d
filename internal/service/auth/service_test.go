package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/user"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.users[u.Username] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	byUserID map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (*employee.Employee, error) {
	if e, ok := f.byUserID[userID]; ok {
		return e, nil
	}
	return nil, employee.ErrEmployeeNotFound
}

func testAuthService(t *testing.T) (user.AuthService, *fakeUserRepo, *fakeEmployeeRepo) {
	t.Helper()
	userRepo := &fakeUserRepo{users: make(map[string]*user.User)}
	employeeRepo := &fakeEmployeeRepo{byUserID: make(map[string]*employee.Employee)}
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(userRepo, employeeRepo, jwtService), userRepo, employeeRepo
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{ID: "user-1", Username: username, PasswordHash: string(hash)}
	repo.users[username] = u
	return u
}

func TestLoginIssuesTokens(t *testing.T) {
	svc, userRepo, employeeRepo := testAuthService(t)
	u := seedUser(t, userRepo, "ana", "secret")
	employeeRepo.byUserID[u.ID] = &employee.Employee{ID: "emp-1", AccessLevel: employee.AccessSuperAdmin}

	resp, err := svc.Login(context.Background(), user.LoginRequest{Username: "ana", Password: "secret"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, string(employee.AccessSuperAdmin), resp.AccessLevel)
	assert.Greater(t, resp.RefreshExpiresAt, resp.ExpiresAt)
}

func TestLoginWithoutEmployeeLink(t *testing.T) {
	svc, userRepo, _ := testAuthService(t)
	seedUser(t, userRepo, "ana", "secret")

	resp, err := svc.Login(context.Background(), user.LoginRequest{Username: "ana", Password: "secret"})

	require.NoError(t, err)
	assert.Empty(t, resp.EmployeeID)
	assert.Equal(t, string(employee.AccessManager), resp.AccessLevel)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, userRepo, _ := testAuthService(t)
	seedUser(t, userRepo, "ana", "secret")

	_, err := svc.Login(context.Background(), user.LoginRequest{Username: "ana", Password: "nope"})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := testAuthService(t)

	_, err := svc.Login(context.Background(), user.LoginRequest{Username: "ghost", Password: "secret"})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, userRepo, _ := testAuthService(t)
	seedUser(t, userRepo, "ana", "secret")

	first, err := svc.Login(context.Background(), user.LoginRequest{Username: "ana", Password: "secret"})
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)

	// The spent refresh token must not work twice.
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}
