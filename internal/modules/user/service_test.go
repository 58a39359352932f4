package user

import (
	"context"
	"testing"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() (Service, *memoryRepo) {
	repo := newMemoryRepo()
	return NewService(repo, WithHashCost(bcrypt.MinCost)), repo
}

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{
		Name:     "Asha",
		Email:    "  Asha@Shop.test ",
		Password: "pw123456",
		Phone:    "98450",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@shop.test", u.Email)
	assert.Equal(t, RoleStaff, u.Role)
	assert.NotEqual(t, "pw123456", u.PasswordHash)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Other", Email: "ASHA@shop.test", Password: "x"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "User already exists", apperr.Message(err))

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "x"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@shop.test", Password: "secret"})
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "ASHA@shop.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Asha", u.Name)

	for _, tc := range []struct{ email, password string }{
		{"asha@shop.test", "wrong"},
		{"nobody@shop.test", "secret"},
	} {
		_, err := svc.Authenticate(ctx, tc.email, tc.password)
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
		assert.Equal(t, "Invalid email or password", apperr.Message(err))
	}
}

func TestCreateAdminDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, CreateAdminRequest{Email: "root@shop.test"})
	assert.Equal(t, "Email and password are required", apperr.Message(err))

	u, err := svc.CreateAdmin(ctx, CreateAdminRequest{Email: "root@shop.test", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Name)
	assert.Equal(t, "SUPER_MARKET", u.SupermarketName)
	assert.True(t, u.IsAdmin())
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, changed, err := svc.EnsureAdmin(ctx, "admin@gmail.com", "admin123")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, u.IsAdmin())

	again, changed, err := svc.EnsureAdmin(ctx, "admin@gmail.com", "ignored")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, u.ID, again.ID)
	assert.Len(t, repo.users, 1)

	staff, err := svc.Register(ctx, RegisterRequest{Name: "S", Email: "s@shop.test", Password: "pw"})
	require.NoError(t, err)
	promoted, changed, err := svc.EnsureAdmin(ctx, "s@shop.test", "pw")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, staff.ID, promoted.ID)
	assert.True(t, promoted.IsAdmin())
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@shop.test", Password: "old"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Name: "Ravi", Email: "ravi@shop.test", Password: "pw"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{
		Name:            strPtr("Asha K"),
		SupermarketName: strPtr("Fresh Mart"),
		Password:        strPtr("new"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "Fresh Mart", updated.SupermarketName)
	assert.Equal(t, "asha@shop.test", updated.Email)

	_, err = svc.Authenticate(ctx, "asha@shop.test", "new")
	assert.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Email: strPtr("RAVI@shop.test")})
	assert.Equal(t, "User already exists", apperr.Message(err))
}
