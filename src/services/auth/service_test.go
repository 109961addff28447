package auth

import (
	"context"
	"testing"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedAdmin(t *testing.T, repo repositories.AdminRepository, username, password string) *models.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &models.Admin{Username: username, Password: string(hash), Role: models.RoleAdmin}
	require.NoError(t, repo.Create(context.Background(), admin))
	return admin
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	admins := repositories.NewMemoryAdminRepository()
	svc := NewService(admins)
	seedAdmin(t, admins, "nadia", "s3cret-pass")

	t.Run("Success", func(t *testing.T) {
		resp, err := svc.Login(ctx, &models.LoginRequest{Username: "nadia", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "nadia", resp.User.Username)
		assert.Equal(t, models.RoleAdmin, resp.User.Role)

		claims, err := utils.ParseJWT(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "nadia", claims.Username)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{Username: "nadia", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{Username: "ghost", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("LastLoginRecorded", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{Username: "nadia", Password: "s3cret-pass"})
		require.NoError(t, err)

		stored, err := admins.GetByUsername(ctx, "nadia")
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLogin)
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	admins := repositories.NewMemoryAdminRepository()
	svc := NewService(admins)
	admin := seedAdmin(t, admins, "ahmed", "pass-word")

	t.Run("Found", func(t *testing.T) {
		got, err := svc.Me(ctx, admin.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "ahmed", got.Username)
	})

	t.Run("BadID", func(t *testing.T) {
		_, err := svc.Me(ctx, "not-hex")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestSeedDefaultAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesSuperadminFromEnv", func(t *testing.T) {
		t.Setenv("ADMIN_USERNAME", "boss")
		t.Setenv("ADMIN_PASSWORD", "boss-pass")

		admins := repositories.NewMemoryAdminRepository()
		svc := NewService(admins)
		svc.SeedDefaultAdmin(ctx)

		admin, err := admins.GetByUsername(ctx, "boss")
		require.NoError(t, err)
		assert.Equal(t, models.RoleSuperadmin, admin.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("boss-pass")))
	})

	t.Run("IdempotentAcrossRestarts", func(t *testing.T) {
		t.Setenv("ADMIN_USERNAME", "boss")
		t.Setenv("ADMIN_PASSWORD", "boss-pass")

		admins := repositories.NewMemoryAdminRepository()
		svc := NewService(admins)
		svc.SeedDefaultAdmin(ctx)

		first, err := admins.GetByUsername(ctx, "boss")
		require.NoError(t, err)

		svc.SeedDefaultAdmin(ctx)
		second, err := admins.GetByUsername(ctx, "boss")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("SkipsWithoutEnv", func(t *testing.T) {
		t.Setenv("ADMIN_USERNAME", "")
		t.Setenv("ADMIN_PASSWORD", "")

		admins := repositories.NewMemoryAdminRepository()
		NewService(admins).SeedDefaultAdmin(ctx)

		_, err := admins.GetByUsername(ctx, "boss")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
