package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/myshop-pos/internal/application/auth"
	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository/repotest"
	pkgjwt "github.com/jhoicas/myshop-pos/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*repotest.Store, *auth.AuthUseCase) {
	t.Helper()
	s := repotest.NewStore()
	return s, auth.NewAuthUseCase(s.UserRepo(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"})
}

func TestInitAdmin_SoloConTablaVacia(t *testing.T) {
	s, uc := newAuth(t)
	ctx := context.Background()

	first, err := uc.InitAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "admin", first.Username)

	second, err := uc.InitAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, 1, second.UserCount)
	assert.Len(t, s.Users, 1)
}

func TestLogin_Y_Verify(t *testing.T) {
	_, uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.InitAdmin(ctx)
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: auth.DefaultAdminPassword})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)

	id, err := uc.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id.UserID)
	assert.Equal(t, entity.RoleAdmin, id.Role)
}

func TestLogin_CuentaDeshabilitada(t *testing.T) {
	s, uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.InitAdmin(ctx)
	require.NoError(t, err)
	for _, u := range s.Users {
		u.IsActive = false
	}

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: auth.DefaultAdminPassword})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestVerify_FallaCerrado(t *testing.T) {
	s, uc := newAuth(t)
	ctx := context.Background()
	const userID = "00000000-0000-0000-0000-000000000001"

	_, err := uc.Verify(ctx, "no-es-un-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	tok, err := pkgjwt.Generate(testSecret, userID, entity.RoleAdmin, "test", 60)
	require.NoError(t, err)
	_, err = uc.Verify(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inexistente")

	s.Users[userID] = &entity.User{ID: userID, Role: entity.RoleCashier, IsActive: false}
	_, err = uc.Verify(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inactivo")

	s.Users[userID].IsActive = true
	id, err := uc.Verify(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCashier, id.Role, "el rol sale de la DB, no del token")
}

func TestAuthorize(t *testing.T) {
	mgr := &auth.Identity{UserID: "u", Role: entity.RoleManager}

	assert.True(t, auth.Authorize(mgr))
	assert.True(t, auth.Authorize(mgr, entity.RoleAdmin, entity.RoleManager))
	assert.False(t, auth.Authorize(mgr, entity.RoleAdmin))
	assert.False(t, auth.Authorize(nil))
}

func TestUpdateProfile_CambioDePassword(t *testing.T) {
	s, uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.InitAdmin(ctx)
	require.NoError(t, err)
	var id string
	for k := range s.Users {
		id = k
	}

	_, err = uc.UpdateProfile(ctx, id, dto.UpdateProfileRequest{CurrentPassword: "mal", NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateProfile(ctx, id, dto.UpdateProfileRequest{CurrentPassword: auth.DefaultAdminPassword, NewPassword: "nueva123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "nueva123"})
	assert.NoError(t, err)
}
