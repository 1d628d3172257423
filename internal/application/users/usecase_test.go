package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/nubecafe/pos-core/internal/application/users"
	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/infrastructure/jsonstore"
	"github.com/nubecafe/pos-core/pkg/config"
	pkgjwt "github.com/nubecafe/pos-core/pkg/jwt"
	"github.com/nubecafe/pos-core/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{
	Secret:     "test-secret",
	Expiration: 60,
	Issuer:     "pos-core-test",
}

func newEnv(t *testing.T) *users.UseCase {
	t.Helper()
	store, err := jsonstore.NewStore(t.TempDir(), 5*time.Second)
	require.NoError(t, err)
	return users.NewUseCase(jsonstore.NewSet(store), testJWT, logger.Nop())
}

func TestCreate_HasheaLaContrasena(t *testing.T) {
	uc := newEnv(t)

	u, err := uc.Create(context.Background(), users.CreateInput{
		Username: "cajero1", Password: "secreto123", FullName: "Ana Cajera", Role: entity.RoleCajero,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", u.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.True(t, u.IsActive)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, users.CreateInput{Username: "", Password: "secreto123", Role: entity.RoleCajero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, users.CreateInput{Username: "x", Password: "123", Role: entity.RoleCajero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "contraseña corta")

	_, err = uc.Create(ctx, users.CreateInput{Username: "x", Password: "secreto123", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol desconocido")
}

func TestCreate_UsernameDuplicado(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, users.CreateInput{Username: "cajero1", Password: "secreto123", Role: entity.RoleCajero})
	require.NoError(t, err)
	_, err = uc.Create(ctx, users.CreateInput{Username: "cajero1", Password: "otra456", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAuthenticate_EmiteTokenConClaims(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, users.CreateInput{
		Username: "admin1", Password: "secreto123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	token, u, err := uc.Authenticate(ctx, "admin1", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	userID, username, role, err := pkgjwt.Parse(testJWT.Secret, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, "admin1", username)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestAuthenticate_CredencialesInvalidas(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, users.CreateInput{Username: "admin1", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	// Usuario inexistente y contraseña incorrecta producen el mismo error.
	_, _, err = uc.Authenticate(ctx, "fantasma", "secreto123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = uc.Authenticate(ctx, "admin1", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	u, err := uc.Create(ctx, users.CreateInput{Username: "admin1", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	require.NoError(t, uc.ChangePassword(ctx, u.ID, "nueva456"))

	_, _, err = uc.Authenticate(ctx, "admin1", "secreto123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "la contraseña vieja deja de funcionar")
	_, _, err = uc.Authenticate(ctx, "admin1", "nueva456")
	assert.NoError(t, err)
}

func TestDelete_UsuarioInactivoNoEntra(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	u, err := uc.Create(ctx, users.CreateInput{Username: "cajero1", Password: "secreto123", Role: entity.RoleCajero})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, u.ID, "admin"))

	_, _, err = uc.Authenticate(ctx, "cajero1", "secreto123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
