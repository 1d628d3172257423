package users

import (
	"context"
	"fmt"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
	"github.com/nubecafe/pos-core/pkg/config"
	"github.com/nubecafe/pos-core/pkg/ident"
	"github.com/nubecafe/pos-core/pkg/jwt"
	"github.com/nubecafe/pos-core/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// UseCase administra los usuarios operadores y la autenticación.
type UseCase struct {
	repos *repository.Set
	jwt   config.JWTConfig
	log   *logger.Logger
}

// NewUseCase construye el caso de uso de usuarios.
func NewUseCase(repos *repository.Set, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{repos: repos, jwt: jwtCfg, log: log}
}

// CreateInput entrada para dar de alta un usuario.
type CreateInput struct {
	Username string
	Password string
	FullName string
	Role     string // admin | cajero
}

// Create da de alta un usuario con la contraseña cifrada con bcrypt.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.User, error) {
	if in.Username == "" || len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: username requerido y contraseña de al menos 6 caracteres", domain.ErrInvalidInput)
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleCajero {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	existing, err := uc.repos.Users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %s", domain.ErrDuplicate, in.Username)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           ident.New(),
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repos.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Str("username", u.Username).Str("role", u.Role).Msg("usuario creado")
	return u, nil
}

// Authenticate valida las credenciales y emite un token JWT.
// Un usuario inexistente y una contraseña incorrecta producen el mismo error.
func (uc *UseCase) Authenticate(ctx context.Context, username, password string) (string, *entity.User, error) {
	u, err := uc.repos.Users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !u.IsActive {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwt.Secret, u.ID, u.Username, u.Role, uc.jwt.Issuer, uc.jwt.Expiration)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ChangePassword reemplaza la contraseña del usuario.
func (uc *UseCase) ChangePassword(ctx context.Context, id, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: contraseña de al menos 6 caracteres", domain.ErrInvalidInput)
	}
	u, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil || !u.IsActive {
		return domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return uc.repos.Users.Update(ctx, u)
}

// List lista los usuarios activos.
func (uc *UseCase) List(ctx context.Context) ([]*entity.User, error) {
	return uc.repos.Users.List(ctx)
}

// Delete da de baja lógica un usuario.
func (uc *UseCase) Delete(ctx context.Context, id, actor string) error {
	u, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil || !u.IsActive {
		return domain.ErrNotFound
	}
	return uc.repos.Users.SoftDelete(ctx, id, actor)
}
