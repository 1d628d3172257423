package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	c conn
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier, timeout time.Duration) *UserRepo {
	return &UserRepo{c: newConn(q, timeout)}
}

const userCols = `id, username, password_hash, full_name, role, is_active, created_at,
	updated_at, deleted_at, deleted_by`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt, &u.DeletedBy)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un usuario. El username tiene constraint único.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	_, err := r.c.q.Exec(ctx, `
		INSERT INTO users (`+userCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Username, user.PasswordHash, user.FullName, user.Role, user.IsActive,
		user.CreatedAt, user.UpdatedAt, user.DeletedAt, user.DeletedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	u, err := scanUser(r.c.q.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get user", err)
	}
	return u, nil
}

// GetByUsername obtiene un usuario por username. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	u, err := scanUser(r.c.q.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE lower(username) = lower($1)`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get user by username", err)
	}
	return u, nil
}

// List lista los usuarios activos.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	rows, err := r.c.q.Query(ctx, `SELECT `+userCols+` FROM users WHERE is_active ORDER BY created_at`)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storageErr("scan user", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update reemplaza el usuario existente con el mismo ID.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE users SET username = $2, password_hash = $3, full_name = $4, role = $5,
			is_active = $6, updated_at = $7
		WHERE id = $1`,
		user.ID, user.Username, user.PasswordHash, user.FullName, user.Role,
		user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		return storageErr("update user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete desactiva el usuario con metadatos de baja.
func (r *UserRepo) SoftDelete(ctx context.Context, id, actor string) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE users SET is_active = false, deleted_at = now(), deleted_by = $2, updated_at = now()
		WHERE id = $1`, id, actor)
	if err != nil {
		return storageErr("soft delete user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
