package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arklim/social-platform-community/internal/core/domain"
	"github.com/arklim/social-platform-community/internal/core/port"
	"github.com/arklim/social-platform-community/internal/repository"
)

var userColumns = []string{
	"id",
	"email",
	"nickname",
	"password_hash",
	"del_flag",
	"created_at",
}

// UserRepository implements port.UserRepository using PostgreSQL. The
// visibility subsystem only ever reads users.
type UserRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewUserRepository(exec pgExecutor) *UserRepository {
	repo := &UserRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// GetByID retrieves a non-deleted user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("community.users").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"del_flag": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	user, err := scanUser(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a non-deleted user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("community.users").
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"del_flag": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user by email sql: %w", err)
	}

	user, err := scanUser(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user by email: %w", err)
	}

	return user, nil
}

// FindOtherActive returns any non-deleted user other than excludeID.
func (r *UserRepository) FindOtherActive(ctx context.Context, excludeID int64) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("community.users").
		Where(squirrel.NotEq{"id": excludeID}).
		Where(squirrel.Eq{"del_flag": false}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select other user sql: %w", err)
	}

	user, err := scanUser(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan other user: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Nickname,
		&user.PasswordHash,
		&user.Deleted,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ port.UserRepository = (*UserRepository)(nil)
