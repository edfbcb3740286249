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

var postColumns = []string{
	"id",
	"user_id",
	"post_type",
	"title",
	"content",
	"is_public",
	"del_flag",
	"created_at",
}

// PostRepository implements port.PostRepository using PostgreSQL.
type PostRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewPostRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewPostRepository(exec pgExecutor) *PostRepository {
	repo := &PostRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// visibilityPredicate translates the visibility rule into SQL so list pages
// can never contain a hidden post: non-general kinds pass through, legacy
// NULL is_public rows read as public, and private rows require the viewer
// to be the author. The anonymous case is the same predicate without the
// author disjunct.
func visibilityPredicate(viewer domain.Viewer) squirrel.Or {
	observable := squirrel.Or{
		squirrel.NotEq{"post_type": domain.PostKindGeneral},
		squirrel.Eq{"is_public": nil},
		squirrel.Eq{"is_public": true},
	}
	if viewer.Authenticated {
		observable = append(observable, squirrel.Eq{"user_id": viewer.UserID})
	}
	return observable
}

// Create inserts a post row and returns its assigned identifier.
func (r *PostRepository) Create(ctx context.Context, post domain.Post) (int64, error) {
	stmt, args, err := r.builder.Insert("community.posts").
		Columns("user_id", "post_type", "title", "content", "is_public", "del_flag", "created_at").
		Values(post.AuthorID, post.Kind, post.Title, post.Content, post.Visibility.BoolPtr(), post.Deleted, post.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert post sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}

	return id, nil
}

// GetByID retrieves a non-deleted post by identifier.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	stmt, args, err := r.builder.
		Select(postColumns...).
		From("community.posts").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"del_flag": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select post sql: %w", err)
	}

	post, err := scanPost(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	return post, nil
}

// ListVisible returns one page of posts observable by the viewer, newest
// first by id, plus the total count under the same predicate. Filtering is
// part of the query itself, so it applies to every page.
func (r *PostRepository) ListVisible(ctx context.Context, viewer domain.Viewer, page, size int) ([]domain.Post, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		return []domain.Post{}, 0, nil
	}

	predicate := visibilityPredicate(viewer)

	stmt, args, err := r.builder.
		Select(postColumns...).
		From("community.posts").
		Where(squirrel.Eq{"del_flag": false}).
		Where(predicate).
		OrderBy("id DESC").
		Limit(uint64(size)).
		Offset(uint64(page) * uint64(size)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list posts sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}

	countStmt, countArgs, err := r.builder.
		Select("COUNT(*)").
		From("community.posts").
		Where(squirrel.Eq{"del_flag": false}).
		Where(predicate).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count posts sql: %w", err)
	}

	var total int64
	if err := r.exec.QueryRow(ctx, countStmt, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("scan posts count: %w", err)
	}

	return posts, total, nil
}

// UpdateVisibility changes the is_public toggle on a post.
func (r *PostRepository) UpdateVisibility(ctx context.Context, id int64, visibility domain.Visibility) error {
	stmt, args, err := r.builder.Update("community.posts").
		Set("is_public", visibility.BoolPtr()).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"del_flag": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update post visibility sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update post visibility: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// SoftDelete flags a post as deleted.
func (r *PostRepository) SoftDelete(ctx context.Context, id int64) error {
	stmt, args, err := r.builder.Update("community.posts").
		Set("del_flag", true).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"del_flag": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build soft delete post sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("soft delete post: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListPrivateGeneralPosts returns all non-deleted private general posts,
// newest first. This is the ground-truth read used by verification.
func (r *PostRepository) ListPrivateGeneralPosts(ctx context.Context) ([]domain.Post, error) {
	stmt, args, err := r.builder.
		Select(postColumns...).
		From("community.posts").
		Where(squirrel.Eq{"del_flag": false}).
		Where(squirrel.Eq{"post_type": domain.PostKindGeneral}).
		Where(squirrel.Eq{"is_public": false}).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list private posts sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query private posts: %w", err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan private post: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate private posts: %w", err)
	}

	return posts, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		post     domain.Post
		isPublic *bool
	)

	if err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Kind,
		&post.Title,
		&post.Content,
		&isPublic,
		&post.Deleted,
		&post.CreatedAt,
	); err != nil {
		return nil, err
	}

	post.Visibility = domain.VisibilityFromBoolPtr(isPublic)
	return &post, nil
}

var _ port.PostRepository = (*PostRepository)(nil)
