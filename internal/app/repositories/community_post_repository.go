package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/dberrors"
)

// CommunityPostRepository handles database operations for community posts
type CommunityPostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommunityPostRepository creates a new CommunityPostRepository
func NewCommunityPostRepository(db *pgxpool.Pool) *CommunityPostRepository {
	return &CommunityPostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new community post
func (r *CommunityPostRepository) Create(ctx context.Context, post *models.CommunityPost) error {
	query := `
		INSERT INTO community_posts (author_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, post.AuthorID, post.Title, post.Content).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating post: %w", err)
	}

	return nil
}

const postSelect = `
	SELECT p.id, p.author_id, p.title, p.content, p.created_at, p.updated_at,
		u.id, u.email, u.first_name, u.last_name, u.role, u.is_active, u.created_at, u.updated_at
	FROM community_posts p
	JOIN users u ON u.id = p.author_id
`

func scanPost(row pgx.Row, extra ...interface{}) (*models.CommunityPost, error) {
	var post models.CommunityPost
	var author models.User

	dest := []interface{}{
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
		&author.ID,
		&author.Email,
		&author.FirstName,
		&author.LastName,
		&author.Role,
		&author.IsActive,
		&author.CreatedAt,
		&author.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	post.Author = &author
	return &post, nil
}

// GetByID retrieves a post by ID with its author
func (r *CommunityPostRepository) GetByID(ctx context.Context, id int64) (*models.CommunityPost, error) {
	post, err := scanPost(r.db.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	return post, nil
}

// GetAll retrieves posts with filtering and pagination, newest first
func (r *CommunityPostRepository) GetAll(ctx context.Context, authorID *int64, search *string, page, pageSize int) ([]models.CommunityPost, int64, error) {
	query := r.sb.Select(
		"p.id", "p.author_id", "p.title", "p.content", "p.created_at", "p.updated_at",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role", "u.is_active", "u.created_at", "u.updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("community_posts p").
		Join("users u ON u.id = p.author_id")

	if authorID != nil {
		query = query.Where(squirrel.Eq{"p.author_id": *authorID})
	}
	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"p.title": pattern},
			squirrel.ILike{"p.content": pattern},
		})
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var posts []models.CommunityPost
	var total int64

	for rows.Next() {
		post, err := scanPost(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Update updates the title and content of a post
func (r *CommunityPostRepository) Update(ctx context.Context, post *models.CommunityPost) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE community_posts
		SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3`,
		post.Title, post.Content, post.ID)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// Delete deletes a post by ID
func (r *CommunityPostRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM community_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}
