// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repositories

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository constructs a PostgreSQL backed post reader.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

func (repository *postRepository) FindByID(ctx context.Context, id int64) (*Post, error) {
	table := schema.BlogPost
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, table.ID,
	)

	var post Post
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.OwnerID, &post.OwnerName, &post.OwnerEmail, &post.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Post")
	}
	return &post, nil
}

func (repository *postRepository) List(ctx context.Context, limit, offset int) ([]*Post, int, error) {
	table := schema.BlogPost
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2`,
		strings.Join(table.Columns(), ", "), table.Table, table.CreatedAt, table.ID,
	)

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to list posts: %w", err), "Post")
	}

	total := 0
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Post, error) {
		var post Post
		err := row.Scan(&post.ID, &post.Title, &post.OwnerID, &post.OwnerName, &post.OwnerEmail, &post.CreatedAt, &total)
		return &post, err
	})
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to scan posts: %w", err), "Post")
	}
	return posts, total, nil
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository constructs a PostgreSQL backed comment store.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (repository *commentRepository) Create(ctx context.Context, comment *Comment) error {
	table := schema.BlogComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s`,
		table.Table,
		table.PostID, table.ParentID, table.AuthorID, table.AuthorName, table.Content,
		table.ID, table.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		comment.PostID, comment.ParentID, comment.AuthorID, comment.AuthorName, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to insert comment: %w", err), "Comment")
	}
	return nil
}

func (repository *commentRepository) FindByID(ctx context.Context, id int64) (*Comment, error) {
	table := schema.BlogComment
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, table.ID,
	)

	var comment Comment
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.ParentID, &comment.AuthorID,
		&comment.AuthorName, &comment.Content, &comment.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	return &comment, nil
}

func (repository *commentRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*Comment, int, error) {
	table := schema.BlogComment
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC
		LIMIT $2 OFFSET $3`,
		strings.Join(table.Columns(), ", "), table.Table, table.PostID, table.CreatedAt, table.ID,
	)

	rows, err := repository.pool.Query(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to list comments: %w", err), "Comment")
	}

	total := 0
	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Comment, error) {
		var comment Comment
		err := row.Scan(
			&comment.ID, &comment.PostID, &comment.ParentID, &comment.AuthorID,
			&comment.AuthorName, &comment.Content, &comment.CreatedAt, &total,
		)
		return &comment, err
	})
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to scan comments: %w", err), "Comment")
	}
	return comments, total, nil
}

type likeRepository struct {
	pool *pgxpool.Pool
}

// NewLikeRepository constructs a PostgreSQL backed like store.
func NewLikeRepository(pool *pgxpool.Pool) LikeRepository {
	return &likeRepository{pool: pool}
}

func (repository *likeRepository) Create(ctx context.Context, like *Like) error {
	table := schema.BlogPostLike
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		table.Table,
		table.PostID, table.UserID, table.UserName,
		table.ID, table.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query, like.PostID, like.UserID, like.UserName).Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to insert like: %w", err), "Like")
	}
	return nil
}

func (repository *likeRepository) Delete(ctx context.Context, postID int64, userID string) error {
	table := schema.BlogPostLike
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.PostID, table.UserID)

	tag, err := repository.pool.Exec(ctx, query, postID, userID)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to delete like: %w", err), "Like")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Like")
	}
	return nil
}

func (repository *likeRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*Like, int, error) {
	table := schema.BlogPostLike
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		strings.Join(table.Columns(), ", "), table.Table, table.PostID, table.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to list likes: %w", err), "Like")
	}

	total := 0
	likes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Like, error) {
		var like Like
		err := row.Scan(&like.ID, &like.PostID, &like.UserID, &like.UserName, &like.CreatedAt, &total)
		return &like, err
	})
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to scan likes: %w", err), "Like")
	}
	return likes, total, nil
}
