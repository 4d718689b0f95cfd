package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/farm-market-api/infrastructure/database/postgres"
	"github.com/vfg2006/farm-market-api/internal/domain"
)

const (
	forumPostsTable = "forum_posts f"
)

type ForumRepository interface {
	GetByID(id string) (*domain.ForumPost, error)
	List(search string) ([]*domain.ForumPost, error)
	Create(post *domain.ForumPost) error
	Update(post *domain.ForumPost) error
	Delete(id string) error
}

type forumRepository struct {
	conn *postgres.Connection
}

func NewForumRepository(conn *postgres.Connection) ForumRepository {
	return &forumRepository{
		conn: conn,
	}
}

func (r *forumRepository) GetByID(id string) (*domain.ForumPost, error) {
	query, args, err := squirrel.
		Select("f.id, f.author_id, f.author_name, f.title, f.content, f.likes, f.comments, f.created_at, f.updated_at").
		From(forumPostsTable).
		Where(squirrel.Eq{"f.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	post, err := r.scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear post do fórum: %w", err)
	}

	return post, nil
}

// List retorna os posts mais recentes primeiro. Com busca, filtra por título
// ou conteúdo.
func (r *forumRepository) List(search string) ([]*domain.ForumPost, error) {
	builder := squirrel.
		Select("f.id, f.author_id, f.author_name, f.title, f.content, f.likes, f.comments, f.created_at, f.updated_at").
		From(forumPostsTable).
		OrderBy("f.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"f.title": pattern},
			squirrel.ILike{"f.content": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.ForumPost, 0)
	for rows.Next() {
		post, err := r.scanPostRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear posts do fórum: %w", err)
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return posts, nil
}

func (r *forumRepository) Create(post *domain.ForumPost) error {
	likesJSON, commentsJSON, err := encodePostCollections(post)
	if err != nil {
		return err
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("forum_posts").
		Columns("id", "author_id", "author_name", "title", "content", "likes", "comments", "created_at").
		Values(
			post.ID,
			post.AuthorID,
			post.AuthorName,
			post.Title,
			post.Content,
			likesJSON,
			commentsJSON,
			post.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// Update persiste o post inteiro, incluindo curtidas e comentários embutidos
func (r *forumRepository) Update(post *domain.ForumPost) error {
	likesJSON, commentsJSON, err := encodePostCollections(post)
	if err != nil {
		return err
	}

	query, args, err := squirrel.StatementBuilder.
		Update("forum_posts").
		Set("title", post.Title).
		Set("content", post.Content).
		Set("likes", likesJSON).
		Set("comments", commentsJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": post.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *forumRepository) Delete(id string) error {
	query, args, err := squirrel.StatementBuilder.
		Delete("forum_posts").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func encodePostCollections(post *domain.ForumPost) ([]byte, []byte, error) {
	likesJSON, err := json.Marshal(post.Likes)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao serializar curtidas para JSON: %w", err)
	}

	commentsJSON, err := json.Marshal(post.Comments)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao serializar comentários para JSON: %w", err)
	}

	return likesJSON, commentsJSON, nil
}

func (r *forumRepository) scanPost(row *sql.Row) (*domain.ForumPost, error) {
	post := &domain.ForumPost{}
	var likesJSON, commentsJSON []byte

	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.AuthorName,
		&post.Title,
		&post.Content,
		&likesJSON,
		&commentsJSON,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return decodePost(post, likesJSON, commentsJSON)
}

func (r *forumRepository) scanPostRows(rows *sql.Rows) (*domain.ForumPost, error) {
	post := &domain.ForumPost{}
	var likesJSON, commentsJSON []byte

	err := rows.Scan(
		&post.ID,
		&post.AuthorID,
		&post.AuthorName,
		&post.Title,
		&post.Content,
		&likesJSON,
		&commentsJSON,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return decodePost(post, likesJSON, commentsJSON)
}

func decodePost(post *domain.ForumPost, likesJSON, commentsJSON []byte) (*domain.ForumPost, error) {
	if likesJSON != nil {
		if err := json.Unmarshal(likesJSON, &post.Likes); err != nil {
			return nil, fmt.Errorf("erro ao decodificar curtidas do post: %w", err)
		}
	}
	if post.Likes == nil {
		post.Likes = []int{}
	}

	if commentsJSON != nil {
		if err := json.Unmarshal(commentsJSON, &post.Comments); err != nil {
			return nil, fmt.Errorf("erro ao decodificar comentários do post: %w", err)
		}
	}
	if post.Comments == nil {
		post.Comments = []domain.ForumComment{}
	}

	post.CommentCount = len(post.Comments)

	return post, nil
}
