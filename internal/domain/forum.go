package domain

import "time"

// ForumComment é um comentário dentro de um post do fórum. Os comentários
// vivem embutidos no post, não em coleção própria.
type ForumComment struct {
	ID         string    `json:"id"`
	AuthorID   int       `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// ForumPost é um post do fórum da comunidade de agricultores. Likes guarda os
// IDs dos usuários que curtiram; curtir de novo desfaz a curtida.
type ForumPost struct {
	ID           string         `json:"id"`
	AuthorID     int            `json:"author_id"`
	AuthorName   string         `json:"author_name"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	Likes        []int          `json:"likes"`
	Comments     []ForumComment `json:"comments"`
	CommentCount int            `json:"comment_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// UpdateForumPostRequest contém os campos opcionais de edição de um post
type UpdateForumPostRequest struct {
	ID      string  `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
