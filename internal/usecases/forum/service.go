// Package forum gerencia o mural de discussão entre agricultores
package forum

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/infrastructure/repository"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"github.com/vfg2006/farm-market-api/pkg/utils"
)

const (
	minTitleLength   = 5
	maxTitleLength   = 200
	minContentLength = 10
)

var (
	ErrPostNotFound    = errors.New("post não encontrado")
	ErrCommentNotFound = errors.New("comentário não encontrado")
	ErrNotPostAuthor   = errors.New("post pertence a outro agricultor")
	ErrNotCommentOwner = errors.New("comentário pertence a outro agricultor")
	ErrInvalidTitle    = errors.New("título deve ter entre 5 e 200 caracteres")
	ErrInvalidContent  = errors.New("conteúdo deve ter no mínimo 10 caracteres")
)

type ForumService interface {
	ListPosts(search string) ([]*domain.ForumPost, error)
	GetPost(id string) (*domain.ForumPost, error)
	CreatePost(authorID int, authorName string, post *domain.ForumPost) (*domain.ForumPost, error)
	UpdatePost(authorID int, req *domain.UpdateForumPostRequest) (*domain.ForumPost, error)
	DeletePost(authorID int, id string) error
	ToggleLike(userID int, postID string) (*domain.ForumPost, error)
	AddComment(userID int, userName, postID, content string) (*domain.ForumPost, error)
	DeleteComment(userID int, postID, commentID string) (*domain.ForumPost, error)
}

type Service struct {
	forumRepo repository.ForumRepository
	now       func() time.Time
}

func NewService(forumRepo repository.ForumRepository) ForumService {
	return &Service{
		forumRepo: forumRepo,
		now:       time.Now,
	}
}

func (s *Service) ListPosts(search string) ([]*domain.ForumPost, error) {
	return s.forumRepo.List(strings.TrimSpace(search))
}

func (s *Service) GetPost(id string) (*domain.ForumPost, error) {
	post, err := s.forumRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *Service) CreatePost(authorID int, authorName string, post *domain.ForumPost) (*domain.ForumPost, error) {
	post.Title = strings.TrimSpace(post.Title)
	post.Content = strings.TrimSpace(post.Content)

	if err := validatePostFields(post.Title, post.Content); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	post.ID = id
	post.AuthorID = authorID
	post.AuthorName = authorName
	post.Likes = []int{}
	post.Comments = []domain.ForumComment{}
	post.CommentCount = 0
	post.CreatedAt = s.now()
	post.UpdatedAt = post.CreatedAt

	if err := s.forumRepo.Create(post); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"post_id":   post.ID,
		"farmer_id": authorID,
	}).Info("Post publicado no fórum")

	return post, nil
}

func (s *Service) UpdatePost(authorID int, req *domain.UpdateForumPostRequest) (*domain.ForumPost, error) {
	post, err := s.ownedPost(authorID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		post.Content = strings.TrimSpace(*req.Content)
	}

	if err := validatePostFields(post.Title, post.Content); err != nil {
		return nil, err
	}

	if err := s.forumRepo.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *Service) DeletePost(authorID int, id string) error {
	if _, err := s.ownedPost(authorID, id); err != nil {
		return err
	}

	if err := s.forumRepo.Delete(id); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"post_id":   id,
		"farmer_id": authorID,
	}).Info("Post removido do fórum")

	return nil
}

// ToggleLike alterna a curtida do agricultor: adiciona se ausente, remove se
// presente
func (s *Service) ToggleLike(userID int, postID string) (*domain.ForumPost, error) {
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}

	found := false
	likes := make([]int, 0, len(post.Likes))
	for _, id := range post.Likes {
		if id == userID {
			found = true
			continue
		}
		likes = append(likes, id)
	}
	if !found {
		likes = append(likes, userID)
	}
	post.Likes = likes

	if err := s.forumRepo.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *Service) AddComment(userID int, userName, postID, content string) (*domain.ForumPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidContent
	}

	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	post.Comments = append(post.Comments, domain.ForumComment{
		ID:         id,
		AuthorID:   userID,
		AuthorName: userName,
		Content:    content,
		CreatedAt:  s.now(),
	})
	post.CommentCount = len(post.Comments)

	if err := s.forumRepo.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeleteComment permite a remoção pelo autor do comentário ou pelo autor do
// post
func (s *Service) DeleteComment(userID int, postID, commentID string) (*domain.ForumPost, error) {
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, comment := range post.Comments {
		if comment.ID == commentID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, ErrCommentNotFound
	}

	if post.Comments[index].AuthorID != userID && post.AuthorID != userID {
		return nil, ErrNotCommentOwner
	}

	post.Comments = append(post.Comments[:index], post.Comments[index+1:]...)
	post.CommentCount = len(post.Comments)

	if err := s.forumRepo.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *Service) ownedPost(authorID int, id string) (*domain.ForumPost, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, ErrNotPostAuthor
	}
	return post, nil
}

func validatePostFields(title, content string) error {
	titleLen := len([]rune(title))
	if titleLen < minTitleLength || titleLen > maxTitleLength {
		return ErrInvalidTitle
	}
	if len([]rune(content)) < minContentLength {
		return ErrInvalidContent
	}
	return nil
}
