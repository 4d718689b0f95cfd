package forum

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/farm-market-api/infrastructure/repository/mocks"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func newForumService(forumRepo *mocks.MockForumRepository) *Service {
	return &Service{
		forumRepo: forumRepo,
		now:       func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) },
	}
}

func existingPost() *domain.ForumPost {
	return &domain.ForumPost{
		ID:         "PF1",
		AuthorID:   1,
		AuthorName: "João Horta",
		Title:      "Controle natural de pulgões",
		Content:    "Alguém já testou calda de fumo nas couves?",
		Likes:      []int{2},
		Comments: []domain.ForumComment{
			{ID: "C1", AuthorID: 2, AuthorName: "Maria Campos", Content: "Funciona bem aqui no sítio"},
		},
		CommentCount: 1,
	}
}

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name     string
		post     *domain.ForumPost
		setup    func(forumRepo *mocks.MockForumRepository)
		validate func(t *testing.T, post *domain.ForumPost, err error)
	}{
		{
			name: "Post válido - criado com ID gerado e coleções vazias",
			post: &domain.ForumPost{Title: "Rotação de culturas", Content: "Como vocês organizam a rotação no inverno?"},
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().Create(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, post.ID)
				assert.Equal(t, 1, post.AuthorID)
				assert.Equal(t, "João Horta", post.AuthorName)
				assert.Empty(t, post.Likes)
				assert.Empty(t, post.Comments)
				assert.Equal(t, 0, post.CommentCount)
				assert.False(t, post.CreatedAt.IsZero())
			},
		},
		{
			name:  "Título curto demais - ErrInvalidTitle",
			post:  &domain.ForumPost{Title: "Oi", Content: "Conteúdo com tamanho suficiente"},
			setup: func(forumRepo *mocks.MockForumRepository) {},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.ErrorIs(t, err, ErrInvalidTitle)
			},
		},
		{
			name:  "Título acima de 200 caracteres - ErrInvalidTitle",
			post:  &domain.ForumPost{Title: strings.Repeat("a", 201), Content: "Conteúdo com tamanho suficiente"},
			setup: func(forumRepo *mocks.MockForumRepository) {},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.ErrorIs(t, err, ErrInvalidTitle)
			},
		},
		{
			name:  "Conteúdo curto demais - ErrInvalidContent",
			post:  &domain.ForumPost{Title: "Título adequado", Content: "curto"},
			setup: func(forumRepo *mocks.MockForumRepository) {},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.ErrorIs(t, err, ErrInvalidContent)
			},
		},
		{
			name: "Falha de persistência - erro propagado",
			post: &domain.ForumPost{Title: "Sementes crioulas", Content: "Troco sementes de abóbora por milho"},
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().Create(gomock.Any()).Return(errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.Error(t, err)
				assert.Nil(t, post)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			forumRepo := mocks.NewMockForumRepository(ctrl)
			tt.setup(forumRepo)

			service := newForumService(forumRepo)
			post, err := service.CreatePost(1, "João Horta", tt.post)
			tt.validate(t, post, err)
		})
	}
}

func TestUpdatePost(t *testing.T) {
	tests := []struct {
		name     string
		authorID int
		req      *domain.UpdateForumPostRequest
		setup    func(forumRepo *mocks.MockForumRepository)
		validate func(t *testing.T, post *domain.ForumPost, err error)
	}{
		{
			name:     "Atualização parcial - apenas campos enviados mudam",
			authorID: 1,
			req: &domain.UpdateForumPostRequest{
				ID:    "PF1",
				Title: strPtr("Controle natural de pulgões e cochonilhas"),
			},
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)
				forumRepo.EXPECT().Update(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "Controle natural de pulgões e cochonilhas", post.Title)
				assert.Equal(t, "Alguém já testou calda de fumo nas couves?", post.Content)
			},
		},
		{
			name:     "Autor diferente - ErrNotPostAuthor",
			authorID: 7,
			req:      &domain.UpdateForumPostRequest{ID: "PF1", Title: strPtr("Título de terceiro")},
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.ErrorIs(t, err, ErrNotPostAuthor)
			},
		},
		{
			name:     "Título novo inválido - rejeitado sem persistir",
			authorID: 1,
			req:      &domain.UpdateForumPostRequest{ID: "PF1", Title: strPtr("Oi")},
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.ErrorIs(t, err, ErrInvalidTitle)
			},
		},
		{
			name:     "Post inexistente - ErrPostNotFound",
			authorID: 1,
			req:      &domain.UpdateForumPostRequest{ID: "PFX", Title: strPtr("Qualquer título")},
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().GetByID("PFX").Return(nil, nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.ErrorIs(t, err, ErrPostNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			forumRepo := mocks.NewMockForumRepository(ctrl)
			tt.setup(forumRepo)

			service := newForumService(forumRepo)
			post, err := service.UpdatePost(tt.authorID, tt.req)
			tt.validate(t, post, err)
		})
	}
}

func TestDeletePost(t *testing.T) {
	t.Run("Autor remove o próprio post", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		forumRepo := mocks.NewMockForumRepository(ctrl)
		forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)
		forumRepo.EXPECT().Delete("PF1").Return(nil)

		service := newForumService(forumRepo)
		assert.NoError(t, service.DeletePost(1, "PF1"))
	})

	t.Run("Outro agricultor não remove - ErrNotPostAuthor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		forumRepo := mocks.NewMockForumRepository(ctrl)
		forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)

		service := newForumService(forumRepo)
		assert.ErrorIs(t, service.DeletePost(9, "PF1"), ErrNotPostAuthor)
	})
}

func TestToggleLike(t *testing.T) {
	tests := []struct {
		name     string
		userID   int
		setup    func(forumRepo *mocks.MockForumRepository)
		validate func(t *testing.T, post *domain.ForumPost, err error)
	}{
		{
			name:   "Primeira curtida - usuário adicionado",
			userID: 5,
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)
				forumRepo.EXPECT().Update(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.NoError(t, err)
				assert.ElementsMatch(t, []int{2, 5}, post.Likes)
			},
		},
		{
			name:   "Curtida repetida - usuário removido",
			userID: 2,
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)
				forumRepo.EXPECT().Update(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.NoError(t, err)
				assert.Empty(t, post.Likes)
			},
		},
		{
			name:   "Post inexistente - ErrPostNotFound",
			userID: 5,
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().GetByID("PF1").Return(nil, nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.ErrorIs(t, err, ErrPostNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			forumRepo := mocks.NewMockForumRepository(ctrl)
			tt.setup(forumRepo)

			service := newForumService(forumRepo)
			post, err := service.ToggleLike(tt.userID, "PF1")
			tt.validate(t, post, err)
		})
	}
}

func TestAddComment(t *testing.T) {
	t.Run("Comentário válido - anexado e contagem atualizada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		forumRepo := mocks.NewMockForumRepository(ctrl)
		forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)
		forumRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(post *domain.ForumPost) error {
			assert.Len(t, post.Comments, 2)
			assert.Equal(t, 2, post.CommentCount)
			assert.Equal(t, "Pedro Lavoura", post.Comments[1].AuthorName)
			return nil
		})

		service := newForumService(forumRepo)
		post, err := service.AddComment(3, "Pedro Lavoura", "PF1", "Aqui uso sabão neutro diluído")
		assert.NoError(t, err)
		assert.NotEmpty(t, post.Comments[1].ID)
	})

	t.Run("Comentário em branco - ErrInvalidContent sem buscar o post", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		forumRepo := mocks.NewMockForumRepository(ctrl)

		service := newForumService(forumRepo)
		_, err := service.AddComment(3, "Pedro Lavoura", "PF1", "   ")
		assert.ErrorIs(t, err, ErrInvalidContent)
	})
}

func TestDeleteComment(t *testing.T) {
	tests := []struct {
		name     string
		userID   int
		setup    func(forumRepo *mocks.MockForumRepository)
		validate func(t *testing.T, post *domain.ForumPost, err error)
	}{
		{
			name:   "Autor do comentário remove",
			userID: 2,
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)
				forumRepo.EXPECT().Update(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.NoError(t, err)
				assert.Empty(t, post.Comments)
				assert.Equal(t, 0, post.CommentCount)
			},
		},
		{
			name:   "Autor do post modera comentário alheio",
			userID: 1,
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)
				forumRepo.EXPECT().Update(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.NoError(t, err)
				assert.Empty(t, post.Comments)
			},
		},
		{
			name:   "Terceiro não remove - ErrNotCommentOwner",
			userID: 9,
			setup: func(forumRepo *mocks.MockForumRepository) {
				forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)
			},
			validate: func(t *testing.T, post *domain.ForumPost, err error) {
				assert.ErrorIs(t, err, ErrNotCommentOwner)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			forumRepo := mocks.NewMockForumRepository(ctrl)
			tt.setup(forumRepo)

			service := newForumService(forumRepo)
			post, err := service.DeleteComment(tt.userID, "PF1", "C1")
			tt.validate(t, post, err)
		})
	}

	t.Run("Comentário inexistente - ErrCommentNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		forumRepo := mocks.NewMockForumRepository(ctrl)
		forumRepo.EXPECT().GetByID("PF1").Return(existingPost(), nil)

		service := newForumService(forumRepo)
		_, err := service.DeleteComment(1, "PF1", "CX")
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}
