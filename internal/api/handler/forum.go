package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"github.com/vfg2006/farm-market-api/internal/usecases/forum"
	"github.com/vfg2006/farm-market-api/pkg/apiErrors"
	"github.com/vfg2006/farm-market-api/pkg/middleware"
)

// ListForumPosts retorna o mural. Com ?search filtra por título ou conteúdo.
func ListForumPosts(service forum.ForumService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := service.ListPosts(r.URL.Query().Get("search"))
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar posts do fórum")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar posts do fórum", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(posts)
	}
}

func GetForumPost(service forum.ForumService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		post, err := service.GetPost(id)
		if err != nil {
			handleForumError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(post)
	}
}

func CreateForumPost(service forum.ForumService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var post domain.ForumPost
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := service.CreatePost(userClaims.UserID, userClaims.UserName, &post)
		if err != nil {
			handleForumError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func UpdateForumPost(service forum.ForumService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.UpdateForumPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		// O ID da URL prevalece sobre qualquer ID no corpo
		req.ID = httprouter.ParamsFromContext(r.Context()).ByName("id")

		post, err := service.UpdatePost(userClaims.UserID, &req)
		if err != nil {
			handleForumError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(post)
	}
}

func DeleteForumPost(service forum.ForumService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeletePost(userClaims.UserID, id); err != nil {
			handleForumError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ToggleForumLike(service forum.ForumService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		post, err := service.ToggleLike(userClaims.UserID, id)
		if err != nil {
			handleForumError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(post)
	}
}

type addCommentRequest struct {
	Content string `json:"content"`
}

func AddForumComment(service forum.ForumService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req addCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		postID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		post, err := service.AddComment(userClaims.UserID, userClaims.UserName, postID, req.Content)
		if err != nil {
			handleForumError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(post)
	}
}

func DeleteForumComment(service forum.ForumService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		postID := params.ByName("id")
		commentID := params.ByName("comment_id")

		post, err := service.DeleteComment(userClaims.UserID, postID, commentID)
		if err != nil {
			handleForumError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(post)
	}
}

func handleForumError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, forum.ErrPostNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Post não encontrado", nil)

	case errors.Is(err, forum.ErrCommentNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Comentário não encontrado", nil)

	case errors.Is(err, forum.ErrNotPostAuthor):
		apiErrors.WriteError(w, apiErrors.ErrNotResourceOwner, "Post pertence a outro agricultor", nil)

	case errors.Is(err, forum.ErrNotCommentOwner):
		apiErrors.WriteError(w, apiErrors.ErrNotResourceOwner, "Comentário pertence a outro agricultor", nil)

	case errors.Is(err, forum.ErrInvalidTitle), errors.Is(err, forum.ErrInvalidContent):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	default:
		logrus.WithError(err).Error("Erro no fórum de agricultores")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no fórum", nil)
	}
}
