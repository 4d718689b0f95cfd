package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"github.com/vfg2006/farm-market-api/internal/usecases/ordering"
	"github.com/vfg2006/farm-market-api/pkg/apiErrors"
	"github.com/vfg2006/farm-market-api/pkg/middleware"
)

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func GetCart(service ordering.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		cart, err := service.GetCart(userClaims.UserID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao consultar carrinho")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar carrinho", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cart)
	}
}

func AddCartItem(service ordering.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req AddCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		cart, err := service.AddItem(userClaims.UserID, req.ProductID, req.Quantity)
		if err != nil {
			handleCartError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cart)
	}
}

func UpdateCartItem(service ordering.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req UpdateCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		itemID := httprouter.ParamsFromContext(r.Context()).ByName("item_id")

		cart, err := service.UpdateItemQuantity(userClaims.UserID, itemID, req.Quantity)
		if err != nil {
			handleCartError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cart)
	}
}

func RemoveCartItem(service ordering.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		itemID := httprouter.ParamsFromContext(r.Context()).ByName("item_id")

		cart, err := service.RemoveItem(userClaims.UserID, itemID)
		if err != nil {
			handleCartError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cart)
	}
}

// CheckoutCart converte o carrinho do usuário em um pedido pendente
func CheckoutCart(service ordering.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		order, err := service.Checkout(userClaims.UserID, &req)
		if err != nil {
			handleCartError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(order)
	}
}

func handleCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ordering.ErrInvalidQuantity):
		apiErrors.WriteError(w, apiErrors.ErrInvalidQuantity, err.Error(), nil)

	case errors.Is(err, ordering.ErrItemNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Item não encontrado no carrinho", nil)

	case errors.Is(err, ordering.ErrEmptyCart):
		apiErrors.WriteError(w, apiErrors.ErrEmptyCart, "Carrinho vazio", nil)

	case errors.Is(err, ordering.ErrProductUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Produto indisponível", nil)

	default:
		logrus.WithError(err).Error("Erro na operação de carrinho")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro na operação de carrinho", nil)
	}
}
