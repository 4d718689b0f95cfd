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

// ListOrders retorna o histórico de pedidos do comprador logado
func ListOrders(service ordering.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		orders, err := service.ListBuyerOrders(userClaims.UserID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar pedidos do comprador")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar pedidos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(orders)
	}
}

func GetOrder(service ordering.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		orderID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		order, err := service.GetOrder(userClaims.UserID, orderID)
		if err != nil {
			handleOrderError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(order)
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus avança um pedido no ciclo de vida (operação administrativa)
func UpdateOrderStatus(service ordering.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateOrderStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		orderID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		order, err := service.UpdateOrderStatus(orderID, domain.OrderStatus(req.Status))
		if err != nil {
			handleOrderError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(order)
	}
}

func handleOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ordering.ErrOrderNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Pedido não encontrado", nil)

	case errors.Is(err, ordering.ErrNotOrderOwner):
		apiErrors.WriteError(w, apiErrors.ErrNotResourceOwner, "Pedido pertence a outro usuário", nil)

	case errors.Is(err, ordering.ErrInvalidStatus):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status de pedido desconhecido", nil)

	default:
		logrus.WithError(err).Error("Erro ao consultar pedido")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar pedido", nil)
	}
}
