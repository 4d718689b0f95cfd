package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"github.com/vfg2006/farm-market-api/internal/usecases/catalog"
	"github.com/vfg2006/farm-market-api/pkg/apiErrors"
	"github.com/vfg2006/farm-market-api/pkg/middleware"
)

// ListProducts retorna a vitrine. Com ?farmer_id a lista é restrita ao
// catálogo daquele agricultor.
func ListProducts(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var farmerID *int
		if raw := r.URL.Query().Get("farmer_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "farmer_id inválido", nil)
				return
			}
			farmerID = &id
		}

		products, err := service.ListProducts(farmerID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar produtos")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar produtos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	}
}

func GetProduct(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		product, err := service.GetProduct(id)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(product)
	}
}

func CreateProduct(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := service.CreateProduct(userClaims.UserID, &product)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func UpdateProduct(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		// O ID da URL prevalece sobre qualquer ID no corpo
		req.ID = httprouter.ParamsFromContext(r.Context()).ByName("id")

		product, err := service.UpdateProduct(userClaims.UserID, &req)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(product)
	}
}

func DeleteProduct(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteProduct(userClaims.UserID, id); err != nil {
			handleCatalogError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Produto não encontrado", nil)

	case errors.Is(err, catalog.ErrNotProductOwner):
		apiErrors.WriteError(w, apiErrors.ErrNotResourceOwner, "Produto pertence a outro agricultor", nil)

	case errors.Is(err, catalog.ErrMissingData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, catalog.ErrInvalidPrice):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	default:
		logrus.WithError(err).Error("Erro no catálogo de produtos")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no catálogo", nil)
	}
}
