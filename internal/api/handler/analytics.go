package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"github.com/vfg2006/farm-market-api/internal/usecases/analytics"
	"github.com/vfg2006/farm-market-api/pkg/apiErrors"
	"github.com/vfg2006/farm-market-api/pkg/middleware"
)

// GetFarmerDashboard retorna o painel de vendas do agricultor logado. Cada
// requisição dispara um passe completo de agregação sobre os dados correntes.
func GetFarmerDashboard(service analytics.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		dashboard, err := service.FarmerDashboard(userClaims.UserID)
		if err != nil {
			logrus.WithError(err).WithField("farmer_id", userClaims.UserID).
				Error("Erro ao montar painel do agricultor")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar painel de vendas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dashboard)
	}
}
