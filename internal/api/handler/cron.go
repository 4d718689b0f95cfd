package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/internal/scheduler"
	"github.com/vfg2006/farm-market-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeAnalytics = "analytics"
)

// CronJobServices contém os serviços de cron disponíveis para execução manual
type CronJobServices struct {
	AnalyticsSnapshotSyncService *scheduler.AnalyticsSnapshotSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeAnalytics:
			if services.AnalyticsSnapshotSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de snapshots de analytics não disponível", nil)
				return
			}

			if err := services.AnalyticsSnapshotSyncService.RunManually(); err != nil {
				logrus.WithError(err).Error("Erro na execução manual do cron de analytics")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro na execução do cron", nil)
				return
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo de cron job desconhecido", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "executado",
			"type":   cronType,
		})
	}
}

// GetCronStatus retorna o estado corrente dos crons para acompanhamento
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}

		if services.AnalyticsSnapshotSyncService != nil {
			status[CronJobTypeAnalytics] = services.AnalyticsSnapshotSyncService.Status()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
