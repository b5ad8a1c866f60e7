package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/sales-order-assistant/internal/scheduler"
	"github.com/vfg2006/sales-order-assistant/pkg/apiErrors"
	"github.com/vfg2006/sales-order-assistant/pkg/log"
)

// SyncService é a parte do agendador exposta aos administradores
type SyncService interface {
	TriggerManualSync() (string, error)
	GetStatus() map[string]any
}

// RunSync dispara manualmente a sincronização com o ERP
func RunSync(service SyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrSyncNotConfigured, "Serviço de sincronização não disponível", nil)
			return
		}

		runID, err := service.TriggerManualSync()
		if errors.Is(err, scheduler.ErrSyncInProgress) {
			apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Sincronização já em andamento", nil)
			return
		}
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao iniciar sincronização manual")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar sincronização", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Sincronização iniciada com sucesso",
			"run_id":  runID,
		})
	}
}

func GetSyncStatus(service SyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrSyncNotConfigured, "Serviço de sincronização não disponível", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, service.GetStatus())
	}
}
