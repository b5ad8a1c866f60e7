package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// SnapshotRecordsHeader informa quantos pedidos o snapshot local tem no momento
const SnapshotRecordsHeader = "X-Snapshot-Records"

// SnapshotCounter informa o tamanho do snapshot sem esperar merges em andamento
type SnapshotCounter interface {
	Len() int
}

// HealthcheckHandler responde o horário atual. O serviço está vivo mesmo com o
// snapshot vazio; o tamanho vai no cabeçalho para monitoramento.
func HealthcheckHandler(store SnapshotCounter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			w.Header().Set(SnapshotRecordsHeader, strconv.Itoa(store.Len()))
		}

		_, err := w.Write([]byte(time.Now().Format(time.RFC3339)))
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
