package handler

import (
	"net/http"

	"github.com/vfg2006/sales-order-assistant/internal/usecases/snapshot"
)

type SnapshotStatusProvider interface {
	Status() snapshot.Status
}

// SnapshotStore é o que o servidor HTTP usa do snapshot store
type SnapshotStore interface {
	SnapshotStatusProvider
	SnapshotCounter
}

func GetSnapshotStatus(store SnapshotStatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, store.Status())
	}
}
