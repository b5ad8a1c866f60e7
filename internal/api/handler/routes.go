package handler

import (
	"net/http"

	"github.com/vfg2006/sales-order-assistant/internal/api/handler/router"
	"github.com/vfg2006/sales-order-assistant/internal/usecases/querying"
	"github.com/vfg2006/sales-order-assistant/pkg/middleware"
)

func Healthcheck(store SnapshotCounter) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(store),
		},
	}
}

func Query(service querying.Querier) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/query",
			Method:      http.MethodPost,
			Handler:     AskQuestion(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Snapshot(store SnapshotStatusProvider) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/snapshot/status",
			Method:      http.MethodGet,
			Handler:     GetSnapshotStatus(store),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Sync(service SyncService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/run",
			Method:      http.MethodPost,
			Handler:     RunSync(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
