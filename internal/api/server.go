package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-order-assistant/internal/api/handler"
	"github.com/vfg2006/sales-order-assistant/internal/api/handler/router"
	"github.com/vfg2006/sales-order-assistant/internal/config"
	"github.com/vfg2006/sales-order-assistant/internal/usecases/authenticating"
	"github.com/vfg2006/sales-order-assistant/internal/usecases/querying"
	"github.com/vfg2006/sales-order-assistant/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	queryService querying.Querier,
	snapshotStore handler.SnapshotStore,
	syncService handler.SyncService,
	authenticator authenticating.Authenticator,
) (*Server, error) {
	if !authenticator.Enabled() {
		anonymous := middleware.AnonymousClaims()
		logrus.WithFields(logrus.Fields{
			"anonymous_role": anonymous.Role,
			"admin_routes":   anonymous.IsAdmin(),
		}).Warn("ATENÇÃO: AUTH_SECRET não configurado, autenticação da API desabilitada; qualquer chamador é aceito sem token")
		if anonymous.IsAdmin() {
			logrus.Warn("ATENÇÃO: em desenvolvimento chamadores anônimos são administradores e podem disparar POST /v1/sync/run; defina AUTH_SECRET antes de expor o serviço")
		}
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(snapshotStore)...),
		router.WithRoutes(handler.Query(queryService)...),
		router.WithRoutes(handler.Snapshot(snapshotStore)...),
		router.WithRoutes(handler.Sync(syncService)...),
	)

	middlewares := []alice.Constructor{
		middleware.LoggingMiddleware(),
		middleware.LogPanicMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-serverErr:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
