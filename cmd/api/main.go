package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vfg2006/sales-order-assistant/infrastructure/database/postgres"
	"github.com/vfg2006/sales-order-assistant/infrastructure/integrator/erp"
	"github.com/vfg2006/sales-order-assistant/infrastructure/integrator/erp/erpclient"
	"github.com/vfg2006/sales-order-assistant/infrastructure/repository"
	"github.com/vfg2006/sales-order-assistant/internal/api"
	"github.com/vfg2006/sales-order-assistant/internal/config"
	"github.com/vfg2006/sales-order-assistant/internal/scheduler"
	"github.com/vfg2006/sales-order-assistant/internal/usecases/authenticating"
	"github.com/vfg2006/sales-order-assistant/internal/usecases/querying"
	"github.com/vfg2006/sales-order-assistant/internal/usecases/snapshot"
	"github.com/vfg2006/sales-order-assistant/pkg/log"
	"github.com/vfg2006/sales-order-assistant/pkg/utils"
)

type options struct {
	envFile    string
	once       bool
	issueToken string
	tokenTTL   time.Duration
	subject    string
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("sales-order-assistant", pflag.ContinueOnError)
	fs.StringVar(&opts.envFile, "env-file", "", "arquivo .env a carregar (padrão: procura .env no diretório atual e acima)")
	fs.BoolVar(&opts.once, "once", false, "executa uma sincronização completa com o ERP, imprime o relatório e sai")
	fs.StringVar(&opts.issueToken, "issue-token", "", "emite um token de acesso com o papel informado (admin ou analyst) e sai")
	fs.DurationVar(&opts.tokenTTL, "token-ttl", 24*time.Hour, "validade do token emitido com --issue-token")
	fs.StringVar(&opts.subject, "subject", "cli", "subject (sub) do token emitido com --issue-token")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.NewConfig(opts.envFile)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.LogLevel); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		_ = log.Setup("info")
	}

	if opts.issueToken != "" {
		if err := issueToken(os.Stdout, cfg, opts); err != nil {
			logrus.Fatal(err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeRepo := snapshotRepository(ctx, cfg)
	defer closeRepo()

	store := snapshot.NewStore(repo)
	store.Load(ctx)

	erpClient := erpclient.NewClient(cfg)
	erpIntegrator := erp.New(cfg, erpClient)

	syncService := scheduler.NewSalesOrderSyncService(erpIntegrator, store, cfg)

	if opts.once {
		report, err := syncService.RunOnce(ctx)
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Println(utils.PrettyJson(report))
		return
	}

	if err := syncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de pedidos de venda")
	} else {
		logrus.Info("Agendador de sincronização de pedidos de venda iniciado com sucesso")
	}

	authenticator := authenticating.NewService(cfg)

	// Nenhum resolvedor de linguagem natural é embutido; as perguntas chegam com o descritor pronto
	queryService := querying.NewService(store, nil)

	server, err := api.New(cfg, queryService, store, syncService, authenticator)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func issueToken(w io.Writer, cfg *config.Config, opts options) error {
	if cfg.Auth.Secret == "" {
		return authenticating.ErrAuthDisabled
	}

	token, err := authenticating.GenerateToken(cfg.Auth.Secret, opts.subject, opts.issueToken, opts.tokenTTL)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, token)
	return err
}

// snapshotRepository escolhe o backend durável do snapshot conforme SNAPSHOT_DRIVER
func snapshotRepository(ctx context.Context, cfg *config.Config) (repository.SalesOrderRepository, func()) {
	if cfg.Snapshot.Driver != config.SnapshotDriverPostgres {
		logrus.WithField("path", cfg.Snapshot.FilePath).Info("Snapshot de pedidos em arquivo")
		return repository.NewFileSalesOrderRepository(cfg.Snapshot.FilePath), func() {}
	}

	conn := pgconn(ctx, cfg.Database)

	repo := repository.NewPostgresSalesOrderRepository(conn)
	if err := repo.EnsureSchema(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar tabela de pedidos no PostgreSQL")
	}

	logrus.Info("Snapshot de pedidos no PostgreSQL")
	return repo, func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
		}
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
