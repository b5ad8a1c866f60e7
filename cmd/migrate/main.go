// Comando migrate copia o snapshot de pedidos de venda gravado em arquivo para o PostgreSQL.
// Pode ser executado mais de uma vez: pedidos já presentes na tabela são ignorados.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vfg2006/sales-order-assistant/infrastructure/database/postgres"
	"github.com/vfg2006/sales-order-assistant/infrastructure/repository"
	"github.com/vfg2006/sales-order-assistant/internal/config"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
	"github.com/vfg2006/sales-order-assistant/pkg/log"
)

type options struct {
	envFile string
	from    string
	dryRun  bool
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	fs.StringVar(&opts.envFile, "env-file", "", "arquivo .env a carregar")
	fs.StringVar(&opts.from, "from", "", "arquivo de snapshot de origem (padrão: SNAPSHOT_FILE)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "apenas lê e conta os pedidos, sem gravar no banco")

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
		_ = log.Setup("info")
	}

	source := opts.from
	if source == "" {
		source = cfg.Snapshot.FilePath
	}

	ctx := context.Background()
	from := repository.NewFileSalesOrderRepository(source)

	if opts.dryRun {
		count, err := migrate(ctx, from, nil)
		if err != nil {
			logrus.Fatal(err)
		}
		logrus.WithField("records", count).Info("Simulação concluída")
		return
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	to := repository.NewPostgresSalesOrderRepository(conn)
	if err := to.EnsureSchema(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar tabela de pedidos no PostgreSQL")
	}

	count, err := migrate(ctx, from, to)
	if err != nil {
		logrus.Fatal(err)
	}

	logrus.WithFields(logrus.Fields{
		"source":  source,
		"records": count,
	}).Info("Migração do snapshot concluída")
}

// migrate lê todos os pedidos da origem, descarta IDs repetidos mantendo a
// primeira ocorrência e grava o resultado no destino. Com destino nil nada é gravado.
func migrate(ctx context.Context, from, to repository.SalesOrderRepository) (int, error) {
	records, err := from.Load(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao ler snapshot de origem")
	}

	records = uniqueByID(records)
	if to == nil || len(records) == 0 {
		return len(records), nil
	}

	if err := to.Save(ctx, records, records); err != nil {
		return 0, errors.Wrap(err, "erro ao gravar snapshot no destino")
	}

	return len(records), nil
}

func uniqueByID(records []domain.SalesOrderRecord) []domain.SalesOrderRecord {
	seen := make(map[string]struct{}, len(records))
	unique := make([]domain.SalesOrderRecord, 0, len(records))

	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		unique = append(unique, r)
	}

	return unique
}
