package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-order-assistant/infrastructure/database/postgres"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

const (
	salesOrdersTable = "sales_orders"

	// 11 parâmetros por linha mantêm cada lote bem abaixo do limite de 65535 do Postgres
	salesOrderInsertBatchSize = 500
)

const createSalesOrdersTable = `
CREATE TABLE IF NOT EXISTS sales_orders (
	seq               BIGSERIAL,
	id                TEXT PRIMARY KEY,
	display_number    TEXT NOT NULL DEFAULT '',
	customer_name     TEXT NOT NULL DEFAULT '',
	division_name     TEXT NOT NULL DEFAULT '',
	sales_rep_name    TEXT NOT NULL DEFAULT '',
	amount            NUMERIC NOT NULL DEFAULT 0,
	gross_profit_rate NUMERIC NOT NULL DEFAULT 0,
	status            TEXT NOT NULL DEFAULT '',
	created_date      TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	memo              TEXT NOT NULL DEFAULT '',
	ingested_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var salesOrderColumns = []string{
	"id",
	"display_number",
	"customer_name",
	"division_name",
	"sales_rep_name",
	"amount",
	"gross_profit_rate",
	"status",
	"created_date",
	"description",
	"memo",
}

type PostgresSalesOrderRepository struct {
	conn postgres.Conn
}

// NewPostgresSalesOrderRepository guarda cada pedido como uma linha; Save grava apenas os
// registros novos, e a ordem de inserção é preservada pela coluna seq
func NewPostgresSalesOrderRepository(conn postgres.Conn) *PostgresSalesOrderRepository {
	return &PostgresSalesOrderRepository{
		conn: conn,
	}
}

// EnsureSchema cria a tabela de pedidos caso ainda não exista
func (r *PostgresSalesOrderRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.conn.ExecContext(ctx, createSalesOrdersTable); err != nil {
		return errors.Wrap(err, "erro ao criar a tabela sales_orders")
	}
	return nil
}

func (r *PostgresSalesOrderRepository) Load(ctx context.Context) ([]domain.SalesOrderRecord, error) {
	query, args, err := buildLoadQuery()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	records := make([]domain.SalesOrderRecord, 0)
	for rows.Next() {
		var record domain.SalesOrderRecord
		err := rows.Scan(
			&record.ID,
			&record.DisplayNumber,
			&record.CustomerName,
			&record.DivisionName,
			&record.SalesRepName,
			&record.Amount,
			&record.GrossProfitRate,
			&record.Status,
			&record.CreatedDate,
			&record.Description,
			&record.Memo,
		)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear pedido de venda")
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return records, nil
}

func (r *PostgresSalesOrderRepository) Save(ctx context.Context, _ []domain.SalesOrderRecord, added []domain.SalesOrderRecord) error {
	if len(added) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(added); start += salesOrderInsertBatchSize {
			end := min(start+salesOrderInsertBatchSize, len(added))

			query, args, err := buildInsertQuery(added[start:end])
			if err != nil {
				return errors.Wrap(err, "erro ao construir a query")
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				if pqErr, ok := err.(*pq.Error); ok {
					return errors.Wrapf(pqErr, "erro no banco de dados (código: %s)", pqErr.Code)
				}
				return errors.Wrap(err, "erro ao executar a query")
			}
		}
		return nil
	})
}

func buildLoadQuery() (string, []any, error) {
	return squirrel.
		Select(salesOrderColumns...).
		From(salesOrdersTable).
		OrderBy("seq ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// buildInsertQuery nunca sobrescreve pedidos já existentes
func buildInsertQuery(records []domain.SalesOrderRecord) (string, []any, error) {
	builder := squirrel.StatementBuilder.
		Insert(salesOrdersTable).
		Columns(salesOrderColumns...).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		builder = builder.Values(
			record.ID,
			record.DisplayNumber,
			record.CustomerName,
			record.DivisionName,
			record.SalesRepName,
			record.Amount,
			record.GrossProfitRate,
			record.Status,
			record.CreatedDate,
			record.Description,
			record.Memo,
		)
	}

	return builder.ToSql()
}
