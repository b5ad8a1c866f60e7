// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"

	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

//go:generate mockgen -source=sales_order.go -destination=mocks/mock_sales_order.go -package=mocks

// SalesOrderRepository é o armazenamento durável do snapshot de pedidos de venda.
// Save recebe a coleção completa e o subconjunto recém adicionado; cada
// implementação grava o que precisar para que Load devolva a coleção completa.
type SalesOrderRepository interface {
	Load(ctx context.Context) ([]domain.SalesOrderRecord, error)
	Save(ctx context.Context, all []domain.SalesOrderRecord, added []domain.SalesOrderRecord) error
}
