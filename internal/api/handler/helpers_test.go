package handler

import (
	"context"

	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

// emptyRepository é um repositório em memória que não guarda nada
type emptyRepository struct{}

func (emptyRepository) Load(context.Context) ([]domain.SalesOrderRecord, error) {
	return nil, nil
}

func (emptyRepository) Save(context.Context, []domain.SalesOrderRecord, []domain.SalesOrderRecord) error {
	return nil
}
