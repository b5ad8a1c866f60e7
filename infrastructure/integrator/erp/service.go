package erp

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	erpdomain "github.com/vfg2006/sales-order-assistant/infrastructure/integrator/erp/domain"
	"github.com/vfg2006/sales-order-assistant/infrastructure/integrator/erp/erpclient"
	"github.com/vfg2006/sales-order-assistant/internal/config"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

const rangeFilter = "range"

//go:generate mockgen -source=service.go -destination=mocks/mock_integrator.go -package=mocks

type ERPIntegrator interface {
	// FetchWindow busca todas as páginas de uma janela. Nunca falha: em caso de erro
	// devolve o que já foi acumulado, e a janela é buscada de novo no próximo ciclo.
	FetchWindow(ctx context.Context, window domain.QueryWindow) []erpdomain.SalesOrder
}

type ERPService struct {
	cfg    *config.Config
	Client erpclient.Client
}

func New(cfg *config.Config, client erpclient.Client) ERPIntegrator {
	return &ERPService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *ERPService) FetchWindow(ctx context.Context, window domain.QueryWindow) []erpdomain.SalesOrder {
	pageSize := s.cfg.ERP.PageSize
	orders := make([]erpdomain.SalesOrder, 0, pageSize)

	logger := logrus.WithFields(logrus.Fields{
		"date_from": window.Start.Format(time.DateOnly),
		"date_to":   window.End.Format(time.DateOnly),
	})

	for page := 0; page < s.cfg.ERP.MaxPages; page++ {
		if ctx.Err() != nil {
			logger.WithError(ctx.Err()).Warn("Busca de pedidos no ERP interrompida")
			return orders
		}

		request := erpdomain.SalesOrderSearchRequest{
			LocationID: s.cfg.ERP.LocationID,
			EmployeeID: s.cfg.ERP.EmployeeID,
			PreparedBy: s.cfg.ERP.PreparedBy,
			ViewAll:    s.cfg.ERP.ViewAll,
			Filter:     rangeFilter,
			DateFrom:   window.Start.Format(time.DateOnly),
			DateTo:     window.End.Format(time.DateOnly),
			Limit:      pageSize,
			Offset:     page * pageSize,
		}

		resp, err := s.Client.SearchSalesOrders(ctx, request)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"offset":      request.Offset,
				"accumulated": len(orders),
				"error":       err.Error(),
			}).Warn("Erro ao buscar página de pedidos no ERP, retornando dados parciais")
			return orders
		}

		records := resp.Data.Records
		orders = append(orders, records...)

		logger.WithFields(logrus.Fields{
			"offset":      request.Offset,
			"page_size":   len(records),
			"total_count": resp.Data.TotalCount,
		}).Debug("Página de pedidos obtida do ERP")

		// Página incompleta sinaliza o fim dos dados
		if len(records) < pageSize {
			return orders
		}
	}

	logger.WithField("max_pages", s.cfg.ERP.MaxPages).Warn("Limite de páginas atingido na busca de pedidos do ERP")
	return orders
}
