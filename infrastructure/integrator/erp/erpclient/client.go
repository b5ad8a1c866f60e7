package erpclient

import (
	"context"
	"net/http"

	erpdomain "github.com/vfg2006/sales-order-assistant/infrastructure/integrator/erp/domain"
	"github.com/vfg2006/sales-order-assistant/internal/config"
)

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

type Client interface {
	SearchSalesOrders(ctx context.Context, request erpdomain.SalesOrderSearchRequest) (*erpdomain.SalesOrderSearchResponse, error)
}

type ERPClient struct {
	httpClient *http.Client
	config     *config.ERP
}

// NewClient cria uma nova instância do cliente da API do ERP.
// O timeout de cada página é aplicado via contexto em SearchSalesOrders.
func NewClient(cfg *config.Config) Client {
	return NewClientWithHTTP(cfg, &http.Client{})
}

func NewClientWithHTTP(cfg *config.Config, httpClient *http.Client) Client {
	return &ERPClient{
		httpClient: httpClient,
		config:     &cfg.ERP,
	}
}
