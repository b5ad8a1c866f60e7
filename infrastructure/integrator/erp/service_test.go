package erp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	erpdomain "github.com/vfg2006/sales-order-assistant/infrastructure/integrator/erp/domain"
	"github.com/vfg2006/sales-order-assistant/infrastructure/integrator/erp/mocks"
	"github.com/vfg2006/sales-order-assistant/internal/config"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		ERP: config.ERP{
			URL:                "http://erp.local",
			LocationID:         "LOC1",
			EmployeeID:         "EMP1",
			PreparedBy:         "EMP1",
			ViewAll:            true,
			PageSize:           500,
			MaxPages:           100,
			PageTimeoutSeconds: 5,
		},
	}
}

// page monta uma resposta com n pedidos, com IDs a partir de start
func page(start, n int) *erpdomain.SalesOrderSearchResponse {
	resp := &erpdomain.SalesOrderSearchResponse{Status: "success"}
	resp.Data.TotalCount = 1637
	for i := 0; i < n; i++ {
		resp.Data.Records = append(resp.Data.Records, erpdomain.SalesOrder{
			PK: erpdomain.FlexibleString(fmt.Sprintf("SO-%d", start+i)),
		})
	}
	return resp
}

func TestERPService_FetchWindow_Pagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := New(testConfig(), mockClient)
	window := domain.AnnualWindow(2024)

	pageSizes := []int{500, 500, 500, 137}
	var calls []any
	offset := 0
	for _, size := range pageSizes {
		size := size
		expectedOffset := offset
		call := mockClient.EXPECT().
			SearchSalesOrders(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req erpdomain.SalesOrderSearchRequest) (*erpdomain.SalesOrderSearchResponse, error) {
				assert.Equal(t, expectedOffset, req.Offset)
				assert.Equal(t, 500, req.Limit)
				assert.Equal(t, "range", req.Filter)
				assert.Equal(t, "2024-01-01", req.DateFrom)
				assert.Equal(t, "2024-12-31", req.DateTo)
				assert.Equal(t, "LOC1", req.LocationID)
				assert.True(t, req.ViewAll)
				return page(req.Offset, size), nil
			})
		calls = append(calls, call)
		offset += size
	}
	gomock.InOrder(calls...)

	orders := service.FetchWindow(context.Background(), window)

	require.Len(t, orders, 1637)
	assert.Equal(t, erpdomain.FlexibleString("SO-0"), orders[0].PK)
	assert.Equal(t, erpdomain.FlexibleString("SO-1636"), orders[1636].PK)
}

func TestERPService_FetchWindow_SoftFail(t *testing.T) {
	tests := []struct {
		name          string
		pages         []int
		failOnRequest int
		expected      int
	}{
		{
			name:          "Falha na primeira página - deve retornar vazio",
			pages:         nil,
			failOnRequest: 0,
			expected:      0,
		},
		{
			name:          "Falha na terceira página - deve retornar as duas primeiras",
			pages:         []int{500, 500},
			failOnRequest: 2,
			expected:      1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockClient(ctrl)
			service := New(testConfig(), mockClient)

			request := 0
			mockClient.EXPECT().
				SearchSalesOrders(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req erpdomain.SalesOrderSearchRequest) (*erpdomain.SalesOrderSearchResponse, error) {
					defer func() { request++ }()
					if request == tt.failOnRequest {
						return nil, errors.New("connection reset by peer")
					}
					return page(req.Offset, tt.pages[request]), nil
				}).
				Times(tt.failOnRequest + 1)

			var orders []erpdomain.SalesOrder
			assert.NotPanics(t, func() {
				orders = service.FetchWindow(context.Background(), domain.AnnualWindow(2024))
			})
			assert.Len(t, orders, tt.expected)
			assert.NotNil(t, orders)
		})
	}
}

func TestERPService_FetchWindow_EmptyFirstPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := New(testConfig(), mockClient)

	mockClient.EXPECT().
		SearchSalesOrders(gomock.Any(), gomock.Any()).
		Return(page(0, 0), nil).
		Times(1)

	orders := service.FetchWindow(context.Background(), domain.AnnualWindow(2023))
	assert.Empty(t, orders)
}

func TestERPService_FetchWindow_MaxPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.ERP.PageSize = 2
	cfg.ERP.MaxPages = 3

	mockClient := mocks.NewMockClient(ctrl)
	service := New(cfg, mockClient)

	// O ERP nunca devolve página incompleta; a busca deve parar no limite
	mockClient.EXPECT().
		SearchSalesOrders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req erpdomain.SalesOrderSearchRequest) (*erpdomain.SalesOrderSearchResponse, error) {
			return page(req.Offset, 2), nil
		}).
		Times(3)

	orders := service.FetchWindow(context.Background(), domain.AnnualWindow(2024))
	assert.Len(t, orders, 6)
}

func TestERPService_FetchWindow_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := New(testConfig(), mockClient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nenhuma chamada esperada: o mock falha o teste se for chamado
	orders := service.FetchWindow(ctx, domain.AnnualWindow(2024))
	assert.Empty(t, orders)
}
