package erpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	erpdomain "github.com/vfg2006/sales-order-assistant/infrastructure/integrator/erp/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const salesOrderSearchPath = "/sales-orders/search"

// ErrUnexpectedStatus indica que o ERP respondeu com status diferente de 2xx
var ErrUnexpectedStatus = errors.New("status inesperado da API do ERP")

// ErrRejected indica que o ERP respondeu 200 mas com status de erro no envelope
var ErrRejected = errors.New("requisição rejeitada pelo ERP")

// SearchSalesOrders busca uma única página de pedidos de venda
func (c *ERPClient) SearchSalesOrders(ctx context.Context, request erpdomain.SalesOrderSearchRequest) (*erpdomain.SalesOrderSearchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.PageTimeout())
	defer cancel()

	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.URL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base")
	}
	endpoint.Path = path.Join(endpoint.Path, salesOrderSearchPath)

	body, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar o corpo da requisição")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	// Adicionar cabeçalhos necessários.
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Descarta o corpo para permitir reuso da conexão
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, errors.Wrapf(ErrUnexpectedStatus, "requisição falhou com status: %s", resp.Status)
	}

	var response erpdomain.SalesOrderSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	if response.Status != "" && !strings.EqualFold(response.Status, "success") {
		return nil, errors.Wrapf(ErrRejected, "status %q: %s", response.Status, response.Message)
	}

	return &response, nil
}
