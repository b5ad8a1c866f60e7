package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/vfg2006/sales-order-assistant/internal/api/handler/schema"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
	"github.com/vfg2006/sales-order-assistant/internal/usecases/querying"
	"github.com/vfg2006/sales-order-assistant/pkg/apiErrors"
	"github.com/vfg2006/sales-order-assistant/pkg/log"
)

const maxQueryBodyBytes = 64 << 10

type QueryRequest struct {
	Question string                  `json:"question"`
	Query    *domain.QueryDescriptor `json:"query"`
}

// AskQuestion responde uma pergunta sobre os pedidos de venda. O descritor
// pode vir pronto em "query"; sem ele, a pergunta passa pelo resolvedor.
func AskQuestion(service querying.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxQueryBodyBytes))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Não foi possível ler o corpo da requisição", err.Error())
			return
		}

		if err := schema.QueryRequest.Validate(body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", err.Error())
			return
		}

		var request QueryRequest
		if err := json.Unmarshal(body, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", err.Error())
			return
		}

		answer, err := service.Ask(r.Context(), request.Question, request.Query)
		if err != nil {
			writeQueryError(w, r, err)
			return
		}

		if !answer.Handled {
			logger.Debug("Pergunta geral, sem consulta ao snapshot")
		}

		writeJSON(w, r, http.StatusOK, answer)
	}
}

func writeQueryError(w http.ResponseWriter, r *http.Request, err error) {
	var queryErr *querying.QueryError

	switch {
	case errors.As(err, &queryErr):
		apiErrors.WriteError(w, apiErrors.ErrInvalidQuery, queryErr.Err.Error(), map[string]any{
			"field": queryErr.Field,
			"value": queryErr.Value,
		})
	case errors.Is(err, querying.ErrResolverRequired):
		apiErrors.WriteError(w, apiErrors.ErrResolverRequired, "Informe o campo query; nenhum resolvedor de perguntas está configurado", nil)
	case errors.Is(err, querying.ErrResolveFailed):
		log.ForContext(r.Context()).WithError(err).Warn("Resolvedor falhou ao interpretar a pergunta")
		apiErrors.WriteError(w, apiErrors.ErrResolverFailed, "Não foi possível interpretar a pergunta", nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro ao responder pergunta")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao responder pergunta", nil)
	}
}
