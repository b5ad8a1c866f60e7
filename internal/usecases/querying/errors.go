package querying

import (
	"errors"
	"fmt"
)

var (
	ErrGeneralIntent    = errors.New("intenção geral não é uma consulta ao ERP")
	ErrUnknownIntent    = errors.New("intenção desconhecida")
	ErrInvalidOperator  = errors.New("operador de margem bruta inválido")
	ErrInvalidYear      = errors.New("ano inválido, use quatro dígitos")
	ErrInvalidDate      = errors.New("data inválida, use o formato YYYY-MM-DD")
	ErrInvalidTopN      = errors.New("topN não pode ser negativo")
	ErrInvalidMetric    = errors.New("métrica inválida")
	ErrInvalidGroupBy   = errors.New("agrupamento inválido")
	ErrResolverRequired = errors.New("consulta sem descritor e nenhum resolvedor configurado")
	ErrResolveFailed    = errors.New("erro ao interpretar a pergunta")
)

// QueryError carrega o campo do descritor que falhou na validação
type QueryError struct {
	Err   error
	Field string
	Value any
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s (%s=%v)", e.Err.Error(), e.Field, e.Value)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func newQueryError(err error, field string, value any) *QueryError {
	return &QueryError{
		Err:   err,
		Field: field,
		Value: value,
	}
}
