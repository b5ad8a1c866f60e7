package domain

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Intent string

const (
	IntentCount        Intent = "count"
	IntentList         Intent = "list"
	IntentSample       Intent = "sample"
	IntentTopCustomers Intent = "topCustomers"
	IntentTopDivision  Intent = "topDivision"
	IntentTopSales     Intent = "topSales"
	IntentTotal        Intent = "total"
	IntentMax          Intent = "max"
	IntentMin          Intent = "min"
	IntentBreakdown    Intent = "breakdown"
	IntentGeneral      Intent = "general"
)

// ComparisonOperator é o operador aplicado ao filtro de margem bruta
type ComparisonOperator string

const (
	OperatorGreater        ComparisonOperator = ">"
	OperatorLess           ComparisonOperator = "<"
	OperatorGreaterOrEqual ComparisonOperator = ">="
	OperatorLessOrEqual    ComparisonOperator = "<="
	OperatorEqual          ComparisonOperator = "="
)

// Metric define qual valor numérico é usado nas intenções max e min
type Metric string

const (
	MetricAmount          Metric = "amount"
	MetricGrossProfitRate Metric = "grossProfitRate"
)

// GroupBy define a dimensão de agrupamento da intenção breakdown
type GroupBy string

const (
	GroupByCustomer   GroupBy = "customer"
	GroupByDivision   GroupBy = "division"
	GroupByDepartment GroupBy = "department" // Sinônimo de division
	GroupBySalesRep   GroupBy = "salesRep"
	GroupByYear       GroupBy = "year"
	GroupByMonth      GroupBy = "month"
	GroupByDay        GroupBy = "day"
)

type GrossProfitThreshold struct {
	Operator ComparisonOperator `json:"operator"`
	Value    decimal.Decimal    `json:"value"`
}

// QueryDescriptor é a pergunta do usuário já resolvida em intenção e filtros
type QueryDescriptor struct {
	Intent               Intent                `json:"intent"`
	CustomerKeyword      string                `json:"customerKeyword,omitempty"`
	GrossProfitThreshold *GrossProfitThreshold `json:"grossProfitThreshold,omitempty"`
	ExactDate            string                `json:"exactDate,omitempty"`
	Year                 string                `json:"year,omitempty"`
	TopN                 int                   `json:"topN,omitempty"`
	Fields               []string              `json:"fields,omitempty"`
	Metric               Metric                `json:"metric,omitempty"`
	GroupBy              GroupBy               `json:"groupBy,omitempty"`
}

type GroupTotal struct {
	Rank   int             `json:"rank"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// ProjectedField é um par nome/valor de um registro projetado
type ProjectedField struct {
	Name  string
	Value any
}

// ProjectedRecord preserva a ordem dos campos pedidos na serialização JSON
type ProjectedRecord []ProjectedField

func (p ProjectedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get retorna o valor de um campo projetado pelo nome
func (p ProjectedRecord) Get(name string) (any, bool) {
	for _, field := range p {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// QueryResult é o resultado estruturado entregue ao renderizador externo.
// NoMatch distingue "nenhum registro" de um zero real.
type QueryResult struct {
	Intent             Intent            `json:"intent"`
	NoMatch            bool              `json:"no_match"`
	Message            string            `json:"message,omitempty"`
	Count              int               `json:"count"`
	TotalAmount        *decimal.Decimal  `json:"total_amount,omitempty"`
	MaxGrossProfitRate *decimal.Decimal  `json:"max_gross_profit_rate,omitempty"`
	Metric             Metric            `json:"metric,omitempty"`
	GroupBy            GroupBy           `json:"group_by,omitempty"`
	Records            []ProjectedRecord `json:"records,omitempty"`
	Groups             []GroupTotal      `json:"groups,omitempty"`
	Record             *SalesOrderRecord `json:"record,omitempty"`
}
