package querying

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func record(id, customer, gp, date string) domain.SalesOrderRecord {
	return domain.SalesOrderRecord{
		ID:              id,
		DisplayNumber:   "SO-" + id,
		CustomerName:    customer,
		DivisionName:    domain.UnknownValue,
		SalesRepName:    domain.UnknownValue,
		Amount:          decimal.Zero,
		GrossProfitRate: dec(gp),
		Status:          "Open",
		CreatedDate:     date,
	}
}

func withAmount(r domain.SalesOrderRecord, amount string) domain.SalesOrderRecord {
	r.Amount = dec(amount)
	return r
}

func ids(records []domain.SalesOrderRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	records := []domain.SalesOrderRecord{
		record("1", "Acme", "60", "2024-01-01"),
		record("2", "Acme", "40", "2024-06-01"),
		record("3", "Beta", "70", "2024-01-01"),
		record("4", "Gamma", "50", "2023-12-31"),
	}

	tests := []struct {
		name       string
		descriptor domain.QueryDescriptor
		expected   []string
	}{
		{
			name: "palavra-chave e margem bruta combinadas",
			descriptor: domain.QueryDescriptor{
				CustomerKeyword:      "acme",
				GrossProfitThreshold: &domain.GrossProfitThreshold{Operator: domain.OperatorGreater, Value: dec("50")},
			},
			expected: []string{"1"},
		},
		{
			name:       "sem filtros mantém a ordem original",
			descriptor: domain.QueryDescriptor{},
			expected:   []string{"1", "2", "3", "4"},
		},
		{
			name:       "palavra-chave ignora maiúsculas",
			descriptor: domain.QueryDescriptor{CustomerKeyword: "  BETA "},
			expected:   []string{"3"},
		},
		{
			name: "margem bruta maior ou igual",
			descriptor: domain.QueryDescriptor{
				GrossProfitThreshold: &domain.GrossProfitThreshold{Operator: domain.OperatorGreaterOrEqual, Value: dec("60")},
			},
			expected: []string{"1", "3"},
		},
		{
			name: "margem bruta igual",
			descriptor: domain.QueryDescriptor{
				GrossProfitThreshold: &domain.GrossProfitThreshold{Operator: domain.OperatorEqual, Value: dec("50.00")},
			},
			expected: []string{"4"},
		},
		{
			name: "margem bruta menor",
			descriptor: domain.QueryDescriptor{
				GrossProfitThreshold: &domain.GrossProfitThreshold{Operator: domain.OperatorLess, Value: dec("50")},
			},
			expected: []string{"2"},
		},
		{
			name:       "data exata",
			descriptor: domain.QueryDescriptor{ExactDate: "2024-01-01"},
			expected:   []string{"1", "3"},
		},
		{
			name:       "ano",
			descriptor: domain.QueryDescriptor{Year: "2023"},
			expected:   []string{"4"},
		},
		{
			name:       "nenhum registro corresponde",
			descriptor: domain.QueryDescriptor{CustomerKeyword: "delta"},
			expected:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Filter(tt.descriptor, records)))
		})
	}
}

func TestFilter_KeywordMatchesDescriptionAndMemo(t *testing.T) {
	withDescription := record("1", "Acme", "10", "2024-01-01")
	withDescription.Description = "Reposição para a Loja Centro"
	withMemo := record("2", "Beta", "10", "2024-01-01")
	withMemo.Memo = "entregar na loja centro"

	matches := Filter(domain.QueryDescriptor{CustomerKeyword: "loja centro"}, []domain.SalesOrderRecord{
		withDescription,
		withMemo,
		record("3", "Gamma", "10", "2024-01-01"),
	})

	assert.Equal(t, []string{"1", "2"}, ids(matches))
}

func TestEngine_TopCustomers(t *testing.T) {
	records := []domain.SalesOrderRecord{
		withAmount(record("1", "Acme", "10", "2024-01-01"), "100"),
		withAmount(record("2", "Beta", "10", "2024-01-02"), "500"),
		withAmount(record("3", "Gamma", "10", "2024-01-03"), "200"),
		withAmount(record("4", "Acme", "10", "2024-01-04"), "200"),
	}

	result, err := NewEngine().Answer(domain.QueryDescriptor{Intent: domain.IntentTopCustomers, TopN: 2}, records)
	require.NoError(t, err)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, 1, result.Groups[0].Rank)
	assert.Equal(t, "Beta", result.Groups[0].Name)
	assert.True(t, result.Groups[0].Amount.Equal(dec("500")))
	assert.Equal(t, 2, result.Groups[1].Rank)
	assert.Equal(t, "Acme", result.Groups[1].Name)
	assert.True(t, result.Groups[1].Amount.Equal(dec("300")))
	assert.Equal(t, 2, result.Groups[1].Count)
}

func TestEngine_TopGroupsDefaultsAndTies(t *testing.T) {
	first := withAmount(record("1", "Acme", "10", "2024-01-01"), "100")
	first.DivisionName = "Norte"
	first.SalesRepName = "Ana"
	second := withAmount(record("2", "Beta", "10", "2024-01-01"), "100")
	second.DivisionName = "Sul"
	second.SalesRepName = "Bruno"
	records := []domain.SalesOrderRecord{first, second}

	tests := []struct {
		name     string
		intent   domain.Intent
		topN     int
		expected []string
	}{
		{name: "topN zero vira um", intent: domain.IntentTopCustomers, topN: 0, expected: []string{"Acme"}},
		{name: "empate mantém a ordem de aparição", intent: domain.IntentTopDivision, topN: 5, expected: []string{"Norte", "Sul"}},
		{name: "vendedores", intent: domain.IntentTopSales, topN: 2, expected: []string{"Ana", "Bruno"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewEngine().Answer(domain.QueryDescriptor{Intent: tt.intent, TopN: tt.topN}, records)
			require.NoError(t, err)

			names := make([]string, 0, len(result.Groups))
			for _, g := range result.Groups {
				names = append(names, g.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestEngine_EmptyResult(t *testing.T) {
	records := []domain.SalesOrderRecord{record("1", "Acme", "60", "2024-01-01")}

	intents := []domain.Intent{
		domain.IntentCount,
		domain.IntentTotal,
		domain.IntentList,
		domain.IntentSample,
		domain.IntentTopCustomers,
		domain.IntentMax,
		domain.IntentBreakdown,
	}

	for _, intent := range intents {
		t.Run(string(intent), func(t *testing.T) {
			result, err := NewEngine().Answer(domain.QueryDescriptor{Intent: intent, CustomerKeyword: "nada"}, records)
			require.NoError(t, err)

			assert.True(t, result.NoMatch)
			assert.Equal(t, NoMatchMessage, result.Message)
			assert.Equal(t, 0, result.Count)
			assert.Empty(t, result.Records)
			assert.Empty(t, result.Groups)
			assert.Nil(t, result.Record)
		})
	}

	t.Run("count devolve zero explícito", func(t *testing.T) {
		result, err := NewEngine().Answer(domain.QueryDescriptor{Intent: domain.IntentCount, Year: "1999"}, records)
		require.NoError(t, err)
		require.NotNil(t, result.TotalAmount)
		assert.True(t, result.TotalAmount.IsZero())
	})
}

func TestEngine_CountAndTotal(t *testing.T) {
	records := []domain.SalesOrderRecord{
		withAmount(record("1", "Acme", "60", "2024-01-01"), "1200.50"),
		withAmount(record("2", "Acme", "72.5", "2024-06-01"), "99.50"),
		withAmount(record("3", "Beta", "70", "2023-01-01"), "10"),
	}

	count, err := NewEngine().Answer(domain.QueryDescriptor{Intent: domain.IntentCount, Year: "2024"}, records)
	require.NoError(t, err)
	assert.False(t, count.NoMatch)
	assert.Equal(t, 2, count.Count)
	assert.True(t, count.TotalAmount.Equal(dec("1300")))
	assert.True(t, count.MaxGrossProfitRate.Equal(dec("72.5")))

	total, err := NewEngine().Answer(domain.QueryDescriptor{Intent: domain.IntentTotal}, records)
	require.NoError(t, err)
	assert.Equal(t, 3, total.Count)
	assert.True(t, total.TotalAmount.Equal(dec("1310")))
	assert.Nil(t, total.MaxGrossProfitRate)
}

func TestEngine_ListAndSample(t *testing.T) {
	records := []domain.SalesOrderRecord{
		record("1", "Acme", "60", "2024-01-01"),
		record("2", "Beta", "40", "2024-06-01"),
	}

	t.Run("lista com projeção padrão na ordem original", func(t *testing.T) {
		result, err := NewEngine().Answer(domain.QueryDescriptor{Intent: domain.IntentList}, records)
		require.NoError(t, err)

		require.Len(t, result.Records, 2)
		assert.Equal(t, domain.ProjectedRecord{
			{Name: FieldDisplayNumber, Value: "SO-1"},
			{Name: FieldGrossProfitRate, Value: dec("60")},
		}, result.Records[0])
		value, ok := result.Records[1].Get(FieldDisplayNumber)
		require.True(t, ok)
		assert.Equal(t, "SO-2", value)
	})

	t.Run("lista com campos pedidos, aliases e desconhecidos", func(t *testing.T) {
		result, err := NewEngine().Answer(domain.QueryDescriptor{
			Intent: domain.IntentList,
			Fields: []string{"customer_name", "so_pk", "inexistente", "customerName"},
		}, records)
		require.NoError(t, err)

		assert.Equal(t, domain.ProjectedRecord{
			{Name: FieldCustomerName, Value: "Acme"},
			{Name: FieldID, Value: "1"},
		}, result.Records[0])
	})

	t.Run("amostra devolve apenas o primeiro", func(t *testing.T) {
		result, err := NewEngine().Answer(domain.QueryDescriptor{Intent: domain.IntentSample, Fields: []string{"date"}}, records)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Count)
		assert.Equal(t, []domain.ProjectedRecord{{{Name: FieldCreatedDate, Value: "2024-01-01"}}}, result.Records)
	})
}

func TestProjectedRecord_MarshalJSON(t *testing.T) {
	projected := domain.ProjectedRecord{
		{Name: FieldDisplayNumber, Value: "SO-1"},
		{Name: FieldAmount, Value: dec("10.5")},
	}

	data, err := projected.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"displayNumber":"SO-1","amount":"10.5"}`, string(data))
}

func TestEngine_MaxMin(t *testing.T) {
	records := []domain.SalesOrderRecord{
		withAmount(record("1", "Acme", "60", "2024-01-01"), "300"),
		withAmount(record("2", "Beta", "75", "2024-01-02"), "100"),
		withAmount(record("3", "Gamma", "75", "2024-01-03"), "300"),
		withAmount(record("4", "Delta", "10", "2024-01-04"), "100"),
	}

	tests := []struct {
		name       string
		descriptor domain.QueryDescriptor
		expectedID string
		metric     domain.Metric
	}{
		{name: "max por valor usa o primeiro em empate", descriptor: domain.QueryDescriptor{Intent: domain.IntentMax}, expectedID: "1", metric: domain.MetricAmount},
		{name: "min por valor", descriptor: domain.QueryDescriptor{Intent: domain.IntentMin}, expectedID: "2", metric: domain.MetricAmount},
		{name: "max por margem", descriptor: domain.QueryDescriptor{Intent: domain.IntentMax, Metric: domain.MetricGrossProfitRate}, expectedID: "2", metric: domain.MetricGrossProfitRate},
		{name: "min por margem", descriptor: domain.QueryDescriptor{Intent: domain.IntentMin, Metric: domain.MetricGrossProfitRate}, expectedID: "4", metric: domain.MetricGrossProfitRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewEngine().Answer(tt.descriptor, records)
			require.NoError(t, err)
			require.NotNil(t, result.Record)
			assert.Equal(t, tt.expectedID, result.Record.ID)
			assert.Equal(t, tt.metric, result.Metric)
		})
	}
}

func TestEngine_Breakdown(t *testing.T) {
	records := []domain.SalesOrderRecord{
		withAmount(record("1", "Acme", "10", "2024-03-10"), "100"),
		withAmount(record("2", "Beta", "10", "2023-11-01"), "400"),
		withAmount(record("3", "Acme", "10", "2024-03-15"), "50"),
		withAmount(record("4", "Gamma", "10", ""), "10"),
	}

	tests := []struct {
		name     string
		groupBy  domain.GroupBy
		expected []string
	}{
		{name: "cliente por padrão, ordenado por valor", groupBy: "", expected: []string{"Beta", "Acme", "Gamma"}},
		{name: "mês em ordem cronológica", groupBy: domain.GroupByMonth, expected: []string{"2023-11", "2024-03", domain.UnknownValue}},
		{name: "ano", groupBy: domain.GroupByYear, expected: []string{"2023", "2024", domain.UnknownValue}},
		{name: "dia", groupBy: domain.GroupByDay, expected: []string{"2023-11-01", "2024-03-10", "2024-03-15", domain.UnknownValue}},
		{name: "departamento é sinônimo de divisão", groupBy: domain.GroupByDepartment, expected: []string{domain.UnknownValue}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewEngine().Answer(domain.QueryDescriptor{Intent: domain.IntentBreakdown, GroupBy: tt.groupBy}, records)
			require.NoError(t, err)

			names := make([]string, 0, len(result.Groups))
			for i, g := range result.Groups {
				names = append(names, g.Name)
				assert.Equal(t, i+1, g.Rank)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestEngine_Validation(t *testing.T) {
	records := []domain.SalesOrderRecord{record("1", "Acme", "60", "2024-01-01")}

	tests := []struct {
		name       string
		descriptor domain.QueryDescriptor
		expected   error
	}{
		{name: "intenção geral", descriptor: domain.QueryDescriptor{Intent: domain.IntentGeneral}, expected: ErrGeneralIntent},
		{name: "intenção desconhecida", descriptor: domain.QueryDescriptor{Intent: "explain"}, expected: ErrUnknownIntent},
		{name: "intenção vazia", descriptor: domain.QueryDescriptor{}, expected: ErrUnknownIntent},
		{
			name: "operador inválido",
			descriptor: domain.QueryDescriptor{
				Intent:               domain.IntentCount,
				GrossProfitThreshold: &domain.GrossProfitThreshold{Operator: "!=", Value: dec("1")},
			},
			expected: ErrInvalidOperator,
		},
		{name: "ano inválido", descriptor: domain.QueryDescriptor{Intent: domain.IntentCount, Year: "24"}, expected: ErrInvalidYear},
		{name: "data inválida", descriptor: domain.QueryDescriptor{Intent: domain.IntentCount, ExactDate: "01/02/2024"}, expected: ErrInvalidDate},
		{name: "topN negativo", descriptor: domain.QueryDescriptor{Intent: domain.IntentTopCustomers, TopN: -1}, expected: ErrInvalidTopN},
		{name: "métrica inválida", descriptor: domain.QueryDescriptor{Intent: domain.IntentMax, Metric: "margin"}, expected: ErrInvalidMetric},
		{name: "agrupamento inválido", descriptor: domain.QueryDescriptor{Intent: domain.IntentBreakdown, GroupBy: "week"}, expected: ErrInvalidGroupBy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewEngine().Answer(tt.descriptor, records)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, result)
		})
	}
}

func TestValidate_QueryErrorCarriesField(t *testing.T) {
	err := Validate(domain.QueryDescriptor{Intent: domain.IntentCount, Year: "abcd"})

	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "year", queryErr.Field)
	assert.Equal(t, "abcd", queryErr.Value)
}
