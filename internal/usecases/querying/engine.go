// Package querying responde consultas estruturadas sobre o snapshot local de pedidos
package querying

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

// NoMatchMessage acompanha todo resultado sem registros correspondentes
const NoMatchMessage = "no matching records"

var yearPattern = regexp.MustCompile(`^\d{4}$`)

type QueryEngine interface {
	Answer(descriptor domain.QueryDescriptor, records []domain.SalesOrderRecord) (*domain.QueryResult, error)
}

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Validate verifica o descritor sem aplicar valores padrão
func Validate(descriptor domain.QueryDescriptor) error {
	switch descriptor.Intent {
	case domain.IntentCount, domain.IntentList, domain.IntentSample,
		domain.IntentTopCustomers, domain.IntentTopDivision, domain.IntentTopSales,
		domain.IntentTotal, domain.IntentMax, domain.IntentMin, domain.IntentBreakdown,
		domain.IntentGeneral:
	default:
		return newQueryError(ErrUnknownIntent, "intent", descriptor.Intent)
	}

	if threshold := descriptor.GrossProfitThreshold; threshold != nil {
		switch threshold.Operator {
		case domain.OperatorGreater, domain.OperatorLess, domain.OperatorGreaterOrEqual,
			domain.OperatorLessOrEqual, domain.OperatorEqual:
		default:
			return newQueryError(ErrInvalidOperator, "grossProfitThreshold.operator", threshold.Operator)
		}
	}

	if descriptor.ExactDate != "" {
		if _, err := time.Parse(time.DateOnly, descriptor.ExactDate); err != nil {
			return newQueryError(ErrInvalidDate, "exactDate", descriptor.ExactDate)
		}
	}

	if descriptor.Year != "" && !yearPattern.MatchString(descriptor.Year) {
		return newQueryError(ErrInvalidYear, "year", descriptor.Year)
	}

	if descriptor.TopN < 0 {
		return newQueryError(ErrInvalidTopN, "topN", descriptor.TopN)
	}

	switch descriptor.Metric {
	case "", domain.MetricAmount, domain.MetricGrossProfitRate:
	default:
		return newQueryError(ErrInvalidMetric, "metric", descriptor.Metric)
	}

	switch descriptor.GroupBy {
	case "", domain.GroupByCustomer, domain.GroupByDivision, domain.GroupByDepartment,
		domain.GroupBySalesRep, domain.GroupByYear, domain.GroupByMonth, domain.GroupByDay:
	default:
		return newQueryError(ErrInvalidGroupBy, "groupBy", descriptor.GroupBy)
	}

	return nil
}

// Answer filtra e agrega os registros conforme o descritor.
// records deve ser uma visão imutável (ver snapshot.Snapshot.Records).
func (e *Engine) Answer(descriptor domain.QueryDescriptor, records []domain.SalesOrderRecord) (*domain.QueryResult, error) {
	if err := Validate(descriptor); err != nil {
		return nil, err
	}

	if descriptor.Intent == domain.IntentGeneral {
		return nil, ErrGeneralIntent
	}

	descriptor = withDefaults(descriptor)
	matches := Filter(descriptor, records)

	result := &domain.QueryResult{
		Intent: descriptor.Intent,
		Count:  len(matches),
	}

	if len(matches) == 0 {
		result.NoMatch = true
		result.Message = NoMatchMessage
		if descriptor.Intent == domain.IntentCount || descriptor.Intent == domain.IntentTotal {
			zero := decimal.Zero
			result.TotalAmount = &zero
		}
		return result, nil
	}

	switch descriptor.Intent {
	case domain.IntentCount:
		total := sumAmount(matches)
		maxRate := matches[0].GrossProfitRate
		for _, r := range matches[1:] {
			if r.GrossProfitRate.GreaterThan(maxRate) {
				maxRate = r.GrossProfitRate
			}
		}
		result.TotalAmount = &total
		result.MaxGrossProfitRate = &maxRate

	case domain.IntentTotal:
		total := sumAmount(matches)
		result.TotalAmount = &total

	case domain.IntentList:
		fields := resolveFields(descriptor.Fields)
		result.Records = make([]domain.ProjectedRecord, 0, len(matches))
		for _, r := range matches {
			result.Records = append(result.Records, project(r, fields))
		}

	case domain.IntentSample:
		fields := resolveFields(descriptor.Fields)
		result.Records = []domain.ProjectedRecord{project(matches[0], fields)}

	case domain.IntentTopCustomers:
		result.Groups = topGroups(groupByKey(matches, customerKey), descriptor.TopN)

	case domain.IntentTopDivision:
		result.Groups = topGroups(groupByKey(matches, divisionKey), descriptor.TopN)

	case domain.IntentTopSales:
		result.Groups = topGroups(groupByKey(matches, salesRepKey), descriptor.TopN)

	case domain.IntentMax, domain.IntentMin:
		selected := extreme(matches, descriptor.Metric, descriptor.Intent == domain.IntentMax)
		result.Metric = descriptor.Metric
		result.Record = &selected

	case domain.IntentBreakdown:
		result.GroupBy = descriptor.GroupBy
		result.Groups = breakdown(matches, descriptor.GroupBy)
	}

	return result, nil
}

func withDefaults(descriptor domain.QueryDescriptor) domain.QueryDescriptor {
	if descriptor.TopN == 0 {
		descriptor.TopN = 1
	}
	if descriptor.Metric == "" {
		descriptor.Metric = domain.MetricAmount
	}
	switch descriptor.GroupBy {
	case "":
		descriptor.GroupBy = domain.GroupByCustomer
	case domain.GroupByDepartment:
		descriptor.GroupBy = domain.GroupByDivision
	}
	return descriptor
}

// Filter aplica, nesta ordem, palavra-chave do cliente, margem bruta, data exata e ano.
// A ordem original dos registros é preservada.
func Filter(descriptor domain.QueryDescriptor, records []domain.SalesOrderRecord) []domain.SalesOrderRecord {
	keyword := strings.ToLower(strings.TrimSpace(descriptor.CustomerKeyword))

	matches := make([]domain.SalesOrderRecord, 0)
	for _, r := range records {
		if keyword != "" && !matchesKeyword(r, keyword) {
			continue
		}
		if t := descriptor.GrossProfitThreshold; t != nil && !compare(r.GrossProfitRate, t.Operator, t.Value) {
			continue
		}
		if descriptor.ExactDate != "" && r.CreatedDate != descriptor.ExactDate {
			continue
		}
		if descriptor.Year != "" && !strings.HasPrefix(r.CreatedDate, descriptor.Year) {
			continue
		}
		matches = append(matches, r)
	}
	return matches
}

func matchesKeyword(r domain.SalesOrderRecord, keyword string) bool {
	return strings.Contains(strings.ToLower(r.CustomerName), keyword) ||
		strings.Contains(strings.ToLower(r.Description), keyword) ||
		strings.Contains(strings.ToLower(r.Memo), keyword)
}

func compare(value decimal.Decimal, operator domain.ComparisonOperator, threshold decimal.Decimal) bool {
	switch operator {
	case domain.OperatorGreater:
		return value.GreaterThan(threshold)
	case domain.OperatorLess:
		return value.LessThan(threshold)
	case domain.OperatorGreaterOrEqual:
		return value.GreaterThanOrEqual(threshold)
	case domain.OperatorLessOrEqual:
		return value.LessThanOrEqual(threshold)
	case domain.OperatorEqual:
		return value.Equal(threshold)
	}
	return false
}

func sumAmount(records []domain.SalesOrderRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// extreme devolve o primeiro registro com o maior (ou menor) valor da métrica
func extreme(records []domain.SalesOrderRecord, metric domain.Metric, highest bool) domain.SalesOrderRecord {
	value := func(r domain.SalesOrderRecord) decimal.Decimal {
		if metric == domain.MetricGrossProfitRate {
			return r.GrossProfitRate
		}
		return r.Amount
	}

	selected := records[0]
	for _, r := range records[1:] {
		cmp := value(r).Cmp(value(selected))
		if (highest && cmp > 0) || (!highest && cmp < 0) {
			selected = r
		}
	}
	return selected
}

type groupKeyFunc func(domain.SalesOrderRecord) string

func customerKey(r domain.SalesOrderRecord) string { return r.CustomerName }
func divisionKey(r domain.SalesOrderRecord) string { return r.DivisionName }
func salesRepKey(r domain.SalesOrderRecord) string { return r.SalesRepName }

func timeBucketKey(length int) groupKeyFunc {
	return func(r domain.SalesOrderRecord) string {
		if len(r.CreatedDate) < length {
			return domain.UnknownValue
		}
		return r.CreatedDate[:length]
	}
}

// groupByKey soma os valores por grupo, na ordem em que cada grupo aparece pela primeira vez
func groupByKey(records []domain.SalesOrderRecord, key groupKeyFunc) []domain.GroupTotal {
	index := make(map[string]int)
	groups := make([]domain.GroupTotal, 0)
	for _, r := range records {
		name := key(r)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, domain.GroupTotal{Name: name, Amount: decimal.Zero})
		}
		groups[i].Amount = groups[i].Amount.Add(r.Amount)
		groups[i].Count++
	}
	return groups
}

// rankByAmount ordena por valor decrescente; empates mantêm a ordem de aparição
func rankByAmount(groups []domain.GroupTotal) []domain.GroupTotal {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Amount.GreaterThan(groups[j].Amount)
	})
	for i := range groups {
		groups[i].Rank = i + 1
	}
	return groups
}

func topGroups(groups []domain.GroupTotal, topN int) []domain.GroupTotal {
	groups = rankByAmount(groups)
	if topN < len(groups) {
		groups = groups[:topN]
	}
	return groups
}

// breakdown agrupa pela dimensão pedida. Dimensões de tempo ficam em ordem cronológica,
// as demais em ordem decrescente de valor.
func breakdown(records []domain.SalesOrderRecord, groupBy domain.GroupBy) []domain.GroupTotal {
	var key groupKeyFunc
	chronological := false

	switch groupBy {
	case domain.GroupByDivision:
		key = divisionKey
	case domain.GroupBySalesRep:
		key = salesRepKey
	case domain.GroupByYear:
		key, chronological = timeBucketKey(4), true
	case domain.GroupByMonth:
		key, chronological = timeBucketKey(7), true
	case domain.GroupByDay:
		key, chronological = timeBucketKey(10), true
	default:
		key = customerKey
	}

	groups := groupByKey(records, key)
	if !chronological {
		return rankByAmount(groups)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	for i := range groups {
		groups[i].Rank = i + 1
	}
	return groups
}
