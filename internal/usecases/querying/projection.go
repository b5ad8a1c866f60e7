package querying

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

const (
	FieldID              = "id"
	FieldDisplayNumber   = "displayNumber"
	FieldCustomerName    = "customerName"
	FieldDivisionName    = "divisionName"
	FieldSalesRepName    = "salesRepName"
	FieldAmount          = "amount"
	FieldGrossProfitRate = "grossProfitRate"
	FieldStatus          = "status"
	FieldCreatedDate     = "createdDate"
	FieldDescription     = "description"
	FieldMemo            = "memo"
)

// DefaultFields é a projeção usada quando a consulta não pede campos
var DefaultFields = []string{FieldDisplayNumber, FieldGrossProfitRate}

// fieldAliases mapeia nomes normalizados (minúsculos, sem "_" e "-") para o nome canônico,
// incluindo os nomes usados pelo ERP
var fieldAliases = map[string]string{
	"id":              FieldID,
	"sopk":            FieldID,
	"displaynumber":   FieldDisplayNumber,
	"soupk":           FieldDisplayNumber,
	"ordernumber":     FieldDisplayNumber,
	"customername":    FieldCustomerName,
	"customer":        FieldCustomerName,
	"divisionname":    FieldDivisionName,
	"division":        FieldDivisionName,
	"department":      FieldDivisionName,
	"salesrepname":    FieldSalesRepName,
	"salesrep":        FieldSalesRepName,
	"amount":          FieldAmount,
	"grossprofitrate": FieldGrossProfitRate,
	"gprate":          FieldGrossProfitRate,
	"gp":              FieldGrossProfitRate,
	"status":          FieldStatus,
	"createddate":     FieldCreatedDate,
	"date":            FieldCreatedDate,
	"description":     FieldDescription,
	"memo":            FieldMemo,
}

// CanonicalField resolve o nome de um campo pedido para o nome canônico
func CanonicalField(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	canonical, ok := fieldAliases[key]
	return canonical, ok
}

// resolveFields devolve a lista canônica e sem repetições; campos desconhecidos são ignorados
func resolveFields(requested []string) []string {
	fields := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, name := range requested {
		canonical, ok := CanonicalField(name)
		if !ok {
			logrus.WithField("field", name).Debug("Campo de projeção desconhecido ignorado")
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		fields = append(fields, canonical)
	}

	if len(fields) == 0 {
		return DefaultFields
	}
	return fields
}

func fieldValue(record domain.SalesOrderRecord, field string) any {
	switch field {
	case FieldID:
		return record.ID
	case FieldDisplayNumber:
		return record.DisplayNumber
	case FieldCustomerName:
		return record.CustomerName
	case FieldDivisionName:
		return record.DivisionName
	case FieldSalesRepName:
		return record.SalesRepName
	case FieldAmount:
		return record.Amount
	case FieldGrossProfitRate:
		return record.GrossProfitRate
	case FieldStatus:
		return record.Status
	case FieldCreatedDate:
		return record.CreatedDate
	case FieldDescription:
		return record.Description
	case FieldMemo:
		return record.Memo
	}
	return nil
}

func project(record domain.SalesOrderRecord, fields []string) domain.ProjectedRecord {
	projected := make(domain.ProjectedRecord, 0, len(fields))
	for _, field := range fields {
		projected = append(projected, domain.ProjectedField{
			Name:  field,
			Value: fieldValue(record, field),
		})
	}
	return projected
}
