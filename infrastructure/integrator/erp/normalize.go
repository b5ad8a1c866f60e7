package erp

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	erpdomain "github.com/vfg2006/sales-order-assistant/infrastructure/integrator/erp/domain"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

var createdDateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"20060102",
}

// Normalize converte um pedido bruto do ERP no formato local.
// Campos numéricos inválidos viram zero e textos ausentes viram "Unknown",
// exceto ID e número do pedido, que são repassados como vieram.
func Normalize(raw erpdomain.SalesOrder) domain.SalesOrderRecord {
	return domain.SalesOrderRecord{
		ID:              string(raw.PK),
		DisplayNumber:   string(raw.UPK),
		CustomerName:    stringOrUnknown(raw.CustomerName),
		DivisionName:    stringOrUnknown(raw.DivisionName),
		SalesRepName:    stringOrUnknown(raw.SalesRepName),
		Amount:          ParseAmount(string(raw.Amount)),
		GrossProfitRate: ParsePercentage(string(raw.GrossProfitRate)),
		Status:          stringOrUnknown(raw.Status),
		CreatedDate:     ParseCreatedDate(string(raw.CreatedDate)),
		Description:     stringOrEmpty(raw.Description),
		Memo:            stringOrEmpty(raw.Memo),
	}
}

func NormalizeAll(raws []erpdomain.SalesOrder) []domain.SalesOrderRecord {
	records := make([]domain.SalesOrderRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, Normalize(raw))
	}
	return records
}

// ParseAmount converte um valor numérico do ERP. O formato padrão usa "." como
// decimal e "," como milhar; quando as duas marcas aparecem e a vírgula vem por
// último ("1.234,56"), o valor é lido no formato brasileiro.
func ParseAmount(value string) decimal.Decimal {
	if isBrazilianFormat(value) {
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
		return parseDecimal(value)
	}
	return parseDecimal(strings.ReplaceAll(value, ",", ""))
}

func isBrazilianFormat(value string) bool {
	comma := strings.LastIndex(value, ",")
	dot := strings.LastIndex(value, ".")
	return comma >= 0 && dot >= 0 && comma > dot
}

// ParsePercentage remove "%" e separadores de milhar antes de converter
func ParsePercentage(value string) decimal.Decimal {
	value = strings.ReplaceAll(value, "%", "")
	value = strings.ReplaceAll(value, ",", "")
	return parseDecimal(value)
}

func parseDecimal(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseCreatedDate devolve a data no formato YYYY-MM-DD, ou vazio quando não reconhecida
func ParseCreatedDate(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	for _, layout := range createdDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return ""
}

func stringOrUnknown(value erpdomain.FlexibleString) string {
	if strings.TrimSpace(string(value)) == "" {
		return domain.UnknownValue
	}
	return string(value)
}

func stringOrEmpty(value erpdomain.FlexibleString) string {
	return string(value)
}
