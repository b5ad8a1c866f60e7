// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownValue é usado quando o ERP não informa um campo textual descritivo
const UnknownValue = "Unknown"

// SalesOrderRecord é um pedido de venda normalizado, identificado por ID (so_pk no ERP).
// Depois de armazenado, um registro nunca é alterado.
type SalesOrderRecord struct {
	ID              string          `json:"id"`
	DisplayNumber   string          `json:"display_number"`
	CustomerName    string          `json:"customer_name"`
	DivisionName    string          `json:"division_name"`
	SalesRepName    string          `json:"sales_rep_name"`
	Amount          decimal.Decimal `json:"amount"`
	GrossProfitRate decimal.Decimal `json:"gross_profit_rate"`
	Status          string          `json:"status"`
	CreatedDate     string          `json:"created_date"` // Formato YYYY-MM-DD
	Description     string          `json:"description,omitempty"`
	Memo            string          `json:"memo,omitempty"`
}

// QueryWindow delimita um intervalo de datas (inclusivo) buscado no ERP em um ciclo
type QueryWindow struct {
	Start time.Time
	End   time.Time
}

// AnnualWindow retorna a janela de 1º de janeiro a 31 de dezembro do ano informado
func AnnualWindow(year int) QueryWindow {
	return QueryWindow{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (w QueryWindow) String() string {
	return w.Start.Format(time.DateOnly) + ".." + w.End.Format(time.DateOnly)
}
