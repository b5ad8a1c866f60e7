package erpdomain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexibleNumber aceita número, string ou null no JSON do ERP e guarda o texto original.
// A conversão para decimal fica a cargo do normalizador.
type FlexibleNumber string

func (n *FlexibleNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = FlexibleNumber(s)
		return nil
	}

	// Números, booleanos ou qualquer outro literal são guardados como texto
	*n = FlexibleNumber(data)
	return nil
}

// FlexibleString aceita string, número, booleano ou null (o ERP devolve so_pk numérico
// em algumas rotas). Objetos e listas são guardados como o JSON original.
type FlexibleString string

func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexibleString(str)
		return nil
	}

	*s = FlexibleString(strings.Trim(string(data), " "))
	return nil
}

// SalesOrder é o registro bruto de pedido de venda como devolvido pelo ERP.
// Todos os campos aceitam qualquer valor escalar, para que um registro mal
// formado não invalide a página inteira.
type SalesOrder struct {
	PK              FlexibleString `json:"so_pk"`
	UPK             FlexibleString `json:"so_upk"`
	CustomerName    FlexibleString `json:"customer_name,omitempty"`
	DivisionName    FlexibleString `json:"division_name,omitempty"`
	SalesRepName    FlexibleString `json:"sales_rep_name,omitempty"`
	Amount          FlexibleNumber `json:"amount,omitempty"`
	GrossProfitRate FlexibleNumber `json:"gp_rate,omitempty"`
	Status          FlexibleString `json:"status,omitempty"`
	CreatedDate     FlexibleString `json:"created_date,omitempty"`
	Description     FlexibleString `json:"description,omitempty"`
	Memo            FlexibleString `json:"memo,omitempty"`
}

// SalesOrderSearchRequest é o corpo do POST de busca paginada
type SalesOrderSearchRequest struct {
	LocationID string `json:"location_id"`
	EmployeeID string `json:"employee_id"`
	PreparedBy string `json:"prepared_by"`
	ViewAll    bool   `json:"view_all"`
	Filter     string `json:"filter"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}

// SalesOrderSearchResponse é o envelope devolvido pelo ERP; os registros ficam em data.records
type SalesOrderSearchResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    struct {
		TotalCount int          `json:"total_count"`
		Records    []SalesOrder `json:"records"`
	} `json:"data"`
}
