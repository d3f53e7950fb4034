package record

import (
	"bytes"
	"encoding/json"
)

// numeric accepts a JSON string or number and keeps its text, so amounts
// are parsed once, by the ledger, with the same rules as form input.
type numeric string

func (n *numeric) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*n = numeric(s)

		return nil
	}

	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}

	*n = numeric(num)

	return nil
}

type saleRequest struct {
	ProductName string  `json:"product_name"`
	SaleDate    string  `json:"sale_date"`
	UnitPrice   numeric `json:"unit_price"`
	Quantity    numeric `json:"quantity"`
}

type purchaseRequest struct {
	SupplierName string  `json:"supplier_name"`
	ProductName  string  `json:"product_name"`
	PurchaseDate string  `json:"purchase_date"`
	UnitPrice    numeric `json:"unit_price"`
	Quantity     numeric `json:"quantity"`
}

type saleReturnRequest struct {
	ProductName string  `json:"product_name"`
	ReturnDate  string  `json:"return_date"`
	UnitPrice   numeric `json:"unit_price"`
	Quantity    numeric `json:"quantity"`
}

type purchaseReturnRequest struct {
	SupplierName string  `json:"supplier_name"`
	ProductName  string  `json:"product_name"`
	ReturnDate   string  `json:"return_date"`
	UnitPrice    numeric `json:"unit_price"`
	Quantity     numeric `json:"quantity"`
}
