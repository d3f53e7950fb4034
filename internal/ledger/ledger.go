// Package ledger records sales, purchases and their returns and derives the
// profit, cash-flow, inventory and supplier-ledger views from them.
//
// Book holds the four record collections and computes every view as a pure
// function of its current state. Service wraps a Book with a writer lock and
// persists a full Snapshot through a Repository after every mutation.
package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind names one of the four record collections.
type Kind string

const (
	KindSale           Kind = "sale"
	KindPurchase       Kind = "purchase"
	KindSaleReturn     Kind = "sale_return"
	KindPurchaseReturn Kind = "purchase_return"
)

// SaleRecord is a single sale. TotalSale is UnitPrice × Quantity, computed
// once when the record is created.
type SaleRecord struct {
	ID          uuid.UUID       `json:"id"`
	ProductName string          `json:"product_name"`
	SaleDate    string          `json:"sale_date"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalSale   decimal.Decimal `json:"total_sale"`
}

// PurchaseRecord is a single purchase from a supplier.
type PurchaseRecord struct {
	ID            uuid.UUID       `json:"id"`
	SupplierName  string          `json:"supplier_name"`
	ProductName   string          `json:"product_name"`
	PurchaseDate  string          `json:"purchase_date"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalPurchase decimal.Decimal `json:"total_purchase"`
}

// SaleReturnRecord is goods returned by a customer.
type SaleReturnRecord struct {
	ID           uuid.UUID       `json:"id"`
	ProductName  string          `json:"product_name"`
	ReturnDate   string          `json:"return_date"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     decimal.Decimal `json:"quantity"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

// PurchaseReturnRecord is goods sent back to a supplier.
type PurchaseReturnRecord struct {
	ID           uuid.UUID       `json:"id"`
	SupplierName string          `json:"supplier_name"`
	ProductName  string          `json:"product_name"`
	ReturnDate   string          `json:"return_date"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalReturn  decimal.Decimal `json:"total_return"`
}

// SaleParams is the raw input of a sale. UnitPrice and Quantity are parsed
// by the ledger; anything non-numeric is rejected with ErrInvalidInput.
type SaleParams struct {
	ProductName string
	Date        string
	UnitPrice   string
	Quantity    string
}

type PurchaseParams struct {
	SupplierName string
	ProductName  string
	Date         string
	UnitPrice    string
	Quantity     string
}

type SaleReturnParams struct {
	ProductName string
	Date        string
	UnitPrice   string
	Quantity    string
}

type PurchaseReturnParams struct {
	SupplierName string
	ProductName  string
	Date         string
	UnitPrice    string
	Quantity     string
}

// Entry is a kind-tagged record input, used for batch ingestion.
// SupplierName is ignored for sales and sale returns.
type Entry struct {
	Kind         Kind
	SupplierName string
	ProductName  string
	Date         string
	UnitPrice    string
	Quantity     string
}

// ProfitResult is the outcome of Book.Profit.
type ProfitResult struct {
	TotalSales           decimal.Decimal `json:"total_sales"`
	TotalSaleReturns     decimal.Decimal `json:"total_sale_returns"`
	NetSales             decimal.Decimal `json:"net_sales"`
	TotalPurchases       decimal.Decimal `json:"total_purchases"`
	TotalPurchaseReturns decimal.Decimal `json:"total_purchase_returns"`
	NetPurchases         decimal.Decimal `json:"net_purchases"`
	GrossProfit          decimal.Decimal `json:"gross_profit"`
	OperatingExpenses    decimal.Decimal `json:"operating_expenses"`
	NetProfit            decimal.Decimal `json:"net_profit"`
}

// CashFlowResult is the outcome of Book.CashFlow.
type CashFlowResult struct {
	OpeningBalance    decimal.Decimal `json:"opening_balance"`
	CashInflow        decimal.Decimal `json:"cash_inflow"`
	CashOutflow       decimal.Decimal `json:"cash_outflow"`
	AdditionalOutflow decimal.Decimal `json:"additional_outflow"`
	ClosingBalance    decimal.Decimal `json:"closing_balance"`
}

// DailyFlow is the cash movement recorded under one date string.
type DailyFlow struct {
	Date    string          `json:"date"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// WeeklyFlow is the cash movement of one ISO week, keyed "2024-W05".
type WeeklyFlow struct {
	Week    string          `json:"week"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// CashFlowReport groups cash movements by day and by ISO week, both sorted
// ascending.
type CashFlowReport struct {
	Daily  []DailyFlow  `json:"daily"`
	Weekly []WeeklyFlow `json:"weekly"`
}

// InventoryRow holds the quantity movements of one product.
type InventoryRow struct {
	Purchased        decimal.Decimal `json:"purchased"`
	PurchaseReturns  decimal.Decimal `json:"purchase_returns"`
	Sold             decimal.Decimal `json:"sold"`
	SalesReturns     decimal.Decimal `json:"sales_returns"`
	CurrentInventory decimal.Decimal `json:"current_inventory"`
}

// LedgerRow is the purchase activity of one supplier.
// Entries is only filled by Book.SupplierLedger.
type LedgerRow struct {
	Supplier        string                 `json:"supplier"`
	Purchases       []PurchaseRecord       `json:"purchases"`
	PurchaseReturns []PurchaseReturnRecord `json:"purchase_returns"`
	TotalPurchase   decimal.Decimal        `json:"total_purchase"`
	TotalReturn     decimal.Decimal        `json:"total_return"`
	Net             decimal.Decimal        `json:"net"`
	Entries         []LedgerEntry          `json:"entries,omitempty"`
}

// LedgerEntry is one purchase or purchase return in a supplier's
// chronological listing. Amount is the stored total of the record.
type LedgerEntry struct {
	Kind        Kind            `json:"kind"`
	Date        string          `json:"date"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}
