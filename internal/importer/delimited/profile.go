package delimited

import "github.com/MrJamesThe3rd/tally/internal/ledger"

// Canonical column names. Headers are matched after normalize and aliases.
const (
	colKind     = "kind"
	colSupplier = "supplier_name"
	colProduct  = "product_name"
	colDate     = "date"
	colSaleDate = "sale_date"
	colBuyDate  = "purchase_date"
	colRetDate  = "return_date"
	colPrice    = "unit_price"
	colQuantity = "quantity"
)

var aliases = map[string]string{
	"type":     colKind,
	"record":   colKind,
	"supplier": colSupplier,
	"vendor":   colSupplier,
	"product":  colProduct,
	"item":     colProduct,
	"price":    colPrice,
	"qty":      colQuantity,
}

// Profile describes the columns of one kind of export. Adding a layout is
// adding a Profile to the profiles slice.
type Profile struct {
	Name string
	// Kind is fixed for the whole file unless KindCol names a column
	// holding the kind of each row.
	Kind        ledger.Kind
	KindCol     string
	SupplierCol string
	ProductCol  string
	DateCol     string
	PriceCol    string
	QuantityCol string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.ProductCol, p.DateCol, p.PriceCol, p.QuantityCol}

	if p.KindCol != "" {
		cols = append(cols, p.KindCol)
	} else if p.SupplierCol != "" {
		cols = append(cols, p.SupplierCol)
	}

	return cols
}

// profiles is tried in order; more specific profiles come first.
var profiles = []Profile{
	{
		Name:        "mixed",
		KindCol:     colKind,
		SupplierCol: colSupplier,
		ProductCol:  colProduct,
		DateCol:     colDate,
		PriceCol:    colPrice,
		QuantityCol: colQuantity,
	},
	{
		Name:        "purchase returns",
		Kind:        ledger.KindPurchaseReturn,
		SupplierCol: colSupplier,
		ProductCol:  colProduct,
		DateCol:     colRetDate,
		PriceCol:    colPrice,
		QuantityCol: colQuantity,
	},
	{
		Name:        "purchases",
		Kind:        ledger.KindPurchase,
		SupplierCol: colSupplier,
		ProductCol:  colProduct,
		DateCol:     colBuyDate,
		PriceCol:    colPrice,
		QuantityCol: colQuantity,
	},
	{
		Name:        "sale returns",
		Kind:        ledger.KindSaleReturn,
		ProductCol:  colProduct,
		DateCol:     colRetDate,
		PriceCol:    colPrice,
		QuantityCol: colQuantity,
	},
	{
		Name:        "sales",
		Kind:        ledger.KindSale,
		ProductCol:  colProduct,
		DateCol:     colSaleDate,
		PriceCol:    colPrice,
		QuantityCol: colQuantity,
	},
}
