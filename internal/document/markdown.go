package document

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

//go:embed templates/*.md
var templates embed.FS

var kindNames = map[ledger.Kind]string{
	ledger.KindSale:           "Sale",
	ledger.KindPurchase:       "Purchase",
	ledger.KindSaleReturn:     "Sale return",
	ledger.KindPurchaseReturn: "Purchase return",
}

// Markdown renders reports as markdown tables.
type Markdown struct {
	tmpl *template.Template
}

func NewMarkdown(currency string) (*Markdown, error) {
	f := formatter{currency: currency}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"money": f.money,
		"qty":   qty,
		"kind":  func(k ledger.Kind) string { return kindNames[k] },
	}).ParseFS(templates, "templates/*.md")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Markdown{tmpl: tmpl}, nil
}

func (m *Markdown) render(name string, data any) (string, error) {
	var b strings.Builder
	if err := m.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}

	return b.String(), nil
}

func (m *Markdown) Profit(r ledger.ProfitResult) (string, error) {
	return m.render("profit.md", r)
}

func (m *Markdown) CashFlow(r ledger.CashFlowResult) (string, error) {
	return m.render("cashflow.md", r)
}

func (m *Markdown) CashFlowReport(r ledger.CashFlowReport) (string, error) {
	return m.render("flows.md", r)
}

func (m *Markdown) Inventory(rows map[string]ledger.InventoryRow) (string, error) {
	return m.render("inventory.md", rows)
}

func (m *Markdown) SupplierLedgers(rows map[string]ledger.LedgerRow) (string, error) {
	return m.render("ledgers.md", rows)
}

func (m *Markdown) SupplierLedger(row ledger.LedgerRow) (string, error) {
	return m.render("ledger.md", row)
}

func (m *Markdown) Invoice(inv Invoice) (string, error) {
	return m.render("invoice.md", inv)
}

func (m *Markdown) Sales(recs []ledger.SaleRecord) (string, error) {
	return m.render("sales.md", recs)
}

func (m *Markdown) Purchases(recs []ledger.PurchaseRecord) (string, error) {
	return m.render("purchases.md", recs)
}
