package document

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

const (
	pageTop    = 42.0
	pageBottom = 692.0
	lineHeight = 20.0
	rowHeight  = 18.0
)

// PDF draws letter-sized documents with the core Helvetica font.
type PDF struct {
	formatter
	header   string
	compress bool
}

// NewPDF returns a renderer that prints amounts in currency and puts header
// on top of table layouts.
func NewPDF(currency, header string) *PDF {
	return &PDF{formatter: formatter{currency: currency}, header: header, compress: true}
}

// page wraps fpdf with a running cursor for the text layout.
type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

func (p *PDF) newPage(title string) *page {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(p.compress)
	pdf.SetTitle(title, true)
	pdf.SetMargins(50, pageTop, 50)
	pdf.SetAutoPageBreak(true, 100)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	return &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), y: pageTop}
}

// line writes s at x and moves the cursor down by advance, starting a new
// page when the cursor runs past the bottom margin.
func (pg *page) line(x float64, s string, advance float64) {
	if pg.y > pageBottom {
		pg.pdf.AddPage()
		pg.pdf.SetFont("Helvetica", "", 12)
		pg.y = pageTop
	}

	pg.pdf.Text(x, pg.y, pg.tr(s))
	pg.y += advance
}

func (pg *page) output(w io.Writer) error {
	if err := pg.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}

// grid draws a bordered table. The first row is the header.
type grid struct {
	widths []float64
	aligns []string
}

func (g grid) row(pg *page, cells []string, header bool) {
	pdf := pg.pdf

	if header {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(211, 211, 211)
	} else {
		pdf.SetFont("Helvetica", "", 10)
	}

	for i, c := range cells {
		align := "C"
		if !header && i < len(g.aligns) {
			align = g.aligns[i]
		}

		pdf.CellFormat(g.widths[i], rowHeight, pg.tr(c), "1", 0, align, header, 0, "")
	}

	pdf.Ln(-1)
}

func (p *PDF) title(pg *page, s string) {
	pdf := pg.pdf
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 24, pg.tr(s), "", 1, "C", false, 0, "")
	pdf.Ln(12)
}

// Invoice draws a single sale.
func (p *PDF) Invoice(w io.Writer, inv Invoice, layout Layout) error {
	pg := p.newPage(fmt.Sprintf("Invoice %d", inv.Index))

	fields := [][2]string{
		{"Invoice ID", fmt.Sprintf("%d", inv.Index)},
		{"Reference", inv.ID},
		{"Date", inv.Date},
		{"Product", inv.ProductName},
		{"Quantity", qty(inv.Quantity)},
		{"Unit Price", p.money(inv.UnitPrice)},
		{"Total Amount", p.money(inv.Total)},
	}

	if layout == LayoutTable {
		if p.header != "" {
			p.title(pg, p.header)
		}

		p.title(pg, "INVOICE")

		g := grid{widths: []float64{150, 300}, aligns: []string{"L", "L"}}
		for _, f := range fields {
			g.row(pg, f[:], false)
		}

		return pg.output(w)
	}

	pg.line(100, "INVOICE", lineHeight)

	for _, f := range fields {
		pg.line(100, f[0]+": "+f[1], lineHeight)
	}

	return pg.output(w)
}

// SupplierLedgers draws the totals of every supplier, in name order.
func (p *PDF) SupplierLedgers(w io.Writer, rows map[string]ledger.LedgerRow, layout Layout) error {
	pg := p.newPage("Supplier Ledgers")
	names := slices.Sorted(maps.Keys(rows))

	if layout == LayoutTable {
		if p.header != "" {
			p.title(pg, p.header)
		}

		p.title(pg, "Supplier Ledgers")

		g := grid{widths: []float64{170, 110, 110, 110}, aligns: []string{"L", "R", "R", "R"}}
		g.row(pg, []string{"SUPPLIER", "PURCHASES", "RETURNS", "NET"}, true)

		total := ledger.LedgerRow{TotalPurchase: decimal.Zero, TotalReturn: decimal.Zero, Net: decimal.Zero}

		for _, name := range names {
			r := rows[name]
			g.row(pg, []string{name, p.money(r.TotalPurchase), p.money(r.TotalReturn), p.money(r.Net)}, false)

			total.TotalPurchase = total.TotalPurchase.Add(r.TotalPurchase)
			total.TotalReturn = total.TotalReturn.Add(r.TotalReturn)
			total.Net = total.Net.Add(r.Net)
		}

		g.row(pg, []string{"TOTAL", p.money(total.TotalPurchase), p.money(total.TotalReturn), p.money(total.Net)}, true)

		return pg.output(w)
	}

	pg.line(50, "Supplier Ledgers", 30)

	for _, name := range names {
		r := rows[name]
		pg.line(50, "Supplier: "+name, lineHeight)
		pg.line(70, "Total Purchases: "+p.money(r.TotalPurchase), lineHeight)
		pg.line(70, "Total Purchase Returns: "+p.money(r.TotalReturn), lineHeight)
		pg.line(70, "Net Amount: "+p.money(r.Net), 30)
	}

	return pg.output(w)
}

// SupplierLedger draws the totals and every movement of one supplier.
func (p *PDF) SupplierLedger(w io.Writer, row ledger.LedgerRow, layout Layout) error {
	pg := p.newPage("Supplier Ledger " + row.Supplier)

	if layout == LayoutTable {
		return p.supplierLedgerTable(w, pg, row)
	}

	pg.line(50, "Supplier Ledger for: "+row.Supplier, lineHeight)
	pg.line(50, "Total Purchases: "+p.money(row.TotalPurchase), lineHeight)
	pg.line(50, "Total Purchase Returns: "+p.money(row.TotalReturn), lineHeight)
	pg.line(50, "Net Amount: "+p.money(row.Net), 40)

	pg.line(50, "Purchases:", lineHeight)

	for _, rec := range row.Purchases {
		pg.line(70, fmt.Sprintf("Date: %s | Product: %s | Qty: %s | Total: %s",
			rec.PurchaseDate, rec.ProductName, qty(rec.Quantity), p.money(rec.TotalPurchase)), 15)
	}

	pg.y += lineHeight
	pg.line(50, "Purchase Returns:", lineHeight)

	for _, rec := range row.PurchaseReturns {
		pg.line(70, fmt.Sprintf("Date: %s | Product: %s | Qty: %s | Total: %s",
			rec.ReturnDate, rec.ProductName, qty(rec.Quantity), p.money(rec.TotalReturn)), 15)
	}

	return pg.output(w)
}

// supplierLedgerTable lists the movements in date order, purchases as debit
// and returns as credit, closed by a totals row.
func (p *PDF) supplierLedgerTable(w io.Writer, pg *page, row ledger.LedgerRow) error {
	if p.header != "" {
		p.title(pg, p.header)
	}

	p.title(pg, "Supplier Ledger: "+row.Supplier)

	g := grid{
		widths: []float64{75, 135, 65, 80, 78, 78},
		aligns: []string{"C", "C", "R", "R", "R", "R"},
	}
	g.row(pg, []string{"DATE", "PRODUCT", "QUANTITY", "UNIT PRICE", "DEBIT", "CREDIT"}, true)

	quantity := decimal.Zero

	for _, e := range row.Entries {
		debit, credit := p.money(e.Amount), ""
		if e.Kind == ledger.KindPurchaseReturn {
			debit, credit = "", p.money(e.Amount)
		}

		g.row(pg, []string{e.Date, e.ProductName, qty(e.Quantity), p.money(e.UnitPrice), debit, credit}, false)

		quantity = quantity.Add(e.Quantity)
	}

	pdf := pg.pdf
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(g.widths[0]+g.widths[1], rowHeight, "TOTAL", "1", 0, "C", false, 0, "")
	pdf.CellFormat(g.widths[2], rowHeight, qty(quantity), "1", 0, "R", false, 0, "")
	pdf.CellFormat(g.widths[3], rowHeight, "", "1", 0, "R", false, 0, "")
	pdf.CellFormat(g.widths[4], rowHeight, p.money(row.TotalPurchase), "1", 0, "R", false, 0, "")
	pdf.CellFormat(g.widths[5], rowHeight, p.money(row.TotalReturn), "1", 1, "R", false, 0, "")
	pdf.Ln(12)
	pdf.CellFormat(0, rowHeight, "Net Amount: "+p.money(row.Net), "", 1, "R", false, 0, "")

	return pg.output(w)
}
