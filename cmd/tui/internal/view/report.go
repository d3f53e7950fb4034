package view

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/document"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type reportTab int

const (
	reportTabProfit reportTab = iota
	reportTabCashFlow
	reportTabDaily
	reportTabWeekly
	reportTabInventory
	reportTabSuppliers
)

var reportTabLabels = []string{"Profit", "Cash flow", "Daily", "Weekly", "Inventory", "Suppliers"}

// reportInputs is shared by pointer with the input form.
type reportInputs struct {
	expenses string
	opening  string
	outflow  string
}

type ReportModel struct {
	svc  *ledger.Service
	docs *document.Service
	cur  formatter

	layout document.Layout

	tab      reportTab
	table    table.Model
	inputs   *reportInputs
	form     *huh.Form
	supplier string // set while one supplier's entries are shown

	warning string
	status  string
	err     error
}

func NewReportModel(svc *ledger.Service, docs *document.Service, currency string, layout document.Layout) ReportModel {
	m := ReportModel{
		svc:    svc,
		docs:   docs,
		cur:    formatter{currency: currency},
		layout: layout,
		table:  newTable(nil),
		inputs: &reportInputs{},
	}
	m.refresh()

	return m
}

func (m ReportModel) Title() string { return "Reports" }

func (m ReportModel) ShortHelp() string {
	switch {
	case m.form != nil:
		return "Enter: apply | Esc: cancel"
	case m.tab == reportTabProfit || m.tab == reportTabCashFlow:
		return "Esc: back | Tab: next report | e: edit inputs"
	case m.tab == reportTabSuppliers && m.supplier != "":
		return "Esc: all suppliers | p: save PDF"
	case m.tab == reportTabSuppliers:
		return "Esc: back | Tab: next report | Enter: entries | p: save PDF"
	}

	return "Esc: back | Tab: next report | r: refresh"
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	case pdfSavedMsg:
		m.err = msg.err
		m.status = msg.status

		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		if m.supplier != "" {
			m.supplier = ""
			m.refresh()

			return m, nil
		}

		return m, Back
	case "tab", "shift+tab":
		n := reportTab(len(reportTabLabels))
		if keyMsg.String() == "tab" {
			m.tab = (m.tab + 1) % n
		} else {
			m.tab = (m.tab + n - 1) % n
		}

		m.supplier = ""
		m.status, m.err = "", nil
		m.refresh()

		return m, nil
	case "r":
		m.refresh()
		return m, nil
	case "e":
		if m.tab == reportTabProfit || m.tab == reportTabCashFlow {
			m.form = m.inputForm()
			m.table.Blur()

			return m, m.form.Init()
		}
	case "enter":
		if m.tab == reportTabSuppliers && m.supplier == "" {
			if row := m.table.SelectedRow(); row != nil {
				m.supplier = row[0]
				m.refresh()
			}

			return m, nil
		}
	case "p":
		if m.tab == reportTabSuppliers {
			return m, m.savePDFCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReportModel) inputForm() *huh.Form {
	in := m.inputs

	var fields []huh.Field
	if m.tab == reportTabProfit {
		fields = append(fields, huh.NewInput().Title("Operating expenses").Value(&in.expenses))
	} else {
		fields = append(fields,
			huh.NewInput().Title("Opening balance").Value(&in.opening),
			huh.NewInput().Title("Additional outflow").Value(&in.outflow),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(40).WithShowHelp(false)
}

func (m ReportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.form = nil
	m.table.Focus()
	m.refresh()

	return m, nil
}

var pairColumns = []table.Column{{Title: "", Width: 26}, {Title: "Amount", Width: 18}}

func flowColumns(key string) []table.Column {
	return []table.Column{{Title: key, Width: 12}, {Title: "Inflow", Width: 16}, {Title: "Outflow", Width: 16}, {Title: "Net", Width: 16}}
}

func (m *ReportModel) refresh() {
	money := m.cur.money
	m.warning = ""

	switch m.tab {
	case reportTabProfit:
		r, err := m.svc.Profit(m.inputs.expenses)
		m.warnOn(err)

		setTable(&m.table, pairColumns, []table.Row{
			{"Total sales", money(r.TotalSales)},
			{"Sale returns", money(r.TotalSaleReturns)},
			{"Net sales", money(r.NetSales)},
			{"Total purchases", money(r.TotalPurchases)},
			{"Purchase returns", money(r.TotalPurchaseReturns)},
			{"Net purchases", money(r.NetPurchases)},
			{"Gross profit", money(r.GrossProfit)},
			{"Operating expenses", money(r.OperatingExpenses)},
			{"Net profit", money(r.NetProfit)},
		})
	case reportTabCashFlow:
		r, err := m.svc.CashFlow(m.inputs.opening, m.inputs.outflow)
		m.warnOn(err)

		setTable(&m.table, pairColumns, []table.Row{
			{"Opening balance", money(r.OpeningBalance)},
			{"Cash inflow", money(r.CashInflow)},
			{"Cash outflow", money(r.CashOutflow)},
			{"Additional outflow", money(r.AdditionalOutflow)},
			{"Closing balance", money(r.ClosingBalance)},
		})
	case reportTabDaily:
		r := m.svc.CashFlowReport()
		rows := make([]table.Row, 0, len(r.Daily))

		for _, d := range r.Daily {
			rows = append(rows, table.Row{d.Date, money(d.Inflow), money(d.Outflow), money(d.Net)})
		}

		setTable(&m.table, flowColumns("Date"), rows)
	case reportTabWeekly:
		r := m.svc.CashFlowReport()
		rows := make([]table.Row, 0, len(r.Weekly))

		for _, w := range r.Weekly {
			rows = append(rows, table.Row{w.Week, money(w.Inflow), money(w.Outflow), money(w.Net)})
		}

		setTable(&m.table, flowColumns("Week"), rows)
	case reportTabInventory:
		inv := m.svc.Inventory()
		rows := make([]table.Row, 0, len(inv))

		for _, product := range slices.Sorted(maps.Keys(inv)) {
			r := inv[product]
			rows = append(rows, table.Row{
				product, formatQty(r.Purchased), formatQty(r.PurchaseReturns),
				formatQty(r.Sold), formatQty(r.SalesReturns), formatQty(r.CurrentInventory),
			})
		}

		setTable(&m.table, []table.Column{
			{Title: "Product", Width: 24},
			{Title: "Purchased", Width: 10},
			{Title: "Returned", Width: 10},
			{Title: "Sold", Width: 10},
			{Title: "Sale returns", Width: 12},
			{Title: "On hand", Width: 10},
		}, rows)
	case reportTabSuppliers:
		if m.supplier != "" {
			m.refreshSupplier()
			return
		}

		all := m.svc.SupplierLedgers()
		rows := make([]table.Row, 0, len(all))

		for _, name := range slices.Sorted(maps.Keys(all)) {
			r := all[name]
			rows = append(rows, table.Row{name, money(r.TotalPurchase), money(r.TotalReturn), money(r.Net)})
		}

		setTable(&m.table, []table.Column{
			{Title: "Supplier", Width: 24},
			{Title: "Purchases", Width: 16},
			{Title: "Returns", Width: 16},
			{Title: "Net", Width: 16},
		}, rows)
	}
}

func (m *ReportModel) refreshSupplier() {
	money := m.cur.money

	row, err := m.svc.SupplierLedger(m.supplier)
	if err != nil {
		m.err = err
		m.supplier = ""
		m.refresh()

		return
	}

	rows := make([]table.Row, 0, len(row.Entries))
	for _, e := range row.Entries {
		debit, credit := money(e.Amount), ""
		if e.Kind == ledger.KindPurchaseReturn {
			debit, credit = "", money(e.Amount)
		}

		rows = append(rows, table.Row{e.Date, e.ProductName, formatQty(e.Quantity), money(e.UnitPrice), debit, credit})
	}

	rows = append(rows, table.Row{"", "Net", "", "", money(row.Net), ""})

	setTable(&m.table, []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Product", Width: 22},
		{Title: "Qty", Width: 8},
		{Title: "Unit price", Width: 12},
		{Title: "Debit", Width: 14},
		{Title: "Credit", Width: 14},
	}, rows)
}

func (m *ReportModel) warnOn(err error) {
	if err != nil {
		m.warning = fmt.Sprintf("%v, read as 0", err)
	}
}

type pdfSavedMsg struct {
	status string
	err    error
}

// savePDFCmd writes the shown supplier ledger, or all of them, to the
// working directory.
func (m ReportModel) savePDFCmd() tea.Cmd {
	docs, layout, supplier := m.docs, m.layout, m.supplier

	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		var (
			doc *document.Document
			err error
		)

		if supplier == "" {
			doc, err = docs.SupplierLedgers(ctx, layout)
		} else {
			doc, err = docs.SupplierLedger(ctx, supplier, layout)
		}

		if err != nil {
			return pdfSavedMsg{err: err}
		}

		if err := os.WriteFile(doc.Filename, doc.Content, 0o644); err != nil {
			return pdfSavedMsg{err: err}
		}

		return pdfSavedMsg{status: "Saved " + doc.Filename}
	}
}

func (m ReportModel) View() string {
	parts := []string{lipgloss.NewStyle().PaddingBottom(1).Render(tabs(reportTabLabels, int(m.tab)))}

	if m.supplier != "" {
		parts = append(parts, activeStyle("Supplier: "+m.supplier))
	}

	body := boxStyle.Render(m.table.View())
	if m.form != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panelStyle.Render(m.form.View()))
	}

	parts = append(parts, body)

	if m.warning != "" {
		parts = append(parts, errStyle.Render("Warning: "+m.warning))
	}

	switch {
	case m.err != nil:
		parts = append(parts, errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.status != "":
		parts = append(parts, okStyle.Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
