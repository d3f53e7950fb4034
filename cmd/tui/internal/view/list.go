package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type listTab int

const (
	listTabSales listTab = iota
	listTabPurchases
	listTabSaleReturns
	listTabPurchaseReturns
)

var listTabLabels = []string{"Sales", "Purchases", "Sale returns", "Purchase returns"}

// searchable reports whether the tab filters by the search box.
func (t listTab) searchable() bool {
	return t == listTabSales || t == listTabPurchases
}

type ListModel struct {
	svc *ledger.Service
	cur formatter

	tab       listTab
	table     table.Model
	search    textinput.Model
	searching bool
}

func NewListModel(svc *ledger.Service, currency string) ListModel {
	ti := textinput.New()
	ti.Placeholder = "product, supplier or date"
	ti.Width = 40

	m := ListModel{
		svc:    svc,
		cur:    formatter{currency: currency},
		table:  newTable(nil),
		search: ti,
	}
	m.refresh()

	return m
}

func (m ListModel) Title() string { return "Records" }

func (m ListModel) ShortHelp() string {
	if m.searching {
		return "Enter: apply | Esc: cancel"
	}

	return "Esc: back | Tab: next list | /: search | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.table.SetHeight(size.Height - 10)
		return m, nil
	}

	if m.searching {
		return m.updateSearch(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "tab":
			m.tab = (m.tab + 1) % listTab(len(listTabLabels))
			m.refresh()

			return m, nil
		case "shift+tab":
			m.tab = (m.tab + listTab(len(listTabLabels)) - 1) % listTab(len(listTabLabels))
			m.refresh()

			return m, nil
		case "r":
			m.refresh()
			return m, nil
		case "/":
			if !m.tab.searchable() {
				return m, nil
			}

			m.searching = true
			m.table.Blur()
			cmd := m.search.Focus()

			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			m.table.Focus()
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m *ListModel) refresh() {
	query := ""
	if m.tab.searchable() {
		query = m.search.Value()
	}

	money := m.cur.money

	switch m.tab {
	case listTabSales:
		recs := m.svc.SearchSales(query)
		rows := make([]table.Row, 0, len(recs))

		for _, r := range recs {
			rows = append(rows, table.Row{r.SaleDate, r.ProductName, formatQty(r.Quantity), money(r.UnitPrice), money(r.TotalSale)})
		}

		setTable(&m.table, []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Product", Width: 30},
			{Title: "Qty", Width: 8},
			{Title: "Unit price", Width: 12},
			{Title: "Total", Width: 14},
		}, rows)
	case listTabPurchases:
		recs := m.svc.SearchPurchases(query)
		rows := make([]table.Row, 0, len(recs))

		for _, r := range recs {
			rows = append(rows, table.Row{r.PurchaseDate, r.SupplierName, r.ProductName, formatQty(r.Quantity), money(r.UnitPrice), money(r.TotalPurchase)})
		}

		setTable(&m.table, []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Supplier", Width: 20},
			{Title: "Product", Width: 24},
			{Title: "Qty", Width: 8},
			{Title: "Unit price", Width: 12},
			{Title: "Total", Width: 14},
		}, rows)
	case listTabSaleReturns:
		recs := m.svc.SaleReturns()
		rows := make([]table.Row, 0, len(recs))

		for _, r := range recs {
			rows = append(rows, table.Row{r.ReturnDate, r.ProductName, formatQty(r.Quantity), money(r.UnitPrice), money(r.RefundAmount)})
		}

		setTable(&m.table, []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Product", Width: 30},
			{Title: "Qty", Width: 8},
			{Title: "Unit price", Width: 12},
			{Title: "Refund", Width: 14},
		}, rows)
	case listTabPurchaseReturns:
		recs := m.svc.PurchaseReturns()
		rows := make([]table.Row, 0, len(recs))

		for _, r := range recs {
			rows = append(rows, table.Row{r.ReturnDate, r.SupplierName, r.ProductName, formatQty(r.Quantity), money(r.UnitPrice), money(r.TotalReturn)})
		}

		setTable(&m.table, []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Supplier", Width: 20},
			{Title: "Product", Width: 24},
			{Title: "Qty", Width: 8},
			{Title: "Unit price", Width: 12},
			{Title: "Credit", Width: 14},
		}, rows)
	}
}

func (m ListModel) View() string {
	header := tabs(listTabLabels, int(m.tab))

	switch {
	case m.searching:
		header += "\n\nSearch: " + m.search.View()
	case m.tab.searchable() && m.search.Value() != "":
		header += "\n\n" + faintStyle.Render(fmt.Sprintf("Filtered by %q (/ to change)", m.search.Value()))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxStyle.Render(m.table.View()),
		faintStyle.Render(fmt.Sprintf("%d rows", len(m.table.Rows()))),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
