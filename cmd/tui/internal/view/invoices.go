package view

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/document"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type InvoiceModel struct {
	svc      *ledger.Service
	docs     *document.Service
	markdown *document.Markdown
	cur      formatter
	layout   document.Layout

	table   table.Model
	preview string

	status string
	err    error
}

func NewInvoiceModel(svc *ledger.Service, docs *document.Service, md *document.Markdown, currency string, layout document.Layout) InvoiceModel {
	m := InvoiceModel{
		svc:      svc,
		docs:     docs,
		markdown: md,
		cur:      formatter{currency: currency},
		layout:   layout,
		table:    newTable(nil),
	}

	sales := svc.SearchSales("")
	rows := make([]table.Row, 0, len(sales))

	for i, s := range sales {
		rows = append(rows, table.Row{strconv.Itoa(i), s.SaleDate, s.ProductName, m.cur.money(s.TotalSale)})
	}

	setTable(&m.table, []table.Column{
		{Title: "#", Width: 5},
		{Title: "Date", Width: 12},
		{Title: "Product", Width: 26},
		{Title: "Total", Width: 14},
	}, rows)

	return m
}

func (m InvoiceModel) Title() string { return "Invoices" }

func (m InvoiceModel) ShortHelp() string {
	return "Esc: back | Enter: preview | p: save PDF"
}

func (m InvoiceModel) Init() tea.Cmd {
	return nil
}

func (m InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pdfSavedMsg:
		m.err = msg.err
		m.status = msg.status

		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.preview != "" {
				m.preview = ""
				return m, nil
			}

			return m, Back
		case "enter":
			if ref, ok := m.selected(); ok {
				m.preview, m.err = m.render(ref)
			}

			return m, nil
		case "p":
			if ref, ok := m.selected(); ok {
				return m, m.savePDFCmd(ref)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoiceModel) selected() (string, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return "", false
	}

	return row[0], true
}

func (m InvoiceModel) render(ref string) (string, error) {
	inv, err := m.docs.InvoiceFor(ref)
	if err != nil {
		return "", err
	}

	md, err := m.markdown.Invoice(inv)
	if err != nil {
		return "", err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(60))
	if err != nil {
		return "", err
	}

	return r.Render(md)
}

func (m InvoiceModel) savePDFCmd(ref string) tea.Cmd {
	docs, layout := m.docs, m.layout

	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		doc, err := docs.Invoice(ctx, ref, layout)
		if err != nil {
			return pdfSavedMsg{err: err}
		}

		if err := os.WriteFile(doc.Filename, doc.Content, 0o644); err != nil {
			return pdfSavedMsg{err: err}
		}

		return pdfSavedMsg{status: "Saved " + doc.Filename}
	}
}

func (m InvoiceModel) View() string {
	if len(m.table.Rows()) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No sales recorded yet.\n\n(Esc to go back)")
	}

	content := boxStyle.Render(m.table.View())
	if m.preview != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.preview)
	}

	switch {
	case m.err != nil:
		content += "\n" + errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		content += "\n" + okStyle.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
