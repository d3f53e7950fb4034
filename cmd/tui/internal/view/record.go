package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/amount"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// recordFields is shared by pointer with the form so its bindings survive
// model copies.
type recordFields struct {
	kind     ledger.Kind
	supplier string
	product  string
	date     string
	price    string
	quantity string
}

func (f *recordFields) entry() ledger.Entry {
	e := ledger.Entry{
		Kind:        f.kind,
		ProductName: f.product,
		Date:        f.date,
		UnitPrice:   f.price,
		Quantity:    f.quantity,
	}

	if hasSupplier(f.kind) {
		e.SupplierName = f.supplier
	}

	return e
}

func hasSupplier(k ledger.Kind) bool {
	return k == ledger.KindPurchase || k == ledger.KindPurchaseReturn
}

type RecordModel struct {
	svc *ledger.Service
	cur formatter

	fields *recordFields
	form   *huh.Form

	saving bool
	status string
	err    error
}

func NewRecordModel(svc *ledger.Service, currency string) RecordModel {
	m := RecordModel{svc: svc, cur: formatter{currency: currency}}
	m.reset(ledger.KindSale)

	return m
}

func (m RecordModel) Title() string { return "Record" }

func (m RecordModel) ShortHelp() string { return "Enter: next | Esc: back" }

// reset starts a fresh form for kind, dated today.
func (m *RecordModel) reset(kind ledger.Kind) {
	m.fields = &recordFields{kind: kind, date: time.Now().Format("2006-01-02")}
	f := m.fields

	requireAmount := func(s string) error {
		_, err := amount.Parse(s)
		if errors.Is(err, amount.ErrEmpty) {
			return errors.New("required")
		}

		if err != nil {
			return errors.New("not a number")
		}

		return nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ledger.Kind]().
				Title("Kind").
				Options(
					huh.NewOption("Sale", ledger.KindSale),
					huh.NewOption("Purchase", ledger.KindPurchase),
					huh.NewOption("Sale return", ledger.KindSaleReturn),
					huh.NewOption("Purchase return", ledger.KindPurchaseReturn),
				).
				Value(&f.kind),
		),
		huh.NewGroup(
			huh.NewInput().Title("Supplier").Value(&f.supplier),
		).WithHideFunc(func() bool { return !hasSupplier(f.kind) }),
		huh.NewGroup(
			huh.NewInput().Title("Product").Value(&f.product).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("product cannot be empty")
					}

					return nil
				}),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&f.date),
			huh.NewInput().Title("Unit price").Value(&f.price).Validate(requireAmount),
			huh.NewInput().Title("Quantity").Value(&f.quantity).Validate(requireAmount),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m RecordModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m RecordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	case recordSavedMsg:
		m.saving = false
		m.err = msg.err
		m.status = msg.status

		m.reset(m.fields.kind)

		return m, m.form.Init()
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true

	return m, m.saveCmd()
}

func (m RecordModel) View() string {
	content := m.form.View()

	switch {
	case m.err != nil:
		content = errStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + content
	case m.status != "":
		content = okStyle.Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type recordSavedMsg struct {
	status string
	err    error
}

func (m RecordModel) saveCmd() tea.Cmd {
	e := m.fields.entry()
	svc := m.svc
	money := m.cur.money

	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		switch e.Kind {
		case ledger.KindSale:
			rec, err := svc.RecordSale(ctx, ledger.SaleParams{ProductName: e.ProductName, Date: e.Date, UnitPrice: e.UnitPrice, Quantity: e.Quantity})
			if err != nil {
				return recordSavedMsg{err: err}
			}

			return recordSavedMsg{status: fmt.Sprintf("Sale of %s recorded, total %s.", rec.ProductName, money(rec.TotalSale))}
		case ledger.KindPurchase:
			rec, err := svc.RecordPurchase(ctx, ledger.PurchaseParams{SupplierName: e.SupplierName, ProductName: e.ProductName, Date: e.Date, UnitPrice: e.UnitPrice, Quantity: e.Quantity})
			if err != nil {
				return recordSavedMsg{err: err}
			}

			return recordSavedMsg{status: fmt.Sprintf("Purchase of %s recorded, total %s.", rec.ProductName, money(rec.TotalPurchase))}
		case ledger.KindSaleReturn:
			rec, err := svc.RecordSaleReturn(ctx, ledger.SaleReturnParams{ProductName: e.ProductName, Date: e.Date, UnitPrice: e.UnitPrice, Quantity: e.Quantity})
			if err != nil {
				return recordSavedMsg{err: err}
			}

			return recordSavedMsg{status: fmt.Sprintf("Sale return of %s recorded, refund %s.", rec.ProductName, money(rec.RefundAmount))}
		default:
			rec, err := svc.RecordPurchaseReturn(ctx, ledger.PurchaseReturnParams{SupplierName: e.SupplierName, ProductName: e.ProductName, Date: e.Date, UnitPrice: e.UnitPrice, Quantity: e.Quantity})
			if err != nil {
				return recordSavedMsg{err: err}
			}

			return recordSavedMsg{status: fmt.Sprintf("Purchase return of %s recorded, credit %s.", rec.ProductName, money(rec.TotalReturn))}
		}
	}
}
