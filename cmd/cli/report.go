package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/document"
)

// warnInput reports input that was read as zero.
func warnInput(err error) {
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v, read as 0\n", err)
	}
}

type profitCmd struct {
	expenses string
}

func (*profitCmd) Name() string     { return "profit" }
func (*profitCmd) Synopsis() string { return "compute gross and net profit" }
func (*profitCmd) Usage() string {
	return `profit [-expenses <amount>]
`
}

func (c *profitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.expenses, "expenses", "", "Operating expenses")
}

func (c *profitCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		res, err := a.Ledger.Profit(c.expenses)
		warnInput(err)

		return show(res, func() (string, error) { return a.Markdown.Profit(res) })
	})
}

type cashFlowCmd struct {
	opening string
	outflow string
}

func (*cashFlowCmd) Name() string     { return "cashflow" }
func (*cashFlowCmd) Synopsis() string { return "compute the closing cash balance" }
func (*cashFlowCmd) Usage() string {
	return `cashflow [-opening <amount>] [-outflow <amount>]
`
}

func (c *cashFlowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.opening, "opening", "", "Opening balance")
	f.StringVar(&c.outflow, "outflow", "", "Outflow not captured by purchases")
}

func (c *cashFlowCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		res, err := a.Ledger.CashFlow(c.opening, c.outflow)
		warnInput(err)

		return show(res, func() (string, error) { return a.Markdown.CashFlow(res) })
	})
}

type flowsCmd struct{}

func (*flowsCmd) Name() string             { return "flows" }
func (*flowsCmd) Synopsis() string         { return "show cash movements per day and per ISO week" }
func (*flowsCmd) Usage() string            { return "flows\n" }
func (*flowsCmd) SetFlags(_ *flag.FlagSet) {}

func (*flowsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		r := a.Ledger.CashFlowReport()
		return show(r, func() (string, error) { return a.Markdown.CashFlowReport(r) })
	})
}

type inventoryCmd struct{}

func (*inventoryCmd) Name() string             { return "inventory" }
func (*inventoryCmd) Synopsis() string         { return "show stock on hand per product" }
func (*inventoryCmd) Usage() string            { return "inventory\n" }
func (*inventoryCmd) SetFlags(_ *flag.FlagSet) {}

func (*inventoryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		rows := a.Ledger.Inventory()
		return show(rows, func() (string, error) { return a.Markdown.Inventory(rows) })
	})
}

type ledgerCmd struct {
	pdfOutput
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "show supplier ledgers" }
func (*ledgerCmd) Usage() string {
	return `ledger [-o <file.pdf>] [-layout text|table] [supplier]

  Without a supplier, shows the totals of every supplier. With one, shows
  that supplier's purchases and returns by date.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *ledgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(stderr, "Error: ledger takes at most one supplier")
		return subcommands.ExitUsageError
	}

	name := f.Arg(0)

	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		if name == "" {
			if c.file != "" {
				return c.write(a, func(layout document.Layout) (*document.Document, error) {
					return a.Documents.SupplierLedgers(ctx, layout)
				})
			}

			rows := a.Ledger.SupplierLedgers()

			return show(rows, func() (string, error) { return a.Markdown.SupplierLedgers(rows) })
		}

		if c.file != "" {
			return c.write(a, func(layout document.Layout) (*document.Document, error) {
				return a.Documents.SupplierLedger(ctx, name, layout)
			})
		}

		row, err := a.Ledger.SupplierLedger(name)
		if err != nil {
			return fail(err)
		}

		return show(row, func() (string, error) { return a.Markdown.SupplierLedger(*row) })
	})
}
