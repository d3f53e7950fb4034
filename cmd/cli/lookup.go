package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/document"
)

type salesCmd struct {
	search string
}

func (*salesCmd) Name() string     { return "sales" }
func (*salesCmd) Synopsis() string { return "list sales" }
func (*salesCmd) Usage() string {
	return `sales [-s <text>]

  Lists sales whose product contains <text> (any case) or whose date
  contains it. Without -s every sale is listed.
`
}

func (c *salesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "s", "", "Search text")
}

func (c *salesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		recs := a.Ledger.SearchSales(c.search)
		return show(recs, func() (string, error) { return a.Markdown.Sales(recs) })
	})
}

type purchasesCmd struct {
	search string
}

func (*purchasesCmd) Name() string     { return "purchases" }
func (*purchasesCmd) Synopsis() string { return "list purchases" }
func (*purchasesCmd) Usage() string {
	return `purchases [-s <text>]

  Lists purchases whose product or supplier contains <text> (any case) or
  whose date contains it.
`
}

func (c *purchasesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "s", "", "Search text")
}

func (c *purchasesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		recs := a.Ledger.SearchPurchases(c.search)
		return show(recs, func() (string, error) { return a.Markdown.Purchases(recs) })
	})
}

// pdfOutput holds the flags of commands that can write a PDF.
type pdfOutput struct {
	file   string
	layout string
}

func (p *pdfOutput) setFlags(f *flag.FlagSet) {
	f.StringVar(&p.file, "o", "", "Write a PDF to this file instead of printing")
	f.StringVar(&p.layout, "layout", "", "PDF layout: text or table (defaults to DOCUMENT_LAYOUT)")
}

func (p *pdfOutput) write(a *app.App, build func(document.Layout) (*document.Document, error)) subcommands.ExitStatus {
	layout := a.Layout
	if p.layout != "" {
		var err error
		if layout, err = document.ParseLayout(p.layout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	doc, err := build(layout)
	if err != nil {
		return fail(err)
	}

	if err := os.WriteFile(p.file, doc.Content, 0o644); err != nil {
		return fail(fmt.Errorf("writing %s: %w", p.file, err))
	}

	fmt.Fprintf(stdout, "%s written to %s\n", doc.Filename, p.file)

	return subcommands.ExitSuccess
}

type invoiceCmd struct {
	pdfOutput
}

func (*invoiceCmd) Name() string     { return "invoice" }
func (*invoiceCmd) Synopsis() string { return "show the invoice of a sale" }
func (*invoiceCmd) Usage() string {
	return `invoice [-o <file.pdf>] [-layout text|table] <index|id>

  Shows the invoice of the sale at <index> (0-based) or with the given id.
`
}

func (c *invoiceCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *invoiceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: invoice takes exactly one sale index or id")
		return subcommands.ExitUsageError
	}

	ref := f.Arg(0)

	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		if c.file != "" {
			return c.write(a, func(layout document.Layout) (*document.Document, error) {
				return a.Documents.Invoice(ctx, ref, layout)
			})
		}

		inv, err := a.Documents.InvoiceFor(ref)
		if err != nil {
			return fail(err)
		}

		return show(inv, func() (string, error) { return a.Markdown.Invoice(inv) })
	})
}
