package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/tally/internal/amount"
	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// item holds the flags every record kind shares.
type item struct {
	product  string
	date     string
	price    string
	quantity string
}

func (i *item) setFlags(f *flag.FlagSet, dateHelp string) {
	f.StringVar(&i.product, "product", "", "Product name")
	f.StringVar(&i.date, "d", "", dateHelp+" (YYYY-MM-DD)")
	f.StringVar(&i.price, "price", "", "Unit price")
	f.StringVar(&i.quantity, "qty", "", "Quantity")
}

type saleCmd struct{ item }

func (*saleCmd) Name() string     { return "sale" }
func (*saleCmd) Synopsis() string { return "record a sale" }
func (*saleCmd) Usage() string {
	return `sale -product <name> -d <date> -price <unit price> -qty <quantity>

  Records a sale and prints it.
`
}

func (c *saleCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f, "Sale date") }

func (c *saleCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		rec, err := a.Ledger.RecordSale(ctx, ledger.SaleParams{
			ProductName: c.product,
			Date:        c.date,
			UnitPrice:   c.price,
			Quantity:    c.quantity,
		})
		if err != nil {
			return fail(err)
		}

		return show(rec, func() (string, error) { return a.Markdown.Sales([]ledger.SaleRecord{*rec}) })
	})
}

type purchaseCmd struct {
	item
	supplier string
}

func (*purchaseCmd) Name() string     { return "purchase" }
func (*purchaseCmd) Synopsis() string { return "record a purchase from a supplier" }
func (*purchaseCmd) Usage() string {
	return `purchase -supplier <name> -product <name> -d <date> -price <unit price> -qty <quantity>

  Records a purchase and prints it.
`
}

func (c *purchaseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.supplier, "supplier", "", "Supplier name")
	c.setFlags(f, "Purchase date")
}

func (c *purchaseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		rec, err := a.Ledger.RecordPurchase(ctx, ledger.PurchaseParams{
			SupplierName: c.supplier,
			ProductName:  c.product,
			Date:         c.date,
			UnitPrice:    c.price,
			Quantity:     c.quantity,
		})
		if err != nil {
			return fail(err)
		}

		return show(rec, func() (string, error) { return a.Markdown.Purchases([]ledger.PurchaseRecord{*rec}) })
	})
}

type saleReturnCmd struct{ item }

func (*saleReturnCmd) Name() string     { return "sale-return" }
func (*saleReturnCmd) Synopsis() string { return "record goods returned by a customer" }
func (*saleReturnCmd) Usage() string {
	return `sale-return -product <name> -d <date> -price <unit price> -qty <quantity>
`
}

func (c *saleReturnCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f, "Return date") }

func (c *saleReturnCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		rec, err := a.Ledger.RecordSaleReturn(ctx, ledger.SaleReturnParams{
			ProductName: c.product,
			Date:        c.date,
			UnitPrice:   c.price,
			Quantity:    c.quantity,
		})
		if err != nil {
			return fail(err)
		}

		return show(rec, func() (string, error) {
			return fmt.Sprintf("Sale return **%s** recorded, refund %s\n",
				rec.ID, amount.Format(rec.RefundAmount, a.Config.App.Currency)), nil
		})
	})
}

type purchaseReturnCmd struct {
	item
	supplier string
}

func (*purchaseReturnCmd) Name() string     { return "purchase-return" }
func (*purchaseReturnCmd) Synopsis() string { return "record goods sent back to a supplier" }
func (*purchaseReturnCmd) Usage() string {
	return `purchase-return -supplier <name> -product <name> -d <date> -price <unit price> -qty <quantity>
`
}

func (c *purchaseReturnCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.supplier, "supplier", "", "Supplier name")
	c.setFlags(f, "Return date")
}

func (c *purchaseReturnCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		rec, err := a.Ledger.RecordPurchaseReturn(ctx, ledger.PurchaseReturnParams{
			SupplierName: c.supplier,
			ProductName:  c.product,
			Date:         c.date,
			UnitPrice:    c.price,
			Quantity:     c.quantity,
		})
		if err != nil {
			return fail(err)
		}

		return show(rec, func() (string, error) {
			return fmt.Sprintf("Purchase return **%s** recorded, credit %s\n",
				rec.ID, amount.Format(rec.TotalReturn, a.Config.App.Currency)), nil
		})
	})
}
