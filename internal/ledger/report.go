package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is lenient on purpose: "2024-3-7" parses like "2024-03-07".
const dateLayout = "2006-1-2"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// WeekKey returns the ISO week key of t, e.g. "2024-W05".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

type flow struct {
	inflow  decimal.Decimal
	outflow decimal.Decimal
}

// dailyFlows buckets every dated record by its raw date string.
func (b *Book) dailyFlows() map[string]*flow {
	days := make(map[string]*flow)

	bucket := func(date string) *flow {
		f, ok := days[date]
		if !ok {
			f = &flow{inflow: decimal.Zero, outflow: decimal.Zero}
			days[date] = f
		}

		return f
	}

	for _, rec := range b.sales {
		if rec.SaleDate != "" {
			f := bucket(rec.SaleDate)
			f.inflow = f.inflow.Add(rec.TotalSale)
		}
	}

	for _, rec := range b.saleReturns {
		if rec.ReturnDate != "" {
			f := bucket(rec.ReturnDate)
			f.inflow = f.inflow.Sub(rec.RefundAmount)
		}
	}

	for _, rec := range b.purchases {
		if rec.PurchaseDate != "" {
			f := bucket(rec.PurchaseDate)
			f.outflow = f.outflow.Add(rec.TotalPurchase)
		}
	}

	for _, rec := range b.purchaseReturns {
		if rec.ReturnDate != "" {
			f := bucket(rec.ReturnDate)
			f.outflow = f.outflow.Sub(rec.TotalReturn)
		}
	}

	return days
}

// CashFlowReport groups cash movements per date and per ISO week. Dates
// that are not YYYY-MM-DD stay in the daily list but are left out of the
// weekly one.
func (b *Book) CashFlowReport() CashFlowReport {
	days := b.dailyFlows()
	weeks := make(map[string]*flow)

	report := CashFlowReport{
		Daily:  make([]DailyFlow, 0, len(days)),
		Weekly: make([]WeeklyFlow, 0),
	}

	for date, f := range days {
		report.Daily = append(report.Daily, DailyFlow{
			Date:    date,
			Inflow:  f.inflow,
			Outflow: f.outflow,
			Net:     f.inflow.Sub(f.outflow),
		})

		t, err := parseDate(date)
		if err != nil {
			continue
		}

		key := WeekKey(t)

		w, ok := weeks[key]
		if !ok {
			w = &flow{inflow: decimal.Zero, outflow: decimal.Zero}
			weeks[key] = w
		}

		w.inflow = w.inflow.Add(f.inflow)
		w.outflow = w.outflow.Add(f.outflow)
	}

	for key, w := range weeks {
		report.Weekly = append(report.Weekly, WeeklyFlow{
			Week:    key,
			Inflow:  w.inflow,
			Outflow: w.outflow,
			Net:     w.inflow.Sub(w.outflow),
		})
	}

	slices.SortFunc(report.Daily, func(a, b DailyFlow) int { return strings.Compare(a.Date, b.Date) })
	slices.SortFunc(report.Weekly, func(a, b WeeklyFlow) int { return strings.Compare(a.Week, b.Week) })

	return report
}
