// Package document renders ledger data as PDF files and markdown text.
package document

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/amount"
)

// Layout selects how a PDF is drawn.
type Layout string

const (
	// LayoutText draws plain lines of text.
	LayoutText Layout = "text"
	// LayoutTable draws bordered grids.
	LayoutTable Layout = "table"
)

// ParseLayout accepts "text" or "table"; blank means text.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutText:
		return LayoutText, nil
	case LayoutTable:
		return LayoutTable, nil
	}

	return "", fmt.Errorf("unknown layout %q", s)
}

// Document is a rendered file ready to be sent or written to disk.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Invoice is a single sale presented as an invoice.
type Invoice struct {
	Index       int
	ID          string
	Date        string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

type formatter struct {
	currency string
}

func (f formatter) money(d decimal.Decimal) string {
	return amount.Format(d, f.currency)
}

func qty(d decimal.Decimal) string {
	return d.String()
}
