// Package delimited reads ledger records from CSV-like exports. The
// delimiter, charset and column layout are detected from the file.
package delimited

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/amount"
	enc "github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// ErrNoProfile is returned when no row of the file looks like a known header.
var ErrNoProfile = errors.New("no matching header found")

// delimiters are tried in order; the first one that yields a known header wins.
var delimiters = []rune{';', ',', '\t'}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.Entry, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, comma := range delimiters {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		slog.Debug("csv layout detected", "profile", profile.Name, "delimiter", string(comma), "charset", charset)

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1, comma != ',')
	}

	return nil, fmt.Errorf("%w: expected columns for sales, purchases, sale returns or purchase returns", ErrNoProfile)
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	return reader.ReadAll()
}

// colIndex maps canonical column names to their index in the row.
type colIndex map[string]int

// normalize lowercases a header cell and joins its words with underscores,
// so "Unit Price" and "unit_price" match.
func normalize(cell string) string {
	name := strings.ToLower(strings.TrimSpace(cell))
	name = strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "_")

	if canonical, ok := aliases[name]; ok {
		return canonical
	}

	return name
}

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := normalize(cell); name != "" {
				if _, dup := cols[name]; !dup {
					cols[name] = i
				}
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into entries. headerRow is the 1-based number
// of the header row, used to number rows in errors.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRow int, decimalComma bool) ([]ledger.Entry, error) {
	entries := make([]ledger.Entry, 0, len(rows))

	for i, row := range rows {
		rowNum := headerRow + i + 1

		product := cellValue(row, cols, p.ProductCol)
		date := cellValue(row, cols, p.DateCol)
		price := cellValue(row, cols, p.PriceCol)
		quantity := cellValue(row, cols, p.QuantityCol)

		// Totals and other footers carry no date, price or quantity.
		if date == "" && price == "" && quantity == "" {
			continue
		}

		kind, err := rowKind(p, cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		e := ledger.Entry{
			Kind:        kind,
			ProductName: product,
			Date:        normalizeDate(date),
			UnitPrice:   normalizeAmount(price, decimalComma),
			Quantity:    normalizeAmount(quantity, decimalComma),
		}

		if kind == ledger.KindPurchase || kind == ledger.KindPurchaseReturn {
			e.SupplierName = cellValue(row, cols, p.SupplierCol)
		}

		if _, err := amount.Parse(e.UnitPrice); err != nil {
			return nil, fmt.Errorf("row %d: unit price %q: %w", rowNum, price, ledger.ErrInvalidInput)
		}

		if _, err := amount.Parse(e.Quantity); err != nil {
			return nil, fmt.Errorf("row %d: quantity %q: %w", rowNum, quantity, ledger.ErrInvalidInput)
		}

		entries = append(entries, e)
	}

	return entries, nil
}

func rowKind(p *Profile, cols colIndex, row []string) (ledger.Kind, error) {
	if p.KindCol == "" {
		return p.Kind, nil
	}

	raw := cellValue(row, cols, p.KindCol)

	switch kind := ledger.Kind(normalize(raw)); kind {
	case ledger.KindSale, ledger.KindPurchase, ledger.KindSaleReturn, ledger.KindPurchaseReturn:
		return kind, nil
	}

	return "", fmt.Errorf("unknown record kind %q: %w", raw, ledger.ErrInvalidInput)
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
