package importer

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Format string

const (
	FormatCSV      Format = "csv"
	FormatDataFile Format = "datafile"
)

type Importer interface {
	Parse(r io.Reader) ([]ledger.Entry, error)
}

// FormatFor guesses the format from a file name: JSON files are data files,
// anything else is read as CSV.
func FormatFor(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatDataFile
	}

	return FormatCSV
}
