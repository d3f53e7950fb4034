package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tally/internal/importer/datafile"
	"github.com/MrJamesThe3rd/tally/internal/importer/delimited"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Service struct {
	csvImporter      Importer
	dataFileImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter:      delimited.NewParser(),
		dataFileImporter: datafile.NewParser(),
	}
}

// Import parses r into entries. Nothing is recorded; the caller hands the
// entries to ledger.Service.ImportBatch.
func (s *Service) Import(format Format, r io.Reader) ([]ledger.Entry, error) {
	var importer Importer

	switch format {
	case FormatCSV:
		importer = s.csvImporter
	case FormatDataFile:
		importer = s.dataFileImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}
