package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/importer"
)

type importCmd struct {
	format string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import records from a CSV export or another data file" }
func (*importCmd) Usage() string {
	return `import [-format csv|datafile] <file>

  Records every row of <file>, or none if any row is invalid. The format
  defaults to datafile for .json files and csv otherwise.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Input format: csv or datafile")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: import takes exactly one file")
		return subcommands.ExitUsageError
	}

	path := f.Arg(0)

	format := importer.Format(c.format)
	if format == "" {
		format = importer.FormatFor(path)
	}

	return run(ctx, func(a *app.App) subcommands.ExitStatus {
		file, err := os.Open(path)
		if err != nil {
			return fail(err)
		}
		defer file.Close()

		entries, err := a.Importer.Import(format, file)
		if err != nil {
			return fail(err)
		}

		n, err := a.Ledger.ImportBatch(ctx, entries)
		if err != nil {
			return fail(err)
		}

		fmt.Fprintf(stdout, "Imported %d records from %s\n", n, path)

		return subcommands.ExitSuccess
	})
}
