package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// A cli run is short lived, global flags and writers are fine here.
var (
	asJSON = flag.Bool("json", false, "Print results as JSON instead of markdown")
	plain  = flag.Bool("plain", false, "Print markdown without terminal styling")

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func open(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	slog.SetDefault(app.NewLogger(cfg, stderr))

	return app.New(ctx, cfg)
}

// fail reports err and maps invalid input to a usage error.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: %v\n", err)

	if errors.Is(err, ledger.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}

	return subcommands.ExitFailure
}

func printMarkdown(md string) error {
	if *plain {
		_, err := io.WriteString(stdout, md)
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	_, err = io.WriteString(stdout, out)

	return err
}

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// show prints v as JSON with -json, otherwise the markdown md builds.
func show(v any, md func() (string, error)) subcommands.ExitStatus {
	if *asJSON {
		if err := printJSON(v); err != nil {
			return fail(err)
		}

		return subcommands.ExitSuccess
	}

	text, err := md()
	if err != nil {
		return fail(err)
	}

	if err := printMarkdown(text); err != nil {
		return fail(err)
	}

	return subcommands.ExitSuccess
}

// run opens the app, hands it to fn and closes it.
func run(ctx context.Context, fn func(a *app.App) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := open(ctx)
	if err != nil {
		return fail(err)
	}

	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("closing", "error", err)
		}
	}()

	return fn(a)
}
