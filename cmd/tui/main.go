package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
)

type model struct {
	app *app.App

	currentView View

	recordView  view.RecordModel
	listView    view.ListModel
	reportView  view.ReportModel
	invoiceView view.InvoiceModel
	importView  view.ImportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewRecord  View = 1
	ViewList    View = 2
	ViewReport  View = 3
	ViewInvoice View = 4
	ViewImport  View = 5
)

func newModel(a *app.App) model {
	return model{app: a, currentView: ViewMenu}
}

func (m model) currency() string { return m.app.Config.App.Currency }

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRecord
				m.recordView = view.NewRecordModel(m.app.Ledger, m.currency())

				return m, m.recordView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.app.Ledger, m.currency())

				return m, m.listView.Init()
			case "3":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.app.Ledger, m.app.Documents, m.currency(), m.app.Layout)

				return m, m.reportView.Init()
			case "4":
				m.currentView = ViewInvoice
				m.invoiceView = view.NewInvoiceModel(m.app.Ledger, m.app.Documents, m.app.Markdown, m.currency(), m.app.Layout)

				return m, m.invoiceView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.app.Ledger, m.app.Importer)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRecord:
		var newModel tea.Model
		newModel, cmd = m.recordView.Update(msg)
		m.recordView = newModel.(view.RecordModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewInvoice:
		var newModel tea.Model
		newModel, cmd = m.invoiceView.Update(msg)
		m.invoiceView = newModel.(view.InvoiceModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewRecord:
		return m.recordView
	case ViewList:
		return m.listView
	case ViewReport:
		return m.reportView
	case ViewInvoice:
		return m.invoiceView
	case ViewImport:
		return m.importView
	}

	return nil
}

func (m model) View() string {
	v := m.current()
	if v == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			m.app.Config.App.Name + "\n\n" +
				"1. Record Sale, Purchase or Return\n" +
				"2. Browse Records\n" +
				"3. Reports\n" +
				"4. Invoices\n" +
				"5. Import File\n\n" +
				"q. Quit",
		)
	}

	header := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(v.Title())
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(v.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, header, v.View(), help)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The screen belongs to the TUI, logs go to a file when DEBUG is set.
	var logOut io.Writer = io.Discard

	if os.Getenv("DEBUG") != "" {
		f, err := tea.LogToFile("debug.log", "tally")
		if err != nil {
			slog.Error("failed to open log file", "error", err)
			os.Exit(1)
		}
		defer f.Close()

		logOut = f
	}

	slog.SetDefault(app.NewLogger(cfg, logOut))

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(newModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run TUI: %v\n", err)
		os.Exit(1)
	}
}
