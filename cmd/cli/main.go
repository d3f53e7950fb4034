package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func register(c *subcommands.Commander) {
	c.Register(&saleCmd{}, "records")
	c.Register(&purchaseCmd{}, "records")
	c.Register(&saleReturnCmd{}, "records")
	c.Register(&purchaseReturnCmd{}, "records")
	c.Register(&importCmd{}, "records")

	c.Register(&salesCmd{}, "lookup")
	c.Register(&purchasesCmd{}, "lookup")
	c.Register(&invoiceCmd{}, "lookup")

	c.Register(&profitCmd{}, "reports")
	c.Register(&cashFlowCmd{}, "reports")
	c.Register(&flowsCmd{}, "reports")
	c.Register(&inventoryCmd{}, "reports")
	c.Register(&ledgerCmd{}, "reports")
}
