package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/wealthsimple"
	"github.com/google/subcommands"
)

type accountsCmd struct {
	all bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts with their value" }
func (*accountsCmd) Usage() string {
	return `wsc accounts [-all]

  Lists the accounts with their computed description, account number and
  current net liquidation value. Closed accounts are hidden by default.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include closed accounts")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	accounts, err := client.GetAccounts(!c.all, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing accounts: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("| Description | Number | Type | Value |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, account := range accounts {
		value := ""
		if nlv := node(account, "financials", "currentCombined", "netLiquidationValue"); nlv != nil {
			if m, ok := wealthsimple.MoneyFromRecord(nlv); ok {
				value = m.String()
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			field(account, "description"),
			field(account, "number"),
			field(account, "unifiedAccountType"),
			value)
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
