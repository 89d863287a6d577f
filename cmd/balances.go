package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/subcommands"
)

type balancesCmd struct {
	account string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "show the balances of an account" }
func (*balancesCmd) Usage() string {
	return `wsc balances -a <account-id>

  Shows the balances of one account, one row per held security plus the
  special cash entries (sec-c-cad, sec-c-usd).
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id (see 'wsc accounts')")
}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a <account-id> is required.")
		return subcommands.ExitUsageError
	}

	client, err := NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	balances, err := client.GetAccountBalances(c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching balances: %v\n", err)
		return subcommands.ExitFailure
	}

	ids := make([]string, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString("| Security | Quantity |\n")
	b.WriteString("|---|---|\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "| %s | %v |\n", id, balances[id])
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
