package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type quotesCmd struct {
	timeRange string
}

func (*quotesCmd) Name() string     { return "quotes" }
func (*quotesCmd) Synopsis() string { return "show the historical quotes of a security" }
func (*quotesCmd) Usage() string {
	return `wsc quotes [-r <range>] <security-id>

  Shows the historical quotes of a security over a time range such as
  1d, 1w, 1m, 1y or all.

Usage Examples:
$ wsc quotes -r 1y sec-s-76a7155ce5624cb7b7d0d1a046e7bef9
`
}

func (c *quotesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeRange, "r", "1m", "Time range of the quotes (1d, 1w, 1m, 1y, all)")
}

func (c *quotesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one security id is required (see 'wsc search').")
		return subcommands.ExitUsageError
	}

	client, err := NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	quotes, err := client.GetSecurityHistoricalQuotes(f.Arg(0), c.timeRange)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching quotes: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("| Date | Price | Currency |\n")
	b.WriteString("|---|---|---|\n")
	for _, quote := range quotes {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			field(quote, "date"),
			field(quote, "adjustedPrice"),
			field(quote, "currency"))
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
