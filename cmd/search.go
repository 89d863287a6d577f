package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search securities by symbol or name" }
func (*searchCmd) Usage() string {
	return `wsc search <query>

  Searches securities by ticker symbol or name and lists the matches with
  their internal security id, used by the other security commands.

Usage Examples:
$ wsc search XEQT
`
}

func (*searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search query is required.")
		return subcommands.ExitUsageError
	}
	query := strings.Join(f.Args(), " ")

	client, err := NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	securities, err := client.SearchSecurity(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching %q: %v\n", query, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("| Symbol | Name | Exchange | Id |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, security := range securities {
		stock := node(security, "stock")
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			field(stock, "symbol"),
			field(stock, "name"),
			field(stock, "primaryExchange"),
			field(security, "id"))
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
