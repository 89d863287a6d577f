package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type securityCmd struct{}

func (*securityCmd) Name() string     { return "security" }
func (*securityCmd) Synopsis() string { return "show market data for one security" }
func (*securityCmd) Usage() string {
	return `wsc security <security-id | symbol>

  Shows the quote and fundamentals of one security. The argument is either
  an internal security id (sec-s-...) or a ticker symbol, in which case the
  first search match is used.

Usage Examples:
$ wsc security XEQT
`
}

func (*securityCmd) SetFlags(f *flag.FlagSet) {}

func (c *securityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one security id or symbol is required.")
		return subcommands.ExitUsageError
	}

	client, err := NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	id := f.Arg(0)
	if !strings.HasPrefix(id, "sec-") {
		matches, err := client.SearchSecurity(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error searching %q: %v\n", id, err)
			return subcommands.ExitFailure
		}
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no security matches %q.\n", id)
			return subcommands.ExitFailure
		}
		id = field(matches[0], "id")
	}

	security, err := client.GetSecurityMarketData(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching market data: %v\n", err)
		return subcommands.ExitFailure
	}

	stock := node(security, "stock")
	quote := node(security, "quote")
	fundamentals := node(security, "fundamentals")

	var b strings.Builder
	fmt.Fprintf(&b, "# %s:%s - %s\n\n", field(stock, "primaryExchange"), field(stock, "symbol"), field(stock, "name"))
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Last | %s %s |\n", field(quote, "last"), field(fundamentals, "currency"))
	fmt.Fprintf(&b, "| Bid / Ask | %s / %s |\n", field(quote, "bid"), field(quote, "ask"))
	fmt.Fprintf(&b, "| Open | %s |\n", field(quote, "open"))
	fmt.Fprintf(&b, "| Previous close | %s |\n", field(quote, "previousClose"))
	fmt.Fprintf(&b, "| Day range | %s - %s |\n", field(quote, "low"), field(quote, "high"))
	fmt.Fprintf(&b, "| 52 week range | %s - %s |\n", field(fundamentals, "low52Week"), field(fundamentals, "high52Week"))
	fmt.Fprintf(&b, "| Volume | %s |\n", field(quote, "volume"))
	fmt.Fprintf(&b, "| Yield | %s |\n", field(fundamentals, "yield"))
	fmt.Fprintf(&b, "| P/E | %s |\n", field(fundamentals, "peRatio"))
	if description := field(fundamentals, "description"); description != "" {
		fmt.Fprintf(&b, "\n%s\n", description)
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
