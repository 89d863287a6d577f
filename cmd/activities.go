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

type activitiesCmd struct {
	account  string
	howMany  int
	all      bool
	rejected bool
}

func (*activitiesCmd) Name() string     { return "activities" }
func (*activitiesCmd) Synopsis() string { return "list the activity feed of an account" }
func (*activitiesCmd) Usage() string {
	return `wsc activities -a <account-id> [-n <count>] [-all] [-rejected]

  Lists the activity feed of one account, most recent first, with the
  computed human-readable description of each activity.

Usage Examples:
$ wsc activities -a tfsa-abc123 -n 20
`
}

func (c *activitiesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id (see 'wsc accounts')")
	f.IntVar(&c.howMany, "n", 50, "Number of activities per page")
	f.BoolVar(&c.all, "all", false, "Follow pagination to the very first activity")
	f.BoolVar(&c.rejected, "rejected", false, "Include rejected activities")
}

func (c *activitiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a <account-id> is required.")
		return subcommands.ExitUsageError
	}

	client, err := NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	activities, err := client.GetActivities(c.account, &wealthsimple.ActivitiesOptions{
		HowMany:  c.howMany,
		All:      c.all,
		Rejected: c.rejected,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing activities: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("| Date | Description | Amount | Status |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, activity := range activities {
		amount := field(activity, "amount")
		if currency := field(activity, "currency"); currency != "" && amount != "" {
			amount += " " + currency
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			field(activity, "occurredAt"),
			field(activity, "description"),
			amount,
			field(activity, "status"))
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
