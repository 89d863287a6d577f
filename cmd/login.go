package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/wealthsimple"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

type loginCmd struct {
	username string
	otp      string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in and store the session tokens" }
func (*loginCmd) Usage() string {
	return `wsc login [-u <username>] [-otp <code>]

  Logs in to Wealthsimple and stores the session tokens in the session file.
  The password is always prompted for, never taken from a flag. When the
  account has two-factor authentication enabled the one-time passcode is
  prompted for too, unless given with -otp.

Usage Examples:
$ wsc login -u jane@example.com
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username (email) of the Wealthsimple account")
	f.StringVar(&c.otp, "otp", "", "One-time passcode, when 2FA is enabled")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	stdin := bufio.NewReader(os.Stdin)

	username := c.username
	if username == "" {
		fmt.Fprint(os.Stderr, "Username: ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading username: %v\n", err)
			return subcommands.ExitFailure
		}
		username = strings.TrimSpace(line)
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := wealthsimple.New(wealthsimple.WithLogger(logger()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing session: %v\n", err)
		return subcommands.ExitFailure
	}

	err = client.Login(username, string(password), c.otp, "", sessionPersister())
	var otpErr *wealthsimple.OTPRequiredError
	if errors.As(err, &otpErr) {
		fmt.Fprint(os.Stderr, "2FA code: ")
		line, rerr := stdin.ReadString('\n')
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "Error reading 2FA code: %v\n", rerr)
			return subcommands.ExitFailure
		}
		err = client.Login(username, string(password), strings.TrimSpace(line), "", sessionPersister())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error logging in: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Logged in, session stored in %s\n", *sessionFile)
	return subcommands.ExitSuccess
}
