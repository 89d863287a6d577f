// Package cmd implements the CLI application to browse a Wealthsimple
// account: session management, account and activity listings, and security
// lookups.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/wealthsimple"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to declare subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&loginCmd{}, "session")

	c.Register(&accountsCmd{}, "brokerage")
	c.Register(&activitiesCmd{}, "brokerage")
	c.Register(&balancesCmd{}, "brokerage")

	c.Register(&searchCmd{}, "securities")
	c.Register(&securityCmd{}, "securities")
	c.Register(&quotesCmd{}, "securities")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&AssistCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var sessionFile = flag.String("session-file", defaultSessionFile(), "Path to the file storing the session tokens")
var verbose = flag.Bool("v", false, "Log every HTTP exchange to stderr")

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "wsc-session.json")
	}
	return filepath.Join(dir, "wsc", "session.json")
}

func logger() zerolog.Logger {
	if !*verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// sessionPersister writes the serialized session back to the session file
// whenever the tokens change, so the next invocation skips the login.
func sessionPersister() *wealthsimple.Persist {
	return &wealthsimple.Persist{Session: func(serialized string) {
		if err := os.MkdirAll(filepath.Dir(*sessionFile), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot create session directory: %v\n", err)
			return
		}
		if err := os.WriteFile(*sessionFile, []byte(serialized), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot save session: %v\n", err)
		}
	}}
}

// NewClient is the central function to obtain a ready client: it restores
// the stored session and refreshes its tokens if needed.
func NewClient() (*wealthsimple.Client, error) {
	raw, err := os.ReadFile(*sessionFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no stored session in %q, run 'wsc login' first", *sessionFile)
	}
	if err != nil {
		return nil, err
	}
	sess, err := wealthsimple.RestoreSession(string(raw))
	if err != nil {
		return nil, err
	}
	return wealthsimple.FromToken(sess, sessionPersister(), wealthsimple.WithLogger(logger()))
}

// node digs a nested mapping out of a raw record, returning nil whenever a
// level is absent.
func node(m map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		next, ok := m[key].(map[string]any)
		if !ok {
			return nil
		}
		m = next
	}
	return m
}

// field returns the record field rendered as a string, for table cells.
func field(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
