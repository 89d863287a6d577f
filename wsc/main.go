// Command wsc is a terminal client for the Wealthsimple private web API.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/wealthsimple/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: when invoked by the shell's completion hook this
	// prints the candidates and exits. Install with COMP_INSTALL=1 wsc.
	timeRanges := predict.Set{"1d", "1w", "1m", "1y", "all"}
	completer := &complete.Command{
		Sub: map[string]*complete.Command{
			"login": {Flags: map[string]complete.Predictor{
				"u":   predict.Nothing,
				"otp": predict.Nothing,
			}},
			"accounts": {Flags: map[string]complete.Predictor{
				"all": predict.Nothing,
			}},
			"activities": {Flags: map[string]complete.Predictor{
				"a":        predict.Nothing,
				"n":        predict.Nothing,
				"all":      predict.Nothing,
				"rejected": predict.Nothing,
			}},
			"balances": {Flags: map[string]complete.Predictor{
				"a": predict.Nothing,
			}},
			"search":   {Args: predict.Nothing},
			"security": {Args: predict.Nothing},
			"quotes": {Flags: map[string]complete.Predictor{
				"r": timeRanges,
			}},
			"topic":  {Args: predict.Set{"readme", "sessions", "accounts", "activities", "securities", "*"}},
			"assist": {Args: predict.Nothing},
		},
		Flags: map[string]complete.Predictor{
			"session-file": predict.Files("*.json"),
			"v":            predict.Nothing,
		},
	}
	completer.Complete("wsc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
