package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/balekit/bale/pkg/commands"
)

var rootCmd = &cobra.Command{
	Use:           "bale",
	Short:         "Pack a directory of assets into a single bale and read entries back out",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	rootCmd.AddCommand(
		commands.CreateCmd,
		commands.ExtractCmd,
		commands.LsCmd,
		commands.CatCmd,
		commands.StatCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
