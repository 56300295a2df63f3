package cmd

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kestrelgames/crossway"
)

func Replay() *cobra.Command {
	return &cobra.Command{
		Use:   "replay { transcript-file }",
		Short: "Validate a saved transcript and show its final position",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`replay reads a match record in transcript notation,
			replays every move through the rule engine to verify the
			record is internally consistent, and prints the terminal
			position. An illegal or malformed transcript is rejected
			with the offending line.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			game, err := crossway.GameFromTranscript(file)
			if err != nil {
				return err
			}

			logrus.Infof("replayed %d moves", len(game.Moves()))
			fmt.Fprint(cmd.OutOrStdout(), game.ExportPosition())
			fmt.Fprintf(cmd.OutOrStdout(), "result: %s\n", game.Status())
			return nil
		},
	}
}
