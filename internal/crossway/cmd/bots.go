package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func Bots() *cobra.Command {
	return &cobra.Command{
		Use:   "bots",
		Short: "List the registered bots",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`bots lists the bot names that can be seated in a match
			with play --bot.`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range defaultRegistry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
