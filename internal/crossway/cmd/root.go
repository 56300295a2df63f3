package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kestrelgames/crossway"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:  "crossway",
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Crossway's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Play())
	root.AddCommand(Replay())
	root.AddCommand(Bots())

	return root
}

// defaultRegistry holds the bots shipped with the CLI. Registration
// happens once here, before any match starts.
func defaultRegistry() *crossway.Registry {
	return crossway.NewRegistry().
		WithBot(crossway.NewRandomBot())
}
