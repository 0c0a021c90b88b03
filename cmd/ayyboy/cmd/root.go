package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

// rootCmd is the base for all subcommands.
var rootCmd = &cobra.Command{
	Use:   "ayyboy [command]",
	Short: "ayyboy is a Game Boy / Game Boy Color emulator core",
	Long:  "ayyboy is a Game Boy / Game Boy Color emulator core",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Unknown command. Try `ayyboy help` for more information")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
}

// Execute runs ayyboy according to the user's command/subcommand/flags.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("ayyboy exited with error")
		return err
	}
	return nil
}

var verbose bool

func init() {
	log.SetOutput(os.Stderr)
	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	})
}
