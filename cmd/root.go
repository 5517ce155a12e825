package cmd

import (
	"gallery/config"

	"github.com/spf13/cobra"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "gallery",
		Short: "Wedding guest photo and guestbook server",
		Long: `Gallery lets wedding guests upload photos and leave wishes in a
guestbook, while the couple moderates, deletes and exports them.

Settings come from environment variables, optionally overlaid on a YAML
file with the same keys (see --config).
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Load(cfgFile)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file, environment variables take precedence")
}

// Execute executes the root command.
func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd.Execute()
}
