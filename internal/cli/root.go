package cli

import (
	"github.com/spf13/cobra"

	"github.com/wellspring-ai/wellspring/internal/config"
	"github.com/wellspring-ai/wellspring/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	cfgPath string
	log     *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wellspring",
		Short: "Wellspring — conversational wellness assistant",
		Long:  "Wellspring is a conversational wellness assistant that answers health and nutrition questions, backed by an LLM with function calling.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgPath = cfgFile
			if cfgPath == "" {
				cfgPath = config.DefaultConfigPath()
			}
			level := logLevel
			if level == "" {
				level = "info"
			}
			log = logging.New(nil, level, "pretty")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.wellspring/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newChatCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
