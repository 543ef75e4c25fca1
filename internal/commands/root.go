// Package commands provides CLI commands for aichat.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/aichat/internal/config"
)

var (
	// Global flags
	delayFlag   int
	localeFlag  string
	themeFlag   string
	repliesFlag string
	debugFlag   bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// NewRootCmd builds the command tree on deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aichat",
		Short: "Chat with a simulated AI assistant in the terminal",
		Long: `aichat is a terminal chat client. Messages you send are appended to the
transcript, the assistant shows a typing indicator and replies after a short
delay with one of its canned answers.

When stdout is not a terminal, aichat reads one message per line from stdin
and prints each reply.

Examples:
  aichat                               Start a chat
  aichat --delay 300 --locale ru       Faster replies, 24-hour timestamps
  aichat --replies replies.json        Use your own reply set
  echo "Hello" | aichat chat           Line mode
  aichat config set locale de          Change a setting`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				printVersion(cmd)
				return nil
			}
			return runChat(cmd, deps)
		},
	}

	cmd.PersistentFlags().IntVar(&delayFlag, "delay", 0, "Reply delay in milliseconds")
	cmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Timestamp locale (en, ru, de, ...)")
	cmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "Color theme (amber, tokyonight, nord)")
	cmd.PersistentFlags().StringVar(&repliesFlag, "replies", "", "JSON file with the assistant's reply set")
	cmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write a debug log to the config directory")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))
	cmd.AddCommand(NewRepliesCmd(deps))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

// loadSettings resolves the configuration: .env, config file, AICHAT_*
// variables, then flags given on the command line
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.DefaultConfig(), err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	overrides := []struct {
		flag  string
		key   string
		value func() string
	}{
		{"delay", config.KeyReplyDelay, func() string { return fmt.Sprint(delayFlag) }},
		{"locale", config.KeyLocale, func() string { return localeFlag }},
		{"theme", config.KeyTheme, func() string { return themeFlag }},
		{"replies", config.KeyRepliesFile, func() string { return repliesFlag }},
		{"debug", config.KeyDebug, func() string { return fmt.Sprint(debugFlag) }},
	}
	for _, o := range overrides {
		if !flags.Changed(o.flag) {
			continue
		}
		if err := cfg.Set(o.key, o.value()); err != nil {
			return cfg, fmt.Errorf("--%s: %w", o.flag, err)
		}
	}

	return cfg, nil
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "aichat %s (built %s)\n", Version, BuildTime)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd)
		},
	}
}
