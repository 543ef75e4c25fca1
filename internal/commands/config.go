package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/aichat/internal/config"
	"github.com/diogo/aichat/internal/render"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change aichat settings stored in config.json.

Keys: ` + strings.Join(config.Keys(), ", ") + `

Environment variables (AICHAT_REPLY_DELAY, AICHAT_LOCALE, AICHAT_THEME,
AICHAT_REPLIES_FILE, AICHAT_GREETING, AICHAT_DEBUG) and command line flags
override the file.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadSettings(cmd)
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadSettings(cmd)
				if err != nil {
					return err
				}
				value, err := cfg.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change a setting in the config file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setConfigValue(cmd, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "themes",
			Short: "List color themes and markdown styles",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Color themes (tui_theme):")
				for _, p := range render.AvailablePalettes() {
					fmt.Fprintf(out, "  %-12s %s\n", p.Name, p.Description)
				}
				fmt.Fprintln(out, "Markdown styles (markdown.style):")
				for _, s := range render.MarkdownStyles() {
					fmt.Fprintf(out, "  %-12s %s\n", s.Name, s.Description)
				}
			},
		},
	)

	return cmd
}

// setConfigValue updates the file only: environment and flag overrides are
// not written back
func setConfigValue(cmd *cobra.Command, key, value string) error {
	cfg, err := config.LoadFile()
	if err != nil {
		return err
	}

	if key == config.KeyTheme {
		if _, ok := render.PaletteByName(value); !ok {
			return fmt.Errorf("unknown theme '%s' (available: %s)", value, strings.Join(render.PaletteNames(), ", "))
		}
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, stored)
	return nil
}
