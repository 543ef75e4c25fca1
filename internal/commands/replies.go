package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/aichat/internal/reply"
)

// NewRepliesCmd creates the command listing the assistant's reply set
func NewRepliesCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "replies",
		Short: "List the replies the assistant picks from",
		Long: `List the canned replies the assistant picks from at random.

The set comes from --replies (or replies_file in the config) when given,
otherwise the built-in set is used. A replies file is JSON: either an array
of strings or an object with a "replies" array.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			replies := reply.DefaultReplies
			origin := "built-in"
			if cfg.RepliesFile != "" {
				replies, err = reply.LoadReplies(cfg.RepliesFile)
				if err != nil {
					return err
				}
				origin = cfg.RepliesFile
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d replies (%s), delay %s:\n", len(replies), origin, cfg.ReplyDelay())
			for i, r := range replies {
				fmt.Fprintf(out, "  %d. %s\n", i+1, r)
			}
			return nil
		},
	}
}
