package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/disksearch/internal/history"
	"github.com/lumipallolabs/disksearch/internal/ui"
)

// NewHistoryCommand creates the 'disksearch history' command
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved searches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dir := cfg.History.Dir
			if dir == "" {
				dir = history.DefaultDir()
			}

			records, err := history.New(dir).List()
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No saved searches in %s\n", dir)
				return nil
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			for _, r := range records {
				fmt.Fprintf(out, "%s  %-14s  %-8s %q in %s  %s matches  %s\n",
					shortID(r.ID),
					humanize.Time(r.Time),
					r.Engine,
					r.Pattern,
					r.Root,
					humanize.Comma(int64(len(r.Matches))),
					ui.FormatElapsed(r.Elapsed),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many searches (0 = all)")
	return cmd
}

// shortID trims a uuid to its first group
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
