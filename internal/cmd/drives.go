package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/disksearch/internal/model"
)

// NewDrivesCommand creates the 'disksearch drives' command
func NewDrivesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drives",
		Short: "List mounted drives usable as search roots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drives, err := model.GetDrives()
			if err != nil {
				return fmt.Errorf("list drives: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, d := range drives {
				if d.TotalBytes == 0 {
					fmt.Fprintln(out, d.Path)
					continue
				}
				fmt.Fprintf(out, "%-24s %9s / %-9s %3.0f%% used\n",
					d.Path,
					humanize.IBytes(uint64(d.UsedBytes())),
					humanize.IBytes(uint64(d.TotalBytes)),
					d.UsedPercent(),
				)
			}
			return nil
		},
	}
}
