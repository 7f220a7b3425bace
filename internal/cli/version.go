package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the giftgrid release, overridden at link time by the build.
var Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/giftgrid"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the giftgrid version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "giftgrid v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
