package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giftgrid/internal/layout"
)

func newRingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rings <gift> <pattern>",
		Short: "Compute the pattern ring layout for a gift and pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := layout.Rings(args[0], args[1])
			return a.writeLayout(cmd.OutOrStdout(), func(path string) string {
				return a.cfg.APIBase + path
			}, l)
		},
	}
}

// writeLayout prints a ring layout; url makes the symbol path absolute.
func (a *app) writeLayout(w io.Writer, url func(string) string, l layout.Layout) error {
	return a.write(w, l, func(w io.Writer) error {
		if l.Empty() {
			_, err := fmt.Fprintln(w, "Nothing to draw: gift and pattern are both required")
			return err
		}
		fmt.Fprintf(w, "Symbol: %s\n", url(l.Symbol.Path))
		fmt.Fprintf(w, "Canvas: %dx%d, %d placements\n\n", layout.CanvasSize, layout.CanvasSize, len(l.Placements))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "RING\tINDEX\tANGLE\tX\tY\t")
		for _, pl := range l.Placements {
			fmt.Fprintf(tw, "%d\t%d\t%.1f\t%.1f\t%.1f\t\n", pl.Ring, pl.Index, pl.Angle, pl.X, pl.Y)
		}
		return tw.Flush()
	})
}
