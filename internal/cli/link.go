package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giftgrid/internal/link"
)

func newLinkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "link <text>",
		Short: "Extract the gift name from a t.me/nft link",
		Long: `Link finds the first t.me/nft/<Name>-<number> reference in text and
prints the gift name it denotes.

Example:
  giftgrid link https://t.me/nft/Plush-Pepe-1234   # Plush Pepe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gift, err := link.Parse(args[0])
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), map[string]string{"gift": gift}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, gift)
				return err
			})
		},
	}
}
