package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giftgrid/internal/planner"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

func newGiftsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gifts",
		Short: "List the gift catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				gifts := p.Catalog(ctx).Gifts()
				return a.write(cmd.OutOrStdout(), gifts, func(w io.Writer) error {
					for _, g := range gifts {
						fmt.Fprintln(w, g)
					}
					return nil
				})
			})
		},
	}
}

func newBackdropsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backdrops",
		Short: "List the backdrops shared by all gifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				backdrops := p.Catalog(ctx).Backdrops()
				return a.write(cmd.OutOrStdout(), backdrops, func(w io.Writer) error {
					tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "NAME\tEDGE\tCENTER")
					for _, b := range backdrops {
						fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Name, b.Hex.EdgeColor, b.Hex.CenterColor)
					}
					return tw.Flush()
				})
			})
		},
	}
}

// variantRow is the output form of a model or pattern variant.
type variantRow struct {
	Name           string `json:"name" yaml:"name"`
	RarityPermille int    `json:"rarityPermille" yaml:"rarity_permille"`
	Rarity         string `json:"rarity" yaml:"rarity"`
}

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models <gift>",
		Short: "List the model variants of a gift, rarest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				cat := p.Catalog(ctx)
				gift, _ := cat.Resolve(args[0])
				var rows []variantRow
				for _, m := range cat.Models(ctx, gift) {
					rows = append(rows, variantRow{m.Name, m.RarityPermille, m.RarityLabel()})
				}
				return a.writeVariants(cmd.OutOrStdout(), gift, rows)
			})
		},
	}
}

func newPatternsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns <gift>",
		Short: "List the pattern variants of a gift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				cat := p.Catalog(ctx)
				gift, _ := cat.Resolve(args[0])
				var rows []variantRow
				for _, v := range cat.Patterns(ctx, gift) {
					rows = append(rows, variantRow{v.Name, v.RarityPermille, v.RarityLabel()})
				}
				return a.writeVariants(cmd.OutOrStdout(), gift, rows)
			})
		},
	}
}

func (a *app) writeVariants(w io.Writer, gift types.Gift, rows []variantRow) error {
	if rows == nil {
		rows = []variantRow{}
	}
	return a.write(w, rows, func(w io.Writer) error {
		if len(rows) == 0 {
			_, err := fmt.Fprintf(w, "No variants available for %s\n", gift)
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tRARITY")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Rarity)
		}
		return tw.Flush()
	})
}
