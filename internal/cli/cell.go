package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giftgrid/internal/grid"
	"github.com/mesh-intelligence/giftgrid/internal/planner"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

func newCellCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cell",
		Short: "Edit, copy and paste individual cells",
	}
	cmd.AddCommand(
		newCellShowCmd(a),
		newCellSetCmd(a),
		newCellClearCmd(a),
		newCellCopyCmd(a),
		newCellPasteCmd(a),
		newCellRingsCmd(a),
	)
	return cmd
}

// cellView is the output form of one cell.
type cellView struct {
	Row   int         `json:"row" yaml:"row"`
	Col   int         `json:"col" yaml:"col"`
	Cell  *types.Cell `json:"cell" yaml:"cell"`
	Image string      `json:"image,omitempty" yaml:"image,omitempty"`
}

func (a *app) showCell(w io.Writer, p *planner.Planner, row, col int) error {
	c, err := p.Grid().Snapshot().Cell(row, col)
	if err != nil {
		return err
	}
	v := cellView{Row: row, Col: col, Cell: c, Image: p.ModelImageURL(c)}
	return a.write(w, v, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, renderCell(grid.Index(row, col), c))
		if err == nil && v.Image != "" {
			_, err = fmt.Fprintln(w, v.Image)
		}
		return err
	})
}

// cellArgs parses the <row> <col> positional pair.
func cellArgs(args []string) (row, col int, err error) {
	if row, err = parseIndex("row", args[0]); err != nil {
		return 0, 0, err
	}
	if col, err = parseIndex("column", args[1]); err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

func newCellShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <row> <col>",
		Short: "Show one cell and its model image URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := cellArgs(args)
			if err != nil {
				return err
			}
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				return a.showCell(cmd.OutOrStdout(), p, row, col)
			})
		},
	}
}

func newCellSetCmd(a *app) *cobra.Command {
	var gift, model, backdrop, pattern, linkText string
	cmd := &cobra.Command{
		Use:   "set <row> <col>",
		Short: "Edit a cell",
		Long: `Set edits the fields of one cell. Changing the gift clears model,
backdrop and pattern. --link selects the gift named by a t.me/nft link and is
applied before the other flags; text without a link selects nothing. Passing an empty value clears a field.

Example:
  giftgrid cell set 0 1 --gift "Plush Pepe" --model Frogs --backdrop Jade
  giftgrid cell set 2 0 --link https://t.me/nft/Plush-Pepe-1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := cellArgs(args)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				s, err := p.Edit(ctx, row, col)
				if err != nil {
					return err
				}
				if f.Changed("link") && !s.ApplyLink(ctx, linkText) {
					fmt.Fprintf(cmd.ErrOrStderr(), "No t.me/nft link in %q; gift unchanged\n", linkText)
				}
				if f.Changed("gift") {
					g, _ := p.Catalog(ctx).Resolve(gift)
					s.SetGift(ctx, g)
				}
				if f.Changed("model") {
					if err := s.SetModel(model); err != nil {
						return err
					}
				}
				if f.Changed("pattern") {
					if err := s.SetPattern(pattern); err != nil {
						return err
					}
				}
				if f.Changed("backdrop") {
					if err := s.SetBackdrop(backdrop); err != nil {
						return err
					}
				}
				if err := p.Save(row, col, s); err != nil {
					return err
				}
				return a.showCell(cmd.OutOrStdout(), p, row, col)
			})
		},
	}
	cmd.Flags().StringVar(&gift, "gift", "", "gift name")
	cmd.Flags().StringVar(&model, "model", "", "model variant of the gift")
	cmd.Flags().StringVar(&backdrop, "backdrop", "", "backdrop name")
	cmd.Flags().StringVar(&pattern, "pattern", "", "pattern variant of the gift")
	cmd.Flags().StringVar(&linkText, "link", "", "t.me/nft link naming the gift")
	return cmd
}

func newCellClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <row> <col>",
		Short: "Empty a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := cellArgs(args)
			if err != nil {
				return err
			}
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				if err := p.Clear(row, col); err != nil {
					return err
				}
				return a.showCell(cmd.OutOrStdout(), p, row, col)
			})
		},
	}
}

func newCellCopyCmd(a *app) *cobra.Command {
	var system bool
	cmd := &cobra.Command{
		Use:   "copy <row> <col>",
		Short: "Copy a cell into the session clipboard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := cellArgs(args)
			if err != nil {
				return err
			}
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				if err := p.Copy(row, col); err != nil {
					return err
				}
				if system {
					if err := p.Clipboard().Export(); err != nil {
						return sysError(err)
					}
				}
				snap, _ := p.Clipboard().Paste()
				return a.write(cmd.OutOrStdout(), snap, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Copied cell (%d,%d)\n", row, col)
					return err
				})
			})
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, "also place the cell as JSON on the system clipboard")
	return cmd
}

func newCellPasteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "paste <row> <col>",
		Short: "Paste the clipboard into a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := cellArgs(args)
			if err != nil {
				return err
			}
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				if err := p.Paste(row, col); err != nil {
					return err
				}
				return a.showCell(cmd.OutOrStdout(), p, row, col)
			})
		},
	}
}

func newCellRingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rings <row> <col>",
		Short: "Show the pattern ring layout of a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := cellArgs(args)
			if err != nil {
				return err
			}
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				l, err := p.Rings(row, col)
				if err != nil {
					return err
				}
				return a.writeLayout(cmd.OutOrStdout(), p.Remote().URL, l)
			})
		},
	}
}
