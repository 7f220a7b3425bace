package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/giftgrid/internal/grid"
	"github.com/mesh-intelligence/giftgrid/internal/planner"
)

func newGridCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show and restructure the session grid",
	}
	cmd.AddCommand(
		newGridShowCmd(a),
		newGridAddRowCmd(a),
		newGridRemoveRowCmd(a),
		newGridSwapCmd(a),
		newGridResetCmd(a),
		newGridExportCmd(a),
		newGridImportCmd(a),
	)
	return cmd
}

// showGrid prints the current grid in the selected format.
func (a *app) showGrid(w io.Writer, p *planner.Planner) error {
	g := p.Grid().Snapshot()
	return a.write(w, g, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, renderGrid(g))
		return err
	})
}

func newGridShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render the grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				return a.showGrid(cmd.OutOrStdout(), p)
			})
		},
	}
}

func newGridAddRowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-row",
		Short: "Append a row of empty cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				p.Grid().AddRow()
				return a.showGrid(cmd.OutOrStdout(), p)
			})
		},
	}
}

func newGridRemoveRowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-row <row>",
		Short: "Remove a row; the grid never shrinks below three rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseIndex("row", args[0])
			if err != nil {
				return err
			}
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				removed, err := p.Grid().RemoveRow(row)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(cmd.ErrOrStderr(), "Grid already has the minimum of %d rows\n", grid.MinRows)
				}
				return a.showGrid(cmd.OutOrStdout(), p)
			})
		},
	}
}

func newGridSwapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <index> <index>",
		Short: "Exchange two cells by linear index (row*3 + column)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseIndex("index", args[0])
			if err != nil {
				return err
			}
			dst, err := parseIndex("index", args[1])
			if err != nil {
				return err
			}
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				if err := p.Grid().SwapCells(src, dst); err != nil {
					return err
				}
				return a.showGrid(cmd.OutOrStdout(), p)
			})
		},
	}
}

func newGridResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Empty every cell, keeping the row count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				p.Grid().Reset()
				return a.showGrid(cmd.OutOrStdout(), p)
			})
		},
	}
}

func newGridExportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the grid as JSON (or YAML with --output yaml)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				format := a.output
				if format == outputText {
					format = outputJSON
				}
				var buf bytes.Buffer
				if err := encode(&buf, format, p.Grid().Snapshot(), nil); err != nil {
					return err
				}
				if file == "" {
					_, err := cmd.OutOrStdout().Write(buf.Bytes())
					return err
				}
				if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
					return sysError(fmt.Errorf("write %s: %w", file, err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported grid to %s\n", file)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "write to file instead of stdout")
	return cmd
}

func newGridImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the grid with one written by grid export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			g, err := decodeGrid(data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			return a.withPlanner(cmd, func(ctx context.Context, p *planner.Planner) error {
				p.Grid().Replace(g)
				return a.showGrid(cmd.OutOrStdout(), p)
			})
		},
	}
}

// decodeGrid accepts the JSON or YAML export form.
func decodeGrid(data []byte) (*grid.Grid, error) {
	var g grid.Grid
	if json.Valid(data) {
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, err
		}
		return &g, nil
	}
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func parseIndex(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", what, s)
	}
	return n, nil
}
