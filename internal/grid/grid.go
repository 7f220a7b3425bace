// Package grid owns the rows-by-3 matrix of cells being composed.
//
// A *Grid is an immutable snapshot. Model publishes a new snapshot for every
// mutation, so a reader holding a snapshot never observes a half-applied swap
// or row removal.
package grid

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Grid dimensions.
const (
	Columns = 3
	MinRows = 3
)

// Row is one row of slots; a nil slot is an empty cell.
type Row [Columns]*types.Cell

// Grid is an immutable snapshot of the cell matrix.
type Grid struct {
	rows []Row
}

// New returns a grid of rows empty rows, never fewer than MinRows.
func New(rows int) *Grid {
	return &Grid{rows: make([]Row, max(rows, MinRows))}
}

// Position converts a linear slot index to its row and column.
func Position(index int) (row, col int) {
	return index / Columns, index % Columns
}

// Index converts a row and column to a linear slot index.
func Index(row, col int) int {
	return row*Columns + col
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return len(g.rows)
}

// Len returns the number of slots.
func (g *Grid) Len() int {
	return len(g.rows) * Columns
}

// Cell returns a copy of the cell at (row, col), or nil when the slot is
// empty.
func (g *Grid) Cell(row, col int) (*types.Cell, error) {
	if err := g.check(row, col); err != nil {
		return nil, err
	}
	return g.rows[row][col].Clone(), nil
}

// Cells returns copies of every slot in linear order.
func (g *Grid) Cells() []*types.Cell {
	out := make([]*types.Cell, 0, g.Len())
	for _, r := range g.rows {
		for _, c := range r {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.Rows() != o.Rows() {
		return false
	}
	for i := range g.rows {
		for j := range g.rows[i] {
			if !g.rows[i][j].Equal(o.rows[i][j]) {
				return false
			}
		}
	}
	return true
}

func (g *Grid) check(row, col int) error {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= Columns {
		return fmt.Errorf("%w: cell (%d,%d) in %dx%d grid", types.ErrOutOfRange, row, col, len(g.rows), Columns)
	}
	return nil
}

func (g *Grid) checkIndex(index int) error {
	if index < 0 || index >= g.Len() {
		return fmt.Errorf("%w: slot %d of %d", types.ErrOutOfRange, index, g.Len())
	}
	return nil
}

// clone copies the row structure; cells are shared because they are never
// modified after being placed in a grid.
func (g *Grid) clone() *Grid {
	rows := make([]Row, len(g.rows))
	copy(rows, g.rows)
	return &Grid{rows: rows}
}

// MarshalJSON encodes the grid as an array of 3-element rows with null for
// empty slots.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.rows)
}

// UnmarshalJSON decodes the MarshalJSON form, padding to MinRows.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var in [][]*types.Cell
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	rows, err := fromCells(in)
	if err != nil {
		return err
	}
	g.rows = rows
	return nil
}

// MarshalYAML encodes the grid as a list of rows.
func (g *Grid) MarshalYAML() (any, error) {
	out := make([][]*types.Cell, len(g.rows))
	for i, r := range g.rows {
		out[i] = r[:]
	}
	return out, nil
}

// UnmarshalYAML decodes the MarshalYAML form, padding to MinRows.
func (g *Grid) UnmarshalYAML(node *yaml.Node) error {
	var in [][]*types.Cell
	if err := node.Decode(&in); err != nil {
		return err
	}
	rows, err := fromCells(in)
	if err != nil {
		return err
	}
	g.rows = rows
	return nil
}

// fromCells builds padded rows from decoded cells. A cell without a gift
// loses its dependents, and a cell left blank becomes an empty slot.
func fromCells(in [][]*types.Cell) ([]Row, error) {
	rows := make([]Row, 0, max(len(in), MinRows))
	for i, r := range in {
		if len(r) > Columns {
			return nil, fmt.Errorf("row %d has %d cells, want at most %d", i, len(r), Columns)
		}
		var row Row
		for j, c := range r {
			if c != nil && c.Gift == "" {
				c.ClearGift()
			}
			if c.IsBlank() {
				c = nil
			}
			row[j] = c
		}
		rows = append(rows, row)
	}
	for len(rows) < MinRows {
		rows = append(rows, Row{})
	}
	return rows, nil
}
