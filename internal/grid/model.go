package grid

import (
	"sync"
	"sync/atomic"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Model is the only writer of the grid. Every mutation clones the current
// snapshot, edits the clone and publishes it; Snapshot never blocks.
type Model struct {
	mu      sync.Mutex // serializes writers and watcher notification
	current atomic.Pointer[Grid]

	watchers map[int]func(*Grid)
	nextID   int
}

// NewModel returns a model holding MinRows empty rows.
func NewModel() *Model {
	return NewModelFrom(New(MinRows))
}

// NewModelFrom returns a model whose first snapshot is g.
func NewModelFrom(g *Grid) *Model {
	if g == nil || g.Rows() < MinRows {
		g = New(MinRows)
	}
	m := &Model{watchers: make(map[int]func(*Grid))}
	m.current.Store(g)
	return m
}

// Snapshot returns the current grid.
func (m *Model) Snapshot() *Grid {
	return m.current.Load()
}

// Watch registers fn to receive every published snapshot. fn runs while the
// model is locked and must not mutate the model. The returned func
// unregisters fn.
func (m *Model) Watch(fn func(*Grid)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.watchers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.watchers, id)
	}
}

// AddRow appends a row of empty cells.
func (m *Model) AddRow() {
	_ = m.mutate(func(g *Grid) error {
		g.rows = append(g.rows, Row{})
		return nil
	})
}

// RemoveRow deletes the row at index, shifting later rows up. It reports
// false without touching the grid when only MinRows rows remain.
func (m *Model) RemoveRow(index int) (bool, error) {
	removed := false
	err := m.mutate(func(g *Grid) error {
		if g.Rows() <= MinRows {
			return errNoChange
		}
		if err := g.check(index, 0); err != nil {
			return err
		}
		g.rows = append(g.rows[:index], g.rows[index+1:]...)
		removed = true
		return nil
	})
	return removed, err
}

// SetCell replaces the cell at (row, col) with a copy of cell. A nil cell
// empties the slot.
func (m *Model) SetCell(row, col int, cell *types.Cell) error {
	return m.mutate(func(g *Grid) error {
		if err := g.check(row, col); err != nil {
			return err
		}
		g.rows[row][col] = cell.Clone()
		return nil
	})
}

// SwapCells exchanges the contents of two slots given by linear index.
// Swapping is its own inverse.
func (m *Model) SwapCells(src, dst int) error {
	return m.mutate(func(g *Grid) error {
		if err := g.checkIndex(src); err != nil {
			return err
		}
		if err := g.checkIndex(dst); err != nil {
			return err
		}
		sr, sc := Position(src)
		dr, dc := Position(dst)
		g.rows[sr][sc], g.rows[dr][dc] = g.rows[dr][dc], g.rows[sr][sc]
		return nil
	})
}

// Reset empties every cell and keeps the row count.
func (m *Model) Reset() {
	_ = m.mutate(func(g *Grid) error {
		g.rows = make([]Row, len(g.rows))
		return nil
	})
}

// Replace publishes g as the current grid, for restoring a saved session.
func (m *Model) Replace(g *Grid) {
	_ = m.mutate(func(next *Grid) error {
		next.rows = g.clone().rows
		if len(next.rows) < MinRows {
			next.rows = append(next.rows, make([]Row, MinRows-len(next.rows))...)
		}
		return nil
	})
}

// mutate applies fn to a clone of the current grid and publishes the clone
// when fn succeeds. errNoChange aborts quietly.
func (m *Model) mutate(fn func(*Grid) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.current.Load().clone()
	if err := fn(next); err != nil {
		if err == errNoChange {
			return nil
		}
		return err
	}
	m.current.Store(next)
	for _, w := range m.watchers {
		w(next)
	}
	return nil
}
