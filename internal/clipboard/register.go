// Package clipboard holds the single-slot cell copy register.
package clipboard

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Register stores at most one cell snapshot by value. Paste does not clear
// it.
type Register struct {
	mu   sync.RWMutex
	cell *types.Cell
}

// New returns an empty register.
func New() *Register {
	return &Register{}
}

// Copy overwrites the register with a copy of cell's four fields.
func (r *Register) Copy(cell types.Cell) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := cell
	r.cell = &cp
}

// Paste returns the stored snapshot, or false when nothing was copied.
func (r *Register) Paste() (types.Cell, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cell == nil {
		return types.Cell{}, false
	}
	return *r.cell, true
}

// MarshalJSON encodes the stored snapshot, or null when empty.
func (r *Register) MarshalJSON() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return json.Marshal(r.cell)
}

// UnmarshalJSON restores a snapshot written by MarshalJSON.
func (r *Register) UnmarshalJSON(data []byte) error {
	var c *types.Cell
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cell = c
	return nil
}

// writeAll is the system clipboard writer; replaced in tests.
var writeAll = clipboard.WriteAll

// Export writes the stored snapshot as JSON to the operating system
// clipboard so it can be shared outside the session.
func (r *Register) Export() error {
	cell, ok := r.Paste()
	if !ok {
		return types.ErrClipboardEmpty
	}
	data, err := json.Marshal(cell)
	if err != nil {
		return fmt.Errorf("marshal cell: %w", err)
	}
	if err := writeAll(string(data)); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}
