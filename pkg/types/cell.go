package types

import "errors"

// Cell is the Gift/Model/Backdrop/Pattern combination assigned to one grid
// position. An empty grid position is represented by a nil *Cell; a non-nil
// Cell may still have unset fields. Model, Backdrop and Pattern are only
// meaningful once Gift is set.
type Cell struct {
	Gift     Gift      `json:"gift" yaml:"gift"`
	Model    string    `json:"model" yaml:"model"`
	Backdrop *Backdrop `json:"backdrop" yaml:"backdrop"`
	Pattern  string    `json:"pattern" yaml:"pattern"`
}

// Grid and cell errors.
var (
	ErrOutOfRange     = errors.New("index out of range")
	ErrNoGift         = errors.New("gift must be selected first")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrClipboardEmpty = errors.New("clipboard is empty")
)

// Clone returns an independent copy of the cell. The backdrop pointer is
// shared because catalog backdrops are immutable.
func (c *Cell) Clone() *Cell {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// ClearGift clears the gift together with every field that depends on it.
func (c *Cell) ClearGift() {
	c.Gift = ""
	c.ClearDependents()
}

// ClearDependents clears model, backdrop and pattern.
func (c *Cell) ClearDependents() {
	c.Model = ""
	c.Backdrop = nil
	c.Pattern = ""
}

// IsBlank reports whether no field of the cell is set.
func (c *Cell) IsBlank() bool {
	return c == nil || (c.Gift == "" && c.Model == "" && c.Backdrop == nil && c.Pattern == "")
}

// Equal reports whether two cells hold the same four fields. Backdrops are
// compared by name.
func (c *Cell) Equal(o *Cell) bool {
	if c == nil || o == nil {
		return c == nil && o == nil
	}
	if c.Gift != o.Gift || c.Model != o.Model || c.Pattern != o.Pattern {
		return false
	}
	if c.Backdrop == nil || o.Backdrop == nil {
		return c.Backdrop == nil && o.Backdrop == nil
	}
	return c.Backdrop.Name == o.Backdrop.Name
}
