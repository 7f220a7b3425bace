// Package editor implements the single-cell editing flow: choosing a gift,
// then its model, backdrop and pattern, with link parsing and copy/paste.
package editor

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/giftgrid/internal/clipboard"
	"github.com/mesh-intelligence/giftgrid/internal/link"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Catalog is what the editor needs from the session catalog.
type Catalog interface {
	Models(ctx context.Context, gift types.Gift) []types.ModelVariant
	Patterns(ctx context.Context, gift types.Gift) []types.PatternVariant
	Backdrop(name string) *types.Backdrop
	Resolve(name string) (types.Gift, bool)
}

// Session edits one cell. It is not safe for concurrent use.
type Session struct {
	catalog  Catalog
	cell     types.Cell
	models   []types.ModelVariant
	patterns []types.PatternVariant
}

// NewSession starts editing a copy of initial, which may be nil for an empty
// slot, and loads the option lists of its gift.
func NewSession(ctx context.Context, cat Catalog, initial *types.Cell) *Session {
	s := &Session{catalog: cat}
	if initial != nil {
		s.cell = *initial
	}
	s.loadOptions(ctx)
	return s
}

// SetGift selects gift. Model, pattern and backdrop are cleared together
// with the option lists before the new gift's options are loaded. An empty
// gift clears the whole cell.
func (s *Session) SetGift(ctx context.Context, gift types.Gift) {
	s.cell.ClearDependents()
	s.models = nil
	s.patterns = nil
	s.cell.Gift = gift
	s.loadOptions(ctx)
}

// SetModel selects a model of the current gift. An empty name clears it.
func (s *Session) SetModel(name string) error {
	if err := s.requireGift(); err != nil {
		return err
	}
	if name != "" && len(s.models) > 0 && !types.HasModel(s.models, name) {
		return fmt.Errorf("%w: model %q of %s", types.ErrUnknownVariant, name, s.cell.Gift)
	}
	s.cell.Model = name
	return nil
}

// SetPattern selects a pattern of the current gift. An empty name clears it.
func (s *Session) SetPattern(name string) error {
	if err := s.requireGift(); err != nil {
		return err
	}
	if name != "" && len(s.patterns) > 0 && !types.HasPattern(s.patterns, name) {
		return fmt.Errorf("%w: pattern %q of %s", types.ErrUnknownVariant, name, s.cell.Gift)
	}
	s.cell.Pattern = name
	return nil
}

// SetBackdrop selects a catalog backdrop by name. An empty name clears it.
func (s *Session) SetBackdrop(name string) error {
	if err := s.requireGift(); err != nil {
		return err
	}
	if name == "" {
		s.cell.Backdrop = nil
		return nil
	}
	b := s.catalog.Backdrop(name)
	if b == nil {
		return fmt.Errorf("%w: backdrop %q", types.ErrUnknownVariant, name)
	}
	s.cell.Backdrop = b
	return nil
}

// ApplyLink selects the gift named by a t.me/nft link. A link that does not
// parse leaves the session untouched and returns false.
func (s *Session) ApplyLink(ctx context.Context, text string) bool {
	name, err := link.Parse(text)
	if err != nil {
		return false
	}
	gift, _ := s.catalog.Resolve(name)
	s.SetGift(ctx, gift)
	return true
}

// Copy stores the cell being edited in r.
func (s *Session) Copy(r *clipboard.Register) {
	r.Copy(s.cell)
}

// Paste replaces all four fields with the snapshot in r. It returns false
// when r is empty.
func (s *Session) Paste(ctx context.Context, r *clipboard.Register) bool {
	snap, ok := r.Paste()
	if !ok {
		return false
	}
	giftChanged := snap.Gift != s.cell.Gift
	s.cell = snap
	if giftChanged {
		s.models = nil
		s.patterns = nil
		s.loadOptions(ctx)
	}
	return true
}

// Cell returns a copy of the cell being edited.
func (s *Session) Cell() *types.Cell {
	cp := s.cell
	return &cp
}

// Models returns the selectable models of the current gift.
func (s *Session) Models() []types.ModelVariant {
	return s.models
}

// Patterns returns the selectable patterns of the current gift.
func (s *Session) Patterns() []types.PatternVariant {
	return s.patterns
}

func (s *Session) requireGift() error {
	if s.cell.Gift == "" {
		return types.ErrNoGift
	}
	return nil
}

func (s *Session) loadOptions(ctx context.Context) {
	if s.cell.Gift == "" {
		return
	}
	s.models = s.catalog.Models(ctx, s.cell.Gift)
	s.patterns = s.catalog.Patterns(ctx, s.cell.Gift)
}
