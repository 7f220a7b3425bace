package layout

import (
	"sync"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

type key struct {
	gift    types.Gift
	pattern string
}

// Memo caches layouts by (gift, pattern). It is safe for concurrent use.
type Memo struct {
	mu      sync.Mutex
	entries map[key]Layout
}

// NewMemo returns an empty memo.
func NewMemo() *Memo {
	return &Memo{entries: make(map[key]Layout)}
}

// Rings returns the memoized layout for gift and pattern.
func (m *Memo) Rings(gift types.Gift, pattern string) Layout {
	k := key{gift, pattern}
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.entries[k]; ok {
		return l
	}
	l := Rings(gift, pattern)
	m.entries[k] = l
	return l
}

// View holds the placements currently drawn for one cell and recomputes them
// only when the (gift, pattern) pair changes.
type View struct {
	memo    *Memo
	current key
	layout  Layout
}

// NewView returns an empty view. memo may be nil.
func NewView(memo *Memo) *View {
	if memo == nil {
		memo = NewMemo()
	}
	return &View{memo: memo}
}

// Update points the view at gift and pattern. It reports whether the drawn
// placements changed. A missing gift or pattern clears the view.
func (v *View) Update(gift types.Gift, pattern string) bool {
	k := key{gift, pattern}
	if k == v.current {
		return false
	}
	v.current = k
	hadPlacements := !v.layout.Empty()
	if gift == "" || pattern == "" {
		v.layout = Layout{}
		return hadPlacements
	}
	v.layout = v.memo.Rings(gift, pattern)
	return true
}

// Layout returns the placements currently drawn.
func (v *View) Layout() Layout {
	return v.layout
}
