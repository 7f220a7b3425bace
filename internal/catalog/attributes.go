// Package catalog loads the gift catalog and keeps per-gift model and
// pattern lists for the session.
package catalog

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/giftgrid/internal/remote"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Attributes lazily caches the model and pattern variants of each gift.
// Entries are never invalidated: once a gift has a list, including an empty
// list produced by a failed fetch, it is served from memory.
type Attributes struct {
	remote *remote.Cache

	mu       sync.Mutex
	models   map[types.Gift][]types.ModelVariant
	patterns map[types.Gift][]types.PatternVariant
}

// NewAttributes returns an empty attribute cache backed by rc.
func NewAttributes(rc *remote.Cache) *Attributes {
	return &Attributes{
		remote:   rc,
		models:   make(map[types.Gift][]types.ModelVariant),
		patterns: make(map[types.Gift][]types.PatternVariant),
	}
}

// Models returns the model variants of gift in catalog order.
func (a *Attributes) Models(ctx context.Context, gift types.Gift) []types.ModelVariant {
	a.mu.Lock()
	cached, ok := a.models[gift]
	a.mu.Unlock()
	if ok {
		return cached
	}

	res := remote.Fetch(ctx, a.remote, remote.ModelsPath(gift), []types.ModelVariant{})

	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.models[gift]; ok {
		return existing
	}
	a.models[gift] = res.Value
	return res.Value
}

// Patterns returns the pattern variants of gift in catalog order.
func (a *Attributes) Patterns(ctx context.Context, gift types.Gift) []types.PatternVariant {
	a.mu.Lock()
	cached, ok := a.patterns[gift]
	a.mu.Unlock()
	if ok {
		return cached
	}

	res := remote.Fetch(ctx, a.remote, remote.PatternsPath(gift), []types.PatternVariant{})

	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.patterns[gift]; ok {
		return existing
	}
	a.patterns[gift] = res.Value
	return res.Value
}

// Prewarm loads models then patterns for the first limit gifts, one gift at
// a time. It stops early when ctx is done.
func (a *Attributes) Prewarm(ctx context.Context, gifts []types.Gift, limit int) {
	n := min(limit, len(gifts))
	for _, gift := range gifts[:max(n, 0)] {
		if ctx.Err() != nil {
			return
		}
		a.Models(ctx, gift)
		a.Patterns(ctx, gift)
	}
}

// Cached reports whether both lists of gift are already cached.
func (a *Attributes) Cached(gift types.Gift) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, m := a.models[gift]
	_, p := a.patterns[gift]
	return m && p
}
