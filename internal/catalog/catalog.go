package catalog

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/mesh-intelligence/giftgrid/internal/remote"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Catalog holds the session's gift and backdrop lists together with the
// per-gift attribute cache.
type Catalog struct {
	remote *remote.Cache
	attrs  *Attributes

	mu        sync.RWMutex
	gifts     []types.Gift
	backdrops []*types.Backdrop
}

// New returns an unloaded Catalog backed by rc.
func New(rc *remote.Cache) *Catalog {
	return &Catalog{
		remote: rc,
		attrs:  NewAttributes(rc),
	}
}

// Load fetches the gift list (falling back to FallbackGifts), the backdrop
// list (falling back to none), and then prewarms attributes for the first
// prewarm gifts.
func (c *Catalog) Load(ctx context.Context, prewarm int) {
	gifts := remote.Fetch(ctx, c.remote, remote.GiftsPath, FallbackGifts).Value
	backdrops := remote.Fetch(ctx, c.remote, remote.BackdropsPath, []types.Backdrop{}).Value

	ptrs := make([]*types.Backdrop, len(backdrops))
	for i := range backdrops {
		ptrs[i] = &backdrops[i]
	}

	c.mu.Lock()
	c.gifts = gifts
	c.backdrops = ptrs
	c.mu.Unlock()

	c.attrs.Prewarm(ctx, gifts, prewarm)
}

// Gifts returns the gift names in catalog order.
func (c *Catalog) Gifts() []types.Gift {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]types.Gift(nil), c.gifts...)
}

// Backdrops returns the shared backdrop entries in catalog order.
func (c *Catalog) Backdrops() []*types.Backdrop {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*types.Backdrop(nil), c.backdrops...)
}

// Backdrop returns the backdrop named name, or nil.
func (c *Catalog) Backdrop(name string) *types.Backdrop {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return types.FindBackdrop(c.backdrops, name)
}

// Attributes returns the per-gift attribute cache.
func (c *Catalog) Attributes() *Attributes {
	return c.attrs
}

// Resolve maps a loosely spelled gift name to its catalog spelling, ignoring
// case and anything that is not a letter or digit, so "Durovs Cap" resolves
// to "Durov's Cap". Unknown names are returned unchanged with false.
func (c *Catalog) Resolve(name string) (types.Gift, bool) {
	want := foldName(name)
	if want == "" {
		return name, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, g := range c.gifts {
		if foldName(g) == want {
			return g, true
		}
	}
	return name, false
}

func foldName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Models returns the model variants of gift through the attribute cache.
func (c *Catalog) Models(ctx context.Context, gift types.Gift) []types.ModelVariant {
	return c.attrs.Models(ctx, gift)
}

// Patterns returns the pattern variants of gift through the attribute cache.
func (c *Catalog) Patterns(ctx context.Context, gift types.Gift) []types.PatternVariant {
	return c.attrs.Patterns(ctx, gift)
}
