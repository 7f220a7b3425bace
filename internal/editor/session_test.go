package editor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/giftgrid/internal/clipboard"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// fakeCatalog serves two variants per gift and counts option lookups.
type fakeCatalog struct {
	backdrops []*types.Backdrop
	gifts     []types.Gift
	lookups   []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		backdrops: []*types.Backdrop{
			{Name: "Onyx Black", Hex: types.BackdropHex{EdgeColor: "#000", CenterColor: "#333"}},
			{Name: "Jade", Hex: types.BackdropHex{EdgeColor: "#00a86b", CenterColor: "#7fffd4"}},
		},
		gifts: []types.Gift{"Plush Pepe", "Durov's Cap", "Santa Hat"},
	}
}

func (f *fakeCatalog) Models(_ context.Context, gift types.Gift) []types.ModelVariant {
	f.lookups = append(f.lookups, "models:"+gift)
	return []types.ModelVariant{{Name: gift + " A", RarityPermille: 10}, {Name: gift + " B", RarityPermille: 20}}
}

func (f *fakeCatalog) Patterns(_ context.Context, gift types.Gift) []types.PatternVariant {
	f.lookups = append(f.lookups, "patterns:"+gift)
	return []types.PatternVariant{{Name: gift + " Stars", RarityPermille: 5}}
}

func (f *fakeCatalog) Backdrop(name string) *types.Backdrop {
	return types.FindBackdrop(f.backdrops, name)
}

func (f *fakeCatalog) Resolve(name string) (types.Gift, bool) {
	key := strings.ToLower(strings.ReplaceAll(name, "'", ""))
	for _, g := range f.gifts {
		if strings.ToLower(strings.ReplaceAll(g, "'", "")) == key {
			return g, true
		}
	}
	return name, false
}

// fullSession returns a session with gift A and every dependent field set.
func fullSession(t *testing.T, cat *fakeCatalog) *Session {
	t.Helper()
	s := NewSession(context.Background(), cat, nil)
	s.SetGift(context.Background(), "Plush Pepe")
	require.NoError(t, s.SetModel("Plush Pepe A"))
	require.NoError(t, s.SetPattern("Plush Pepe Stars"))
	require.NoError(t, s.SetBackdrop("Jade"))
	return s
}

func TestSetGiftCascadesToDependents(t *testing.T) {
	cat := newFakeCatalog()
	s := fullSession(t, cat)

	s.SetGift(context.Background(), "Santa Hat")

	c := s.Cell()
	assert.Equal(t, "Santa Hat", c.Gift)
	assert.Empty(t, c.Model)
	assert.Empty(t, c.Pattern)
	assert.Nil(t, c.Backdrop)
	assert.Equal(t, "Santa Hat A", s.Models()[0].Name)
	assert.Equal(t, "Santa Hat Stars", s.Patterns()[0].Name)
}

func TestClearingGiftClearsEverything(t *testing.T) {
	cat := newFakeCatalog()
	s := fullSession(t, cat)
	before := len(cat.lookups)

	s.SetGift(context.Background(), "")

	assert.True(t, s.Cell().IsBlank())
	assert.Empty(t, s.Models())
	assert.Empty(t, s.Patterns())
	assert.Len(t, cat.lookups, before, "no lookups for an empty gift")
}

func TestDependentsRequireGift(t *testing.T) {
	s := NewSession(context.Background(), newFakeCatalog(), nil)
	assert.ErrorIs(t, s.SetModel("x"), types.ErrNoGift)
	assert.ErrorIs(t, s.SetPattern("x"), types.ErrNoGift)
	assert.ErrorIs(t, s.SetBackdrop("Jade"), types.ErrNoGift)
}

func TestUnknownVariantsAreRejected(t *testing.T) {
	s := fullSession(t, newFakeCatalog())
	assert.ErrorIs(t, s.SetModel("Santa Hat A"), types.ErrUnknownVariant)
	assert.ErrorIs(t, s.SetPattern("Nope"), types.ErrUnknownVariant)
	assert.ErrorIs(t, s.SetBackdrop("Ruby"), types.ErrUnknownVariant)

	c := s.Cell()
	assert.Equal(t, "Plush Pepe A", c.Model)
	assert.Equal(t, "Jade", c.Backdrop.Name)
}

func TestEmptyNamesClearSelections(t *testing.T) {
	s := fullSession(t, newFakeCatalog())
	require.NoError(t, s.SetModel(""))
	require.NoError(t, s.SetPattern(""))
	require.NoError(t, s.SetBackdrop(""))

	c := s.Cell()
	assert.Equal(t, "Plush Pepe", c.Gift)
	assert.Empty(t, c.Model)
	assert.Empty(t, c.Pattern)
	assert.Nil(t, c.Backdrop)
}

func TestBackdropIsSharedCatalogEntry(t *testing.T) {
	cat := newFakeCatalog()
	s := fullSession(t, cat)
	assert.Same(t, cat.backdrops[1], s.Cell().Backdrop)
}

func TestApplyLink(t *testing.T) {
	cat := newFakeCatalog()
	s := fullSession(t, cat)

	assert.False(t, s.ApplyLink(context.Background(), "not a link"))
	assert.Equal(t, "Plush Pepe A", s.Cell().Model, "failed parse must not change the cell")

	assert.True(t, s.ApplyLink(context.Background(), "https://t.me/nft/Durovs-Cap-1"))
	c := s.Cell()
	assert.Equal(t, "Durov's Cap", c.Gift)
	assert.Empty(t, c.Model)

	assert.True(t, s.ApplyLink(context.Background(), "t.me/nft/Lost-Gift-3"))
	assert.Equal(t, "Lost Gift", s.Cell().Gift)
}

func TestCopyPasteBetweenSessions(t *testing.T) {
	cat := newFakeCatalog()
	reg := clipboard.New()

	x := fullSession(t, cat)
	x.Copy(reg)

	y := NewSession(context.Background(), cat, &types.Cell{Gift: "Santa Hat", Model: "Santa Hat B"})
	require.True(t, y.Paste(context.Background(), reg))

	assert.True(t, x.Cell().Equal(y.Cell()))
	assert.Same(t, x.Cell().Backdrop, y.Cell().Backdrop)
	assert.Equal(t, "Plush Pepe A", y.Models()[0].Name, "options follow the pasted gift")

	x.SetGift(context.Background(), "Santa Hat")
	snap, _ := reg.Paste()
	assert.Equal(t, "Plush Pepe", snap.Gift)
	assert.Equal(t, "Plush Pepe A", snap.Model)
}

func TestPasteFromEmptyRegister(t *testing.T) {
	s := fullSession(t, newFakeCatalog())
	assert.False(t, s.Paste(context.Background(), clipboard.New()))
	assert.Equal(t, "Plush Pepe", s.Cell().Gift)
}

func TestNewSessionKeepsInitialFields(t *testing.T) {
	cat := newFakeCatalog()
	initial := &types.Cell{Gift: "Santa Hat", Model: "Santa Hat B", Pattern: "Santa Hat Stars"}
	s := NewSession(context.Background(), cat, initial)

	assert.True(t, initial.Equal(s.Cell()))
	assert.Equal(t, []string{"models:Santa Hat", "patterns:Santa Hat"}, cat.lookups)

	s.Cell().Model = "changed"
	assert.Equal(t, "Santa Hat B", s.Cell().Model)
}
