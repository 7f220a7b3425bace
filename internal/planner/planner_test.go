package planner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/giftgrid/internal/sqlite"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

type api struct {
	hits atomic.Int32
	down atomic.Bool
}

func (a *api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.hits.Add(1)
	if a.down.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	switch {
	case r.URL.Path == "/gifts":
		w.Write([]byte(`["Plush Pepe","Durov's Cap"]`))
	case r.URL.Path == "/backdrops":
		w.Write([]byte(`[{"name":"Jade","hex":{"edgeColor":"#00a86b","centerColor":"#7fffd4"}}]`))
	case strings.HasPrefix(r.URL.Path, "/models/"):
		w.Write([]byte(`[{"name":"Frog","rarityPermille":15},{"name":"Toad","rarityPermille":30}]`))
	case strings.HasPrefix(r.URL.Path, "/patterns/"):
		w.Write([]byte(`[{"name":"Stars","rarityPermille":8}]`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type fixture struct {
	api     *api
	cfg     types.Config
	backend *sqlite.Backend
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	a := &api{}
	srv := httptest.NewServer(a)
	t.Cleanup(srv.Close)

	cfg := types.DefaultConfig()
	cfg.APIBase = srv.URL
	cfg.BackoffStep = time.Millisecond

	dir := t.TempDir()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(dir))
	t.Cleanup(func() { b.Detach() })

	return &fixture{api: a, cfg: cfg, backend: b, dir: dir}
}

func (f *fixture) open(t *testing.T) *Planner {
	t.Helper()
	p, err := Open(f.cfg, f.backend, nil)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

// reopen simulates a new process in the same session.
func (f *fixture) reopen(t *testing.T) *Planner {
	t.Helper()
	require.NoError(t, f.backend.Detach())
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(f.dir))
	t.Cleanup(func() { b.Detach() })
	f.backend = b
	return f.open(t)
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	f := newFixture(t)
	f.cfg.MaxAttempts = 0
	_, err := Open(f.cfg, f.backend, nil)
	assert.ErrorIs(t, err, types.ErrMaxAttemptsInvalid)
}

func TestEditSaveAndPersist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.open(t)

	s, err := p.Edit(ctx, 0, 1)
	require.NoError(t, err)
	s.SetGift(ctx, "Plush Pepe")
	require.NoError(t, s.SetModel("Frog"))
	require.NoError(t, s.SetPattern("Stars"))
	require.NoError(t, s.SetBackdrop("Jade"))
	require.NoError(t, p.Save(0, 1, s))
	p.Grid().AddRow()

	session := p.SessionID()
	q := f.reopen(t)
	assert.Equal(t, session, q.SessionID())

	g := q.Grid().Snapshot()
	assert.Equal(t, 4, g.Rows())
	c, err := g.Cell(0, 1)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Plush Pepe", c.Gift)
	assert.Equal(t, "Frog", c.Model)
	assert.Equal(t, "Stars", c.Pattern)
	assert.Equal(t, "#7fffd4", c.Backdrop.Hex.CenterColor)
}

func TestRemoteCacheSurvivesReopen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.open(t)
	p.Catalog(ctx)
	first := f.api.hits.Load()
	require.Positive(t, first)

	q := f.reopen(t)
	q.Catalog(ctx)
	assert.Equal(t, first, f.api.hits.Load(), "reopened session must be served from the store")
	assert.Equal(t, []types.Gift{"Plush Pepe", "Durov's Cap"}, q.Catalog(ctx).Gifts())
}

func TestCatalogFallsBackWhenAPIDown(t *testing.T) {
	f := newFixture(t)
	f.api.down.Store(true)
	f.cfg.PrewarmCount = 0

	p := f.open(t)
	gifts := p.Catalog(context.Background()).Gifts()
	assert.Contains(t, gifts, "Plush Pepe")
	assert.Greater(t, len(gifts), 100)
	assert.Empty(t, p.Catalog(context.Background()).Backdrops())
}

func TestCopyPaste(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.open(t)

	assert.ErrorIs(t, p.Paste(1, 1), types.ErrClipboardEmpty)

	s, _ := p.Edit(ctx, 0, 0)
	s.SetGift(ctx, "Plush Pepe")
	require.NoError(t, s.SetModel("Toad"))
	require.NoError(t, p.Save(0, 0, s))

	require.NoError(t, p.Copy(0, 0))
	require.NoError(t, p.Paste(2, 2))

	require.NoError(t, p.Clear(0, 0))

	g := p.Grid().Snapshot()
	src, _ := g.Cell(0, 0)
	dst, _ := g.Cell(2, 2)
	assert.Nil(t, src)
	require.NotNil(t, dst)
	assert.Equal(t, "Toad", dst.Model)

	q := f.reopen(t)
	snap, ok := q.Clipboard().Paste()
	require.True(t, ok, "clipboard must survive reopen")
	assert.Equal(t, "Plush Pepe", snap.Gift)
}

func TestPasteDoesNotTouchNetwork(t *testing.T) {
	f := newFixture(t)
	f.api.down.Store(true)
	p := f.open(t)

	require.NoError(t, p.Grid().SetCell(0, 0, &types.Cell{Gift: "Plush Pepe", Model: "Frog", Pattern: "Stars"}))
	require.NoError(t, p.Copy(0, 0))
	require.NoError(t, p.Paste(1, 1))

	assert.Zero(t, f.api.hits.Load())
	c, err := p.Grid().Snapshot().Cell(1, 1)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Frog", c.Model)
}

func TestPasteBlankClipboardEmptiesSlot(t *testing.T) {
	f := newFixture(t)
	p := f.open(t)

	require.NoError(t, p.Grid().SetCell(2, 0, &types.Cell{Gift: "Plush Pepe"}))
	require.NoError(t, p.Copy(0, 0))
	require.NoError(t, p.Paste(2, 0))

	c, err := p.Grid().Snapshot().Cell(2, 0)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestGridSaveFailureIsReported(t *testing.T) {
	f := newFixture(t)
	p := f.open(t)
	require.NoError(t, p.Err())

	require.NoError(t, f.backend.Detach())
	assert.ErrorIs(t, p.Clear(0, 0), types.ErrStoreClosed)
	assert.ErrorIs(t, p.Close(), types.ErrStoreClosed)
}

func TestOutOfRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.open(t)

	_, err := p.Edit(ctx, 3, 0)
	assert.ErrorIs(t, err, types.ErrOutOfRange)
	assert.ErrorIs(t, p.Copy(0, 3), types.ErrOutOfRange)
	_, err = p.Rings(-1, 0)
	assert.ErrorIs(t, err, types.ErrOutOfRange)
}

func TestRings(t *testing.T) {
	f := newFixture(t)
	p := f.open(t)

	l, err := p.Rings(0, 0)
	require.NoError(t, err)
	assert.True(t, l.Empty())

	require.NoError(t, p.Grid().SetCell(0, 0, &types.Cell{Gift: "Plush Pepe", Pattern: "Stars"}))
	l, err = p.Rings(0, 0)
	require.NoError(t, err)
	assert.Len(t, l.Placements, 60)
	assert.Equal(t, "Stars", l.Symbol.Pattern)
}

func TestModelImageURL(t *testing.T) {
	f := newFixture(t)
	p := f.open(t)
	assert.Empty(t, p.ModelImageURL(nil))
	assert.Empty(t, p.ModelImageURL(&types.Cell{Gift: "Plush Pepe"}))
	assert.Equal(t, f.cfg.APIBase+"/model/plush-pepe/Frog.png?size=128",
		p.ModelImageURL(&types.Cell{Gift: "Plush Pepe", Model: "Frog"}))
}
