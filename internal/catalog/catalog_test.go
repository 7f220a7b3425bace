package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/giftgrid/internal/remote"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// fakeAPI serves canned catalog responses and records every request path.
type fakeAPI struct {
	mu        sync.Mutex
	requests  []string
	gifts     string
	backdrops string
	failGifts bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.Path)
	f.mu.Unlock()

	switch {
	case r.URL.Path == "/gifts":
		if f.failGifts {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(f.gifts))
	case r.URL.Path == "/backdrops":
		w.Write([]byte(f.backdrops))
	case strings.HasPrefix(r.URL.Path, "/models/"):
		name := strings.TrimPrefix(r.URL.Path, "/models/")
		w.Write([]byte(`[{"name":"` + name + `-model","rarityPermille":10}]`))
	case strings.HasPrefix(r.URL.Path, "/patterns/"):
		name := strings.TrimPrefix(r.URL.Path, "/patterns/")
		w.Write([]byte(`[{"name":"` + name + `-pattern","rarityPermille":20}]`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeAPI) count(path string) int {
	n := 0
	for _, p := range f.paths() {
		if p == path {
			n++
		}
	}
	return n
}

func newFake(t *testing.T) (*fakeAPI, *remote.Cache) {
	t.Helper()
	api := &fakeAPI{
		gifts:     `["Plush Pepe","Santa Hat","Durov's Cap","Jelly Bunny","Hex Pot","Evil Eye","Ion Gem"]`,
		backdrops: `[{"name":"Onyx Black","hex":{"edgeColor":"#000000","centerColor":"#333333"}},{"name":"Jade","hex":{"edgeColor":"#00a86b","centerColor":"#7fffd4"}}]`,
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, remote.New(srv.URL, nil, remote.WithBackoffStep(0), remote.WithMaxAttempts(1))
}

func TestAttributes_ModelsAreCached(t *testing.T) {
	api, rc := newFake(t)
	attrs := NewAttributes(rc)
	ctx := context.Background()

	first := attrs.Models(ctx, "Plush Pepe")
	second := attrs.Models(ctx, "Plush Pepe")

	assert.Equal(t, []types.ModelVariant{{Name: "plush-pepe-model", RarityPermille: 10}}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.count("/models/plush-pepe"))
}

func TestAttributes_PatternsAreCached(t *testing.T) {
	api, rc := newFake(t)
	attrs := NewAttributes(rc)
	ctx := context.Background()

	got := attrs.Patterns(ctx, "Santa Hat")
	attrs.Patterns(ctx, "Santa Hat")

	assert.Equal(t, []types.PatternVariant{{Name: "santa-hat-pattern", RarityPermille: 20}}, got)
	assert.Equal(t, 1, api.count("/patterns/santa-hat"))
}

func TestAttributes_FailedFetchIsKeptAsEmpty(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	attrs := NewAttributes(remote.New(srv.URL, nil, remote.WithBackoffStep(0)))
	ctx := context.Background()

	assert.Empty(t, attrs.Models(ctx, "Plush Pepe"))
	assert.Empty(t, attrs.Models(ctx, "Plush Pepe"))
	assert.Equal(t, int32(3), hits.Load())
}

func TestAttributes_PrewarmIsSequentialAndBounded(t *testing.T) {
	api, rc := newFake(t)
	attrs := NewAttributes(rc)

	gifts := []types.Gift{"Plush Pepe", "Santa Hat", "Durov's Cap", "Jelly Bunny", "Hex Pot", "Evil Eye", "Ion Gem"}
	attrs.Prewarm(context.Background(), gifts, 5)

	want := []string{
		"/models/plush-pepe", "/patterns/plush-pepe",
		"/models/santa-hat", "/patterns/santa-hat",
		"/models/durov's-cap", "/patterns/durov's-cap",
		"/models/jelly-bunny", "/patterns/jelly-bunny",
		"/models/hex-pot", "/patterns/hex-pot",
	}
	assert.Equal(t, want, api.paths())
	assert.True(t, attrs.Cached("Hex Pot"))
	assert.False(t, attrs.Cached("Evil Eye"))
}

func TestAttributes_PrewarmFewerGiftsThanLimit(t *testing.T) {
	api, rc := newFake(t)
	attrs := NewAttributes(rc)

	attrs.Prewarm(context.Background(), []types.Gift{"Plush Pepe", "Santa Hat"}, 5)
	assert.Len(t, api.paths(), 4)

	attrs.Prewarm(context.Background(), nil, 5)
	assert.Len(t, api.paths(), 4)
}

func TestAttributes_PrewarmStopsOnCancelledContext(t *testing.T) {
	api, rc := newFake(t)
	attrs := NewAttributes(rc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	attrs.Prewarm(ctx, []types.Gift{"Plush Pepe"}, 5)
	assert.Empty(t, api.paths())
}

func TestCatalog_Load(t *testing.T) {
	api, rc := newFake(t)
	c := New(rc)
	c.Load(context.Background(), 5)

	gifts := c.Gifts()
	require.Len(t, gifts, 7)
	assert.Equal(t, "Plush Pepe", gifts[0])

	backdrops := c.Backdrops()
	require.Len(t, backdrops, 2)
	assert.Equal(t, "Onyx Black", backdrops[0].Name)
	assert.Same(t, backdrops[1], c.Backdrop("Jade"))
	assert.Nil(t, c.Backdrop("Ruby"))

	assert.Equal(t, "/gifts", api.paths()[0])
	assert.Equal(t, "/backdrops", api.paths()[1])
	assert.Len(t, api.paths(), 2+10)
	assert.True(t, c.Attributes().Cached("Hex Pot"))
}

func TestCatalog_LoadFallsBackToBuiltInGifts(t *testing.T) {
	api, rc := newFake(t)
	api.failGifts = true

	c := New(rc)
	c.Load(context.Background(), 0)

	assert.Equal(t, FallbackGifts, c.Gifts())
	assert.Len(t, c.Backdrops(), 2)
}

func TestCatalog_Resolve(t *testing.T) {
	_, rc := newFake(t)
	c := New(rc)
	c.Load(context.Background(), 0)

	got, ok := c.Resolve("Durovs Cap")
	assert.True(t, ok)
	assert.Equal(t, "Durov's Cap", got)

	got, ok = c.Resolve("plush pepe")
	assert.True(t, ok)
	assert.Equal(t, "Plush Pepe", got)

	got, ok = c.Resolve("Lost Gift")
	assert.False(t, ok)
	assert.Equal(t, "Lost Gift", got)

	_, ok = c.Resolve("!!")
	assert.False(t, ok)
}
