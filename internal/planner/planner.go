// Package planner assembles the per-session services (remote cache, catalog,
// grid, clipboard, layout memo) on top of the SQLite session store and
// exposes the commands the CLI runs against them.
package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/mesh-intelligence/giftgrid/internal/catalog"
	"github.com/mesh-intelligence/giftgrid/internal/clipboard"
	"github.com/mesh-intelligence/giftgrid/internal/editor"
	"github.com/mesh-intelligence/giftgrid/internal/grid"
	"github.com/mesh-intelligence/giftgrid/internal/layout"
	"github.com/mesh-intelligence/giftgrid/internal/remote"
	"github.com/mesh-intelligence/giftgrid/internal/sqlite"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Planner holds one session's services. Construct it with Open.
type Planner struct {
	cfg       types.Config
	logger    *log.Logger
	backend   *sqlite.Backend
	sessionID string

	remote  *remote.Cache
	catalog *catalog.Catalog
	loaded  bool
	grid    *grid.Model
	clip    *clipboard.Register
	memo    *layout.Memo

	stopWatch func()

	mu      sync.Mutex
	saveErr error
}

// Open resumes the current session in backend, starting a new one when none
// is active, and restores its grid and clipboard.
func Open(cfg types.Config, backend *sqlite.Backend, logger *log.Logger) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	sessionID, err := backend.CurrentSession()
	if errors.Is(err, types.ErrSessionNotFound) {
		sessionID, err = backend.CreateSession()
	}
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	rc := remote.NewFromConfig(cfg, backend.Store(sessionID), logger)
	p := &Planner{
		cfg:       cfg,
		logger:    logger,
		backend:   backend,
		sessionID: sessionID,
		remote:    rc,
		catalog:   catalog.New(rc),
		clip:      clipboard.New(),
		memo:      layout.NewMemo(),
	}

	var saved grid.Grid
	ok, err := backend.LoadState(sessionID, sqlite.StateGrid, &saved)
	if err != nil {
		return nil, fmt.Errorf("restore grid: %w", err)
	}
	if ok {
		p.grid = grid.NewModelFrom(&saved)
	} else {
		p.grid = grid.NewModel()
	}

	if _, err := backend.LoadState(sessionID, sqlite.StateClipboard, p.clip); err != nil {
		return nil, fmt.Errorf("restore clipboard: %w", err)
	}

	p.stopWatch = p.grid.Watch(func(g *grid.Grid) {
		if err := backend.SaveState(sessionID, sqlite.StateGrid, g); err != nil {
			logger.Printf("saving grid: %v", err)
			p.mu.Lock()
			p.saveErr = errors.Join(p.saveErr, fmt.Errorf("saving grid: %w", err))
			p.mu.Unlock()
		}
	})
	return p, nil
}

// Close stops persisting grid changes and returns Err. The backend stays
// attached.
func (p *Planner) Close() error {
	if p.stopWatch != nil {
		p.stopWatch()
		p.stopWatch = nil
	}
	return p.Err()
}

// Err reports every grid change that could not be persisted since Open.
func (p *Planner) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saveErr
}

// SessionID returns the session this planner works in.
func (p *Planner) SessionID() string {
	return p.sessionID
}

// Grid returns the session grid model.
func (p *Planner) Grid() *grid.Model {
	return p.grid
}

// Remote returns the session's remote cache.
func (p *Planner) Remote() *remote.Cache {
	return p.remote
}

// Catalog loads the catalog on first use and returns it.
func (p *Planner) Catalog(ctx context.Context) *catalog.Catalog {
	if !p.loaded {
		p.catalog.Load(ctx, p.cfg.PrewarmCount)
		p.loaded = true
	}
	return p.catalog
}

// Edit opens an editor on the cell at (row, col).
func (p *Planner) Edit(ctx context.Context, row, col int) (*editor.Session, error) {
	current, err := p.grid.Snapshot().Cell(row, col)
	if err != nil {
		return nil, err
	}
	return editor.NewSession(ctx, p.Catalog(ctx), current), nil
}

// Save writes the edited cell back to (row, col). A cell with nothing
// selected is stored as an empty slot.
func (p *Planner) Save(row, col int, s *editor.Session) error {
	return p.setCell(row, col, s.Cell())
}

// Clear empties the cell at (row, col).
func (p *Planner) Clear(row, col int) error {
	return p.setCell(row, col, nil)
}

func (p *Planner) setCell(row, col int, c *types.Cell) error {
	if c.IsBlank() {
		c = nil
	}
	if err := p.grid.SetCell(row, col, c); err != nil {
		return err
	}
	return p.Err()
}

// Copy stores the cell at (row, col) in the clipboard register. An empty
// slot copies an empty cell.
func (p *Planner) Copy(row, col int) error {
	c, err := p.grid.Snapshot().Cell(row, col)
	if err != nil {
		return err
	}
	if c == nil {
		c = &types.Cell{}
	}
	p.clip.Copy(*c)
	if err := p.backend.SaveState(p.sessionID, sqlite.StateClipboard, p.clip); err != nil {
		return fmt.Errorf("saving clipboard: %w", err)
	}
	return nil
}

// Paste writes the clipboard snapshot into (row, col) without consulting the
// catalog.
func (p *Planner) Paste(row, col int) error {
	snap, ok := p.clip.Paste()
	if !ok {
		return types.ErrClipboardEmpty
	}
	return p.setCell(row, col, &snap)
}

// Clipboard returns the session's clipboard register.
func (p *Planner) Clipboard() *clipboard.Register {
	return p.clip
}

// Rings returns the pattern ring layout of the cell at (row, col).
func (p *Planner) Rings(row, col int) (layout.Layout, error) {
	c, err := p.grid.Snapshot().Cell(row, col)
	if err != nil {
		return layout.Layout{}, err
	}
	if c == nil {
		return layout.Layout{}, nil
	}
	return p.memo.Rings(c.Gift, c.Pattern), nil
}

// ModelImageURL returns the absolute thumbnail URL of a cell's model, or ""
// when the cell has no model.
func (p *Planner) ModelImageURL(c *types.Cell) string {
	if c == nil || c.Gift == "" || c.Model == "" {
		return ""
	}
	return p.remote.URL(remote.ModelImagePath(c.Gift, c.Model, remote.ThumbnailSize))
}
