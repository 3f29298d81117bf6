package bindings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"github.com/Mplus-me/rockcardcollector-v1/internal/catalog"
	"github.com/Mplus-me/rockcardcollector-v1/internal/game"
	"github.com/Mplus-me/rockcardcollector-v1/internal/store"
)

const (
	appConfigDirName = "rockcardcollector"
	saveDBName       = "collection.db"
	saveSlot         = "default"
	tickInterval     = time.Second
)

// AppDataDir returns the OS-appropriate directory holding the save
// database.
func AppDataDir() string {
	if d, err := os.UserConfigDir(); err == nil && d != "" {
		return filepath.Join(d, appConfigDirName)
	}
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		return filepath.Join(h, "."+appConfigDirName)
	}
	return "."
}

// App is the Wails-bound service owning the game core and its
// persistence. All core access goes through mu; the core itself is not
// concurrency-safe.
type App struct {
	ctx  context.Context
	db   store.DB
	cat  *catalog.Catalog
	core *game.Core
	log  *zap.Logger

	mu   sync.Mutex
	stop chan struct{}
}

func New() *App {
	return &App{stop: make(chan struct{})}
}

// Startup opens the save database, loads the catalog and the player's
// save, runs the offline catch-up pass, and starts the once-per-second
// tick loop. Called by Wails before the frontend is served.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	log, err := zap.NewProduction()
	if err != nil {
		log = zap.NewNop()
	}
	a.log = log

	appDir := AppDataDir()
	if err := os.MkdirAll(appDir, 0755); err != nil {
		panic(err)
	}

	db, err := store.NewSQLiteDB(filepath.Join(appDir, saveDBName))
	if err != nil {
		panic(err)
	}
	a.db = db
	if err := a.db.Migrate(); err != nil {
		panic(err)
	}

	// YAML files dropped into the app's catalog directory override the
	// embedded defaults per file.
	cat, err := catalog.LoadDir(filepath.Join(appDir, "catalog"))
	if err != nil {
		panic(err)
	}
	a.cat = cat
	a.core = game.New(cat, nil, a.log)

	a.loadSave()

	now := time.Now()
	events := a.core.CheckOnLoad(now)
	a.persist()
	a.emit(events)

	go a.tickLoop()
}

// Shutdown stops the tick loop, flushes the save, and closes the
// database.
func (a *App) Shutdown(ctx context.Context) {
	close(a.stop)

	a.mu.Lock()
	a.persist()
	a.mu.Unlock()

	if err := a.db.Close(); err != nil {
		a.log.Warn("closing save database", zap.Error(err))
	}
	_ = a.log.Sync()
}

// loadSave restores the persisted blob, starting a fresh player when
// none exists. A backfilled load is re-saved immediately so the blob on
// disk always carries every section.
func (a *App) loadSave() {
	blob, err := a.db.LoadBlob(saveSlot)
	if errors.Is(err, store.ErrNoSave) {
		a.log.Info("no save found, starting fresh")
		a.persist()
		return
	}
	if err != nil {
		panic(err)
	}

	backfilled, err := a.core.RestoreSave(blob)
	if err != nil {
		// A corrupt blob is not silently discarded; the player keeps
		// the fresh default state and the old blob stays on disk until
		// the next explicit save.
		a.log.Error("save blob failed to restore", zap.Error(err))
		return
	}
	if backfilled {
		a.log.Info("save blob backfilled with missing sections")
		a.persist()
	}
}

// persist writes the save blob if anything changed. Callers must hold
// mu (or be single-threaded during startup/shutdown).
func (a *App) persist() {
	if a.core == nil || !a.core.Dirty() {
		return
	}
	blob, err := a.core.MarshalSave()
	if err != nil {
		a.log.Error("marshaling save", zap.Error(err))
		return
	}
	if err := a.db.SaveBlob(saveSlot, blob); err != nil {
		a.log.Error("writing save", zap.Error(err))
		return
	}
	a.core.ClearDirty()
}

// tickLoop advances the deadline machines once per second until
// shutdown. Late ticks are fine; Advance keys off deadlines, not tick
// counts.
func (a *App) tickLoop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case now := <-ticker.C:
			a.mu.Lock()
			events := a.core.Advance(now)
			a.persist()
			a.mu.Unlock()
			a.emit(events)
		}
	}
}

// emit forwards game events to the frontend, one Wails event per game
// event, named by the event type.
func (a *App) emit(events []game.Event) {
	for _, ev := range events {
		runtime.EventsEmit(a.ctx, string(ev.Type), ev)
	}
}
