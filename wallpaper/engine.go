package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

// Ack is the controller-facing answer of Start and Stop. Starting a
// running engine or stopping an idle one is acknowledged, not an error.
type Ack int

const (
	Started Ack = iota
	AlreadyRunning
	Stopped
	NotRunning
)

func (a Ack) String() string {
	switch a {
	case Started:
		return "started"
	case AlreadyRunning:
		return "already running"
	case Stopped:
		return "stopped"
	case NotRunning:
		return "not running"
	}
	return fmt.Sprintf("Ack(%d)", int(a))
}

type engineState int

const (
	stateIdle engineState = iota
	stateRunning
	stateStopping
	stateStepping // a single Next tick, no loop
)

// EngineRunState is an observation of the engine. Controllers may read it
// but only change it through Start and Stop.
type EngineRunState struct {
	Running         bool
	CancelRequested bool
}

// RotationEngine runs the periodic fetch, apply, account loop on a single
// background worker.
type RotationEngine struct {
	fetcher Fetcher
	applier Applier
	ledger  *UsageLedger
	clock   clockwork.Clock
	logger  *log.Logger

	mu     sync.Mutex
	state  engineState
	cancel chan struct{}
	done   chan struct{}
}

type Option func(*RotationEngine)

// WithClock replaces the real clock, mainly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(e *RotationEngine) { e.clock = c }
}

func WithLogger(l *log.Logger) Option {
	return func(e *RotationEngine) { e.logger = l }
}

func NewRotationEngine(f Fetcher, a Applier, ledger *UsageLedger, opts ...Option) *RotationEngine {
	e := &RotationEngine{
		fetcher: f,
		applier: a,
		ledger:  ledger,
		clock:   clockwork.NewRealClock(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a snapshot of the run state.
func (e *RotationEngine) State() EngineRunState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EngineRunState{
		Running:         e.state == stateRunning || e.state == stateStopping,
		CancelRequested: e.state == stateStopping,
	}
}

// Start validates cfg and launches the rotation worker. The first tick
// runs immediately. Starting a running engine reports AlreadyRunning; a
// Start issued during an in-flight Next waits for that tick to finish.
// The ledger store stays locked for the whole run, so another process
// sharing it gets ErrEngineBusy.
func (e *RotationEngine) Start(cfg RotationConfig) (Ack, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.waitStep()
	if e.state != stateIdle {
		return AlreadyRunning, nil
	}

	cfg, err := cfg.normalize()
	if err != nil {
		return NotRunning, err
	}
	release, err := e.acquire()
	if err != nil {
		return NotRunning, err
	}
	cancel, done := e.begin(stateRunning)
	go e.run(cfg, cancel, done, release)
	return Started, nil
}

// Stop requests cancellation and blocks until the worker has exited.
// No worker activity happens after Stop returns. During a Next it waits
// for that tick and reports NotRunning.
func (e *RotationEngine) Stop() Ack {
	e.mu.Lock()
	switch e.state {
	case stateIdle:
		e.mu.Unlock()
		return NotRunning
	case stateStepping:
		e.waitStep()
		e.mu.Unlock()
		return NotRunning
	case stateRunning:
		e.state = stateStopping
		close(e.cancel)
	}
	done := e.done
	e.mu.Unlock()

	<-done
	return Stopped
}

// Next runs exactly one tick on the caller's goroutine. It fails with
// ErrEngineBusy while the rotation loop or another Next is running, in
// this process or in another one sharing the ledger store.
func (e *RotationEngine) Next(ctx context.Context, cfg RotationConfig) error {
	cfg, err := cfg.normalize()
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.state != stateIdle {
		e.mu.Unlock()
		return ErrEngineBusy
	}
	release, err := e.acquire()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	_, done := e.begin(stateStepping)
	e.mu.Unlock()
	defer e.finish(done, release)

	e.reconcile(cfg)
	return e.tick(ctx, cfg)
}

// acquire takes the cross-process lock on the ledger store and reloads
// the ledger so writes made by a previous holder are not overwritten.
// A lock that cannot be created at all (unwritable storage) is logged and
// the run goes ahead: nothing would be persisted in that case anyway.
func (e *RotationEngine) acquire() (func(), error) {
	unlock, err := e.ledger.Lock()
	switch {
	case errors.Is(err, ErrEngineBusy):
		return nil, err
	case err != nil:
		e.logger.Warn("usage ledger not locked", "err", err)
		return func() {}, nil
	}
	if err := e.ledger.Load(); err != nil {
		e.logger.Warn("reloading usage ledger", "err", err)
	}
	return func() {
		if err := unlock(); err != nil {
			e.logger.Warn("unlocking usage ledger", "err", err)
		}
	}, nil
}

// waitStep blocks until an in-flight Next has finished. It requires e.mu
// to be held and holds it again on return.
func (e *RotationEngine) waitStep() {
	for e.state == stateStepping {
		done := e.done
		e.mu.Unlock()
		<-done
		e.mu.Lock()
	}
}

// begin requires e.mu to be held.
func (e *RotationEngine) begin(state engineState) (chan struct{}, chan struct{}) {
	e.state = state
	e.cancel = make(chan struct{})
	e.done = make(chan struct{})
	return e.cancel, e.done
}

func (e *RotationEngine) finish(done chan struct{}, release func()) {
	release()
	e.mu.Lock()
	e.state = stateIdle
	e.mu.Unlock()
	close(done)
}

func (e *RotationEngine) run(cfg RotationConfig, cancel <-chan struct{}, done chan struct{}, release func()) {
	defer e.finish(done, release)

	// In-flight fetch and apply calls are never aborted; cancellation is
	// only observed between ticks.
	ctx := context.Background()

	e.logger.Info("rotation started",
		"categories", strings.Join(cfg.Categories, ","),
		"interval", cfg.Interval,
		"cap", cfg.Cap)
	e.reconcile(cfg)

	for {
		select {
		case <-cancel:
			e.logger.Info("rotation stopped")
			return
		default:
		}

		_ = e.tick(ctx, cfg)

		select {
		case <-cancel:
			e.logger.Info("rotation stopped")
			return
		case <-e.clock.After(cfg.Interval):
		}
	}
}

// tick performs one fetch, apply, account step. Every failure is logged
// and returned; none of them stops the loop.
func (e *RotationEngine) tick(ctx context.Context, cfg RotationConfig) (err error) {
	logger := e.logger.With("tick", e.clock.Now().Format(time.RFC3339))
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rotation tick panicked: %v", r)
		}
		if err != nil {
			logger.Error("rotation tick failed", "err", err)
		}
	}()

	img, err := e.candidate(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger = logger.With("item", img.ID)

	path, err := e.cache(ctx, cfg.CacheDir, img, logger)
	if err != nil {
		return err
	}

	if err := e.applier.Apply(ctx, path); err != nil {
		return fmt.Errorf("%w: item %s: %w", ErrApplyFailed, img.ID, err)
	}

	uses, perr := e.ledger.Increment(img.ID)
	if perr != nil {
		logger.Warn("usage not persisted", "err", perr)
	}
	logger.Info("wallpaper applied", "path", path, "uses", uses, "cap", cfg.Cap)

	if uses >= cfg.Cap {
		e.evict(img.ID, path, logger)
	}
	return nil
}

// candidate asks the fetcher for an item below the usage cap, giving up
// after maxAttempts consecutive exhausted items.
func (e *RotationEngine) candidate(ctx context.Context, cfg RotationConfig, logger *log.Logger) (*Image, error) {
	q := cfg.query()
	attempts := cfg.maxAttempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		img, err := e.fetcher.Fetch(ctx, q)
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("%w: %w", ErrFetchExhausted, err)
		case errors.Is(err, ErrFetchTransient):
			return nil, err
		case err != nil:
			return nil, fmt.Errorf("%w: %w", ErrFetchTransient, err)
		case img == nil || img.ID == "":
			return nil, fmt.Errorf("%w: source returned an image without id", ErrFetchTransient)
		}

		uses := e.ledger.Get(img.ID)
		if uses < cfg.Cap {
			return img, nil
		}
		logger.Debug("skipping exhausted item", "item", img.ID, "uses", uses, "attempt", attempt)
	}
	return nil, fmt.Errorf("%w: %d consecutive candidates at usage cap %d", ErrFetchExhausted, attempts, cfg.Cap)
}

// cache writes img to <dir>/<id><ext> unless it is already there and
// returns the absolute path. The image is only downloaded on a miss.
func (e *RotationEngine) cache(ctx context.Context, dir string, img *Image, logger *log.Logger) (string, error) {
	if img.ID != filepath.Base(img.ID) || img.ID == "." || img.ID == ".." || strings.ContainsAny(img.ID, `/\`) {
		return "", fmt.Errorf("%w: unsafe item id %q", ErrCacheFailed, img.ID)
	}
	path, err := filepath.Abs(cachePath(dir, img.ID, img.Ext))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCacheFailed, err)
	}

	_, err = os.Stat(path)
	switch {
	case err == nil:
		logger.Debug("using cached image", "path", path)
		return path, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("%w: %w", ErrCacheFailed, err)
	}

	data, err := img.bytes(ctx)
	switch {
	case errors.Is(err, ErrFetchTransient):
		return "", err
	case err != nil:
		return "", fmt.Errorf("%w: item %s: %w", ErrFetchTransient, img.ID, err)
	case len(data) == 0:
		return "", fmt.Errorf("%w: item %s has no image data", ErrFetchTransient, img.ID)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCacheFailed, err)
	}
	logger.Debug("cached image", "path", path, "bytes", len(data))
	return path, nil
}

// evict removes the cached file, then the ledger entry.
func (e *RotationEngine) evict(id, path string, logger *log.Logger) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("removing evicted image", "path", path, "err", err)
	}
	if err := e.ledger.Remove(id); err != nil {
		logger.Warn("usage not persisted", "err", err)
	}
	logger.Info("image evicted", "path", path)
}

// reconcile drops ledger entries whose cached file no longer exists.
func (e *RotationEngine) reconcile(cfg RotationConfig) {
	cached := make(map[string]bool)
	entries, err := os.ReadDir(cfg.CacheDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		e.logger.Warn("reading cache directory", "dir", cfg.CacheDir, "err", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		cached[strings.TrimSuffix(name, filepath.Ext(name))] = true
	}

	for id := range e.ledger.Snapshot() {
		if cached[id] {
			continue
		}
		if err := e.ledger.Remove(id); err != nil {
			e.logger.Warn("usage not persisted", "item", id, "err", err)
		}
		e.logger.Debug("dropped usage entry without cached image", "item", id)
	}
}
