package wallpaper

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UsageLedger is the durable record of how many times each cached item has
// been applied. Only the rotation worker mutates it, and only while it
// holds Lock; reads are safe from any goroutine.
type UsageLedger struct {
	path string

	mu     sync.RWMutex
	counts map[string]int
}

// NewLedger returns an empty ledger persisted at path. Nothing is read
// until Load is called.
func NewLedger(path string) *UsageLedger {
	return &UsageLedger{
		path:   path,
		counts: make(map[string]int),
	}
}

// OpenLedger creates a ledger for path and loads it.
func OpenLedger(path string) (*UsageLedger, error) {
	l := NewLedger(path)
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *UsageLedger) Path() string { return l.path }

// Get returns the use count for id, 0 if absent.
func (l *UsageLedger) Get(id string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.counts[id]
}

func (l *UsageLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.counts)
}

// Snapshot returns a copy of the current counts.
func (l *UsageLedger) Snapshot() map[string]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]int, len(l.counts))
	for k, v := range l.counts {
		out[k] = v
	}
	return out
}

// Increment adds one use to id and persists the ledger before returning.
// On a persistence failure the new count is still returned and kept in
// memory, together with an error wrapping ErrPersistenceFailed.
func (l *UsageLedger) Increment(id string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[id]++
	n := l.counts[id]
	return n, l.save()
}

// Remove deletes the entry for id and persists the ledger. Removing an
// absent id is a no-op.
func (l *UsageLedger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.counts[id]; !ok {
		return nil
	}
	delete(l.counts, id)
	return l.save()
}

// Load replaces the in-memory counts with the persisted store. A missing
// store yields an empty ledger.
func (l *UsageLedger) Load() error {
	b, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		l.mu.Lock()
		l.counts = make(map[string]int)
		l.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading usage ledger %s: %w", l.path, err)
	}

	counts := make(map[string]int)
	if len(b) > 0 {
		if err := json.Unmarshal(b, &counts); err != nil {
			return fmt.Errorf("parsing usage ledger %s: %w", l.path, err)
		}
	}
	for id, n := range counts {
		if n <= 0 {
			delete(counts, id)
		}
	}

	l.mu.Lock()
	l.counts = counts
	l.mu.Unlock()
	return nil
}

// Lock takes an exclusive advisory lock on the store, shared by every
// process using the same path. It fails with ErrEngineBusy when another
// holder has it. The returned func releases the lock.
func (l *UsageLedger) Lock() (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("locking usage ledger %s: %w", l.path, err)
	}
	fl := flock.New(l.path + ".lock")
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking usage ledger %s: %w", l.path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: usage ledger %s is in use by another process", ErrEngineBusy, l.path)
	}
	return fl.Unlock, nil
}

// Save writes the full ledger to its store.
func (l *UsageLedger) Save() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.save()
}

// save requires l.mu to be held.
func (l *UsageLedger) save() error {
	b, err := json.MarshalIndent(l.counts, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	if err := writeFileAtomic(l.path, b); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return nil
}

// writeFileAtomic replaces path with data via a temp file in the same
// directory, so readers never observe a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
