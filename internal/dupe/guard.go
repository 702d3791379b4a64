// Package dupe detects repeated tool calls within a short window, so retried
// or double-submitted requests do not produce duplicate quotes.
package dupe

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Guard remembers recent (tool, arguments) calls. Detection is advisory: the
// caller decides what to do with a duplicate, and a race between two
// identical concurrent calls is benign.
type Guard struct {
	mu     sync.Mutex
	window time.Duration
	seen   map[string]time.Time
	now    func() time.Time
}

// NewGuard creates a Guard with the given detection window.
func NewGuard(window time.Duration) *Guard {
	return NewGuardWithClock(window, time.Now)
}

// NewGuardWithClock creates a Guard with an injected clock. Used by tests.
func NewGuardWithClock(window time.Duration, now func() time.Time) *Guard {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &Guard{
		window: window,
		seen:   make(map[string]time.Time),
		now:    now,
	}
}

// CheckAndRecord reports whether an identical call was seen inside the
// window, and the elapsed time since it. A duplicate does not refresh the
// stored timestamp: the window is measured from the original call, so a
// retrying client is never refused indefinitely. Expired entries are pruned
// on each check.
func (g *Guard) CheckAndRecord(tool string, args map[string]any) (bool, time.Duration) {
	key := callKey(tool, args)
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	for k, at := range g.seen {
		if now.Sub(at) > g.window {
			delete(g.seen, k)
		}
	}

	if prev, dup := g.seen[key]; dup {
		return true, now.Sub(prev)
	}
	g.seen[key] = now
	return false, 0
}

// callKey hashes the arguments with sorted keys so logically identical calls
// hash identically regardless of map ordering.
func callKey(tool string, args map[string]any) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		v, err := json.Marshal(args[k])
		if err != nil {
			v = []byte(fmt.Sprintf("%v", args[k]))
		}
		fmt.Fprintf(h, "%s=%s;", k, v)
	}
	return tool + ":" + hex.EncodeToString(h.Sum(nil))
}
