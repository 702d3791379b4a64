package dupe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstCallNotDuplicate(t *testing.T) {
	g := NewGuard(5 * time.Minute)
	dup, _ := g.CheckAndRecord("get_quick_quote", map[string]any{"zip_code": "90210"})
	assert.False(t, dup)
}

func TestRepeatWithinWindow(t *testing.T) {
	g := NewGuard(5 * time.Minute)
	base := time.Now()
	g.now = func() time.Time { return base }

	args := map[string]any{"zip_code": "90210", "age": 30}
	g.CheckAndRecord("get_quick_quote", args)

	g.now = func() time.Time { return base.Add(10 * time.Second) }
	dup, since := g.CheckAndRecord("get_quick_quote", args)
	assert.True(t, dup)
	assert.Equal(t, 10*time.Second, since)
}

func TestRepeatAfterWindowExpires(t *testing.T) {
	g := NewGuard(5 * time.Minute)
	base := time.Now()
	g.now = func() time.Time { return base }

	args := map[string]any{"zip_code": "90210"}
	g.CheckAndRecord("get_quick_quote", args)

	g.now = func() time.Time { return base.Add(6 * time.Minute) }
	dup, _ := g.CheckAndRecord("get_quick_quote", args)
	assert.False(t, dup)
}

func TestKeyOrderInsensitive(t *testing.T) {
	a := callKey("t", map[string]any{"a": 1, "b": "x", "c": true})
	b := callKey("t", map[string]any{"c": true, "b": "x", "a": 1})
	assert.Equal(t, a, b)
}

func TestDifferentArgsNotDuplicate(t *testing.T) {
	g := NewGuard(5 * time.Minute)
	g.CheckAndRecord("get_quick_quote", map[string]any{"zip_code": "90210"})
	dup, _ := g.CheckAndRecord("get_quick_quote", map[string]any{"zip_code": "90211"})
	assert.False(t, dup)
}

func TestDifferentToolNotDuplicate(t *testing.T) {
	g := NewGuard(5 * time.Minute)
	args := map[string]any{"zip_code": "90210"}
	g.CheckAndRecord("get_quick_quote", args)
	dup, _ := g.CheckAndRecord("other_tool", args)
	assert.False(t, dup)
}

func TestWindowMeasuredFromOriginalCall(t *testing.T) {
	g := NewGuard(5 * time.Minute)
	base := time.Now()
	g.now = func() time.Time { return base }

	args := map[string]any{"zip_code": "90210"}
	g.CheckAndRecord("get_quick_quote", args)

	// A duplicate hit does not push the window out.
	g.now = func() time.Time { return base.Add(4 * time.Minute) }
	dup, since := g.CheckAndRecord("get_quick_quote", args)
	assert.True(t, dup)
	assert.Equal(t, 4*time.Minute, since)

	// Past the window from the original call, the entry has expired even
	// though the duplicate hit was only 2 minutes ago.
	g.now = func() time.Time { return base.Add(6 * time.Minute) }
	dup, _ = g.CheckAndRecord("get_quick_quote", args)
	assert.False(t, dup)
}
