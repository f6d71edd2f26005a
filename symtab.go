package xmldom

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultSymbolTableCapacity = 4096

// symbolTable interns character sequences (names, namespace URIs) per
// document when useSymbolTable is enabled. Two interned keys
// that compare equal share identity while the key stays in the table (the
// returned string comes from the allocation the table already holds), and
// membership-test-plus-insertion (Intern) is idempotent. The table is an
// LRU bounded at defaultSymbolTableCapacity entries; an evicted key is
// interned afresh on its next sight.
type symbolTable struct {
	cache   *lru.Cache[string, string]
	enabled bool
}

func newSymbolTable(enabled bool) *symbolTable {
	t := &symbolTable{enabled: enabled}
	if enabled {
		c, _ := lru.New[string, string](defaultSymbolTableCapacity)
		t.cache = c
	}
	return t
}

// Intern returns the canonical shared string for s, inserting it on first
// sight. When the table is disabled it returns s unchanged (interning is
// then a no-op, not an error).
func (t *symbolTable) Intern(s string) string {
	if !t.enabled || s == "" {
		return s
	}
	if existing, ok := t.cache.Get(s); ok {
		return existing
	}
	t.cache.Add(s, s)
	return s
}

// Has reports whether s has already been interned (not needed on the hot
// path).
func (t *symbolTable) Has(s string) bool {
	if !t.enabled {
		return false
	}
	return t.cache.Contains(s)
}
