package objcsim

import (
	"sync"

	"github.com/chazu/objcbridge/objc"
)

// SelectorTable interns selector names.
//
// Selectors are method names like "init", "isKindOfClass:",
// "initWithBytes:length:encoding:". Interned selectors are small dense
// integers so vtables can index methods by selector directly. Zero is
// never handed out; it is the nil selector.
//
// The table is append-only and safe for concurrent use.
type SelectorTable struct {
	mu     sync.RWMutex
	byName map[string]objc.Selector
	byID   []string // selector-1 -> name
}

// NewSelectorTable creates an empty selector table.
func NewSelectorTable() *SelectorTable {
	return &SelectorTable{
		byName: make(map[string]objc.Selector),
		byID:   make([]string, 0, 128),
	}
}

// Intern returns the selector for name, creating it if needed.
func (st *SelectorTable) Intern(name string) objc.Selector {
	st.mu.RLock()
	if sel, ok := st.byName[name]; ok {
		st.mu.RUnlock()
		return sel
	}
	st.mu.RUnlock()

	st.mu.Lock()
	defer st.mu.Unlock()

	// Double-check after acquiring write lock
	if sel, ok := st.byName[name]; ok {
		return sel
	}

	st.byID = append(st.byID, name)
	sel := objc.Selector(len(st.byID))
	st.byName[name] = sel
	return sel
}

// Lookup returns the selector for name, or 0 if it was never interned.
func (st *SelectorTable) Lookup(name string) objc.Selector {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.byName[name]
}

// Name returns the name of sel, or "" if invalid.
func (st *SelectorTable) Name(sel objc.Selector) string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	i := int(sel) - 1
	if i < 0 || i >= len(st.byID) {
		return ""
	}
	return st.byID[i]
}

// Len returns the number of interned selectors.
func (st *SelectorTable) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.byID)
}
