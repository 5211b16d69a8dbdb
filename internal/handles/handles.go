// Package handles maps opaque callback data to Go values.
//
// The engine stores a void* next to every callback it invokes. Go pointers
// cannot live in native memory, so each callback receiver is registered here
// and the engine only ever sees the returned integer id. Trampolines running
// on engine threads resolve the id back to the receiver.
//
// Ids are never reused while the process runs, so a stale id from a callback
// that races with Unregister resolves to nothing instead of to a new receiver.
package handles

import "sync"

// Table is a registry of live callback receivers. The zero value is not
// usable; call NewTable.
type Table struct {
	mu     sync.RWMutex
	values map[uintptr]any
	nextID uintptr
}

// NewTable returns an empty table whose first id is 1.
func NewTable() *Table {
	return &Table{values: make(map[uintptr]any), nextID: 1}
}

// Register stores v and returns its id. The id is never 0.
func (t *Table) Register(v any) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.values[id] = v
	return id
}

// Lookup returns the value stored under id, or nil.
func (t *Table) Lookup(id uintptr) any {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.values[id]
}

// Unregister forgets id. Unknown ids are ignored.
func (t *Table) Unregister(id uintptr) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.values, id)
}

// Count returns the number of registered values.
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}

var global = NewTable()

// Register stores v in the process-wide table.
func Register(v any) uintptr { return global.Register(v) }

// Lookup resolves id in the process-wide table.
func Lookup(id uintptr) any { return global.Lookup(id) }

// LookupAs resolves id and asserts the value to T.
func LookupAs[T any](id uintptr) (T, bool) {
	v, ok := global.Lookup(id).(T)
	return v, ok
}

// Unregister removes id from the process-wide table.
func Unregister(id uintptr) { global.Unregister(id) }

// Count returns the size of the process-wide table.
// Tests use it to check that every callback was deregistered.
func Count() int { return global.Count() }
