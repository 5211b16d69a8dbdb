package affinity

import "fmt"

// Token proves that the holder is running on the affinity thread.
// Only the Runtime creates valid tokens; they are passed to queued work.
type Token struct {
	rt *Runtime
}

// Valid reports whether the token was issued by a runtime.
func (t Token) Valid() bool {
	return t.rt != nil
}

// Runtime returns the runtime that issued the token.
func (t Token) Runtime() *Runtime {
	return t.rt
}

// Handle carries a raw engine pointer that may only be read on the affinity
// thread. P is the opaque pointer type of the engine object (libobs.Scene,
// libobs.Source, ...), which also tags the handle with the object kind.
//
// Handles are plain values: copying one between goroutines is fine, reading
// the pointer is not. Use Ptr inside work submitted to the Runtime.
type Handle[P comparable] struct {
	p P
}

// Wrap creates a handle from a pointer obtained on the affinity thread.
func Wrap[P comparable](tok Token, p P) Handle[P] {
	mustHold(tok)
	return Handle[P]{p: p}
}

// Adopt creates a handle from a pointer the engine handed to code running on
// another thread, such as a signal callback. The pointer still can only be
// read through Ptr.
func Adopt[P comparable](p P) Handle[P] {
	return Handle[P]{p: p}
}

// Ptr returns the raw pointer. It panics if tok was not issued by a runtime.
func (h Handle[P]) Ptr(tok Token) P {
	mustHold(tok)
	return h.p
}

// IsNil reports whether the handle holds the zero pointer.
func (h Handle[P]) IsNil() bool {
	var zero P
	return h.p == zero
}

// Same reports whether both handles refer to the same engine object.
// It compares identity only and never dereferences.
func (h Handle[P]) Same(other Handle[P]) bool {
	return h.p == other.p
}

// Key returns a comparable identity for use as a map key.
func (h Handle[P]) Key() any {
	return h.p
}

// String implements fmt.Stringer.
func (h Handle[P]) String() string {
	return fmt.Sprintf("handle(%v)", h.p)
}

func mustHold(tok Token) {
	if tok.rt == nil {
		panic("affinity: engine pointer accessed without an affinity token")
	}
}
