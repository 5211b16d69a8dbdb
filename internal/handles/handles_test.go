package handles

import (
	"sync"
	"testing"
)

type receiver struct {
	name string
}

func TestRegisterAndLookup(t *testing.T) {
	tbl := NewTable()

	r := &receiver{name: "stop"}
	id := tbl.Register(r)
	if id == 0 {
		t.Fatal("Register should never return 0")
	}

	got, ok := tbl.Lookup(id).(*receiver)
	if !ok {
		t.Fatalf("Lookup returned %T", tbl.Lookup(id))
	}
	if got != r {
		t.Errorf("Lookup returned a different receiver")
	}
}

func TestUnregisterRemovesValue(t *testing.T) {
	tbl := NewTable()
	id := tbl.Register("payload")

	tbl.Unregister(id)

	if tbl.Lookup(id) != nil {
		t.Error("expected nil after Unregister")
	}
	if tbl.Count() != 0 {
		t.Errorf("Count = %d, want 0", tbl.Count())
	}

	// Unregistering twice is harmless.
	tbl.Unregister(id)
}

func TestIDsAreNotReused(t *testing.T) {
	tbl := NewTable()
	first := tbl.Register(1)
	tbl.Unregister(first)
	second := tbl.Register(2)

	if first == second {
		t.Fatalf("id %d was reused", first)
	}
	if tbl.Lookup(first) != nil {
		t.Error("stale id resolved to a value")
	}
}

func TestLookupAs(t *testing.T) {
	id := Register(&receiver{name: "saved"})
	defer Unregister(id)

	r, ok := LookupAs[*receiver](id)
	if !ok || r.name != "saved" {
		t.Fatalf("LookupAs = %v, %v", r, ok)
	}
	if _, ok := LookupAs[string](id); ok {
		t.Error("LookupAs should fail on a type mismatch")
	}
}

func TestConcurrentAccess(t *testing.T) {
	tbl := NewTable()
	const goroutines = 50
	const ops = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			for j := 0; j < ops; j++ {
				id := tbl.Register(&receiver{})
				if tbl.Lookup(id) == nil {
					t.Errorf("lookup of fresh id %d returned nil", id)
				}
				tbl.Unregister(id)
			}
		}(i)
	}
	wg.Wait()

	if tbl.Count() != 0 {
		t.Errorf("Count = %d after all unregisters", tbl.Count())
	}
}
