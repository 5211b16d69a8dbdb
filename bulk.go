//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

type bulkSet func(e libobs.Engine, p libobs.Data)

// BulkUpdate collects changes to a Data and applies them together.
//
//	err := settings.BulkUpdate().
//		SetInt("width", 1280).
//		SetInt("height", 720).
//		Apply()
//
// Apply makes one trip to the affinity thread: the changes are written into
// a temporary object which is merged into the target with a single apply. If
// the Data came from a source or output, that owner is then updated once, so
// its "update" signal fires exactly once however many keys changed.
type BulkUpdate struct {
	d    *Data
	sets []bulkSet
}

// BulkUpdate starts a batch of changes to d.
func (d *Data) BulkUpdate() *BulkUpdate {
	return &BulkUpdate{d: d}
}

func (b *BulkUpdate) add(fn bulkSet) *BulkUpdate {
	b.sets = append(b.sets, fn)
	return b
}

// SetString queues a string value.
func (b *BulkUpdate) SetString(key, val string) *BulkUpdate {
	return b.add(func(e libobs.Engine, p libobs.Data) { e.DataSetString(p, key, val) })
}

// SetInt queues an integer value.
func (b *BulkUpdate) SetInt(key string, val int64) *BulkUpdate {
	return b.add(func(e libobs.Engine, p libobs.Data) { e.DataSetInt(p, key, val) })
}

// SetBool queues a boolean value.
func (b *BulkUpdate) SetBool(key string, val bool) *BulkUpdate {
	return b.add(func(e libobs.Engine, p libobs.Data) { e.DataSetBool(p, key, val) })
}

// SetDouble queues a floating point value.
func (b *BulkUpdate) SetDouble(key string, val float64) *BulkUpdate {
	return b.add(func(e libobs.Engine, p libobs.Data) { e.DataSetDouble(p, key, val) })
}

// Len returns the number of queued changes.
func (b *BulkUpdate) Len() int {
	return len(b.sets)
}

// Apply writes the queued changes. An empty batch does nothing.
func (b *BulkUpdate) Apply() error {
	const op = "data.bulk_update"
	if err := b.d.alive(op); err != nil {
		return err
	}
	if len(b.sets) == 0 {
		return nil
	}
	sets := b.sets
	b.sets = nil

	d := b.d
	return run(d.ctx, op, func(tok affinity.Token, e libobs.Engine) error {
		tmp := e.DataCreate()
		if tmp == nil {
			return nullPointer(op, "obs_data_create")
		}
		defer e.DataRelease(tmp)

		for _, set := range sets {
			set(e, tmp)
		}
		target := d.h.Ptr(tok)
		e.DataApply(target, tmp)
		if d.owner != nil {
			d.owner.updateSettings(tok, e, target)
		}
		return nil
	})
}
