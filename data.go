//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"unicode/utf8"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// settingsOwner is an object whose settings a Data was taken from. BulkUpdate
// pushes the applied settings back to it with a single native update.
type settingsOwner interface {
	updateSettings(tok affinity.Token, e libobs.Engine, d libobs.Data)
	Release() error
}

// Data is a reference to an engine settings object: an untyped key/value
// store with separate user and default values.
//
// Getters return (value, true, nil) when the key has a user or default
// value, (zero, false, nil) when it has neither, and a non-nil error when
// the value cannot be read.
type Data struct {
	reference
	ctx   *Context
	h     affinity.Handle[libobs.Data]
	owner settingsOwner
}

func (c *Context) wrapData(tok affinity.Token, d libobs.Data, owner settingsOwner) *Data {
	h := affinity.Wrap(tok, d)
	g := c.newGuard("data", func(tok affinity.Token, e libobs.Engine) error {
		e.DataRelease(h.Ptr(tok))
		if owner != nil {
			return owner.Release()
		}
		return nil
	})
	data := &Data{ctx: c, h: h, owner: owner}
	track(data, &data.reference, g)
	return data
}

// NewData creates an empty settings object.
func (c *Context) NewData() (*Data, error) {
	const op = "data.create"
	if err := c.ensureOpen(op); err != nil {
		return nil, err
	}
	return call(c, op, func(tok affinity.Token, e libobs.Engine) (*Data, error) {
		d := e.DataCreate()
		if d == nil {
			return nil, nullPointer(op, "obs_data_create")
		}
		return c.wrapData(tok, d, nil), nil
	})
}

// DataFromJSON parses a JSON object into a new settings object.
func (c *Context) DataFromJSON(json string) (*Data, error) {
	const op = "data.from_json"
	if err := c.ensureOpen(op); err != nil {
		return nil, err
	}
	return call(c, op, func(tok affinity.Token, e libobs.Engine) (*Data, error) {
		d := e.DataCreateFromJSON(json)
		if d == nil {
			return nil, newError(KindJSONParse, op, "engine rejected the JSON text")
		}
		return c.wrapData(tok, d, nil), nil
	})
}

// Clone returns a new reference to the same settings object.
func (d *Data) Clone() (*Data, error) {
	if !d.g.acquire() {
		return nil, newError(KindInvalidOperation, "data.clone", "reference already released")
	}
	c := &Data{ctx: d.ctx, h: d.h, owner: d.owner}
	track(c, &c.reference, d.g)
	return c, nil
}

// Handle returns the native handle.
func (d *Data) Handle() affinity.Handle[libobs.Data] {
	return d.h
}

func dataGet[T any](d *Data, op, key string, get func(e libobs.Engine, p libobs.Data) (T, error)) (T, bool, error) {
	type result struct {
		v  T
		ok bool
	}
	var zero T
	if err := d.alive(op); err != nil {
		return zero, false, err
	}
	r, err := call(d.ctx, op, func(tok affinity.Token, e libobs.Engine) (result, error) {
		p := d.h.Ptr(tok)
		if !e.DataHasUserValue(p, key) && !e.DataHasDefaultValue(p, key) {
			return result{}, nil
		}
		v, err := get(e, p)
		if err != nil {
			return result{}, err
		}
		return result{v: v, ok: true}, nil
	})
	return r.v, r.ok, err
}

// String returns the string value of key. A value that is not valid UTF-8
// fails with KindStringConversion.
func (d *Data) String(key string) (string, bool, error) {
	const op = "data.get_string"
	return dataGet(d, op, key, func(e libobs.Engine, p libobs.Data) (string, error) {
		b := e.DataGetString(p, key)
		if !utf8.Valid(b) {
			return "", newError(KindStringConversion, op, "value of "+key+" is not valid UTF-8")
		}
		return string(b), nil
	})
}

// Int returns the integer value of key.
func (d *Data) Int(key string) (int64, bool, error) {
	return dataGet(d, "data.get_int", key, func(e libobs.Engine, p libobs.Data) (int64, error) {
		return e.DataGetInt(p, key), nil
	})
}

// Bool returns the boolean value of key.
func (d *Data) Bool(key string) (bool, bool, error) {
	return dataGet(d, "data.get_bool", key, func(e libobs.Engine, p libobs.Data) (bool, error) {
		return e.DataGetBool(p, key), nil
	})
}

// Double returns the floating point value of key.
func (d *Data) Double(key string) (float64, bool, error) {
	return dataGet(d, "data.get_double", key, func(e libobs.Engine, p libobs.Data) (float64, error) {
		return e.DataGetDouble(p, key), nil
	})
}

func (d *Data) modify(op string, fn func(e libobs.Engine, p libobs.Data)) error {
	if err := d.alive(op); err != nil {
		return err
	}
	return run(d.ctx, op, func(tok affinity.Token, e libobs.Engine) error {
		fn(e, d.h.Ptr(tok))
		return nil
	})
}

// SetString sets the user value of key.
func (d *Data) SetString(key, val string) error {
	return d.modify("data.set_string", func(e libobs.Engine, p libobs.Data) { e.DataSetString(p, key, val) })
}

// SetInt sets the user value of key.
func (d *Data) SetInt(key string, val int64) error {
	return d.modify("data.set_int", func(e libobs.Engine, p libobs.Data) { e.DataSetInt(p, key, val) })
}

// SetBool sets the user value of key.
func (d *Data) SetBool(key string, val bool) error {
	return d.modify("data.set_bool", func(e libobs.Engine, p libobs.Data) { e.DataSetBool(p, key, val) })
}

// SetDouble sets the user value of key.
func (d *Data) SetDouble(key string, val float64) error {
	return d.modify("data.set_double", func(e libobs.Engine, p libobs.Data) { e.DataSetDouble(p, key, val) })
}

// SetDefaultString sets the default value of key.
func (d *Data) SetDefaultString(key, val string) error {
	return d.modify("data.set_default_string", func(e libobs.Engine, p libobs.Data) { e.DataSetDefaultString(p, key, val) })
}

// SetDefaultInt sets the default value of key.
func (d *Data) SetDefaultInt(key string, val int64) error {
	return d.modify("data.set_default_int", func(e libobs.Engine, p libobs.Data) { e.DataSetDefaultInt(p, key, val) })
}

// SetDefaultBool sets the default value of key.
func (d *Data) SetDefaultBool(key string, val bool) error {
	return d.modify("data.set_default_bool", func(e libobs.Engine, p libobs.Data) { e.DataSetDefaultBool(p, key, val) })
}

// SetDefaultDouble sets the default value of key.
func (d *Data) SetDefaultDouble(key string, val float64) error {
	return d.modify("data.set_default_double", func(e libobs.Engine, p libobs.Data) { e.DataSetDefaultDouble(p, key, val) })
}

// Erase removes the user value of key. A default value stays in place.
func (d *Data) Erase(key string) error {
	return d.modify("data.erase", func(e libobs.Engine, p libobs.Data) { e.DataErase(p, key) })
}

// JSON serializes the user values.
func (d *Data) JSON() (string, error) {
	const op = "data.json"
	if err := d.alive(op); err != nil {
		return "", err
	}
	return call(d.ctx, op, func(tok affinity.Token, e libobs.Engine) (string, error) {
		b := e.DataGetJSON(d.h.Ptr(tok))
		if b == nil {
			return "", nullPointer(op, "obs_data_get_json")
		}
		if !utf8.Valid(b) {
			return "", newError(KindJSONParse, op, "serialized settings are not valid UTF-8")
		}
		return string(b), nil
	})
}
