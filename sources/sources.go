//go:build !ios && !android && (amd64 || arm64)

// Package sources builds the settings of common capture sources.
//
// A Kind lists the settings a source type accepts; a Builder collects values
// for them and implements obsgo.SourceBuilder:
//
//	b := sources.New(sources.V4L2Input, "webcam").
//		Set("device", "/dev/video0").
//		Set("resolution", 1280<<16|720)
//	src, err := ctx.BuildSource(b)
//
// Builders only describe settings. What a plugin does with them is up to
// the plugin.
package sources

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/obinnaokechukwu/obsgo"
)

// FieldType is the type of a settings value.
type FieldType int

const (
	String FieldType = iota
	Int
	Bool
	Double
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Double:
		return "double"
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

// Field is one setting of a source type. Name is what Builder.Set takes;
// Key is the settings key the plugin reads.
type Field struct {
	Name string
	Key  string
	Type FieldType
}

// Kind describes a source type.
type Kind struct {
	ID     string
	Fields []Field
}

func (k Kind) field(name string) (Field, bool) {
	for _, f := range k.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Builder collects settings for one source. Set records the first error it
// hits; ToSettings and Values report it.
type Builder struct {
	kind   Kind
	name   string
	values map[string]any
	err    error
}

var _ obsgo.SourceBuilder = (*Builder)(nil)

// New starts a builder for a source of kind k named name. An empty name lets
// the engine context generate one.
func New(k Kind, name string) *Builder {
	return &Builder{kind: k, name: name, values: make(map[string]any)}
}

// ID returns the source type id.
func (b *Builder) ID() string { return b.kind.ID }

// Name returns the source name.
func (b *Builder) Name() string { return b.name }

// Kind returns the kind the builder was created for.
func (b *Builder) Kind() Kind { return b.kind }

func convert(t FieldType, v any) (any, bool) {
	switch t {
	case String:
		s, ok := v.(string)
		return s, ok
	case Bool:
		x, ok := v.(bool)
		return x, ok
	case Int:
		switch x := v.(type) {
		case int:
			return int64(x), true
		case int32:
			return int64(x), true
		case int64:
			return x, true
		case uint32:
			return int64(x), true
		}
	case Double:
		switch x := v.(type) {
		case float32:
			return float64(x), true
		case float64:
			return x, true
		case int:
			return float64(x), true
		}
	}
	return nil, false
}

// Set assigns the field called name. Unknown fields and values of the wrong
// type are errors.
func (b *Builder) Set(name string, v any) *Builder {
	if b.err != nil {
		return b
	}
	f, ok := b.kind.field(name)
	if !ok {
		b.err = &obsgo.Error{Kind: obsgo.KindInvalidOperation, Op: "sources.set", Detail: fmt.Sprintf("%s has no field %q", b.kind.ID, name)}
		return b
	}
	cv, ok := convert(f.Type, v)
	if !ok {
		b.err = &obsgo.Error{Kind: obsgo.KindInvalidOperation, Op: "sources.set", Detail: fmt.Sprintf("%s.%s wants a %s, got %T", b.kind.ID, name, f.Type, v)}
		return b
	}
	b.values[f.Key] = cv
	return b
}

// SetText assigns the field called name from its text form, as read from a
// command line or a config file.
func (b *Builder) SetText(name, text string) *Builder {
	if b.err != nil {
		return b
	}
	f, ok := b.kind.field(name)
	if !ok {
		return b.Set(name, text)
	}
	var (
		v   any
		err error
	)
	switch f.Type {
	case String:
		v = text
	case Int:
		v, err = strconv.ParseInt(text, 0, 64)
	case Bool:
		v, err = strconv.ParseBool(text)
	case Double:
		v, err = strconv.ParseFloat(text, 64)
	}
	if err != nil {
		b.err = &obsgo.Error{Kind: obsgo.KindInvalidOperation, Op: "sources.set", Detail: fmt.Sprintf("%s.%s wants a %s, got %q", b.kind.ID, name, f.Type, text), Cause: err}
		return b
	}
	return b.Set(name, v)
}

// Err returns the first error recorded by Set.
func (b *Builder) Err() error {
	return b.err
}

// Values returns a copy of the collected settings keyed by settings key.
func (b *Builder) Values() (map[string]any, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out, nil
}

// ToSettings writes the collected values into a new settings object.
func (b *Builder) ToSettings(c *obsgo.Context) (*obsgo.Data, error) {
	if b.err != nil {
		return nil, b.err
	}
	d, err := c.NewData()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bulk := d.BulkUpdate()
	for _, k := range keys {
		switch v := b.values[k].(type) {
		case string:
			bulk.SetString(k, v)
		case int64:
			bulk.SetInt(k, v)
		case bool:
			bulk.SetBool(k, v)
		case float64:
			bulk.SetDouble(k, v)
		}
	}
	if err := bulk.Apply(); err != nil {
		_ = d.Release()
		return nil, err
	}
	return d, nil
}
