//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// RenameEvent is delivered when a source is renamed.
type RenameEvent struct {
	Name     string
	Previous string
}

// MuteEvent is delivered when a source is muted or unmuted.
type MuteEvent struct {
	Muted bool
}

// VolumeEvent carries the new linear volume of a source.
type VolumeEvent struct {
	Volume float64
}

// FilterEvent carries the filter added to or removed from a source. The
// receiver owns Filter and must release it; it is nil if the filter was
// already being destroyed when the signal fired.
type FilterEvent struct {
	Filter *Source
}

func (ev FilterEvent) releasePayload() {
	ev.Filter.releasePayload()
}

// SourceSignals subscribes to the signals of one source.
type SourceSignals struct {
	src *Source
}

// Signals returns the signal manager of s.
func (s *Source) Signals() SourceSignals {
	return SourceSignals{src: s}
}

func subscribeSource[T any](ss SourceSignals, signal string, decode decoder[T]) (*Subscription[T], error) {
	owner, err := ss.src.Clone()
	if err != nil {
		return nil, err
	}
	return subscribe(ss.src.ctx, signal, owner, func(tok affinity.Token, e libobs.Engine) libobs.SignalHandler {
		return e.SourceGetSignalHandler(owner.h.Ptr(tok))
	}, decode)
}

// Update fires after the source's settings change.
func (ss SourceSignals) Update() (*Subscription[struct{}], error) {
	return subscribeSource(ss, "update", decodeNothing)
}

// Rename fires when the source is renamed.
func (ss SourceSignals) Rename() (*Subscription[RenameEvent], error) {
	return subscribeSource(ss, "rename", func(_ *Context, e libobs.Engine, cd libobs.Calldata) (RenameEvent, bool) {
		return RenameEvent{
			Name:     calldataString(e, cd, "new_name"),
			Previous: calldataString(e, cd, "prev_name"),
		}, true
	})
}

// Mute fires when the source's mute state changes.
func (ss SourceSignals) Mute() (*Subscription[MuteEvent], error) {
	return subscribeSource(ss, "mute", func(_ *Context, e libobs.Engine, cd libobs.Calldata) (MuteEvent, bool) {
		muted, ok := e.CalldataGetBool(cd, "muted")
		return MuteEvent{Muted: muted}, ok
	})
}

// Volume fires when the source's volume changes.
func (ss SourceSignals) Volume() (*Subscription[VolumeEvent], error) {
	return subscribeSource(ss, "volume", func(_ *Context, e libobs.Engine, cd libobs.Calldata) (VolumeEvent, bool) {
		v, ok := e.CalldataGetFloat(cd, "volume")
		return VolumeEvent{Volume: v}, ok
	})
}

func decodeFilter(c *Context, e libobs.Engine, cd libobs.Calldata) (FilterEvent, bool) {
	return FilterEvent{Filter: adoptSource(c, e, libobs.Source(calldataPtr(e, cd, "filter")))}, true
}

// FilterAdd fires when a filter is attached to the source.
func (ss SourceSignals) FilterAdd() (*Subscription[FilterEvent], error) {
	return subscribeSource(ss, "filter_add", decodeFilter)
}

// FilterRemove fires when a filter is detached from the source.
func (ss SourceSignals) FilterRemove() (*Subscription[FilterEvent], error) {
	return subscribeSource(ss, "filter_remove", decodeFilter)
}

// Activate fires when the source starts being shown on an output.
func (ss SourceSignals) Activate() (*Subscription[struct{}], error) {
	return subscribeSource(ss, "activate", decodeNothing)
}

// Deactivate fires when the source stops being shown on any output.
func (ss SourceSignals) Deactivate() (*Subscription[struct{}], error) {
	return subscribeSource(ss, "deactivate", decodeNothing)
}

// Show fires when the source becomes visible anywhere, including previews.
func (ss SourceSignals) Show() (*Subscription[struct{}], error) {
	return subscribeSource(ss, "show", decodeNothing)
}

// Hide fires when the source is no longer visible anywhere.
func (ss SourceSignals) Hide() (*Subscription[struct{}], error) {
	return subscribeSource(ss, "hide", decodeNothing)
}
