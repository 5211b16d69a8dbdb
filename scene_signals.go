//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// SceneItemEvent carries the source of the scene item a signal is about.
// The receiver owns Source and must release it; it is nil if the source was
// already being destroyed.
type SceneItemEvent struct {
	Source *Source
}

func (ev SceneItemEvent) releasePayload() {
	ev.Source.releasePayload()
}

// SceneItemFlagEvent carries a scene item's source together with the new
// state of a flag (locked, visible).
type SceneItemFlagEvent struct {
	Source *Source
	Value  bool
}

func (ev SceneItemFlagEvent) releasePayload() {
	ev.Source.releasePayload()
}

// SceneSignals subscribes to the signals of one scene.
type SceneSignals struct {
	sc *Scene
}

// Signals returns the signal manager of sc.
func (sc *Scene) Signals() SceneSignals {
	return SceneSignals{sc: sc}
}

func subscribeScene[T any](ss SceneSignals, signal string, decode decoder[T]) (*Subscription[T], error) {
	owner, err := ss.sc.Clone()
	if err != nil {
		return nil, err
	}
	return subscribe(ss.sc.ctx, signal, owner, func(tok affinity.Token, e libobs.Engine) libobs.SignalHandler {
		return e.SourceGetSignalHandler(owner.src.Ptr(tok))
	}, decode)
}

func itemSource(c *Context, e libobs.Engine, cd libobs.Calldata) *Source {
	it := libobs.SceneItem(calldataPtr(e, cd, "item"))
	if it == nil {
		return nil
	}
	return adoptSource(c, e, e.SceneItemGetSource(it))
}

func decodeItem(c *Context, e libobs.Engine, cd libobs.Calldata) (SceneItemEvent, bool) {
	return SceneItemEvent{Source: itemSource(c, e, cd)}, true
}

func decodeItemFlag(param string) decoder[SceneItemFlagEvent] {
	return func(c *Context, e libobs.Engine, cd libobs.Calldata) (SceneItemFlagEvent, bool) {
		v, ok := e.CalldataGetBool(cd, param)
		if !ok {
			return SceneItemFlagEvent{}, false
		}
		return SceneItemFlagEvent{Source: itemSource(c, e, cd), Value: v}, true
	}
}

// ItemAdd fires when a source is added to the scene.
func (ss SceneSignals) ItemAdd() (*Subscription[SceneItemEvent], error) {
	return subscribeScene(ss, "item_add", decodeItem)
}

// ItemRemove fires when a source is removed from the scene.
func (ss SceneSignals) ItemRemove() (*Subscription[SceneItemEvent], error) {
	return subscribeScene(ss, "item_remove", decodeItem)
}

// ItemLocked fires when an item is locked or unlocked.
func (ss SceneSignals) ItemLocked() (*Subscription[SceneItemFlagEvent], error) {
	return subscribeScene(ss, "item_locked", decodeItemFlag("locked"))
}

// ItemVisible fires when an item is shown or hidden.
func (ss SceneSignals) ItemVisible() (*Subscription[SceneItemFlagEvent], error) {
	return subscribeScene(ss, "item_visible", decodeItemFlag("visible"))
}

// ItemTransform fires when an item's transform changes.
func (ss SceneSignals) ItemTransform() (*Subscription[SceneItemEvent], error) {
	return subscribeScene(ss, "item_transform", decodeItem)
}

// ItemSelect fires when an item is selected in a frontend.
func (ss SceneSignals) ItemSelect() (*Subscription[SceneItemEvent], error) {
	return subscribeScene(ss, "item_select", decodeItem)
}

// ItemDeselect fires when an item is deselected.
func (ss SceneSignals) ItemDeselect() (*Subscription[SceneItemEvent], error) {
	return subscribeScene(ss, "item_deselect", decodeItem)
}

// Reorder fires when the order of the scene's items changes.
func (ss SceneSignals) Reorder() (*Subscription[struct{}], error) {
	return subscribeScene(ss, "reorder", decodeNothing)
}

// Refresh fires when the scene's items are reloaded.
func (ss SceneSignals) Refresh() (*Subscription[struct{}], error) {
	return subscribeScene(ss, "refresh", decodeNothing)
}
