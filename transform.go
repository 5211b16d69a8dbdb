//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// Vec2 is a 2D vector in scene coordinates.
type Vec2 = libobs.Vec2

// Alignment is a combination of the Align flags.
type Alignment uint32

const (
	AlignCenter Alignment = Alignment(libobs.AlignCenter)
	AlignLeft   Alignment = Alignment(libobs.AlignLeft)
	AlignRight  Alignment = Alignment(libobs.AlignRight)
	AlignTop    Alignment = Alignment(libobs.AlignTop)
	AlignBottom Alignment = Alignment(libobs.AlignBottom)
)

// TransformInfo places a source inside a scene. With BoundsType
// libobs.BoundsNone the item is sized by Scale; any other bounds type fits
// it into Bounds and Scale is ignored.
type TransformInfo struct {
	Position        Vec2
	Rotation        float32
	Scale           Vec2
	Alignment       Alignment
	BoundsType      libobs.BoundsType
	BoundsAlignment Alignment
	Bounds          Vec2
	CropToBounds    bool
}

func (t TransformInfo) native() libobs.TransformInfo {
	return libobs.TransformInfo{
		Pos:             t.Position,
		Rot:             t.Rotation,
		Scale:           t.Scale,
		Alignment:       uint32(t.Alignment),
		BoundsType:      t.BoundsType,
		BoundsAlignment: uint32(t.BoundsAlignment),
		Bounds:          t.Bounds,
		CropToBounds:    t.CropToBounds,
	}
}

func transformFromNative(t libobs.TransformInfo) TransformInfo {
	return TransformInfo{
		Position:        t.Pos,
		Rotation:        t.Rot,
		Scale:           t.Scale,
		Alignment:       Alignment(t.Alignment),
		BoundsType:      t.BoundsType,
		BoundsAlignment: Alignment(t.BoundsAlignment),
		Bounds:          t.Bounds,
		CropToBounds:    t.CropToBounds,
	}
}

// FitTransform returns the transform that scales a source, keeping its aspect
// ratio, to fill a width x height canvas anchored at the top left corner.
func FitTransform(width, height uint32, crop bool) TransformInfo {
	return TransformInfo{
		Scale:           Vec2{X: 1, Y: 1},
		Alignment:       AlignLeft | AlignTop,
		BoundsType:      libobs.BoundsScaleInner,
		BoundsAlignment: AlignCenter,
		Bounds:          Vec2{X: float32(width), Y: float32(height)},
		CropToBounds:    crop,
	}
}

// withItem runs fn on the affinity thread with the scene item of src.
func (sc *Scene) withItem(op string, src *Source, fn func(it libobs.SceneItem, e libobs.Engine) error) error {
	if err := sc.alive(op); err != nil {
		return err
	}
	if err := sc.mustContain(op, src); err != nil {
		return err
	}
	return run(sc.ctx, op, func(tok affinity.Token, e libobs.Engine) error {
		it, ok := sc.item(src)
		if !ok {
			return newError(KindSourceNotFound, op, "source "+src.name+" is not in scene "+sc.name)
		}
		return fn(it.Ptr(tok), e)
	})
}

// FitSourceToScreen scales src to fill the video base resolution. It returns
// false and leaves the transform alone if the item is locked.
func (sc *Scene) FitSourceToScreen(src *Source) (bool, error) {
	const op = "scene.fit_source_to_screen"
	var fitted bool
	err := sc.withItem(op, src, func(it libobs.SceneItem, e libobs.Engine) error {
		if e.SceneItemLocked(it) {
			return nil
		}
		vi, ok := e.GetVideoInfo()
		if !ok {
			return newError(KindInvalidOperation, op, "video is not initialized")
		}
		info := FitTransform(vi.BaseWidth, vi.BaseHeight, e.SceneItemGetBoundsCrop(it)).native()
		e.SceneItemSetInfo(it, &info)
		fitted = true
		return nil
	})
	return fitted, err
}

// TransformInfo returns the placement of src in the scene.
func (sc *Scene) TransformInfo(src *Source) (TransformInfo, error) {
	var t TransformInfo
	err := sc.withItem("scene.transform_info", src, func(it libobs.SceneItem, e libobs.Engine) error {
		t = transformFromNative(e.SceneItemGetInfo(it))
		return nil
	})
	return t, err
}

// SetTransformInfo replaces the placement of src in the scene.
func (sc *Scene) SetTransformInfo(src *Source, t TransformInfo) error {
	return sc.withItem("scene.set_transform_info", src, func(it libobs.SceneItem, e libobs.Engine) error {
		info := t.native()
		e.SceneItemSetInfo(it, &info)
		return nil
	})
}

func (sc *Scene) modifyTransform(op string, src *Source, fn func(*libobs.TransformInfo)) error {
	return sc.withItem(op, src, func(it libobs.SceneItem, e libobs.Engine) error {
		info := e.SceneItemGetInfo(it)
		fn(&info)
		e.SceneItemSetInfo(it, &info)
		return nil
	})
}

// SourcePosition returns the position of src in the scene.
func (sc *Scene) SourcePosition(src *Source) (Vec2, error) {
	t, err := sc.TransformInfo(src)
	return t.Position, err
}

// SetSourcePosition moves src within the scene.
func (sc *Scene) SetSourcePosition(src *Source, pos Vec2) error {
	return sc.modifyTransform("scene.set_source_position", src, func(t *libobs.TransformInfo) {
		t.Pos = pos
	})
}

// SourceScale returns the scale of src in the scene.
func (sc *Scene) SourceScale(src *Source) (Vec2, error) {
	t, err := sc.TransformInfo(src)
	return t.Scale, err
}

// SetSourceScale rescales src within the scene.
func (sc *Scene) SetSourceScale(src *Source, scale Vec2) error {
	return sc.modifyTransform("scene.set_source_scale", src, func(t *libobs.TransformInfo) {
		t.Scale = scale
	})
}

// SetSourceLocked locks or unlocks the item of src. Locked items are left
// alone by FitSourceToScreen.
func (sc *Scene) SetSourceLocked(src *Source, locked bool) error {
	return sc.withItem("scene.set_source_locked", src, func(it libobs.SceneItem, e libobs.Engine) error {
		e.SceneItemSetLocked(it, locked)
		return nil
	})
}

// SourceLocked reports whether the item of src is locked.
func (sc *Scene) SourceLocked(src *Source) (bool, error) {
	var locked bool
	err := sc.withItem("scene.source_locked", src, func(it libobs.SceneItem, e libobs.Engine) error {
		locked = e.SceneItemLocked(it)
		return nil
	})
	return locked, err
}
