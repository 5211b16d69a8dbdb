//go:build !ios && !android && (amd64 || arm64)

// Package obsgo provides bindings to libobs, the capture and encoding engine
// behind OBS Studio, without CGO using purego.
//
// libobs must only be called from the thread that started it. Start creates
// a Context that owns that thread (see package affinity) and every object
// created from the Context (Scene, Source, Output, Encoder, Display, Data)
// makes its engine calls there, whichever goroutine calls its methods.
//
// Objects are references: Clone returns another reference to the same
// engine object and Release gives one up. The engine object is released
// once, when its last reference is released. References still held at
// Shutdown are released then.
//
//	ctx, err := obsgo.Start(nil)
//	if err != nil {
//		return err
//	}
//	defer ctx.Shutdown()
//
//	scene, err := ctx.NewScene("main")
//	...
//	src, err := scene.AddSource(obsgo.SourceInfo{ID: "color_source"})
//	...
//	err = scene.SetToChannel(0)
//
// Engine signals are delivered on channels through Subscription; see
// Source.Signals, Scene.Signals and Output.Signals.
package obsgo
