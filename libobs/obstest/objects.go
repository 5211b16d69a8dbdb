//go:build !ios && !android && (amd64 || arm64)

package obstest

import (
	"unsafe"

	"github.com/obinnaokechukwu/obsgo/libobs"
)

func ptr(o *object) unsafe.Pointer {
	if o == nil {
		return nil
	}
	return unsafe.Pointer(o)
}

func (e *Engine) copySettings(settings libobs.Data) *object {
	d := e.newData()
	if src := e.lookup(unsafe.Pointer(settings), KindData); src != nil {
		for k, v := range src.user {
			d.user[k] = v
		}
	}
	return d
}

// Sources

func (e *Engine) newSource(id, name string, settings libobs.Data) *object {
	o := e.alloc(KindSource)
	o.id, o.name = id, name
	o.settings = e.copySettings(settings)
	o.sh = e.newSignalHandler(o)
	o.volume = 1
	return o
}

func (e *Engine) SourceCreate(id, name string, settings, hotkeys libobs.Data) libobs.Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SourceCreate")
	if id == "" {
		return nil
	}
	return libobs.Source(ptr(e.newSource(id, name, settings)))
}

func (e *Engine) source(s libobs.Source, op string) *object {
	o := e.lookup(unsafe.Pointer(s), KindSource)
	if o == nil {
		e.violation("%s: unknown source %p", op, unsafe.Pointer(s))
	}
	return o
}

func (e *Engine) SourceGetRef(s libobs.Source) libobs.Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SourceGetRef")
	o := e.lookup(unsafe.Pointer(s), KindSource)
	if o == nil || o.refs == 0 {
		return nil
	}
	o.refs++
	return s
}

// releaseSource drops one reference. A scene source takes its scene and
// the scene's items along when the last reference goes. Call with e.mu held.
func (e *Engine) releaseSource(o *object) {
	o.refs--
	if o.refs > 0 {
		return
	}
	if sc := o.sceneSource; sc != nil {
		for _, it := range sc.items {
			it.removed = true
			e.releaseItem(it)
		}
		sc.items = nil
		e.free(sc)
	}
	for _, f := range o.filters {
		e.releaseSource(f)
	}
	o.filters = nil
	if o.settings != nil {
		e.releaseData(o.settings)
	}
	e.free(o)
}

func (e *Engine) SourceRelease(s libobs.Source) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SourceRelease")
	if s == nil {
		return
	}
	o := e.source(s, "SourceRelease")
	if o == nil {
		return
	}
	e.releaseSource(o)
}

func (e *Engine) SourceUpdate(s libobs.Source, settings libobs.Data) {
	e.mu.Lock()
	e.check("SourceUpdate")
	o := e.source(s, "SourceUpdate")
	var em emission
	if o != nil {
		if d := e.lookup(unsafe.Pointer(settings), KindData); d != nil && d != o.settings {
			for k, v := range d.user {
				o.settings.user[k] = v
			}
		}
		em = e.prepare(o.sh, "update", map[string]any{"source": unsafe.Pointer(o)})
	}
	e.mu.Unlock()
	e.deliver(em)
}

func (e *Engine) SourceGetSettings(s libobs.Source) libobs.Data {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SourceGetSettings")
	o := e.source(s, "SourceGetSettings")
	if o == nil || o.settings == nil {
		return nil
	}
	o.settings.refs++
	return libobs.Data(ptr(o.settings))
}

func (e *Engine) SourceFilterAdd(s, filter libobs.Source) {
	e.mu.Lock()
	e.check("SourceFilterAdd")
	o, f := e.source(s, "SourceFilterAdd"), e.source(filter, "SourceFilterAdd")
	var em emission
	if o != nil && f != nil {
		f.refs++
		o.filters = append(o.filters, f)
		em = e.prepare(o.sh, "filter_add", map[string]any{"source": unsafe.Pointer(o), "filter": unsafe.Pointer(f)})
	}
	e.mu.Unlock()
	e.deliver(em)
}

func (e *Engine) SourceFilterRemove(s, filter libobs.Source) {
	e.mu.Lock()
	e.check("SourceFilterRemove")
	o, f := e.source(s, "SourceFilterRemove"), e.source(filter, "SourceFilterRemove")
	var em emission
	if o != nil && f != nil {
		for i, x := range o.filters {
			if x == f {
				o.filters = append(o.filters[:i], o.filters[i+1:]...)
				em = e.prepare(o.sh, "filter_remove", map[string]any{"source": unsafe.Pointer(o), "filter": unsafe.Pointer(f)})
				e.releaseSource(f)
				break
			}
		}
	}
	e.mu.Unlock()
	e.deliver(em)
}

// FilterCount returns the number of filters attached to s.
func (e *Engine) FilterCount(s libobs.Source) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if o := e.lookup(unsafe.Pointer(s), KindSource); o != nil {
		return len(o.filters)
	}
	return 0
}

func (e *Engine) SourceGetSignalHandler(s libobs.Source) libobs.SignalHandler {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SourceGetSignalHandler")
	if o := e.source(s, "SourceGetSignalHandler"); o != nil {
		return libobs.SignalHandler(unsafe.Pointer(o.sh))
	}
	return nil
}

func (e *Engine) SourceGetName(s libobs.Source) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SourceGetName")
	if o := e.lookup(unsafe.Pointer(s), KindSource); o != nil {
		return []byte(o.name)
	}
	return nil
}

func (e *Engine) SourceGetID(s libobs.Source) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SourceGetID")
	if o := e.lookup(unsafe.Pointer(s), KindSource); o != nil {
		return []byte(o.id)
	}
	return nil
}

func (e *Engine) SourceSetMuted(s libobs.Source, muted bool) {
	e.mu.Lock()
	e.check("SourceSetMuted")
	var em emission
	if o := e.source(s, "SourceSetMuted"); o != nil && o.muted != muted {
		o.muted = muted
		em = e.prepare(o.sh, "mute", map[string]any{"source": unsafe.Pointer(o), "muted": muted})
	}
	e.mu.Unlock()
	e.deliver(em)
}

func (e *Engine) SourceMuted(s libobs.Source) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SourceMuted")
	if o := e.source(s, "SourceMuted"); o != nil {
		return o.muted
	}
	return false
}

func (e *Engine) SourceSetVolume(s libobs.Source, volume float32) {
	e.mu.Lock()
	e.check("SourceSetVolume")
	var em emission
	if o := e.source(s, "SourceSetVolume"); o != nil {
		o.volume = volume
		em = e.prepare(o.sh, "volume", map[string]any{"source": unsafe.Pointer(o), "volume": float64(volume)})
	}
	e.mu.Unlock()
	e.deliver(em)
}

func (e *Engine) SourceGetVolume(s libobs.Source) float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SourceGetVolume")
	if o := e.source(s, "SourceGetVolume"); o != nil {
		return o.volume
	}
	return 0
}

// Scenes and scene items

func (e *Engine) SceneCreate(name string) libobs.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SceneCreate")
	sc := e.alloc(KindScene)
	sc.name = name
	src := e.newSource("scene", name, nil)
	src.sceneSource = sc
	sc.sceneSource = src
	return libobs.Scene(ptr(sc))
}

func (e *Engine) scene(sc libobs.Scene, op string) *object {
	o := e.lookup(unsafe.Pointer(sc), KindScene)
	if o == nil {
		e.violation("%s: unknown scene %p", op, unsafe.Pointer(sc))
	}
	return o
}

func (e *Engine) SceneRelease(sc libobs.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SceneRelease")
	if o := e.scene(sc, "SceneRelease"); o != nil {
		e.releaseSource(o.sceneSource)
	}
}

func (e *Engine) SceneGetSource(sc libobs.Scene) libobs.Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SceneGetSource")
	if o := e.scene(sc, "SceneGetSource"); o != nil {
		return libobs.Source(ptr(o.sceneSource))
	}
	return nil
}

func (e *Engine) SceneAdd(sc libobs.Scene, s libobs.Source) libobs.SceneItem {
	e.mu.Lock()
	e.check("SceneAdd")
	o, src := e.scene(sc, "SceneAdd"), e.source(s, "SceneAdd")
	if o == nil || src == nil {
		e.mu.Unlock()
		return nil
	}
	it := e.alloc(KindSceneItem)
	it.scene, it.source = o, src
	it.info = libobs.TransformInfo{Scale: libobs.Vec2{X: 1, Y: 1}, Alignment: libobs.AlignLeft | libobs.AlignTop}
	src.refs++
	o.items = append(o.items, it)
	em := e.prepare(o.sceneSource.sh, "item_add", map[string]any{"scene": unsafe.Pointer(o), "item": unsafe.Pointer(it)})
	e.mu.Unlock()
	e.deliver(em)
	return libobs.SceneItem(ptr(it))
}

func (e *Engine) item(it libobs.SceneItem, op string) *object {
	o := e.lookup(unsafe.Pointer(it), KindSceneItem)
	if o == nil {
		e.violation("%s: unknown scene item %p", op, unsafe.Pointer(it))
	}
	return o
}

func (e *Engine) releaseItem(it *object) {
	it.refs--
	if it.refs > 0 {
		return
	}
	e.releaseSource(it.source)
	e.free(it)
}

func (e *Engine) SceneItemAddRef(it libobs.SceneItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SceneItemAddRef")
	if o := e.item(it, "SceneItemAddRef"); o != nil {
		o.refs++
	}
}

func (e *Engine) SceneItemRelease(it libobs.SceneItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SceneItemRelease")
	if o := e.item(it, "SceneItemRelease"); o != nil {
		e.releaseItem(o)
	}
}

func (e *Engine) SceneItemRemove(it libobs.SceneItem) {
	e.mu.Lock()
	e.check("SceneItemRemove")
	o := e.item(it, "SceneItemRemove")
	var em emission
	if o != nil && !o.removed {
		o.removed = true
		sc := o.scene
		for i, x := range sc.items {
			if x == o {
				sc.items = append(sc.items[:i], sc.items[i+1:]...)
				break
			}
		}
		em = e.prepare(sc.sceneSource.sh, "item_remove", map[string]any{"scene": unsafe.Pointer(sc), "item": unsafe.Pointer(o)})
		e.releaseItem(o)
	}
	e.mu.Unlock()
	e.deliver(em)
}

func (e *Engine) SceneItemGetSource(it libobs.SceneItem) libobs.Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SceneItemGetSource")
	if o := e.lookup(unsafe.Pointer(it), KindSceneItem); o != nil {
		return libobs.Source(ptr(o.source))
	}
	return nil
}

func (e *Engine) SceneItemLocked(it libobs.SceneItem) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SceneItemLocked")
	if o := e.item(it, "SceneItemLocked"); o != nil {
		return o.locked
	}
	return false
}

func (e *Engine) SceneItemSetLocked(it libobs.SceneItem, locked bool) {
	e.mu.Lock()
	e.check("SceneItemSetLocked")
	var em emission
	if o := e.item(it, "SceneItemSetLocked"); o != nil && o.locked != locked {
		o.locked = locked
		em = e.prepare(o.scene.sceneSource.sh, "item_locked", map[string]any{
			"scene": unsafe.Pointer(o.scene), "item": unsafe.Pointer(o), "locked": locked,
		})
	}
	e.mu.Unlock()
	e.deliver(em)
}

func (e *Engine) SceneItemGetInfo(it libobs.SceneItem) libobs.TransformInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SceneItemGetInfo")
	if o := e.item(it, "SceneItemGetInfo"); o != nil {
		return o.info
	}
	return libobs.TransformInfo{}
}

func (e *Engine) SceneItemSetInfo(it libobs.SceneItem, info *libobs.TransformInfo) {
	e.mu.Lock()
	e.check("SceneItemSetInfo")
	var em emission
	if o := e.item(it, "SceneItemSetInfo"); o != nil {
		o.info = *info
		em = e.prepare(o.scene.sceneSource.sh, "item_transform", map[string]any{
			"scene": unsafe.Pointer(o.scene), "item": unsafe.Pointer(o),
		})
	}
	e.mu.Unlock()
	e.deliver(em)
}

// SetBoundsCrop sets the crop-to-bounds flag SceneItemGetBoundsCrop reports.
func (e *Engine) SetBoundsCrop(it libobs.SceneItem, crop bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if o := e.lookup(unsafe.Pointer(it), KindSceneItem); o != nil {
		o.boundsCrop = crop
	}
}

func (e *Engine) SceneItemGetBoundsCrop(it libobs.SceneItem) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SceneItemGetBoundsCrop")
	if o := e.item(it, "SceneItemGetBoundsCrop"); o != nil {
		return o.boundsCrop
	}
	return false
}

// Outputs

func (e *Engine) OutputCreate(id, name string, settings, hotkeys libobs.Data) libobs.Output {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("OutputCreate")
	if id == "" {
		return nil
	}
	o := e.alloc(KindOutput)
	o.id, o.name = id, name
	o.settings = e.copySettings(settings)
	o.sh = e.newSignalHandler(o)
	o.ph = &procHandler{owner: o}
	o.audioEncs = make(map[int]*object)
	return libobs.Output(ptr(o))
}

func (e *Engine) output(out libobs.Output, op string) *object {
	o := e.lookup(unsafe.Pointer(out), KindOutput)
	if o == nil {
		e.violation("%s: unknown output %p", op, unsafe.Pointer(out))
	}
	return o
}

func (e *Engine) OutputRelease(out libobs.Output) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("OutputRelease")
	o := e.output(out, "OutputRelease")
	if o == nil {
		return
	}
	o.refs--
	if o.refs > 0 {
		return
	}
	if o.active {
		e.violation("OutputRelease: output %q released while active", o.name)
	}
	if o.videoEnc != nil {
		e.releaseEncoder(o.videoEnc)
	}
	for _, enc := range o.audioEncs {
		e.releaseEncoder(enc)
	}
	e.releaseData(o.settings)
	e.free(o)
}

func (e *Engine) OutputStart(out libobs.Output) bool {
	e.mu.Lock()
	e.check("OutputStart")
	o := e.output(out, "OutputStart")
	if o == nil {
		e.mu.Unlock()
		return false
	}
	if msg, ok := e.StartErrors[o.id]; ok {
		o.lastError = msg
		e.mu.Unlock()
		return false
	}
	o.active = true
	o.lastError = ""
	params := map[string]any{"output": unsafe.Pointer(o)}
	ems := []emission{e.prepare(o.sh, "activate", params), e.prepare(o.sh, "start", params)}
	e.mu.Unlock()
	for _, em := range ems {
		e.deliver(em)
	}
	return true
}

func (e *Engine) OutputStop(out libobs.Output) {
	e.mu.Lock()
	e.check("OutputStop")
	o := e.output(out, "OutputStop")
	if o == nil || !o.active {
		e.mu.Unlock()
		return
	}
	o.active, o.paused = false, false
	if e.SilentStop {
		e.mu.Unlock()
		return
	}
	ems := []emission{
		e.prepare(o.sh, "deactivate", map[string]any{"output": unsafe.Pointer(o)}),
		e.prepare(o.sh, "stop", map[string]any{"output": unsafe.Pointer(o), "code": e.StopCode}),
	}
	e.mu.Unlock()
	for _, em := range ems {
		e.deliver(em)
	}
}

func (e *Engine) OutputActive(out libobs.Output) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("OutputActive")
	if o := e.output(out, "OutputActive"); o != nil {
		return o.active
	}
	return false
}

func (e *Engine) OutputPause(out libobs.Output, pause bool) bool {
	e.mu.Lock()
	e.check("OutputPause")
	o := e.output(out, "OutputPause")
	if o == nil || !o.active || o.paused == pause {
		e.mu.Unlock()
		return false
	}
	o.paused = pause
	signal := "unpause"
	if pause {
		signal = "pause"
	}
	em := e.prepare(o.sh, signal, map[string]any{"output": unsafe.Pointer(o)})
	e.mu.Unlock()
	e.deliver(em)
	return true
}

func (e *Engine) OutputGetLastError(out libobs.Output) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("OutputGetLastError")
	if o := e.output(out, "OutputGetLastError"); o != nil && o.lastError != "" {
		return []byte(o.lastError)
	}
	return nil
}

func (e *Engine) OutputGetID(out libobs.Output) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("OutputGetID")
	if o := e.output(out, "OutputGetID"); o != nil {
		return []byte(o.id)
	}
	return nil
}

func (e *Engine) OutputUpdate(out libobs.Output, settings libobs.Data) {
	e.mu.Lock()
	e.check("OutputUpdate")
	var em emission
	if o := e.output(out, "OutputUpdate"); o != nil {
		if d := e.lookup(unsafe.Pointer(settings), KindData); d != nil && d != o.settings {
			for k, v := range d.user {
				o.settings.user[k] = v
			}
		}
		em = e.prepare(o.sh, "update", map[string]any{"output": unsafe.Pointer(o)})
	}
	e.mu.Unlock()
	e.deliver(em)
}

func (e *Engine) OutputGetSettings(out libobs.Output) libobs.Data {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("OutputGetSettings")
	if o := e.output(out, "OutputGetSettings"); o != nil && o.settings != nil {
		o.settings.refs++
		return libobs.Data(ptr(o.settings))
	}
	return nil
}

func (e *Engine) OutputSetVideoEncoder(out libobs.Output, enc libobs.Encoder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("OutputSetVideoEncoder")
	o, en := e.output(out, "OutputSetVideoEncoder"), e.encoder(enc, "OutputSetVideoEncoder")
	if o == nil || en == nil {
		return
	}
	if o.videoEnc != nil {
		e.releaseEncoder(o.videoEnc)
	}
	en.refs++
	o.videoEnc = en
}

func (e *Engine) OutputSetAudioEncoder(out libobs.Output, enc libobs.Encoder, idx int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("OutputSetAudioEncoder")
	o, en := e.output(out, "OutputSetAudioEncoder"), e.encoder(enc, "OutputSetAudioEncoder")
	if o == nil || en == nil {
		return
	}
	if prev := o.audioEncs[idx]; prev != nil {
		e.releaseEncoder(prev)
	}
	en.refs++
	o.audioEncs[idx] = en
}

func (e *Engine) OutputGetSignalHandler(out libobs.Output) libobs.SignalHandler {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("OutputGetSignalHandler")
	if o := e.output(out, "OutputGetSignalHandler"); o != nil {
		return libobs.SignalHandler(unsafe.Pointer(o.sh))
	}
	return nil
}

func (e *Engine) OutputGetProcHandler(out libobs.Output) libobs.ProcHandler {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("OutputGetProcHandler")
	if o := e.output(out, "OutputGetProcHandler"); o != nil {
		return libobs.ProcHandler(unsafe.Pointer(o.ph))
	}
	return nil
}

// Encoders

func (e *Engine) newEncoder(id, name string, settings libobs.Data) *object {
	o := e.alloc(KindEncoder)
	o.id, o.name = id, name
	o.settings = e.copySettings(settings)
	return o
}

func (e *Engine) VideoEncoderCreate(id, name string, settings, hotkeys libobs.Data) libobs.Encoder {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("VideoEncoderCreate")
	if id == "" {
		return nil
	}
	return libobs.Encoder(ptr(e.newEncoder(id, name, settings)))
}

func (e *Engine) AudioEncoderCreate(id, name string, settings libobs.Data, mixer int, hotkeys libobs.Data) libobs.Encoder {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("AudioEncoderCreate")
	if id == "" {
		return nil
	}
	return libobs.Encoder(ptr(e.newEncoder(id, name, settings)))
}

func (e *Engine) encoder(enc libobs.Encoder, op string) *object {
	o := e.lookup(unsafe.Pointer(enc), KindEncoder)
	if o == nil {
		e.violation("%s: unknown encoder %p", op, unsafe.Pointer(enc))
	}
	return o
}

func (e *Engine) releaseEncoder(o *object) {
	o.refs--
	if o.refs == 0 {
		e.releaseData(o.settings)
		e.free(o)
	}
}

func (e *Engine) EncoderRelease(enc libobs.Encoder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("EncoderRelease")
	if o := e.encoder(enc, "EncoderRelease"); o != nil {
		e.releaseEncoder(o)
	}
}

func (e *Engine) EncoderSetVideo(enc libobs.Encoder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("EncoderSetVideo")
	if o := e.encoder(enc, "EncoderSetVideo"); o != nil {
		o.boundVideo = true
	}
}

func (e *Engine) EncoderSetAudio(enc libobs.Encoder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("EncoderSetAudio")
	if o := e.encoder(enc, "EncoderSetAudio"); o != nil {
		o.boundAudio = true
	}
}

// Displays

func (e *Engine) DisplayCreate(info *libobs.DisplayInfo, background uint32) libobs.Display {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DisplayCreate")
	if info == nil || info.Width == 0 || info.Height == 0 {
		return nil
	}
	o := e.alloc(KindDisplay)
	o.width, o.height = info.Width, info.Height
	o.enabled = true
	o.background = background
	return libobs.Display(ptr(o))
}

func (e *Engine) display(d libobs.Display, op string) *object {
	o := e.lookup(unsafe.Pointer(d), KindDisplay)
	if o == nil {
		e.violation("%s: unknown display %p", op, unsafe.Pointer(d))
	}
	return o
}

func (e *Engine) DisplayDestroy(d libobs.Display) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DisplayDestroy")
	if o := e.display(d, "DisplayDestroy"); o != nil {
		e.free(o)
	}
}

func (e *Engine) DisplaySetEnabled(d libobs.Display, enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DisplaySetEnabled")
	if o := e.display(d, "DisplaySetEnabled"); o != nil {
		o.enabled = enabled
	}
}

func (e *Engine) DisplayResize(d libobs.Display, width, height uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DisplayResize")
	if o := e.display(d, "DisplayResize"); o != nil {
		o.width, o.height = width, height
	}
}

func (e *Engine) DisplaySetBackgroundColor(d libobs.Display, color uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DisplaySetBackgroundColor")
	if o := e.display(d, "DisplaySetBackgroundColor"); o != nil {
		o.background = color
	}
}
