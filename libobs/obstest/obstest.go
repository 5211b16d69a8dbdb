//go:build !ios && !android && (amd64 || arm64)

// Package obstest provides an in-memory libobs.Engine for tests.
//
// The fake keeps engine objects as Go values addressed by their own pointers,
// counts references the way libobs does, emits the signals the binding
// listens for, and records every call together with whether it happened on
// the thread that called Startup.
package obstest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// Kind names the type of a fake engine object.
type Kind string

const (
	KindData      Kind = "data"
	KindSource    Kind = "source"
	KindScene     Kind = "scene"
	KindSceneItem Kind = "scene_item"
	KindOutput    Kind = "output"
	KindEncoder   Kind = "encoder"
	KindDisplay   Kind = "display"
	KindCalldata  Kind = "calldata"
)

type value struct {
	kind string // "string", "int", "bool", "double"
	s    string
	i    int64
	b    bool
	f    float64
}

type object struct {
	kind Kind
	refs int

	// data
	user     map[string]value
	defaults map[string]value

	// source, output, encoder
	id       string
	name     string
	settings *object
	sh       *signalHandler
	ph       *procHandler
	filters  []*object
	muted    bool
	volume   float32

	// scene
	sceneSource *object
	items       []*object

	// scene item
	scene      *object
	source     *object
	removed    bool
	locked     bool
	info       libobs.TransformInfo
	boundsCrop bool

	// output
	active    bool
	paused    bool
	lastError string
	videoEnc  *object
	audioEncs map[int]*object

	// encoder
	boundVideo bool
	boundAudio bool

	// display
	enabled    bool
	width      uint32
	height     uint32
	background uint32

	// calldata
	params map[string]any
}

type signalHandler struct {
	owner *object
	conns map[string][]uintptr
}

type procHandler struct {
	owner *object
}

type emission struct {
	conns  []uintptr
	params map[string]any
}

// Engine is a libobs.Engine held entirely in memory. Configure the exported
// fields before Startup.
type Engine struct {
	// FailStartup makes Startup report failure.
	FailStartup bool
	// VersionString is reported by Version. Defaults to "31.0.0".
	VersionString string
	// NoDisabledModules makes SupportsDisabledModules report false.
	NoDisabledModules bool
	// FailedModules is returned by LoadAllModules.
	FailedModules []string
	// ResetVideoStatus is returned by ResetVideo.
	ResetVideoStatus libobs.ResetVideoStatus
	// FailResetAudio makes ResetAudio report failure.
	FailResetAudio bool
	// StartErrors maps output ids to the last error a failed start reports.
	StartErrors map[string]string
	// StopCode is the code carried by the "stop" signal.
	StopCode int64
	// SilentStop makes OutputStop deactivate outputs without emitting
	// "deactivate" or "stop".
	SilentStop bool
	// ReplayPath is returned by the "get_last_replay" procedure.
	ReplayPath string
	// EncoderTypes, SourceTypes and OutputTypes are enumerated by the
	// matching Enum methods.
	EncoderTypes []string
	SourceTypes  []string
	OutputTypes  []string

	mu          sync.Mutex
	objects     map[unsafe.Pointer]*object
	started     bool
	thread      int64
	hasThread   bool
	calls       map[string]int
	history     []string
	violations  []string
	dataPaths   []string
	modulePaths [][2]string
	safe        []string
	disabled    []string
	video       *libobs.VideoInfo
	audio       *libobs.AudioInfo
	channels    [libobs.MaxChannels]*object
	crashHook   func(string)
	logHook     func(libobs.LogLevel, string)
}

var _ libobs.Engine = (*Engine)(nil)

// New returns an engine with the defaults of a recent libobs release.
func New() *Engine {
	return &Engine{
		VersionString: "31.0.0",
		ReplayPath:    "/tmp/obsgo-replay.mkv",
		EncoderTypes:  []string{"obs_x264", "ffmpeg_aac"},
		SourceTypes:   []string{"scene", "color_source", "image_source"},
		OutputTypes:   []string{"ffmpeg_muxer", "replay_buffer"},
		objects:       make(map[unsafe.Pointer]*object),
		calls:         make(map[string]int),
	}
}

func (e *Engine) init() {
	if e.objects == nil {
		e.objects = make(map[unsafe.Pointer]*object)
		e.calls = make(map[string]int)
	}
}

// record counts a call. Call with e.mu held.
func (e *Engine) record(op string) {
	e.init()
	e.calls[op]++
	e.history = append(e.history, op)
}

// check records a call that must happen on the startup thread.
func (e *Engine) check(op string) {
	e.record(op)
	if !e.hasThread {
		return
	}
	id, ok := affinity.CurrentThreadID()
	if ok && id != e.thread {
		e.violations = append(e.violations, fmt.Sprintf("%s called on thread %d, engine thread is %d", op, id, e.thread))
	}
}

func (e *Engine) alloc(kind Kind) *object {
	e.init()
	o := &object{kind: kind, refs: 1}
	e.objects[unsafe.Pointer(o)] = o
	return o
}

func (e *Engine) lookup(p unsafe.Pointer, kind Kind) *object {
	if p == nil {
		return nil
	}
	o, ok := e.objects[p]
	if !ok || o.kind != kind {
		return nil
	}
	return o
}

func (e *Engine) free(o *object) {
	delete(e.objects, unsafe.Pointer(o))
}

func (e *Engine) violation(format string, args ...any) {
	e.violations = append(e.violations, fmt.Sprintf(format, args...))
}

// Calls returns how many times op was called.
func (e *Engine) Calls(op string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[op]
}

// History returns every recorded call in order.
func (e *Engine) History() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.history...)
}

// Violations returns calls made off the engine thread and misuse such as
// releasing a dead object.
func (e *Engine) Violations() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.violations...)
}

// Live returns the number of live objects of kind.
func (e *Engine) Live(kind Kind) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, o := range e.objects {
		if o.kind == kind {
			n++
		}
	}
	return n
}

// Refs returns the reference count of the object at p, or 0 if it is gone.
func (e *Engine) Refs(p unsafe.Pointer) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if o, ok := e.objects[p]; ok {
		return o.refs
	}
	return 0
}

// Channel returns the source assigned to an output channel.
func (e *Engine) Channel(n uint32) libobs.Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	if o := e.channels[n]; o != nil {
		return libobs.Source(unsafe.Pointer(o))
	}
	return nil
}

// DataPaths returns the registered data paths.
func (e *Engine) DataPaths() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.dataPaths...)
}

// SafeModules returns the modules registered with AddSafeModule.
func (e *Engine) SafeModules() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.safe...)
}

// DisabledModules returns the modules registered with AddDisabledModule.
func (e *Engine) DisabledModules() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.disabled...)
}

// Connections returns the number of live signal connections on the engine.
func (e *Engine) Connections() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	seen := make(map[*signalHandler]bool)
	for _, o := range e.objects {
		if o.sh == nil || seen[o.sh] {
			continue
		}
		seen[o.sh] = true
		for _, c := range o.sh.conns {
			n += len(c)
		}
	}
	return n
}

// SceneItemCount returns the number of items currently in sc.
func (e *Engine) SceneItemCount(sc libobs.Scene) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if o := e.lookup(unsafe.Pointer(sc), KindScene); o != nil {
		return len(o.items)
	}
	return 0
}

// DisplayState returns the size and enabled flag of a live display.
func (e *Engine) DisplayState(d libobs.Display) (width, height uint32, enabled, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o := e.lookup(unsafe.Pointer(d), KindDisplay)
	if o == nil {
		return 0, 0, false, false
	}
	return o.width, o.height, o.enabled, true
}

// Crash invokes the installed crash hook as the engine would.
func (e *Engine) Crash(msg string) {
	e.mu.Lock()
	fn := e.crashHook
	e.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

// Log invokes the installed log hook as the engine would.
func (e *Engine) Log(level libobs.LogLevel, msg string) {
	e.mu.Lock()
	fn := e.logHook
	e.mu.Unlock()
	if fn != nil {
		fn(level, msg)
	}
}

// EmitSource emits signal on a source with the given calldata parameters.
// Pointer parameters are passed as unsafe.Pointer.
func (e *Engine) EmitSource(s libobs.Source, signal string, params map[string]any) {
	e.mu.Lock()
	o := e.lookup(unsafe.Pointer(s), KindSource)
	var em emission
	if o != nil {
		em = e.prepare(o.sh, signal, params)
	}
	e.mu.Unlock()
	e.deliver(em)
}

// EmitOutput emits signal on an output.
func (e *Engine) EmitOutput(out libobs.Output, signal string, params map[string]any) {
	e.mu.Lock()
	o := e.lookup(unsafe.Pointer(out), KindOutput)
	var em emission
	if o != nil {
		em = e.prepare(o.sh, signal, params)
	}
	e.mu.Unlock()
	e.deliver(em)
}

// prepare snapshots the connections for signal. Call with e.mu held, then
// deliver after unlocking so receivers may call back into the engine.
func (e *Engine) prepare(sh *signalHandler, signal string, params map[string]any) emission {
	if sh == nil {
		return emission{}
	}
	conns := append([]uintptr(nil), sh.conns[signal]...)
	if len(conns) == 0 {
		return emission{}
	}
	cp := make(map[string]any, len(params))
	for k, v := range params {
		cp[k] = normalizeParam(v)
	}
	return emission{conns: conns, params: cp}
}

func normalizeParam(v any) any {
	switch x := v.(type) {
	case unsafe.Pointer:
		return uintptr(x)
	case libobs.Source:
		return uintptr(unsafe.Pointer(x))
	case libobs.SceneItem:
		return uintptr(unsafe.Pointer(x))
	case libobs.Scene:
		return uintptr(unsafe.Pointer(x))
	case libobs.Output:
		return uintptr(unsafe.Pointer(x))
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	case string:
		return []byte(x)
	default:
		return v
	}
}

func (e *Engine) deliver(em emission) {
	if len(em.conns) == 0 {
		return
	}
	e.mu.Lock()
	cd := e.alloc(KindCalldata)
	cd.params = em.params
	e.mu.Unlock()

	for _, data := range em.conns {
		libobs.DeliverSignal(data, libobs.Calldata(unsafe.Pointer(cd)))
	}

	e.mu.Lock()
	e.free(cd)
	e.mu.Unlock()
}

func (e *Engine) newSignalHandler(owner *object) *signalHandler {
	return &signalHandler{owner: owner, conns: make(map[string][]uintptr)}
}

// Core

func (e *Engine) Startup(locale, moduleConfigPath string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Startup")
	if e.FailStartup {
		return false
	}
	e.started = true
	e.thread, e.hasThread = affinity.CurrentThreadID()
	return true
}

func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("Shutdown")
	e.started = false
	for i, o := range e.channels {
		if o != nil {
			e.channels[i] = nil
			e.releaseSource(o)
		}
	}
}

func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Initialized")
	return e.started
}

func (e *Engine) Version() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Version")
	if e.VersionString == "" {
		return "31.0.0"
	}
	return e.VersionString
}

func (e *Engine) NumAllocs() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("NumAllocs")
	return int64(len(e.objects))
}

// Search paths and modules

func (e *Engine) AddDataPath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("AddDataPath")
	e.dataPaths = append(e.dataPaths, path)
}

func (e *Engine) RemoveDataPath(path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("RemoveDataPath")
	for i, p := range e.dataPaths {
		if p == path {
			e.dataPaths = append(e.dataPaths[:i], e.dataPaths[i+1:]...)
			return true
		}
	}
	return false
}

func (e *Engine) AddModulePath(bin, data string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("AddModulePath")
	e.modulePaths = append(e.modulePaths, [2]string{bin, data})
}

func (e *Engine) AddSafeModule(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("AddSafeModule")
	e.safe = append(e.safe, name)
}

func (e *Engine) SupportsDisabledModules() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SupportsDisabledModules")
	return !e.NoDisabledModules
}

func (e *Engine) AddDisabledModule(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("AddDisabledModule")
	e.disabled = append(e.disabled, name)
}

func (e *Engine) LoadAllModules() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("LoadAllModules")
	return append([]string(nil), e.FailedModules...)
}

func (e *Engine) LogLoadedModules() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("LogLoadedModules")
}

func (e *Engine) PostLoadModules() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("PostLoadModules")
}

// Video, audio and channels

func (e *Engine) ResetVideo(vi *libobs.VideoInfo) libobs.ResetVideoStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("ResetVideo")
	if e.ResetVideoStatus != libobs.VideoSuccess {
		return e.ResetVideoStatus
	}
	cp := *vi
	e.video = &cp
	return libobs.VideoSuccess
}

func (e *Engine) ResetAudio(ai *libobs.AudioInfo) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("ResetAudio")
	if e.FailResetAudio {
		return false
	}
	cp := *ai
	e.audio = &cp
	return true
}

func (e *Engine) GetVideoInfo() (libobs.VideoInfo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("GetVideoInfo")
	if e.video == nil {
		return libobs.VideoInfo{}, false
	}
	return *e.video, true
}

func (e *Engine) SetOutputSource(channel uint32, source libobs.Source) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SetOutputSource")
	if channel >= libobs.MaxChannels {
		e.violation("SetOutputSource: channel %d out of range", channel)
		return
	}
	var o *object
	if source != nil {
		if o = e.lookup(unsafe.Pointer(source), KindSource); o == nil {
			e.violation("SetOutputSource: unknown source %p", unsafe.Pointer(source))
			return
		}
		o.refs++
	}
	prev := e.channels[channel]
	e.channels[channel] = o
	if prev != nil {
		e.releaseSource(prev)
	}
}

func enumAt(list []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(list) {
		return "", false
	}
	return list[idx], true
}

func (e *Engine) EnumEncoderTypes(idx int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("EnumEncoderTypes")
	return enumAt(e.EncoderTypes, idx)
}

func (e *Engine) EnumSourceTypes(idx int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("EnumSourceTypes")
	return enumAt(e.SourceTypes, idx)
}

func (e *Engine) EnumOutputTypes(idx int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("EnumOutputTypes")
	return enumAt(e.OutputTypes, idx)
}

// Settings data

func (e *Engine) newData() *object {
	o := e.alloc(KindData)
	o.user = make(map[string]value)
	o.defaults = make(map[string]value)
	return o
}

func (e *Engine) data(d libobs.Data, op string) *object {
	o := e.lookup(unsafe.Pointer(d), KindData)
	if o == nil {
		e.violation("%s: unknown data object %p", op, unsafe.Pointer(d))
	}
	return o
}

func (e *Engine) DataCreate() libobs.Data {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataCreate")
	return libobs.Data(unsafe.Pointer(e.newData()))
}

func (e *Engine) DataCreateFromJSON(text string) libobs.Data {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataCreateFromJSON")

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil
	}
	o := e.newData()
	for k, v := range raw {
		switch x := v.(type) {
		case string:
			o.user[k] = value{kind: "string", s: x}
		case bool:
			o.user[k] = value{kind: "bool", b: x}
		case json.Number:
			if i, err := x.Int64(); err == nil {
				o.user[k] = value{kind: "int", i: i}
			} else if f, err := x.Float64(); err == nil {
				o.user[k] = value{kind: "double", f: f}
			}
		}
	}
	return libobs.Data(unsafe.Pointer(o))
}

func (e *Engine) DataAddRef(d libobs.Data) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataAddRef")
	if o := e.data(d, "DataAddRef"); o != nil {
		o.refs++
	}
}

func (e *Engine) releaseData(o *object) {
	o.refs--
	if o.refs == 0 {
		e.free(o)
	}
}

func (e *Engine) DataRelease(d libobs.Data) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataRelease")
	if d == nil {
		return
	}
	if o := e.data(d, "DataRelease"); o != nil {
		e.releaseData(o)
	}
}

func (e *Engine) DataHasUserValue(d libobs.Data, key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataHasUserValue")
	o := e.data(d, "DataHasUserValue")
	if o == nil {
		return false
	}
	_, ok := o.user[key]
	return ok
}

func (e *Engine) DataHasDefaultValue(d libobs.Data, key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataHasDefaultValue")
	o := e.data(d, "DataHasDefaultValue")
	if o == nil {
		return false
	}
	_, ok := o.defaults[key]
	return ok
}

func (e *Engine) get(d libobs.Data, key, op string) value {
	o := e.data(d, op)
	if o == nil {
		return value{}
	}
	if v, ok := o.user[key]; ok {
		return v
	}
	return o.defaults[key]
}

func (e *Engine) DataGetString(d libobs.Data, key string) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataGetString")
	v := e.get(d, key, "DataGetString")
	if v.kind != "string" {
		return []byte{}
	}
	return []byte(v.s)
}

func (e *Engine) DataGetInt(d libobs.Data, key string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataGetInt")
	v := e.get(d, key, "DataGetInt")
	switch v.kind {
	case "int":
		return v.i
	case "double":
		return int64(v.f)
	}
	return 0
}

func (e *Engine) DataGetBool(d libobs.Data, key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataGetBool")
	return e.get(d, key, "DataGetBool").b
}

func (e *Engine) DataGetDouble(d libobs.Data, key string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataGetDouble")
	v := e.get(d, key, "DataGetDouble")
	switch v.kind {
	case "double":
		return v.f
	case "int":
		return float64(v.i)
	}
	return 0
}

func (e *Engine) set(d libobs.Data, key string, v value, def bool, op string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check(op)
	o := e.data(d, op)
	if o == nil {
		return
	}
	if def {
		o.defaults[key] = v
	} else {
		o.user[key] = v
	}
}

func (e *Engine) DataSetString(d libobs.Data, key, val string) {
	e.set(d, key, value{kind: "string", s: val}, false, "DataSetString")
}

func (e *Engine) DataSetInt(d libobs.Data, key string, val int64) {
	e.set(d, key, value{kind: "int", i: val}, false, "DataSetInt")
}

func (e *Engine) DataSetBool(d libobs.Data, key string, val bool) {
	e.set(d, key, value{kind: "bool", b: val}, false, "DataSetBool")
}

func (e *Engine) DataSetDouble(d libobs.Data, key string, val float64) {
	e.set(d, key, value{kind: "double", f: val}, false, "DataSetDouble")
}

func (e *Engine) DataSetDefaultString(d libobs.Data, key, val string) {
	e.set(d, key, value{kind: "string", s: val}, true, "DataSetDefaultString")
}

func (e *Engine) DataSetDefaultInt(d libobs.Data, key string, val int64) {
	e.set(d, key, value{kind: "int", i: val}, true, "DataSetDefaultInt")
}

func (e *Engine) DataSetDefaultBool(d libobs.Data, key string, val bool) {
	e.set(d, key, value{kind: "bool", b: val}, true, "DataSetDefaultBool")
}

func (e *Engine) DataSetDefaultDouble(d libobs.Data, key string, val float64) {
	e.set(d, key, value{kind: "double", f: val}, true, "DataSetDefaultDouble")
}

func (e *Engine) DataErase(d libobs.Data, key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataErase")
	if o := e.data(d, "DataErase"); o != nil {
		delete(o.user, key)
	}
}

func (e *Engine) DataApply(target, from libobs.Data) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataApply")
	t, f := e.data(target, "DataApply"), e.data(from, "DataApply")
	if t == nil || f == nil {
		return
	}
	for k, v := range f.user {
		t.user[k] = v
	}
}

func (e *Engine) DataGetJSON(d libobs.Data) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("DataGetJSON")
	o := e.data(d, "DataGetJSON")
	if o == nil {
		return nil
	}
	return encodeJSON(o.user)
}

// encodeJSON writes user values with sorted keys. Strings are written
// byte for byte so invalid UTF-8 survives, as it does in libobs.
func encodeJSON(values map[string]value) []byte {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		b.Write(kb)
		b.WriteByte(':')
		v := values[k]
		switch v.kind {
		case "string":
			b.WriteByte('"')
			b.WriteString(strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(v.s))
			b.WriteByte('"')
		case "int":
			fmt.Fprintf(&b, "%d", v.i)
		case "bool":
			fmt.Fprintf(&b, "%t", v.b)
		case "double":
			fb, _ := json.Marshal(v.f)
			b.Write(fb)
		}
	}
	b.WriteByte('}')
	return []byte(b.String())
}
