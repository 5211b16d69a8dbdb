//go:build !ios && !android && (amd64 || arm64)

package libobs

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/obsgo/internal/bindings"
	"github.com/obinnaokechukwu/obsgo/internal/shim"
	"go.uber.org/multierr"
)

// ErrSymbolMissing is returned by Open when libobs lacks a required symbol.
var ErrSymbolMissing = errors.New("libobs: required symbol missing")

// calldataSize is sizeof(calldata_t): stack pointer, size, capacity, fixed.
const calldataSize = 32

type cVideoInfo struct {
	graphicsModule *byte
	fpsNum         uint32
	fpsDen         uint32
	baseWidth      uint32
	baseHeight     uint32
	outputWidth    uint32
	outputHeight   uint32
	outputFormat   int32
	adapter        uint32
	gpuConversion  bool
	colorspace     int32
	rng            int32
	scaleType      int32
}

type cAudioInfo struct {
	samplesPerSec uint32
	speakers      int32
}

type cFailureInfo struct {
	modules unsafe.Pointer // char**
	count   uintptr
}

type cCalldata struct {
	stack    unsafe.Pointer
	size     uintptr
	capacity uintptr
	fixed    bool
}

// Library is the Engine backed by the libobs shared library.
type Library struct {
	lib  uintptr
	path string

	internMu sync.Mutex
	interned map[string][]byte

	obsStartup          func(locale, moduleConfigPath *byte, store unsafe.Pointer) bool
	obsShutdown         func()
	obsInitialized      func() bool
	obsGetVersionString func() *byte
	bnumAllocs          func() int64

	obsAddDataPath             func(path *byte)
	obsRemoveDataPath          func(path *byte) bool
	obsAddModulePath           func(bin, data *byte)
	obsAddSafeModule           func(name *byte)
	obsAddDisabledModule       func(name *byte)
	obsLoadAllModules2         func(info *cFailureInfo)
	obsLoadAllModules          func()
	obsModuleFailureInfoFree   func(info *cFailureInfo)
	obsLogLoadedModules        func()
	obsPostLoadModules         func()
	obsResetVideo              func(ovi *cVideoInfo) int32
	obsResetAudio              func(oai *cAudioInfo) bool
	obsGetVideoInfo            func(ovi *cVideoInfo) bool
	obsSetOutputSource         func(channel uint32, source unsafe.Pointer)
	obsEnumEncoderTypes        func(idx uintptr, id **byte) bool
	obsEnumSourceTypes         func(idx uintptr, id **byte) bool
	obsEnumOutputTypes         func(idx uintptr, id **byte) bool
	obsGetVideo                func() unsafe.Pointer
	obsGetAudio                func() unsafe.Pointer
	obsDataCreate              func() unsafe.Pointer
	obsDataCreateFromJSON      func(json *byte) unsafe.Pointer
	obsDataAddRef              func(d unsafe.Pointer)
	obsDataRelease             func(d unsafe.Pointer)
	obsDataHasUserValue        func(d unsafe.Pointer, key *byte) bool
	obsDataHasDefaultValue     func(d unsafe.Pointer, key *byte) bool
	obsDataGetString           func(d unsafe.Pointer, key *byte) *byte
	obsDataGetInt              func(d unsafe.Pointer, key *byte) int64
	obsDataGetBool             func(d unsafe.Pointer, key *byte) bool
	obsDataGetDouble           func(d unsafe.Pointer, key *byte) float64
	obsDataSetString           func(d unsafe.Pointer, key, val *byte)
	obsDataSetInt              func(d unsafe.Pointer, key *byte, val int64)
	obsDataSetBool             func(d unsafe.Pointer, key *byte, val bool)
	obsDataSetDouble           func(d unsafe.Pointer, key *byte, val float64)
	obsDataSetDefaultString    func(d unsafe.Pointer, key, val *byte)
	obsDataSetDefaultInt       func(d unsafe.Pointer, key *byte, val int64)
	obsDataSetDefaultBool      func(d unsafe.Pointer, key *byte, val bool)
	obsDataSetDefaultDouble    func(d unsafe.Pointer, key *byte, val float64)
	obsDataErase               func(d unsafe.Pointer, key *byte)
	obsDataApply               func(target, from unsafe.Pointer)
	obsDataGetJSON             func(d unsafe.Pointer) *byte
	obsSourceCreate            func(id, name *byte, settings, hotkeys unsafe.Pointer) unsafe.Pointer
	obsSourceGetRef            func(s unsafe.Pointer) unsafe.Pointer
	obsSourceRelease           func(s unsafe.Pointer)
	obsSourceUpdate            func(s, settings unsafe.Pointer)
	obsSourceGetSettings       func(s unsafe.Pointer) unsafe.Pointer
	obsSourceFilterAdd         func(s, filter unsafe.Pointer)
	obsSourceFilterRemove      func(s, filter unsafe.Pointer)
	obsSourceGetSignalHandler  func(s unsafe.Pointer) unsafe.Pointer
	obsSourceGetName           func(s unsafe.Pointer) *byte
	obsSourceGetID             func(s unsafe.Pointer) *byte
	obsSourceSetMuted          func(s unsafe.Pointer, muted bool)
	obsSourceMuted             func(s unsafe.Pointer) bool
	obsSourceSetVolume         func(s unsafe.Pointer, volume float32)
	obsSourceGetVolume         func(s unsafe.Pointer) float32
	obsSceneCreate             func(name *byte) unsafe.Pointer
	obsSceneRelease            func(sc unsafe.Pointer)
	obsSceneGetSource          func(sc unsafe.Pointer) unsafe.Pointer
	obsSceneAdd                func(sc, s unsafe.Pointer) unsafe.Pointer
	obsSceneItemAddRef         func(it unsafe.Pointer)
	obsSceneItemRelease        func(it unsafe.Pointer)
	obsSceneItemRemove         func(it unsafe.Pointer)
	obsSceneItemGetSource      func(it unsafe.Pointer) unsafe.Pointer
	obsSceneItemLocked         func(it unsafe.Pointer) bool
	obsSceneItemSetLocked      func(it unsafe.Pointer, locked bool) bool
	obsSceneItemGetInfo2       func(it unsafe.Pointer, info *TransformInfo)
	obsSceneItemSetInfo2       func(it unsafe.Pointer, info *TransformInfo)
	obsSceneItemGetBoundsCrop  func(it unsafe.Pointer) bool
	obsOutputCreate            func(id, name *byte, settings, hotkeys unsafe.Pointer) unsafe.Pointer
	obsOutputRelease           func(o unsafe.Pointer)
	obsOutputStart             func(o unsafe.Pointer) bool
	obsOutputStop              func(o unsafe.Pointer)
	obsOutputActive            func(o unsafe.Pointer) bool
	obsOutputPause             func(o unsafe.Pointer, pause bool) bool
	obsOutputGetLastError      func(o unsafe.Pointer) *byte
	obsOutputGetID             func(o unsafe.Pointer) *byte
	obsOutputUpdate            func(o, settings unsafe.Pointer)
	obsOutputGetSettings       func(o unsafe.Pointer) unsafe.Pointer
	obsOutputSetVideoEncoder   func(o, e unsafe.Pointer)
	obsOutputSetAudioEncoder   func(o, e unsafe.Pointer, idx uintptr)
	obsOutputGetSignalHandler  func(o unsafe.Pointer) unsafe.Pointer
	obsOutputGetProcHandler    func(o unsafe.Pointer) unsafe.Pointer
	obsVideoEncoderCreate      func(id, name *byte, settings, hotkeys unsafe.Pointer) unsafe.Pointer
	obsAudioEncoderCreate      func(id, name *byte, settings unsafe.Pointer, mixer uintptr, hotkeys unsafe.Pointer) unsafe.Pointer
	obsEncoderRelease          func(e unsafe.Pointer)
	obsEncoderSetVideo         func(e, video unsafe.Pointer)
	obsEncoderSetAudio         func(e, audio unsafe.Pointer)
	obsDisplayCreate           func(info *cInitData, background uint32) unsafe.Pointer
	obsDisplayDestroy          func(d unsafe.Pointer)
	obsDisplaySetEnabled       func(d unsafe.Pointer, enabled bool)
	obsDisplayResize           func(d unsafe.Pointer, cx, cy uint32)
	obsDisplaySetBackground    func(d unsafe.Pointer, color uint32)
	signalHandlerConnect       func(sh unsafe.Pointer, signal *byte, cb uintptr, data uintptr)
	signalHandlerDisconnect    func(sh unsafe.Pointer, signal *byte, cb uintptr, data uintptr)
	procHandlerCall            func(ph unsafe.Pointer, name *byte, cd unsafe.Pointer) bool
	calldataGetData            func(cd unsafe.Pointer, name *byte, out unsafe.Pointer, size uintptr) bool
	calldataGetString          func(cd unsafe.Pointer, name *byte, out **byte) bool
	bzalloc                    func(size uintptr) unsafe.Pointer
	bfree                      func(p unsafe.Pointer)
}

var _ Engine = (*Library)(nil)

// Open loads libobs and binds every entry point the Engine needs. An empty
// path searches OBSGO_LIBRARY_PATH and the platform library directories.
func Open(path string) (*Library, error) {
	lib, err := bindings.Load(path)
	if err != nil {
		return nil, err
	}
	l := &Library{
		lib:      lib,
		path:     bindings.Path(),
		interned: make(map[string][]byte),
	}
	if err := l.register(); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the file libobs was loaded from.
func (l *Library) Path() string {
	return l.path
}

func (l *Library) register() error {
	var errs error
	req := func(fptr any, name string) {
		if err := registerLibFunc(fptr, l.lib, name); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	opt := func(fptr any, name string) {
		_ = registerLibFunc(fptr, l.lib, name)
	}

	req(&l.obsStartup, "obs_startup")
	req(&l.obsShutdown, "obs_shutdown")
	req(&l.obsInitialized, "obs_initialized")
	req(&l.obsGetVersionString, "obs_get_version_string")
	req(&l.bnumAllocs, "bnum_allocs")

	req(&l.obsAddDataPath, "obs_add_data_path")
	req(&l.obsRemoveDataPath, "obs_remove_data_path")
	req(&l.obsAddModulePath, "obs_add_module_path")
	opt(&l.obsAddSafeModule, "obs_add_safe_module")
	opt(&l.obsAddDisabledModule, "obs_add_disabled_module")
	opt(&l.obsLoadAllModules2, "obs_load_all_modules2")
	opt(&l.obsModuleFailureInfoFree, "obs_module_failure_info_free")
	req(&l.obsLoadAllModules, "obs_load_all_modules")
	req(&l.obsLogLoadedModules, "obs_log_loaded_modules")
	req(&l.obsPostLoadModules, "obs_post_load_modules")

	req(&l.obsResetVideo, "obs_reset_video")
	req(&l.obsResetAudio, "obs_reset_audio")
	req(&l.obsGetVideoInfo, "obs_get_video_info")
	req(&l.obsSetOutputSource, "obs_set_output_source")
	req(&l.obsEnumEncoderTypes, "obs_enum_encoder_types")
	req(&l.obsEnumSourceTypes, "obs_enum_source_types")
	req(&l.obsEnumOutputTypes, "obs_enum_output_types")
	req(&l.obsGetVideo, "obs_get_video")
	req(&l.obsGetAudio, "obs_get_audio")

	req(&l.obsDataCreate, "obs_data_create")
	req(&l.obsDataCreateFromJSON, "obs_data_create_from_json")
	req(&l.obsDataAddRef, "obs_data_addref")
	req(&l.obsDataRelease, "obs_data_release")
	req(&l.obsDataHasUserValue, "obs_data_has_user_value")
	req(&l.obsDataHasDefaultValue, "obs_data_has_default_value")
	req(&l.obsDataGetString, "obs_data_get_string")
	req(&l.obsDataGetInt, "obs_data_get_int")
	req(&l.obsDataGetBool, "obs_data_get_bool")
	req(&l.obsDataGetDouble, "obs_data_get_double")
	req(&l.obsDataSetString, "obs_data_set_string")
	req(&l.obsDataSetInt, "obs_data_set_int")
	req(&l.obsDataSetBool, "obs_data_set_bool")
	req(&l.obsDataSetDouble, "obs_data_set_double")
	req(&l.obsDataSetDefaultString, "obs_data_set_default_string")
	req(&l.obsDataSetDefaultInt, "obs_data_set_default_int")
	req(&l.obsDataSetDefaultBool, "obs_data_set_default_bool")
	req(&l.obsDataSetDefaultDouble, "obs_data_set_default_double")
	req(&l.obsDataErase, "obs_data_erase")
	req(&l.obsDataApply, "obs_data_apply")
	req(&l.obsDataGetJSON, "obs_data_get_json")

	req(&l.obsSourceCreate, "obs_source_create")
	req(&l.obsSourceGetRef, "obs_source_get_ref")
	req(&l.obsSourceRelease, "obs_source_release")
	req(&l.obsSourceUpdate, "obs_source_update")
	req(&l.obsSourceGetSettings, "obs_source_get_settings")
	req(&l.obsSourceFilterAdd, "obs_source_filter_add")
	req(&l.obsSourceFilterRemove, "obs_source_filter_remove")
	req(&l.obsSourceGetSignalHandler, "obs_source_get_signal_handler")
	req(&l.obsSourceGetName, "obs_source_get_name")
	req(&l.obsSourceGetID, "obs_source_get_id")
	req(&l.obsSourceSetMuted, "obs_source_set_muted")
	req(&l.obsSourceMuted, "obs_source_muted")
	req(&l.obsSourceSetVolume, "obs_source_set_volume")
	req(&l.obsSourceGetVolume, "obs_source_get_volume")

	req(&l.obsSceneCreate, "obs_scene_create")
	req(&l.obsSceneRelease, "obs_scene_release")
	req(&l.obsSceneGetSource, "obs_scene_get_source")
	req(&l.obsSceneAdd, "obs_scene_add")
	req(&l.obsSceneItemAddRef, "obs_sceneitem_addref")
	req(&l.obsSceneItemRelease, "obs_sceneitem_release")
	req(&l.obsSceneItemRemove, "obs_sceneitem_remove")
	req(&l.obsSceneItemGetSource, "obs_sceneitem_get_source")
	req(&l.obsSceneItemLocked, "obs_sceneitem_locked")
	req(&l.obsSceneItemSetLocked, "obs_sceneitem_set_locked")
	req(&l.obsSceneItemGetInfo2, "obs_sceneitem_get_info2")
	req(&l.obsSceneItemSetInfo2, "obs_sceneitem_set_info2")
	opt(&l.obsSceneItemGetBoundsCrop, "obs_sceneitem_get_bounds_crop")

	req(&l.obsOutputCreate, "obs_output_create")
	req(&l.obsOutputRelease, "obs_output_release")
	req(&l.obsOutputStart, "obs_output_start")
	req(&l.obsOutputStop, "obs_output_stop")
	req(&l.obsOutputActive, "obs_output_active")
	req(&l.obsOutputPause, "obs_output_pause")
	req(&l.obsOutputGetLastError, "obs_output_get_last_error")
	req(&l.obsOutputGetID, "obs_output_get_id")
	req(&l.obsOutputUpdate, "obs_output_update")
	req(&l.obsOutputGetSettings, "obs_output_get_settings")
	req(&l.obsOutputSetVideoEncoder, "obs_output_set_video_encoder")
	req(&l.obsOutputSetAudioEncoder, "obs_output_set_audio_encoder")
	req(&l.obsOutputGetSignalHandler, "obs_output_get_signal_handler")
	req(&l.obsOutputGetProcHandler, "obs_output_get_proc_handler")

	req(&l.obsVideoEncoderCreate, "obs_video_encoder_create")
	req(&l.obsAudioEncoderCreate, "obs_audio_encoder_create")
	req(&l.obsEncoderRelease, "obs_encoder_release")
	req(&l.obsEncoderSetVideo, "obs_encoder_set_video")
	req(&l.obsEncoderSetAudio, "obs_encoder_set_audio")

	req(&l.obsDisplayCreate, "obs_display_create")
	req(&l.obsDisplayDestroy, "obs_display_destroy")
	req(&l.obsDisplaySetEnabled, "obs_display_set_enabled")
	req(&l.obsDisplayResize, "obs_display_resize")
	req(&l.obsDisplaySetBackground, "obs_display_set_background_color")

	req(&l.signalHandlerConnect, "signal_handler_connect")
	req(&l.signalHandlerDisconnect, "signal_handler_disconnect")
	req(&l.procHandlerCall, "proc_handler_call")
	req(&l.calldataGetData, "calldata_get_data")
	req(&l.calldataGetString, "calldata_get_string")
	req(&l.bzalloc, "bzalloc")
	req(&l.bfree, "bfree")

	return errs
}

func registerLibFunc(fptr any, handle uintptr, name string) (err error) {
	defer func() {
		// purego.RegisterLibFunc panics if the symbol is missing
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s", ErrSymbolMissing, name)
		}
	}()
	purego.RegisterLibFunc(fptr, handle, name)
	return nil
}

// cstr returns a NUL-terminated copy of s for the duration of one call.
func cstr(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

// intern returns a NUL-terminated copy of s that lives as long as l, for
// strings the engine keeps a pointer to.
func (l *Library) intern(s string) *byte {
	l.internMu.Lock()
	defer l.internMu.Unlock()
	b, ok := l.interned[s]
	if !ok {
		b = make([]byte, len(s)+1)
		copy(b, s)
		l.interned[s] = b
	}
	return &b[0]
}

// goBytes copies a C string. A nil pointer yields a nil slice.
func goBytes(p *byte) []byte {
	if p == nil {
		return nil
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice(p, n))
	return out
}

func (l *Library) Startup(locale, moduleConfigPath string) bool {
	var cfg *byte
	if moduleConfigPath != "" {
		cfg = l.intern(moduleConfigPath)
	}
	return l.obsStartup(l.intern(locale), cfg, nil)
}

func (l *Library) Shutdown()         { l.obsShutdown() }
func (l *Library) Initialized() bool { return l.obsInitialized() }
func (l *Library) Version() string   { return string(goBytes(l.obsGetVersionString())) }
func (l *Library) NumAllocs() int64  { return l.bnumAllocs() }

func (l *Library) AddDataPath(path string) { l.obsAddDataPath(cstr(path)) }

func (l *Library) RemoveDataPath(path string) bool { return l.obsRemoveDataPath(cstr(path)) }

func (l *Library) AddModulePath(bin, data string) { l.obsAddModulePath(cstr(bin), cstr(data)) }

func (l *Library) AddSafeModule(name string) {
	if l.obsAddSafeModule != nil {
		l.obsAddSafeModule(cstr(name))
	}
}

func (l *Library) SupportsDisabledModules() bool { return l.obsAddDisabledModule != nil }

func (l *Library) AddDisabledModule(name string) {
	if l.obsAddDisabledModule != nil {
		l.obsAddDisabledModule(cstr(name))
	}
}

func (l *Library) LoadAllModules() []string {
	if l.obsLoadAllModules2 == nil {
		l.obsLoadAllModules()
		return nil
	}
	var info cFailureInfo
	l.obsLoadAllModules2(&info)
	if info.count == 0 || info.modules == nil {
		return nil
	}
	names := make([]string, 0, info.count)
	for _, p := range unsafe.Slice((**byte)(info.modules), info.count) {
		names = append(names, string(goBytes(p)))
	}
	if l.obsModuleFailureInfoFree != nil {
		l.obsModuleFailureInfoFree(&info)
	}
	return names
}

func (l *Library) LogLoadedModules() { l.obsLogLoadedModules() }
func (l *Library) PostLoadModules()  { l.obsPostLoadModules() }

func (l *Library) ResetVideo(vi *VideoInfo) ResetVideoStatus {
	c := cVideoInfo{
		graphicsModule: l.intern(vi.GraphicsModule),
		fpsNum:         vi.FPSNum,
		fpsDen:         vi.FPSDen,
		baseWidth:      vi.BaseWidth,
		baseHeight:     vi.BaseHeight,
		outputWidth:    vi.OutputWidth,
		outputHeight:   vi.OutputHeight,
		outputFormat:   int32(vi.OutputFormat),
		adapter:        vi.Adapter,
		gpuConversion:  vi.GPUConversion,
		colorspace:     int32(vi.Colorspace),
		rng:            int32(vi.Range),
		scaleType:      int32(vi.ScaleType),
	}
	return ResetVideoStatus(l.obsResetVideo(&c))
}

func (l *Library) ResetAudio(ai *AudioInfo) bool {
	c := cAudioInfo{samplesPerSec: ai.SamplesPerSec, speakers: int32(ai.Speakers)}
	return l.obsResetAudio(&c)
}

func (l *Library) GetVideoInfo() (VideoInfo, bool) {
	var c cVideoInfo
	if !l.obsGetVideoInfo(&c) {
		return VideoInfo{}, false
	}
	return VideoInfo{
		GraphicsModule: string(goBytes(c.graphicsModule)),
		FPSNum:         c.fpsNum,
		FPSDen:         c.fpsDen,
		BaseWidth:      c.baseWidth,
		BaseHeight:     c.baseHeight,
		OutputWidth:    c.outputWidth,
		OutputHeight:   c.outputHeight,
		OutputFormat:   VideoFormat(c.outputFormat),
		Adapter:        c.adapter,
		GPUConversion:  c.gpuConversion,
		Colorspace:     Colorspace(c.colorspace),
		Range:          VideoRange(c.rng),
		ScaleType:      ScaleType(c.scaleType),
	}, true
}

func (l *Library) SetOutputSource(channel uint32, source Source) {
	l.obsSetOutputSource(channel, unsafe.Pointer(source))
}

func enumTypes(fn func(uintptr, **byte) bool, idx int) (string, bool) {
	var id *byte
	if !fn(uintptr(idx), &id) {
		return "", false
	}
	return string(goBytes(id)), true
}

func (l *Library) EnumEncoderTypes(idx int) (string, bool) { return enumTypes(l.obsEnumEncoderTypes, idx) }
func (l *Library) EnumSourceTypes(idx int) (string, bool)  { return enumTypes(l.obsEnumSourceTypes, idx) }
func (l *Library) EnumOutputTypes(idx int) (string, bool)  { return enumTypes(l.obsEnumOutputTypes, idx) }

func (l *Library) DataCreate() Data { return Data(l.obsDataCreate()) }

func (l *Library) DataCreateFromJSON(json string) Data {
	return Data(l.obsDataCreateFromJSON(cstr(json)))
}

func (l *Library) DataAddRef(d Data)  { l.obsDataAddRef(unsafe.Pointer(d)) }
func (l *Library) DataRelease(d Data) { l.obsDataRelease(unsafe.Pointer(d)) }

func (l *Library) DataHasUserValue(d Data, key string) bool {
	return l.obsDataHasUserValue(unsafe.Pointer(d), cstr(key))
}

func (l *Library) DataHasDefaultValue(d Data, key string) bool {
	return l.obsDataHasDefaultValue(unsafe.Pointer(d), cstr(key))
}

func (l *Library) DataGetString(d Data, key string) []byte {
	return goBytes(l.obsDataGetString(unsafe.Pointer(d), cstr(key)))
}

func (l *Library) DataGetInt(d Data, key string) int64 {
	return l.obsDataGetInt(unsafe.Pointer(d), cstr(key))
}

func (l *Library) DataGetBool(d Data, key string) bool {
	return l.obsDataGetBool(unsafe.Pointer(d), cstr(key))
}

func (l *Library) DataGetDouble(d Data, key string) float64 {
	return l.obsDataGetDouble(unsafe.Pointer(d), cstr(key))
}

func (l *Library) DataSetString(d Data, key, val string) {
	l.obsDataSetString(unsafe.Pointer(d), cstr(key), cstr(val))
}

func (l *Library) DataSetInt(d Data, key string, val int64) {
	l.obsDataSetInt(unsafe.Pointer(d), cstr(key), val)
}

func (l *Library) DataSetBool(d Data, key string, val bool) {
	l.obsDataSetBool(unsafe.Pointer(d), cstr(key), val)
}

func (l *Library) DataSetDouble(d Data, key string, val float64) {
	l.obsDataSetDouble(unsafe.Pointer(d), cstr(key), val)
}

func (l *Library) DataSetDefaultString(d Data, key, val string) {
	l.obsDataSetDefaultString(unsafe.Pointer(d), cstr(key), cstr(val))
}

func (l *Library) DataSetDefaultInt(d Data, key string, val int64) {
	l.obsDataSetDefaultInt(unsafe.Pointer(d), cstr(key), val)
}

func (l *Library) DataSetDefaultBool(d Data, key string, val bool) {
	l.obsDataSetDefaultBool(unsafe.Pointer(d), cstr(key), val)
}

func (l *Library) DataSetDefaultDouble(d Data, key string, val float64) {
	l.obsDataSetDefaultDouble(unsafe.Pointer(d), cstr(key), val)
}

func (l *Library) DataErase(d Data, key string) { l.obsDataErase(unsafe.Pointer(d), cstr(key)) }

func (l *Library) DataApply(target, from Data) {
	l.obsDataApply(unsafe.Pointer(target), unsafe.Pointer(from))
}

func (l *Library) DataGetJSON(d Data) []byte {
	return goBytes(l.obsDataGetJSON(unsafe.Pointer(d)))
}

func (l *Library) SourceCreate(id, name string, settings, hotkeys Data) Source {
	return Source(l.obsSourceCreate(cstr(id), cstr(name), unsafe.Pointer(settings), unsafe.Pointer(hotkeys)))
}

func (l *Library) SourceGetRef(s Source) Source {
	return Source(l.obsSourceGetRef(unsafe.Pointer(s)))
}

func (l *Library) SourceRelease(s Source) { l.obsSourceRelease(unsafe.Pointer(s)) }

func (l *Library) SourceUpdate(s Source, settings Data) {
	l.obsSourceUpdate(unsafe.Pointer(s), unsafe.Pointer(settings))
}

func (l *Library) SourceGetSettings(s Source) Data {
	return Data(l.obsSourceGetSettings(unsafe.Pointer(s)))
}

func (l *Library) SourceFilterAdd(s, filter Source) {
	l.obsSourceFilterAdd(unsafe.Pointer(s), unsafe.Pointer(filter))
}

func (l *Library) SourceFilterRemove(s, filter Source) {
	l.obsSourceFilterRemove(unsafe.Pointer(s), unsafe.Pointer(filter))
}

func (l *Library) SourceGetSignalHandler(s Source) SignalHandler {
	return SignalHandler(l.obsSourceGetSignalHandler(unsafe.Pointer(s)))
}

func (l *Library) SourceGetName(s Source) []byte {
	return goBytes(l.obsSourceGetName(unsafe.Pointer(s)))
}

func (l *Library) SourceGetID(s Source) []byte {
	return goBytes(l.obsSourceGetID(unsafe.Pointer(s)))
}

func (l *Library) SourceSetMuted(s Source, muted bool) {
	l.obsSourceSetMuted(unsafe.Pointer(s), muted)
}

func (l *Library) SourceMuted(s Source) bool { return l.obsSourceMuted(unsafe.Pointer(s)) }

func (l *Library) SourceSetVolume(s Source, volume float32) {
	l.obsSourceSetVolume(unsafe.Pointer(s), volume)
}

func (l *Library) SourceGetVolume(s Source) float32 {
	return l.obsSourceGetVolume(unsafe.Pointer(s))
}

func (l *Library) SceneCreate(name string) Scene { return Scene(l.obsSceneCreate(cstr(name))) }
func (l *Library) SceneRelease(sc Scene)         { l.obsSceneRelease(unsafe.Pointer(sc)) }

func (l *Library) SceneGetSource(sc Scene) Source {
	return Source(l.obsSceneGetSource(unsafe.Pointer(sc)))
}

func (l *Library) SceneAdd(sc Scene, s Source) SceneItem {
	return SceneItem(l.obsSceneAdd(unsafe.Pointer(sc), unsafe.Pointer(s)))
}

func (l *Library) SceneItemAddRef(it SceneItem)  { l.obsSceneItemAddRef(unsafe.Pointer(it)) }
func (l *Library) SceneItemRelease(it SceneItem) { l.obsSceneItemRelease(unsafe.Pointer(it)) }
func (l *Library) SceneItemRemove(it SceneItem)  { l.obsSceneItemRemove(unsafe.Pointer(it)) }

func (l *Library) SceneItemGetSource(it SceneItem) Source {
	return Source(l.obsSceneItemGetSource(unsafe.Pointer(it)))
}

func (l *Library) SceneItemLocked(it SceneItem) bool {
	return l.obsSceneItemLocked(unsafe.Pointer(it))
}

func (l *Library) SceneItemSetLocked(it SceneItem, locked bool) {
	l.obsSceneItemSetLocked(unsafe.Pointer(it), locked)
}

func (l *Library) SceneItemGetInfo(it SceneItem) TransformInfo {
	var info TransformInfo
	l.obsSceneItemGetInfo2(unsafe.Pointer(it), &info)
	return info
}

func (l *Library) SceneItemSetInfo(it SceneItem, info *TransformInfo) {
	l.obsSceneItemSetInfo2(unsafe.Pointer(it), info)
}

func (l *Library) SceneItemGetBoundsCrop(it SceneItem) bool {
	if l.obsSceneItemGetBoundsCrop == nil {
		return false
	}
	return l.obsSceneItemGetBoundsCrop(unsafe.Pointer(it))
}

func (l *Library) OutputCreate(id, name string, settings, hotkeys Data) Output {
	return Output(l.obsOutputCreate(cstr(id), cstr(name), unsafe.Pointer(settings), unsafe.Pointer(hotkeys)))
}

func (l *Library) OutputRelease(o Output)     { l.obsOutputRelease(unsafe.Pointer(o)) }
func (l *Library) OutputStart(o Output) bool  { return l.obsOutputStart(unsafe.Pointer(o)) }
func (l *Library) OutputStop(o Output)        { l.obsOutputStop(unsafe.Pointer(o)) }
func (l *Library) OutputActive(o Output) bool { return l.obsOutputActive(unsafe.Pointer(o)) }

func (l *Library) OutputPause(o Output, pause bool) bool {
	return l.obsOutputPause(unsafe.Pointer(o), pause)
}

func (l *Library) OutputGetLastError(o Output) []byte {
	return goBytes(l.obsOutputGetLastError(unsafe.Pointer(o)))
}

func (l *Library) OutputGetID(o Output) []byte {
	return goBytes(l.obsOutputGetID(unsafe.Pointer(o)))
}

func (l *Library) OutputUpdate(o Output, settings Data) {
	l.obsOutputUpdate(unsafe.Pointer(o), unsafe.Pointer(settings))
}

func (l *Library) OutputGetSettings(o Output) Data {
	return Data(l.obsOutputGetSettings(unsafe.Pointer(o)))
}

func (l *Library) OutputSetVideoEncoder(o Output, e Encoder) {
	l.obsOutputSetVideoEncoder(unsafe.Pointer(o), unsafe.Pointer(e))
}

func (l *Library) OutputSetAudioEncoder(o Output, e Encoder, idx int) {
	l.obsOutputSetAudioEncoder(unsafe.Pointer(o), unsafe.Pointer(e), uintptr(idx))
}

func (l *Library) OutputGetSignalHandler(o Output) SignalHandler {
	return SignalHandler(l.obsOutputGetSignalHandler(unsafe.Pointer(o)))
}

func (l *Library) OutputGetProcHandler(o Output) ProcHandler {
	return ProcHandler(l.obsOutputGetProcHandler(unsafe.Pointer(o)))
}

func (l *Library) VideoEncoderCreate(id, name string, settings, hotkeys Data) Encoder {
	return Encoder(l.obsVideoEncoderCreate(cstr(id), cstr(name), unsafe.Pointer(settings), unsafe.Pointer(hotkeys)))
}

func (l *Library) AudioEncoderCreate(id, name string, settings Data, mixer int, hotkeys Data) Encoder {
	return Encoder(l.obsAudioEncoderCreate(cstr(id), cstr(name), unsafe.Pointer(settings), uintptr(mixer), unsafe.Pointer(hotkeys)))
}

func (l *Library) EncoderRelease(e Encoder) { l.obsEncoderRelease(unsafe.Pointer(e)) }

func (l *Library) EncoderSetVideo(e Encoder) {
	l.obsEncoderSetVideo(unsafe.Pointer(e), l.obsGetVideo())
}

func (l *Library) EncoderSetAudio(e Encoder) {
	l.obsEncoderSetAudio(unsafe.Pointer(e), l.obsGetAudio())
}

func (l *Library) DisplayCreate(info *DisplayInfo, background uint32) Display {
	c := newInitData(info)
	return Display(l.obsDisplayCreate(&c, background))
}

func (l *Library) DisplayDestroy(d Display) { l.obsDisplayDestroy(unsafe.Pointer(d)) }

func (l *Library) DisplaySetEnabled(d Display, enabled bool) {
	l.obsDisplaySetEnabled(unsafe.Pointer(d), enabled)
}

func (l *Library) DisplayResize(d Display, width, height uint32) {
	l.obsDisplayResize(unsafe.Pointer(d), width, height)
}

func (l *Library) DisplaySetBackgroundColor(d Display, color uint32) {
	l.obsDisplaySetBackground(unsafe.Pointer(d), color)
}

var (
	signalCBOnce sync.Once
	signalCB     uintptr
)

// signalTrampoline is the single native signal callback. The opaque data
// is a receiver id; the receiver does the rest.
// Signature: void (*)(void *data, calldata_t *cd)
func signalTrampoline(_ purego.CDecl, data uintptr, cd unsafe.Pointer) {
	DeliverSignal(data, Calldata(cd))
}

func signalCallback() uintptr {
	signalCBOnce.Do(func() {
		signalCB = purego.NewCallback(signalTrampoline)
	})
	return signalCB
}

func (l *Library) SignalHandlerConnect(sh SignalHandler, signal string, data uintptr) {
	l.signalHandlerConnect(unsafe.Pointer(sh), l.intern(signal), signalCallback(), data)
}

func (l *Library) SignalHandlerDisconnect(sh SignalHandler, signal string, data uintptr) {
	l.signalHandlerDisconnect(unsafe.Pointer(sh), cstr(signal), signalCallback(), data)
}

func (l *Library) ProcHandlerCall(ph ProcHandler, name string, cd Calldata) bool {
	return l.procHandlerCall(unsafe.Pointer(ph), cstr(name), unsafe.Pointer(cd))
}

func (l *Library) CalldataCreate() Calldata {
	return Calldata(l.bzalloc(calldataSize))
}

func (l *Library) CalldataDestroy(cd Calldata) {
	if cd == nil {
		return
	}
	c := (*cCalldata)(unsafe.Pointer(cd))
	if !c.fixed && c.stack != nil {
		l.bfree(c.stack)
	}
	l.bfree(unsafe.Pointer(cd))
}

func (l *Library) CalldataGetInt(cd Calldata, name string) (int64, bool) {
	var v int64
	ok := l.calldataGetData(unsafe.Pointer(cd), cstr(name), unsafe.Pointer(&v), 8)
	return v, ok
}

func (l *Library) CalldataGetBool(cd Calldata, name string) (bool, bool) {
	var v bool
	ok := l.calldataGetData(unsafe.Pointer(cd), cstr(name), unsafe.Pointer(&v), 1)
	return v, ok
}

func (l *Library) CalldataGetFloat(cd Calldata, name string) (float64, bool) {
	var v float64
	ok := l.calldataGetData(unsafe.Pointer(cd), cstr(name), unsafe.Pointer(&v), 8)
	return v, ok
}

func (l *Library) CalldataGetString(cd Calldata, name string) ([]byte, bool) {
	var p *byte
	if !l.calldataGetString(unsafe.Pointer(cd), cstr(name), &p) {
		return nil, false
	}
	return goBytes(p), true
}

func (l *Library) CalldataGetPtr(cd Calldata, name string) (uintptr, bool) {
	var v uintptr
	ok := l.calldataGetData(unsafe.Pointer(cd), cstr(name), unsafe.Pointer(&v), unsafe.Sizeof(v))
	return v, ok
}

var (
	crashFn   atomic.Pointer[func(string)]
	crashOnce sync.Once
	crashCB   uintptr

	logFn   atomic.Pointer[func(LogLevel, string)]
	logOnce sync.Once
	logCB   uintptr
)

// crashTrampoline is called by the shim with the formatted crash message.
// Signature: void (*)(const char *msg)
func crashTrampoline(_ purego.CDecl, msg *byte) {
	if fn := crashFn.Load(); fn != nil {
		(*fn)(string(goBytes(msg)))
	}
}

// logTrampoline is called by the shim for each native log line.
// Signature: void (*)(int level, const char *msg)
func logTrampoline(_ purego.CDecl, level int32, msg *byte) {
	if fn := logFn.Load(); fn != nil {
		(*fn)(LogLevel(level), string(goBytes(msg)))
	}
}

// InstallCrashHook routes engine crash messages to fn. It needs the obsshim
// helper library; without it the engine's default handler stays in place.
func (l *Library) InstallCrashHook(fn func(msg string)) error {
	if err := shim.Load(); err != nil {
		return err
	}
	if fn == nil {
		crashFn.Store(nil)
		return shim.SetCrashCallback(0)
	}
	crashFn.Store(&fn)
	crashOnce.Do(func() { crashCB = purego.NewCallback(crashTrampoline) })
	return shim.SetCrashCallback(crashCB)
}

// InstallLogHook routes native log lines to fn. Like InstallCrashHook it
// needs the obsshim helper library.
func (l *Library) InstallLogHook(fn func(level LogLevel, msg string)) error {
	if err := shim.Load(); err != nil {
		return err
	}
	if fn == nil {
		logFn.Store(nil)
		return shim.SetLogCallback(0)
	}
	logFn.Store(&fn)
	logOnce.Do(func() { logCB = purego.NewCallback(logTrampoline) })
	return shim.SetLogCallback(logCB)
}
