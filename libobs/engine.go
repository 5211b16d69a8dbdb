//go:build !ios && !android && (amd64 || arm64)

package libobs

// Engine is every libobs entry point the binding uses. Library implements it
// over the real shared library; obstest.Engine implements it in memory.
//
// Strings returned as []byte are copies of the native bytes, not validated
// as UTF-8; a nil slice means the engine returned NULL.
//
// Unless noted otherwise, methods must be called on the thread that called
// Startup.
type Engine interface {
	// Core
	Startup(locale, moduleConfigPath string) bool
	Shutdown()
	Initialized() bool
	// Version may be called before Startup.
	Version() string
	// NumAllocs returns the count of live engine allocations. Thread-safe.
	NumAllocs() int64

	// Search paths and modules
	AddDataPath(path string)
	RemoveDataPath(path string) bool
	AddModulePath(bin, data string)
	AddSafeModule(name string)
	// SupportsDisabledModules reports whether AddDisabledModule exists in
	// this engine build.
	SupportsDisabledModules() bool
	AddDisabledModule(name string)
	// LoadAllModules loads every module found on the module paths and
	// returns the names of those that failed.
	LoadAllModules() []string
	LogLoadedModules()
	PostLoadModules()

	// Video, audio and channels
	ResetVideo(vi *VideoInfo) ResetVideoStatus
	ResetAudio(ai *AudioInfo) bool
	GetVideoInfo() (VideoInfo, bool)
	SetOutputSource(channel uint32, source Source)
	// EnumEncoderTypes returns the id of the encoder type at idx.
	EnumEncoderTypes(idx int) (string, bool)
	EnumSourceTypes(idx int) (string, bool)
	EnumOutputTypes(idx int) (string, bool)

	// Settings data
	DataCreate() Data
	DataCreateFromJSON(json string) Data
	DataAddRef(d Data)
	DataRelease(d Data)
	DataHasUserValue(d Data, key string) bool
	DataHasDefaultValue(d Data, key string) bool
	DataGetString(d Data, key string) []byte
	DataGetInt(d Data, key string) int64
	DataGetBool(d Data, key string) bool
	DataGetDouble(d Data, key string) float64
	DataSetString(d Data, key, val string)
	DataSetInt(d Data, key string, val int64)
	DataSetBool(d Data, key string, val bool)
	DataSetDouble(d Data, key string, val float64)
	DataSetDefaultString(d Data, key, val string)
	DataSetDefaultInt(d Data, key string, val int64)
	DataSetDefaultBool(d Data, key string, val bool)
	DataSetDefaultDouble(d Data, key string, val float64)
	DataErase(d Data, key string)
	// DataApply copies every user value of from into target.
	DataApply(target, from Data)
	DataGetJSON(d Data) []byte

	// Sources
	SourceCreate(id, name string, settings, hotkeys Data) Source
	// SourceGetRef adds a reference, or returns nil if the source is being
	// destroyed. Thread-safe.
	SourceGetRef(s Source) Source
	SourceRelease(s Source)
	SourceUpdate(s Source, settings Data)
	// SourceGetSettings returns a new reference to the source settings.
	SourceGetSettings(s Source) Data
	SourceFilterAdd(s, filter Source)
	SourceFilterRemove(s, filter Source)
	SourceGetSignalHandler(s Source) SignalHandler
	// SourceGetName is thread-safe.
	SourceGetName(s Source) []byte
	SourceGetID(s Source) []byte
	SourceSetMuted(s Source, muted bool)
	SourceMuted(s Source) bool
	SourceSetVolume(s Source, volume float32)
	SourceGetVolume(s Source) float32

	// Scenes and scene items
	SceneCreate(name string) Scene
	SceneRelease(sc Scene)
	SceneGetSource(sc Scene) Source
	// SceneAdd returns an item owned by the scene; callers that keep it
	// must SceneItemAddRef.
	SceneAdd(sc Scene, s Source) SceneItem
	SceneItemAddRef(it SceneItem)
	SceneItemRelease(it SceneItem)
	SceneItemRemove(it SceneItem)
	// SceneItemGetSource is thread-safe; it does not add a reference.
	SceneItemGetSource(it SceneItem) Source
	SceneItemLocked(it SceneItem) bool
	SceneItemSetLocked(it SceneItem, locked bool)
	SceneItemGetInfo(it SceneItem) TransformInfo
	SceneItemSetInfo(it SceneItem, info *TransformInfo)
	SceneItemGetBoundsCrop(it SceneItem) bool

	// Outputs
	OutputCreate(id, name string, settings, hotkeys Data) Output
	OutputRelease(o Output)
	OutputStart(o Output) bool
	OutputStop(o Output)
	OutputActive(o Output) bool
	OutputPause(o Output, pause bool) bool
	OutputGetLastError(o Output) []byte
	OutputGetID(o Output) []byte
	OutputUpdate(o Output, settings Data)
	// OutputGetSettings returns a new reference to the output settings.
	OutputGetSettings(o Output) Data
	OutputSetVideoEncoder(o Output, e Encoder)
	OutputSetAudioEncoder(o Output, e Encoder, idx int)
	OutputGetSignalHandler(o Output) SignalHandler
	OutputGetProcHandler(o Output) ProcHandler

	// Encoders
	VideoEncoderCreate(id, name string, settings, hotkeys Data) Encoder
	AudioEncoderCreate(id, name string, settings Data, mixer int, hotkeys Data) Encoder
	EncoderRelease(e Encoder)
	// EncoderSetVideo binds e to the engine's main video pipeline.
	EncoderSetVideo(e Encoder)
	// EncoderSetAudio binds e to the engine's main audio pipeline.
	EncoderSetAudio(e Encoder)

	// Displays
	DisplayCreate(info *DisplayInfo, background uint32) Display
	DisplayDestroy(d Display)
	DisplaySetEnabled(d Display, enabled bool)
	DisplayResize(d Display, width, height uint32)
	DisplaySetBackgroundColor(d Display, color uint32)

	// Signals and procedures
	// SignalHandlerConnect routes signal to DeliverSignal with data as the
	// receiver id.
	SignalHandlerConnect(sh SignalHandler, signal string, data uintptr)
	SignalHandlerDisconnect(sh SignalHandler, signal string, data uintptr)
	ProcHandlerCall(ph ProcHandler, name string, cd Calldata) bool
	CalldataCreate() Calldata
	CalldataDestroy(cd Calldata)
	// Calldata getters are thread-safe for the duration of a signal.
	CalldataGetInt(cd Calldata, name string) (int64, bool)
	CalldataGetBool(cd Calldata, name string) (bool, bool)
	CalldataGetFloat(cd Calldata, name string) (float64, bool)
	CalldataGetString(cd Calldata, name string) ([]byte, bool)
	CalldataGetPtr(cd Calldata, name string) (uintptr, bool)

	// Process-wide hooks. The callbacks may run on any thread.
	InstallCrashHook(fn func(msg string)) error
	InstallLogHook(fn func(level LogLevel, msg string)) error
}
