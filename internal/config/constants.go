package config

// Environment variables read by the launcher and the install hook.
const (
	EnvLogLevel    = "IC_WASM_LAUNCHER_LOG_LEVEL"
	EnvConfigFile  = "IC_WASM_LAUNCHER_CONFIG"
	EnvLauncherDir = "IC_WASM_LAUNCHER_DIR"
	EnvNoColor     = "NO_COLOR"
)

// DefaultFileName is looked up in the working directory when EnvConfigFile is unset.
const DefaultFileName = ".ic-wasm-launcher.lua"

// Log levels accepted in config files and EnvLogLevel.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// DefaultLogLevel keeps the launcher silent unless something goes wrong.
const DefaultLogLevel = LevelWarn

// Lua schema field names and globals
const (
	luaGlobalLauncher = "launcher"
	luaFieldLogLevel  = "log_level"
	luaFieldColor     = "color"
)
