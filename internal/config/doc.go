// Package config loads launcher settings from the environment and an optional,
// sandboxed Lua file.
//
// # Overview
//
// Settings only affect the launcher's own diagnostics: log level, colour and
// an override for the launcher directory. They never change which variant is
// chosen for a platform or how the binary is run.
//
// Precedence is environment, then file, then defaults:
//
//	IC_WASM_LAUNCHER_LOG_LEVEL  debug | info | warn | error
//	IC_WASM_LAUNCHER_CONFIG     explicit path to a Lua file
//	IC_WASM_LAUNCHER_DIR        directory the launcher is installed in
//	NO_COLOR                    any non-empty value disables colour
//
// Without IC_WASM_LAUNCHER_CONFIG, a .ic-wasm-launcher.lua in the working
// directory is used when present.
//
// # Lua Schema
//
//	launcher = {
//	  log_level = platform.is_windows and "info" or "warn",
//	  color = true,
//	}
//
// A file without a launcher table is valid and yields the defaults. The
// platform table from the platform package is injected read-only before the
// file runs.
//
// # Sandboxing
//
// User Lua code runs with os, io, debug and the code-loading functions
// (require, dofile, loadfile, load, loadstring) removed. The string, table
// and math libraries stay available.
//
// # Errors
//
// Load never fails hard. A file or variable that cannot be applied is skipped
// and reported through the returned error, so the launcher can warn and carry
// on with whatever settings are still valid.
package config
