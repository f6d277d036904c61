package config

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Limits applied to every config VM. A config file only builds one small
// table, so these sit far above anything legitimate.
const (
	luaCallStackSize   = 120
	luaRegistrySize    = 1024 * 20
	luaRegistryMaxSize = 1024 * 80

	// maxRepLength caps the result of string.rep.
	maxRepLength = 1 << 20
)

// sandboxLuaVM removes every global that could reach outside the VM:
// os and io, module loading (require, dofile, loadfile, load, loadstring)
// and the debug library. string, table, math and the basic functions stay.
func sandboxLuaVM(L *lua.LState) {
	for _, name := range []string{
		"os", "io", "debug",
		"require", "dofile", "loadfile", "load", "loadstring",
	} {
		L.SetGlobal(name, lua.LNil)
	}

	// The stock string.rep allocates whatever it is asked for in one Go call,
	// which the context deadline cannot interrupt.
	if str, ok := L.GetGlobal("string").(*lua.LTable); ok {
		L.SetField(str, "rep", L.NewFunction(boundedRep))
	}
}

func boundedRep(L *lua.LState) int {
	s := L.CheckString(1)
	n := L.CheckInt(2)
	if n <= 0 || s == "" {
		L.Push(lua.LString(""))
		return 1
	}
	if n > maxRepLength/len(s) {
		L.RaiseError("string.rep result exceeds %d bytes", maxRepLength)
		return 0
	}
	L.Push(lua.LString(strings.Repeat(s, n)))
	return 1
}

// newSandboxedVM creates a new Lua VM with sandboxing applied.
func newSandboxedVM() *lua.LState {
	L := lua.NewState(lua.Options{
		CallStackSize:   luaCallStackSize,
		RegistrySize:    luaRegistrySize,
		RegistryMaxSize: luaRegistryMaxSize,
	})
	sandboxLuaVM(L)
	return L
}
