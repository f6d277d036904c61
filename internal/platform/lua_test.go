package platform

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

// evalLua runs each snippet against L and compares the returned value.
func evalLua(t *testing.T, L *lua.LState, tests []struct {
	name string
	code string
	want lua.LValue
}) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := L.DoString(tt.code); err != nil {
				t.Fatalf("failed to execute code: %v", err)
			}
			got := L.Get(-1)
			L.Pop(1)

			if got.Type() != tt.want.Type() {
				t.Errorf("type mismatch: got %v, want %v", got.Type(), tt.want.Type())
				return
			}
			if got.String() != tt.want.String() {
				t.Errorf("value mismatch: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInjectPlatformTable_Linux(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	info := &Info{
		OS:       OSLinux,
		Arch:     ArchX64,
		GOOS:     "linux",
		GOARCH:   "amd64",
		Platform: "ubuntu",
		Family:   FamilyDebian,
		Version:  "22.04",
	}

	if err := InjectPlatformTable(L, info); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	evalLua(t, L, []struct {
		name string
		code string
		want lua.LValue
	}{
		{"os", `return platform.os`, lua.LString("linux")},
		{"arch", `return platform.arch`, lua.LString("x64")},
		{"key", `return platform.key`, lua.LString("linux-x64")},
		{"goarch", `return platform.goarch`, lua.LString("amd64")},
		{"is_linux", `return platform.is_linux`, lua.LTrue},
		{"is_windows", `return platform.is_windows`, lua.LFalse},
		{"is_x64", `return platform.is_x64`, lua.LTrue},
		{"is_apple_silicon", `return platform.is_apple_silicon`, lua.LFalse},
		{"distro.id", `return platform.distro.id`, lua.LString("ubuntu")},
		{"distro.family", `return platform.distro.family`, lua.LString("debian")},
		{"distro.version", `return platform.distro.version`, lua.LString("22.04")},
	})
}

func TestInjectPlatformTable_Windows(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	info := &Info{OS: OSWindows, Arch: ArchX64, GOOS: "windows", GOARCH: "amd64"}
	if err := InjectPlatformTable(L, info); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	evalLua(t, L, []struct {
		name string
		code string
		want lua.LValue
	}{
		{"os", `return platform.os`, lua.LString("win32")},
		{"key", `return platform.key`, lua.LString("win32-x64")},
		{"is_windows", `return platform.is_windows`, lua.LTrue},
		{"is_macos", `return platform.is_macos`, lua.LFalse},
		{"distro is nil", `return platform.distro`, lua.LNil},
	})
}

func TestPlatformTable_ReadOnly(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, &Info{OS: OSLinux, Arch: ArchX64}); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	for _, code := range []string{
		`platform.os = "win32"`,
		`platform.new_field = "value"`,
		`platform.is_linux = false`,
	} {
		if err := L.DoString(code); err == nil {
			t.Errorf("%s: expected error when modifying read-only table, got nil", code)
		}
	}
}

func TestPlatformTable_WhenHelper(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, &Info{OS: OSDarwin, Arch: ArchARM64}); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	evalLua(t, L, []struct {
		name string
		code string
		want lua.LValue
	}{
		{"when true returns value", `return platform.when(true, "debug")`, lua.LString("debug")},
		{"when false returns nil", `return platform.when(false, "debug")`, lua.LNil},
		{"when with platform boolean", `return platform.when(platform.is_apple_silicon, "info")`, lua.LString("info")},
	})
}
