//go:build go1.18

package config

import (
	"context"
	"testing"
)

func FuzzParser_ParseString(f *testing.F) {
	f.Add(`launcher = { log_level = "debug" }`)
	f.Add(`launcher = { color = false }`)
	f.Add(`launcher = "oops"`)

	parser := NewParser(nil)

	f.Fuzz(func(t *testing.T, luaCode string) {
		cfg, err := parser.ParseString(context.Background(), luaCode)
		if err == nil {
			if verr := cfg.Validate(); verr != nil {
				t.Errorf("ParseString(%q) returned invalid config: %v", luaCode, verr)
			}
		}
	})
}
