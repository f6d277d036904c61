package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	lua "github.com/yuin/gopher-lua"

	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
)

// DefaultEvalTimeout bounds how long a config file may run.
const DefaultEvalTimeout = 500 * time.Millisecond

// ErrEvalTimeout marks a config file that did not finish within its deadline.
var ErrEvalTimeout = errors.New("config evaluation timed out")

// Parser represents a Lua config parser with platform detection.
type Parser struct {
	detector platform.Detector
	timeout  time.Duration
}

// NewParser creates a new config parser with the given platform detector.
// A nil detector skips injection of the platform table.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector, timeout: DefaultEvalTimeout}
}

// WithTimeout sets the evaluation deadline. Zero or less restores DefaultEvalTimeout.
func (p *Parser) WithTimeout(d time.Duration) *Parser {
	if d <= 0 {
		d = DefaultEvalTimeout
	}
	p.timeout = d
	return p
}

// ParseFile reads and parses the Lua config at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := p.ParseString(ctx, string(code))
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

// ParseString parses a Lua config from a string. Fields missing from the
// launcher table keep their defaults.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()

	evalCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if p.detector != nil {
		info, err := p.detector.Detect(evalCtx)
		if err != nil {
			return nil, errors.Wrap(err, "platform detection failed")
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, errors.Wrap(err, "inject platform table")
		}
	}

	L.SetContext(evalCtx)

	if err := L.DoString(luaCode); err != nil {
		if errors.Is(evalCtx.Err(), context.DeadlineExceeded) {
			return nil, errors.Mark(&ParseError{
				Message: ErrEvalTimeout.Error(),
				Detail:  fmt.Sprintf("did not finish within %s", p.timeout),
			}, ErrEvalTimeout)
		}
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig reads the global "launcher" table. A config file without
// that table is valid and yields the defaults.
func extractConfig(L *lua.LState) (*Config, error) {
	cfg := Default()

	value := L.GetGlobal(luaGlobalLauncher)
	switch value.Type() {
	case lua.LTNil:
		return cfg, nil
	case lua.LTTable:
	default:
		return nil, &ParseError{
			Message: fmt.Sprintf("invalid '%s' table", luaGlobalLauncher),
			Detail:  fmt.Sprintf("expected table, got %s", value.Type()),
		}
	}
	table := value.(*lua.LTable)

	switch v := table.RawGetString(luaFieldLogLevel); v.Type() {
	case lua.LTNil:
	case lua.LTString:
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v.String()))
	default:
		return nil, &ParseError{
			Message: "invalid " + luaFieldLogLevel,
			Detail:  fmt.Sprintf("expected string, got %s", v.Type()),
		}
	}

	switch v := table.RawGetString(luaFieldColor); v.Type() {
	case lua.LTNil:
	case lua.LTBool:
		cfg.Color = bool(v.(lua.LBool))
	default:
		return nil, &ParseError{
			Message: "invalid " + luaFieldColor,
			Detail:  fmt.Sprintf("expected boolean, got %s", v.Type()),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return cfg, nil
}

// FormatError formats a config error for user display. Unless verbose,
// Lua stack tracebacks are cut so the message fits on one log line.
func FormatError(err error, verbose bool) string {
	msg := err.Error()
	var parseErr *ParseError
	if verbose || !errors.As(err, &parseErr) {
		return msg
	}
	if idx := strings.Index(msg, "stack traceback"); idx > 0 {
		msg = strings.TrimSpace(msg[:idx])
	}
	return msg
}
