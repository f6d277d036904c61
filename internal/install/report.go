package install

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/icp-sdk/ic-wasm-launcher/internal/variant"
)

// ReinstallCommand is suggested whenever the variant is missing.
const ReinstallCommand = "npm install --force"

const (
	minInnerWidth = 59
	indent        = "   "
)

var (
	successStyle = color.New(color.FgGreen, color.Bold)
	warningStyle = color.New(color.FgYellow, color.Bold)
	commandStyle = color.New(color.FgCyan)
	noteStyle    = color.New(color.FgYellow)
)

// line is one row inside the box. style may be nil.
type line struct {
	text  string
	style *color.Color
}

func plain(format string, args ...interface{}) line {
	return line{text: fmt.Sprintf(format, args...)}
}

func styled(style *color.Color, text string) line {
	return line{text: text, style: style}
}

var blank = line{}

// lines returns the report body without the surrounding box.
func (r *Report) lines() []line {
	var lines []line

	switch r.Status {
	case StatusUnsupported:
		lines = append(lines,
			styled(warningStyle, "WARNING: Unsupported platform: "+r.Key.String()),
			blank,
			plain("Supported platforms:"),
		)
		for _, key := range variant.Supported() {
			lines = append(lines, plain("- %s", variant.Describe(key)))
		}

	case StatusInstalled:
		lines = append(lines,
			styled(successStyle, "ic-wasm installed successfully!"),
			blank,
			plain("Platform: %s", r.Key),
		)
		if r.VariantVersion != "" {
			lines = append(lines, plain("Package: %s@%s", r.Variant, r.VariantVersion))
		} else {
			lines = append(lines, plain("Package: %s", r.Variant))
		}
		if r.Host != "" {
			lines = append(lines, plain("Host: %s", r.Host))
		}
		for _, note := range r.Notes {
			lines = append(lines, blank, styled(noteStyle, "Note: "+note))
		}
		lines = append(lines,
			blank,
			plain("Usage:"),
			styled(commandStyle, "  $ ic-wasm --help"),
		)

	case StatusBinaryMissing, StatusPackageMissing:
		title := "WARNING: Binary not found"
		if r.Status == StatusPackageMissing {
			title = "WARNING: Platform package not found"
		}
		lines = append(lines,
			styled(warningStyle, title),
			blank,
			plain("Platform: %s", r.Key),
			plain("Package: %s", r.Variant),
			blank,
			plain("The platform-specific package may not have installed"),
			plain("correctly. Try reinstalling:"),
			styled(commandStyle, "  $ "+ReinstallCommand),
		)
	}

	return lines
}

// Render draws the report inside a box. Colour follows color.NoColor.
func (r *Report) Render() string {
	lines := r.lines()

	width := minInnerWidth
	for _, l := range lines {
		if w := utf8.RuneCountInString(indent+l.text) + 1; w > width {
			width = w
		}
	}

	var b strings.Builder
	rule := strings.Repeat("═", width)
	empty := "║" + strings.Repeat(" ", width) + "║\n"

	b.WriteString("╔" + rule + "╗\n")
	b.WriteString(empty)
	for _, l := range lines {
		pad := width - utf8.RuneCountInString(indent+l.text)
		text := l.text
		if l.style != nil {
			text = l.style.Sprint(text)
		}
		b.WriteString("║" + indent + text + strings.Repeat(" ", pad) + "║\n")
	}
	b.WriteString(empty)
	b.WriteString("╚" + rule + "╝\n")

	return b.String()
}

// Print writes the rendered report to w, framed by blank lines.
func Print(w io.Writer, r *Report) error {
	_, err := fmt.Fprintf(w, "\n%s\n", r.Render())
	return err
}
