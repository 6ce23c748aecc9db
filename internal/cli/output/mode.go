// Package output renders command results for terminals, pipes and tools.
//
// A Renderer picks one of three concrete formats. Styled text goes to
// terminals, plain markdown goes to pipes and files, and JSON goes to tools.
// ModeAuto chooses between text and markdown by checking whether stdout is
// a terminal.
package output

import (
	"fmt"
	"strings"
)

// OutputMode selects how results are rendered.
type OutputMode string

// Mode is shorthand for OutputMode.
type Mode = OutputMode

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Modes lists the accepted mode names.
var Modes = []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}

// ParseMode converts a mode name. The empty string means ModeAuto.
func ParseMode(s string) (OutputMode, error) {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return m, nil
	default:
		return ModeAuto, fmt.Errorf("invalid output mode %q (want one of %s)", s, strings.Join(Modes, ", "))
	}
}
