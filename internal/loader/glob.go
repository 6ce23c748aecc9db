package loader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match reports whether the slash-separated path name matches pattern.
// Patterns use doublestar syntax: "*" and "?" stay inside one segment,
// "**" matches any number of segments (including none) and "{a,b}"
// matches either alternative. Backslashes in name are read as separators.
// A malformed pattern matches nothing.
func Match(pattern, name string) bool {
	ok, err := doublestar.Match(strings.Trim(pattern, "/"), normalize(name))
	return err == nil && ok
}

// ValidatePattern reports a malformed pattern.
func ValidatePattern(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("%w: %s", doublestar.ErrBadPattern, pattern)
	}
	return nil
}

func normalize(name string) string {
	return strings.Trim(strings.ReplaceAll(name, "\\", "/"), "/")
}
