package token

import "strings"

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // # comment
	BlockComment                    // =begin ... =end
)

// Comment represents a source comment with position.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters (# or =begin/=end)
	Span Span
}

// IsLineComment returns true if this is a line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}

// IsBlockComment returns true if this is a block comment.
func (c *Comment) IsBlockComment() bool {
	return c.Kind == BlockComment
}

// Directive parses a "# nolint" or "# nolint:ID1,ID2" suppression comment.
// It returns the listed rule IDs (nil meaning every rule) and whether the
// comment is a directive at all.
func (c *Comment) Directive() ([]string, bool) {
	if c.Kind != LineComment {
		return nil, false
	}
	text := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(c.Text), "#"))
	if !strings.HasPrefix(text, "nolint") {
		return nil, false
	}
	rest := strings.TrimPrefix(text, "nolint")
	if rest == "" || strings.HasPrefix(rest, " ") {
		return nil, true
	}
	if !strings.HasPrefix(rest, ":") {
		return nil, false
	}
	var ids []string
	for _, id := range strings.Split(strings.TrimPrefix(rest, ":"), ",") {
		id = strings.TrimSpace(id)
		if i := strings.IndexByte(id, ' '); i >= 0 {
			id = id[:i]
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, true
}
