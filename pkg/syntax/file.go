package syntax

import (
	"strings"

	"github.com/leapstack-labs/declint/pkg/token"
)

// File is a parsed source file: the tree plus the line index the checks
// need for blank-line tests and source slicing.
type File struct {
	Path     string
	Lines    []string
	Root     *Node
	Comments []token.Comment
}

// NewFile splits src into lines and returns a File rooted at root.
func NewFile(path string, src []byte, root *Node) *File {
	return &File{
		Path:  path,
		Lines: SplitLines(string(src)),
		Root:  root,
	}
}

// SplitLines splits source text on newlines, dropping a trailing "\r".
func SplitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Line returns the 1-based line n, or "" when out of range.
func (f *File) Line(n int) string {
	if f == nil || n < 1 || n > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}

// IsBlank reports whether line n exists and holds only whitespace.
func (f *File) IsBlank(n int) bool {
	if f == nil || n < 1 || n > len(f.Lines) {
		return false
	}
	return strings.TrimSpace(f.Lines[n-1]) == ""
}

// Text returns the source covered by span. Columns are 1-based and the end
// column is exclusive.
func (f *File) Text(span token.Span) string {
	if f == nil || !span.IsValid() || span.End.Line > len(f.Lines) {
		return ""
	}
	if span.Start.Line == span.End.Line {
		return clip(f.Line(span.Start.Line), span.Start.Column, span.End.Column)
	}
	var b strings.Builder
	b.WriteString(clip(f.Line(span.Start.Line), span.Start.Column, -1))
	for n := span.Start.Line + 1; n < span.End.Line; n++ {
		b.WriteByte('\n')
		b.WriteString(f.Line(n))
	}
	b.WriteByte('\n')
	b.WriteString(clip(f.Line(span.End.Line), 1, span.End.Column))
	return b.String()
}

// clip slices line between 1-based columns [from, to); to < 0 means end of line.
func clip(line string, from, to int) string {
	start := from - 1
	if start < 0 {
		start = 0
	}
	if start > len(line) {
		return ""
	}
	end := len(line)
	if to >= 0 && to-1 < end {
		end = to - 1
	}
	if end < start {
		return ""
	}
	return line[start:end]
}

// Suppressions maps line numbers to the rule IDs silenced by a "# nolint"
// comment on that line. A nil slice silences every rule.
func (f *File) Suppressions() map[int][]string {
	out := make(map[int][]string)
	for i := range f.Comments {
		ids, ok := f.Comments[i].Directive()
		if !ok {
			continue
		}
		line := f.Comments[i].Span.Start.Line
		if existing, seen := out[line]; seen && existing == nil {
			continue
		}
		if ids == nil {
			out[line] = nil
			continue
		}
		out[line] = append(out[line], ids...)
	}
	return out
}
