// Package token defines source positions and comments shared by the syntax
// front-ends and the lint framework.
package token

import "fmt"

// Position represents a location in the source code.
type Position struct {
	Line   int `json:"line" yaml:"line"`                         // 1-based line number
	Column int `json:"column" yaml:"column"`                     // 1-based column number
	Offset int `json:"offset,omitempty" yaml:"offset,omitempty"` // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes strictly before q.
// Positions are ordered by line, then column.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code.
type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// ContainsLine returns true if line falls within the span's line range.
func (s Span) ContainsLine(line int) bool {
	return line >= s.Start.Line && line <= s.End.Line
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}
