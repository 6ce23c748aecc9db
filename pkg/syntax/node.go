// Package syntax defines the syntax tree consumed by the declaration
// collector.
//
// A tree is built from a closed set of node kinds. Front-ends (the
// tree-sitter Ruby parser in syntax/ruby, or Decode for trees emitted by an
// external parser) translate their own representation into Node values; the
// rest of the system only ever switches over Kind.
package syntax

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/declint/pkg/token"
)

// Kind tags a Node. The set is closed: every consumer matches on it
// explicitly and treats KindOther as an opaque statement.
type Kind int

// Node kinds.
const (
	KindOther Kind = iota // any statement the linter does not inspect
	KindBegin             // statement sequence
	KindSend              // method call without a block
	KindBlock             // method call with an attached block
	KindClass             // class definition
	KindSym               // symbol literal
	KindStr               // string literal
	KindHash              // hash literal or trailing keyword arguments
	KindPair              // key/value pair inside a hash
	KindArray             // array literal
	KindConst             // constant reference, possibly scoped (A::B)
)

var kindNames = [...]string{
	KindOther: "other",
	KindBegin: "begin",
	KindSend:  "send",
	KindBlock: "block",
	KindClass: "class",
	KindSym:   "sym",
	KindStr:   "str",
	KindHash:  "hash",
	KindPair:  "pair",
	KindArray: "array",
	KindConst: "const",
}

// ErrUnknownKind is returned when decoding a kind name outside the closed set.
var ErrUnknownKind = errors.New("unknown node kind")

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return KindOther, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Node is one syntax tree node. Which fields are populated depends on Kind:
//
//	Send   Name, Receiver, Args
//	Block  Call (a Send), Body
//	Class  Name, Super, Body
//	Sym    Text
//	Str    Text
//	Const  Name (fully qualified, e.g. "ActiveRecord::Base")
//	Pair   Key, Value
//	Begin  Children (statements)
//	Hash   Children (pairs)
//	Array  Children (elements)
//
// Body is nil for an empty block or class.
type Node struct {
	Kind     Kind       `json:"kind" yaml:"kind"`
	Span     token.Span `json:"span" yaml:"span"`
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Receiver *Node      `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	Args     []*Node    `json:"args,omitempty" yaml:"args,omitempty"`
	Call     *Node      `json:"call,omitempty" yaml:"call,omitempty"`
	Super    *Node      `json:"super,omitempty" yaml:"super,omitempty"`
	Body     *Node      `json:"body,omitempty" yaml:"body,omitempty"`
	Key      *Node      `json:"key,omitempty" yaml:"key,omitempty"`
	Value    *Node      `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*Node    `json:"children,omitempty" yaml:"children,omitempty"`
}

// Statements returns the statements of a body node: the children of a
// Begin, or the node itself for a single-statement body. A nil body has
// no statements and nil children are skipped.
func Statements(body *Node) []*Node {
	if body == nil {
		return nil
	}
	if body.Kind != KindBegin {
		return []*Node{body}
	}
	if !slices.Contains(body.Children, nil) {
		return body.Children
	}
	return slices.DeleteFunc(slices.Clone(body.Children), func(c *Node) bool { return c == nil })
}

// Literal returns the value of a Sym or Str node.
func (n *Node) Literal() (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case KindSym, KindStr:
		return n.Text, true
	default:
		return "", false
	}
}

// FirstArg returns the first argument of a Send, or nil.
func (n *Node) FirstArg() *Node {
	if n == nil || n.Kind != KindSend || len(n.Args) == 0 {
		return nil
	}
	return n.Args[0]
}

// Options returns the trailing Hash argument of a Send, or nil.
func (n *Node) Options() *Node {
	if n == nil || n.Kind != KindSend || len(n.Args) == 0 {
		return nil
	}
	last := n.Args[len(n.Args)-1]
	if last == nil || last.Kind != KindHash {
		return nil
	}
	return last
}

// Option returns the value of the pair with the given symbol or string key
// in the trailing options hash.
func (n *Node) Option(key string) *Node {
	opts := n.Options()
	if opts == nil {
		return nil
	}
	for _, pair := range opts.Children {
		if pair == nil || pair.Kind != KindPair {
			continue
		}
		if k, ok := pair.Key.Literal(); ok && k == key {
			return pair.Value
		}
	}
	return nil
}

// HeadCall returns the call that a Block or Send represents.
func (n *Node) HeadCall() *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindSend:
		return n
	case KindBlock:
		return n.Call
	default:
		return nil
	}
}
