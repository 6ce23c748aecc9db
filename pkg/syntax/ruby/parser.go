// Package ruby parses Ruby source into the syntax tree consumed by the
// declaration collector, using the tree-sitter Ruby grammar.
package ruby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/leapstack-labs/declint/pkg/syntax"
	"github.com/leapstack-labs/declint/pkg/token"
)

// DefaultMaxFileSize is the largest source the parser accepts by default.
const DefaultMaxFileSize = 10 * 1024 * 1024

var (
	// ErrFileTooLarge is returned when content exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidContent is returned when content is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")
)

// Option configures a Parser instance.
type Option func(*Parser)

// WithMaxFileSize sets the maximum file size the parser will accept.
//
// Parameters:
//   - bytes: Maximum file size in bytes. Non-positive values are ignored.
func WithMaxFileSize(bytes int64) Option {
	return func(p *Parser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// WithLogger sets the logger used for parse warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser converts Ruby source into a syntax.File.
//
// Description:
//
//	Parser uses tree-sitter to build a concrete syntax tree and lowers it
//	into the closed syntax.Node representation. Only the constructs the
//	linter inspects (calls, blocks, classes, literals, hashes, arrays and
//	constants) are preserved in detail; everything else becomes KindOther
//	with its span intact. Comments are collected separately.
//
// Thread Safety:
//
//	Parser instances are safe for concurrent use. Each Parse call creates
//	its own tree-sitter parser internally.
type Parser struct {
	maxFileSize int64
	logger      *slog.Logger
}

// NewParser creates a Parser with the given options.
//
// Example:
//
//	p := ruby.NewParser(ruby.WithLogger(logger))
//	file, err := p.Parse(ctx, src, "app/models/user.rb")
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses Ruby source code.
//
// Description:
//
//	The parse is error-tolerant: a file with syntax errors still yields a
//	tree (tree-sitter recovers around the error) and a warning is logged.
//
// Inputs:
//   - ctx: Context for cancellation. Checked before and after parsing.
//   - content: Raw Ruby source bytes. Must be valid UTF-8.
//   - filePath: Path recorded on the returned File.
//
// Outputs:
//   - *syntax.File: Tree, line index and comments. Never nil on success.
//   - error: ErrFileTooLarge, ErrInvalidContent, a context error, or a
//     tree-sitter failure.
func (p *Parser) Parse(ctx context.Context, content []byte, filePath string) (*syntax.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}
	if int64(len(content)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), p.maxFileSize)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(ruby.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled after tree-sitter: %w", err)
	}

	file := syntax.NewFile(filePath, content, nil)
	root := tree.RootNode()
	if root == nil {
		file.Root = &syntax.Node{Kind: syntax.KindBegin}
		return file, nil
	}
	if root.HasError() {
		p.logger.Warn("source contains syntax errors",
			slog.String("file", filePath))
	}

	c := &converter{src: content}
	file.Root = &syntax.Node{
		Kind:     syntax.KindBegin,
		Span:     spanOf(root),
		Children: c.statements(root),
	}
	c.collectComments(root)
	slices.SortFunc(c.comments, func(a, b token.Comment) int {
		switch {
		case a.Span.Start.Before(b.Span.Start):
			return -1
		case b.Span.Start.Before(a.Span.Start):
			return 1
		}
		return 0
	})
	file.Comments = c.comments
	return file, nil
}

// converter lowers tree-sitter nodes for one source buffer.
type converter struct {
	src      []byte
	comments []token.Comment
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

// statements converts the named children of a statement container.
func (c *converter) statements(n *sitter.Node) []*syntax.Node {
	var out []*syntax.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if child.Type() == "empty_statement" || child.Type() == "heredoc_body" {
			continue
		}
		out = append(out, c.statement(child))
	}
	return out
}

// body converts the statements of a class, module or block body.
// It returns nil when the body is empty.
func (c *converter) body(n *sitter.Node, skip ...string) *syntax.Node {
	container := n.ChildByFieldName("body")
	var stmts []*syntax.Node
	if container != nil {
		stmts = c.statements(container)
	} else {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if isSkipped(n, child, skip) {
				continue
			}
			if child.Type() == "comment" {
				continue
			}
			stmts = append(stmts, c.statement(child))
		}
	}
	if len(stmts) == 0 {
		return nil
	}
	return &syntax.Node{
		Kind:     syntax.KindBegin,
		Span:     token.Span{Start: stmts[0].Span.Start, End: stmts[len(stmts)-1].Span.End},
		Children: stmts,
	}
}

// isSkipped reports whether child is a header part of parent (name,
// superclass, parameters) rather than a body statement.
func isSkipped(parent, child *sitter.Node, skip []string) bool {
	for _, t := range skip {
		if child.Type() == t {
			return true
		}
	}
	for _, field := range []string{"name", "superclass", "parameters"} {
		if f := parent.ChildByFieldName(field); f != nil && sameNode(f, child) {
			return true
		}
	}
	return false
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// collectComments records every comment in the tree. tree-sitter attaches
// a comment to whichever node encloses it, which may be a class or block
// header rather than its body, so the whole tree is searched.
func (c *converter) collectComments(n *sitter.Node) {
	if n.Type() == "comment" {
		c.comment(n)
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c.collectComments(n.NamedChild(i))
	}
}

func (c *converter) comment(n *sitter.Node) {
	text := c.text(n)
	kind := token.LineComment
	if strings.HasPrefix(text, "=begin") {
		kind = token.BlockComment
	}
	c.comments = append(c.comments, token.Comment{Kind: kind, Text: text, Span: spanOf(n)})
}

// statement converts a node appearing in statement position.
func (c *converter) statement(n *sitter.Node) *syntax.Node {
	switch n.Type() {
	case "call", "method_call", "identifier":
		return c.call(n)
	case "class":
		return c.class(n)
	case "module":
		out := &syntax.Node{Kind: syntax.KindOther, Span: spanOf(n)}
		if name := n.ChildByFieldName("name"); name != nil {
			out.Name = constName(c.text(name))
		}
		out.Body = c.body(n)
		return out
	default:
		return c.expr(n)
	}
}

func (c *converter) class(n *sitter.Node) *syntax.Node {
	out := &syntax.Node{
		Kind: syntax.KindClass,
		Span: spanOf(n),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		out.Name = constName(c.text(name))
	}
	if sup := n.ChildByFieldName("superclass"); sup != nil && sup.NamedChildCount() > 0 {
		out.Super = c.expr(sup.NamedChild(0))
	}
	out.Body = c.body(n, "superclass")
	return out
}

// call converts a method call, wrapping it in a Block when a block is
// attached.
func (c *converter) call(n *sitter.Node) *syntax.Node {
	if n.Type() == "identifier" {
		return &syntax.Node{Kind: syntax.KindSend, Name: c.text(n), Span: spanOf(n)}
	}

	send := &syntax.Node{Kind: syntax.KindSend, Span: spanOf(n)}
	method := n.ChildByFieldName("method")
	receiver := n.ChildByFieldName("receiver")
	args := n.ChildByFieldName("arguments")

	// Older grammars nest "recv.meth" as a call inside method_call.method.
	if method != nil && method.Type() == "call" {
		receiver = method.ChildByFieldName("receiver")
		method = method.ChildByFieldName("method")
	}
	if method != nil {
		send.Name = c.text(method)
	}
	if receiver != nil {
		send.Receiver = c.expr(receiver)
	}
	if args != nil {
		send.Args = c.arguments(args)
	}

	block := n.ChildByFieldName("block")
	if block == nil {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() == "do_block" || child.Type() == "block" {
				block = child
				break
			}
		}
	}
	if block == nil {
		return send
	}

	// The head call ends before its block.
	switch {
	case args != nil:
		send.Span.End = endOf(args)
	case method != nil:
		send.Span.End = endOf(method)
	}

	return &syntax.Node{
		Kind: syntax.KindBlock,
		Span: spanOf(n),
		Call: send,
		Body: c.body(block, "block_parameters"),
	}
}

// arguments converts an argument_list. Consecutive keyword pairs are
// gathered into one Hash node, mirroring Ruby's trailing-options convention.
func (c *converter) arguments(n *sitter.Node) []*syntax.Node {
	var out []*syntax.Node
	var pending *syntax.Node
	flush := func() {
		if pending != nil {
			out = append(out, pending)
			pending = nil
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "comment":
			continue
		case "pair":
			pair := c.expr(child)
			if pending == nil {
				pending = &syntax.Node{Kind: syntax.KindHash, Span: pair.Span}
			}
			pending.Children = append(pending.Children, pair)
			pending.Span.End = pair.Span.End
			continue
		}
		flush()
		out = append(out, c.expr(child))
	}
	flush()
	return out
}

// expr converts a node in expression position.
func (c *converter) expr(n *sitter.Node) *syntax.Node {
	span := spanOf(n)
	switch n.Type() {
	case "simple_symbol":
		return &syntax.Node{Kind: syntax.KindSym, Span: span, Text: strings.TrimPrefix(c.text(n), ":")}
	case "hash_key_symbol", "bare_symbol":
		return &syntax.Node{Kind: syntax.KindSym, Span: span, Text: c.text(n)}
	case "delimited_symbol":
		if text, ok := c.stringContent(n); ok {
			return &syntax.Node{Kind: syntax.KindSym, Span: span, Text: text}
		}
	case "string", "bare_string":
		if text, ok := c.stringContent(n); ok {
			return &syntax.Node{Kind: syntax.KindStr, Span: span, Text: text}
		}
	case "constant", "scope_resolution":
		return &syntax.Node{Kind: syntax.KindConst, Span: span, Name: constName(c.text(n))}
	case "pair":
		return &syntax.Node{
			Kind:  syntax.KindPair,
			Span:  span,
			Key:   c.exprOrNil(n.ChildByFieldName("key")),
			Value: c.exprOrNil(n.ChildByFieldName("value")),
		}
	case "hash":
		out := &syntax.Node{Kind: syntax.KindHash, Span: span}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() == "comment" {
				continue
			}
			out.Children = append(out.Children, c.expr(child))
		}
		return out
	case "array":
		out := &syntax.Node{Kind: syntax.KindArray, Span: span}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() == "comment" {
				continue
			}
			out.Children = append(out.Children, c.expr(child))
		}
		return out
	case "call", "method_call", "identifier":
		return c.call(n)
	case "parenthesized_statements":
		if n.NamedChildCount() == 1 {
			return c.expr(n.NamedChild(0))
		}
	}
	return &syntax.Node{Kind: syntax.KindOther, Span: span}
}

func (c *converter) exprOrNil(n *sitter.Node) *syntax.Node {
	if n == nil {
		return nil
	}
	return c.expr(n)
}

// stringContent returns the literal text of a string or symbol node. It
// reports false for interpolated strings, which have no static value.
func (c *converter) stringContent(n *sitter.Node) (string, bool) {
	if n.Type() == "bare_string" && n.NamedChildCount() == 0 {
		return c.text(n), true
	}
	var b strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "string_content", "escape_sequence":
			b.WriteString(c.text(child))
		default:
			return "", false
		}
	}
	return b.String(), true
}

// constName normalizes a constant path such as "::ActiveRecord :: Base".
func constName(s string) string {
	s = strings.Join(strings.Fields(s), "")
	return strings.TrimPrefix(s, "::")
}

func spanOf(n *sitter.Node) token.Span {
	start := n.StartPoint()
	return token.Span{
		Start: token.Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1, Offset: int(n.StartByte())},
		End:   endOf(n),
	}
}

func endOf(n *sitter.Node) token.Position {
	end := n.EndPoint()
	return token.Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1, Offset: int(n.EndByte())}
}
