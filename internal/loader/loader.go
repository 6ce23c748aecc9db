package loader

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/declint/pkg/syntax"
	"github.com/leapstack-labs/declint/pkg/syntax/ruby"
)

// Loader reads files and turns them into syntax trees.
type Loader struct {
	parser *ruby.Parser
	trees  bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithTrees makes the loader decode YAML or JSON syntax tree documents
// instead of parsing Ruby source.
func WithTrees(enabled bool) Option {
	return func(l *Loader) {
		l.trees = enabled
	}
}

// New creates a Loader. The logger receives parser warnings.
func New(logger *slog.Logger, opts ...Option) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Loader{parser: ruby.NewParser(ruby.WithLogger(logger))}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses one file.
func (l *Loader) Load(ctx context.Context, path string) (*syntax.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return l.LoadBytes(ctx, path, content)
}

// LoadBytes parses content as if read from path.
func (l *Loader) LoadBytes(ctx context.Context, path string, content []byte) (*syntax.File, error) {
	path = filepath.ToSlash(path)
	if l.trees {
		return syntax.Decode(bytes.NewReader(content), path)
	}
	f, err := l.parser.Parse(ctx, content, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
