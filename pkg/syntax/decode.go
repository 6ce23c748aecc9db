package syntax

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is the interchange format for trees produced by an external
// parser. YAML is a superset of JSON, so both encodings are accepted.
//
//	path: app/models/user.rb
//	source: |
//	  class User < ApplicationRecord
//	  ...
//	root:
//	  kind: class
//	  ...
type Document struct {
	Path   string `yaml:"path" json:"path"`
	Source string `yaml:"source" json:"source"`
	Root   *Node  `yaml:"root" json:"root"`
}

// Decoding errors.
var (
	ErrNoRoot   = errors.New("document has no root node")
	ErrNullNode = errors.New("null node in list")
)

// Decode reads a Document from r and returns it as a File. The fallback
// path is used when the document does not name one.
func Decode(r io.Reader, fallback string) (*File, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", fallback, ErrNoRoot)
		}
		return nil, fmt.Errorf("%s: decode syntax tree: %w", fallback, err)
	}
	path := doc.Path
	if path == "" {
		path = fallback
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoRoot)
	}
	if err := checkNulls(doc.Root, "root"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{
		Path:  path,
		Lines: SplitLines(doc.Source),
		Root:  doc.Root,
	}, nil
}

// checkNulls rejects null entries in args and children lists. Null single
// fields are an absent receiver, body and so on, and stay valid.
func checkNulls(n *Node, at string) error {
	lists := []struct {
		name  string
		nodes []*Node
	}{{"args", n.Args}, {"children", n.Children}}
	for _, l := range lists {
		for i, c := range l.nodes {
			where := fmt.Sprintf("%s.%s[%d]", at, l.name, i)
			if c == nil {
				return fmt.Errorf("%s: %w", where, ErrNullNode)
			}
			if err := checkNulls(c, where); err != nil {
				return err
			}
		}
	}
	fields := []struct {
		name string
		node *Node
	}{{"receiver", n.Receiver}, {"call", n.Call}, {"super", n.Super}, {"body", n.Body}, {"key", n.Key}, {"value", n.Value}}
	for _, f := range fields {
		if f.node == nil {
			continue
		}
		if err := checkNulls(f.node, at+"."+f.name); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes f as a YAML Document.
func Encode(w io.Writer, f *File, src string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Path: f.Path, Source: src, Root: f.Root}); err != nil {
		return fmt.Errorf("%s: encode syntax tree: %w", f.Path, err)
	}
	return enc.Close()
}
