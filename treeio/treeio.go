// Package treeio defines the generic interfaces for reading and writing
// streams of trees, independent of the on-disk format. Format packages such
// as newick provide the implementations.
package treeio

import (
	"github.com/4ment/treezy/tree"
)

// A Reader iterates over the trees of an input stream.
type Reader interface {
	// HasNext reports whether another tree is available without consuming
	// it.
	HasNext() bool

	// Next parses and returns the next tree. It returns io.EOF when the
	// stream is exhausted.
	Next() (*tree.Tree, error)

	// SkipNext discards the next tree without parsing it. It does nothing
	// at end of stream.
	SkipNext()

	// CountTrees returns the number of trees in the stream without parsing
	// them, leaving the reader's position untouched.
	CountTrees() (int, error)

	// ReadAll parses all remaining trees.
	ReadAll() ([]*tree.Tree, error)
}

// A Writer serializes trees to an output stream.
type Writer interface {
	// Write serializes the given trees, one per line.
	Write(trees ...*tree.Tree) error

	// WriteString writes a raw line to the stream, for comments or other
	// non-tree content.
	WriteString(s string) error
}
