package newick

import (
	"fmt"
	"io"
	"os"

	"github.com/4ment/treezy/tree"
	"github.com/4ment/treezy/treeio"
)

// A Writer serializes trees in Newick format, one per line.
type Writer struct {
	// Options control serialization; nil means tree.DefaultNewickOptions.
	Options *tree.NewickOptions

	w io.Writer
}

var _ treeio.Writer = (*Writer)(nil)

// NewWriter returns a Writer targeting w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write serializes the given trees, one per line.
func (w *Writer) Write(trees ...*tree.Tree) error {
	for _, t := range trees {
		if err := w.WriteString(t.Newick(w.Options)); err != nil {
			return err
		}
	}
	return nil
}

// WriteString writes one raw line to the output. It can be used for
// comments or other non-tree content.
func (w *Writer) WriteString(s string) error {
	_, err := fmt.Fprintln(w.w, s)
	return err
}

// Save writes the given trees to a file at path, creating or truncating it.
func Save(path string, trees []*tree.Tree, opts *tree.NewickOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := NewWriter(f)
	w.Options = opts
	if err := w.Write(trees...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
