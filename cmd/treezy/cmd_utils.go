package main

import (
	"fmt"
	"io"
	"os"

	"github.com/4ment/treezy/newick"
	"github.com/4ment/treezy/tree"
)

// openTrees opens a Newick file for reading. The caller closes the file.
func openTrees(path string, taxonNames []string) (*newick.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := newick.NewReader(f)
	r.TaxonNames = taxonNames
	r.StripQuotes = config.StripQuotes
	return r, f, nil
}

// firstTree reads the first tree of a Newick file.
func firstTree(path string, taxonNames []string) (*tree.Tree, error) {
	r, f, err := openTrees(path, taxonNames)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := r.Next()
	if err == io.EOF {
		return nil, fmt.Errorf("%s holds no tree", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// outputWriter returns a Newick writer to the given path, or stdout when
// the path is empty. The returned closer is a no-op for stdout and may be
// called more than once; callers defer it so early error returns still
// close the file.
func outputWriter(path string) (*newick.Writer, func() error, error) {
	if path == "" {
		w := newick.NewWriter(os.Stdout)
		w.Options = newickOptions()
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	w := newick.NewWriter(f)
	w.Options = newickOptions()
	return w, f.Close, nil
}

// totalBranchLength sums every branch length of a tree.
func totalBranchLength(t *tree.Tree) float64 {
	sum := 0.0
	for _, node := range t.Nodes() {
		if node.Distance != nil {
			sum += *node.Distance
		}
	}
	return sum
}
