package newick

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/4ment/treezy/tree"
	"github.com/4ment/treezy/treeio"
)

// A Reader reads Newick trees from line-oriented input: every line whose
// first non-blank character is '(' is one tree. Other lines are skipped, so
// interleaved comments or headers are harmless.
//
// When TaxonNames starts empty it is populated from the first tree read;
// every following tree is then checked against it, so all trees of one
// stream share a single taxon-to-id mapping.
type Reader struct {
	// TaxonNames is the taxon order used to number leaves. May be set
	// before the first read, otherwise adopted from the first tree.
	TaxonNames []string

	// StripQuotes removes surrounding quotes from leaf names.
	StripQuotes bool

	src        io.Reader
	buf        *bufio.Reader
	pending    string
	hasPending bool
	count      int
}

var _ treeio.Reader = (*Reader)(nil)

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: r, buf: bufio.NewReader(r)}
}

// HasNext reports whether another tree line is available, buffering it
// without parsing.
func (r *Reader) HasNext() bool {
	if r.hasPending {
		return true
	}
	for {
		line, err := r.buf.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "(") {
			r.pending = trimmed
			r.hasPending = true
			return true
		}
		if err != nil {
			return false
		}
	}
}

// Next parses and returns the next tree, or io.EOF when the stream is
// exhausted.
func (r *Reader) Next() (*tree.Tree, error) {
	if !r.HasNext() {
		return nil, io.EOF
	}
	line := r.pending
	r.pending, r.hasPending = "", false

	t, err := Parse(line, r.TaxonNames, &Options{StripQuotes: r.StripQuotes})
	if err != nil {
		return nil, err
	}
	if len(r.TaxonNames) == 0 {
		r.TaxonNames = t.TaxonNames()
	}
	return t, nil
}

// SkipNext discards the next tree without parsing it.
func (r *Reader) SkipNext() {
	if r.HasNext() {
		r.pending, r.hasPending = "", false
	}
}

// ReadAll parses all remaining trees. The first error stops processing and
// is returned with no trees; the error is never io.EOF.
func (r *Reader) ReadAll() ([]*tree.Tree, error) {
	trees := make([]*tree.Tree, 0)
	for {
		t, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// CountTrees counts the tree lines of the stream without parsing them and
// rewinds to the start, which requires the underlying reader to be an
// io.Seeker. The count is cached.
func (r *Reader) CountTrees() (int, error) {
	if r.count > 0 {
		return r.count, nil
	}
	seeker, ok := r.src.(io.Seeker)
	if !ok {
		return 0, errors.New("newick: CountTrees needs a seekable input")
	}

	n := 0
	if r.hasPending {
		n++
	}
	for {
		line, err := r.buf.ReadString('\n')
		if strings.HasPrefix(strings.TrimSpace(line), "(") {
			n++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}

	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	r.buf.Reset(r.src)
	r.pending, r.hasPending = "", false
	r.count = n
	return n, nil
}
