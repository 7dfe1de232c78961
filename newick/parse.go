package newick

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/4ment/treezy/tree"
)

// Options control parsing.
type Options struct {
	// StripQuotes removes surrounding single or double quotes from leaf
	// names.
	StripQuotes bool
}

// A TaxonMismatchError reports a disagreement between the taxa found in a
// Newick string and a caller-supplied taxon list.
type TaxonMismatchError struct {
	// Missing names were found in the Newick string but not supplied.
	Missing []string
	// Extra names were supplied but never appeared in the Newick string.
	Extra []string
}

func (e *TaxonMismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing from supplied taxa: %s",
			strings.Join(e.Missing, ", ")))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra in supplied taxa: %s",
			strings.Join(e.Extra, ", ")))
	}
	return "newick: taxon mismatch: " + strings.Join(parts, "; ")
}

// Parse builds a tree from a single Newick string. It is a linear-time
// stack machine over the characters, not a recursive descent, so input
// depth is bounded only by memory.
//
// If taxonNames is empty the taxa are taken from the string in
// left-to-right leaf order, which becomes the tree's id mapping. Otherwise
// the parsed and supplied taxa must be equal as sets (order may differ; the
// tree is numbered by the supplied order), or a *TaxonMismatchError is
// returned.
//
// Branch-length text that fails numeric conversion silently becomes 0; this
// mirrors the tolerant behavior of the tools this format grew up with.
// Structural problems return ErrMalformed and no tree.
func Parse(input string, taxonNames []string, opts *Options) (*tree.Tree, error) {
	s := strings.TrimSpace(input)
	stripQuotes := opts != nil && opts.StripQuotes

	var stack []*tree.Node
	var parsed []string
	justClosed := false
	terminated := false
	openParens := 0

	i := 0
	n := len(s)
	for i < n {
		c := s[i]
		if terminated {
			if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
				i++
				continue
			}
			return nil, fmt.Errorf("%w: trailing text after ';' at offset %d", ErrMalformed, i)
		}

		switch {
		case c == '[':
			// node comment
			end, err := scanComment(s, i)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: comment outside any node at offset %d", ErrMalformed, i)
			}
			stack[len(stack)-1].Comment = s[i:end]
			i = end

		case c == ':':
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: branch length outside any node at offset %d", ErrMalformed, i)
			}
			top := stack[len(stack)-1]
			i++
			if i < n && s[i] == '[' {
				// branch comment between the colon and the number
				end, err := scanComment(s, i)
				if err != nil {
					return nil, err
				}
				top.BranchComment = s[i:end]
				i = end
			}
			start := i
			for i < n && (isDigit(s[i]) || strings.IndexByte(".eE-+", s[i]) >= 0) {
				i++
			}
			length, err := strconv.ParseFloat(s[start:i], 64)
			if err != nil {
				length = 0
			}
			top.Distance = &length

		case c == '(':
			justClosed = false
			openParens++
			node := tree.NewNode("")
			if len(stack) > 0 {
				stack[len(stack)-1].AddChild(node)
			}
			stack = append(stack, node)
			i++

		case c == ')' || c == ',':
			if c == ')' {
				openParens--
				if openParens < 0 {
					return nil, fmt.Errorf("%w: unmatched closing parenthesis at offset %d", ErrMalformed, i)
				}
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformed, c, i)
			}
			stack = stack[:len(stack)-1]
			justClosed = c == ')'
			i++

		case c == ';':
			terminated = true
			i++

		default:
			start := i
			for i < n && strings.IndexByte(identifierEnd, s[i]) < 0 {
				i++
			}
			identifier := strings.TrimSpace(s[start:i])
			if justClosed {
				if len(stack) == 0 {
					return nil, fmt.Errorf("%w: dangling name %q at offset %d", ErrMalformed, identifier, start)
				}
				// the name of the internal node just closed by ')'
				stack[len(stack)-1].Name = identifier
			} else {
				if stripQuotes {
					identifier = strings.Trim(identifier, `'"`)
				}
				node := tree.NewNode(identifier)
				parsed = append(parsed, identifier)
				if len(stack) > 0 {
					stack[len(stack)-1].AddChild(node)
				}
				stack = append(stack, node)
			}
		}
	}

	if openParens > 0 {
		return nil, fmt.Errorf("%w: %d unclosed parenthesis(es)", ErrMalformed, openParens)
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: no tree found", ErrMalformed)
	}
	root := stack[0]

	if len(taxonNames) == 0 {
		return tree.NewWithTaxa(root, parsed)
	}
	if err := matchTaxa(parsed, taxonNames); err != nil {
		return nil, err
	}
	return tree.NewWithTaxa(root, taxonNames)
}

// matchTaxa checks set equality between the taxa discovered by the parse
// and a caller-supplied list.
func matchTaxa(parsed, supplied []string) error {
	parsedSet := make(map[string]struct{}, len(parsed))
	for _, name := range parsed {
		parsedSet[name] = struct{}{}
	}
	suppliedSet := make(map[string]struct{}, len(supplied))
	for _, name := range supplied {
		suppliedSet[name] = struct{}{}
	}

	var missing, extra []string
	for name := range parsedSet {
		if _, ok := suppliedSet[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range suppliedSet {
		if _, ok := parsedSet[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return &TaxonMismatchError{Missing: missing, Extra: extra}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
