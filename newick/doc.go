/*
Package newick provides facilities for reading and writing trees in the
Newick format. The format used is roughly equivalent to the conventions
established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html, extended
with bracketed comments on nodes and branches as produced by BEAST and
friends.

An informal description of the Newick format can be found here:
http://evolution.genetics.washington.edu/phylip/newicktree.html.

The package contains two independent views of the grammar: a Tokenizer that
turns a Newick string into a flat token sequence, and Parse, a stack-machine
parser that builds a tree.Tree directly from the character stream. Reader
and Writer iterate over streams of semicolon-terminated trees, one per line.
*/
package newick
