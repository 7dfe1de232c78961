package tree

import (
	"fmt"
	"strings"
)

// NewickOptions controls Newick serialization of nodes and trees.
type NewickOptions struct {
	// IncludeBranchLengths emits ":<length>" after every node that has a
	// distance. On by default.
	IncludeBranchLengths bool

	// DecimalPrecision is the number of decimal places used for branch
	// lengths. Values <= 0 mean full native precision.
	DecimalPrecision int

	// IncludeInternalNodeName emits names on internal nodes.
	IncludeInternalNodeName bool

	// Translator substitutes leaf display names on output. Leaves whose
	// name is not in the map keep their own name.
	Translator map[string]string

	// IncludeComment and IncludeBranchComment emit the raw stored comment
	// strings verbatim.
	IncludeComment       bool
	IncludeBranchComment bool

	// AnnotationKeys and BranchAnnotationKeys re-serialize the listed keys
	// from the parsed annotation maps as "[&k=v,...]", in the order given.
	// Keys absent from the map are skipped; if none are present nothing is
	// emitted.
	AnnotationKeys       []string
	BranchAnnotationKeys []string
}

// DefaultNewickOptions returns the options used when none are supplied:
// branch lengths at full precision, no internal names, no comments.
func DefaultNewickOptions() *NewickOptions {
	return &NewickOptions{
		IncludeBranchLengths: true,
		DecimalPrecision:     -1,
	}
}

// buildComment decides what bracketed text, if any, follows a node or its
// colon. The raw comment wins when requested; otherwise selected annotation
// keys are re-serialized.
func buildComment(raw string, annotations map[string]interface{}, includeRaw bool, keys []string) string {
	if includeRaw && raw != "" {
		return raw
	}
	if len(keys) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, key := range keys {
		if val, ok := annotations[key]; ok {
			if sb.Len() > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%s=%v", key, val)
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return "[&" + sb.String() + "]"
}
