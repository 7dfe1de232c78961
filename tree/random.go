package tree

import (
	"math/rand"
)

// Random builds a random binary tree over the given taxa by repeatedly
// joining two randomly chosen subtrees until one remains. The resulting tree
// carries no branch lengths. A nil rng uses the shared math/rand source.
func Random(taxonNames []string, rng *rand.Rand) *Tree {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}

	nodes := make([]*Node, len(taxonNames))
	for i, name := range taxonNames {
		nodes[i] = NewNode(name)
	}

	for len(nodes) > 1 {
		i := intn(len(nodes))
		j := intn(len(nodes))
		for i == j {
			j = intn(len(nodes))
		}

		joined := NewNode("")
		joined.AddChild(nodes[i])
		joined.AddChild(nodes[j])

		if i < j {
			i, j = j, i
		}
		nodes = append(nodes[:i], nodes[i+1:]...)
		nodes = append(nodes[:j], nodes[j+1:]...)
		nodes = append(nodes, joined)
	}

	t, err := NewWithTaxa(nodes[0], taxonNames)
	if err != nil {
		// Leaves were built from taxonNames, so every name resolves.
		panic(err)
	}
	return t
}
