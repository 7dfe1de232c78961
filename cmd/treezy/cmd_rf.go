package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/4ment/treezy/tree"
)

// rfCmd compares the first tree of each input file. The second file is
// parsed against the taxa of the first, so both trees share one
// taxon-to-id mapping and their splits are comparable by value.
var rfCmd = &cobra.Command{
	Use:   "rf FILE1 FILE2",
	Short: "Compute the Robinson-Foulds distance between two trees",
	Long: `Computes the Robinson-Foulds distance between the first tree of FILE1 and
the first tree of FILE2: the number of non-trivial splits present in exactly
one of the two trees. Both files must contain the same taxa.`,
	Args: cobra.ExactArgs(2),
	RunE: runRF,
}

func init() {
	rootCmd.AddCommand(rfCmd)
}

func runRF(cmd *cobra.Command, args []string) error {
	t1, err := firstTree(args[0], nil)
	if err != nil {
		return err
	}
	slog.Debug("parsed tree", "path", args[0], "leaves", t1.LeafCount())

	t2, err := firstTree(args[1], t1.TaxonNames())
	if err != nil {
		return err
	}
	slog.Debug("parsed tree", "path", args[1], "leaves", t2.LeafCount())

	distance, err := tree.RobinsonFoulds{}.Compute(t1, t2)
	if err != nil {
		return err
	}
	fmt.Println(distance)
	return nil
}
