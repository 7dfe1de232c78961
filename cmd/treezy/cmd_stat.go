package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat FILE",
	Short: "Summarize the trees of a Newick file",
	Long: `Prints one line per tree with its leaf and internal node counts, whether
its root is binary, and its total branch length.`,
	Args: cobra.ExactArgs(1),
	RunE: runStat,
}

func init() {
	rootCmd.AddCommand(statCmd)
}

func runStat(cmd *cobra.Command, args []string) error {
	r, f, err := openTrees(args[0], nil)
	if err != nil {
		return err
	}
	defer f.Close()

	if n, err := r.CountTrees(); err == nil {
		slog.Debug("counted trees", "path", args[0], "count", n)
	}

	index := 0
	for r.HasNext() {
		t, err := r.Next()
		if err != nil {
			return err
		}
		fmt.Printf("tree %d: leaves=%d internals=%d rooted=%t length=%g\n",
			index, t.LeafCount(), t.InternalCount(), t.IsRooted(), totalBranchLength(t))
		index++
	}
	if index == 0 {
		return fmt.Errorf("%s holds no tree", args[0])
	}
	return nil
}
