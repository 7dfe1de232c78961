package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	rerootTaxon  string
	rerootOutput string
)

var rerootCmd = &cobra.Command{
	Use:   "reroot FILE",
	Short: "Reroot trees above a taxon",
	Long: `Reroots every tree of FILE on the midpoint of the branch above the given
taxon and writes the result, one tree per line. Branch lengths are
preserved; only the rooting point moves.`,
	Args: cobra.ExactArgs(1),
	RunE: runReroot,
}

func init() {
	rerootCmd.Flags().StringVarP(&rerootTaxon, "taxon", "t", "",
		"taxon whose branch receives the new root (required)")
	rerootCmd.Flags().StringVarP(&rerootOutput, "output", "o", "",
		"output file (default stdout)")
	rerootCmd.MarkFlagRequired("taxon")
	rootCmd.AddCommand(rerootCmd)
}

func runReroot(cmd *cobra.Command, args []string) error {
	r, f, err := openTrees(args[0], nil)
	if err != nil {
		return err
	}
	defer f.Close()

	w, closeOut, err := outputWriter(rerootOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	count := 0
	for r.HasNext() {
		t, err := r.Next()
		if err != nil {
			return err
		}
		leaf, err := t.LeafFromName(rerootTaxon)
		if err != nil {
			return err
		}
		if err := t.RerootAbove(leaf); err != nil {
			return err
		}
		if err := w.Write(t); err != nil {
			return err
		}
		count++
	}
	slog.Debug("rerooted trees", "count", count, "taxon", rerootTaxon)
	return closeOut()
}
