package main

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/4ment/treezy/tree"
)

var (
	sampleCount  int
	sampleSeed   int64
	sampleOutput string
)

var sampleCmd = &cobra.Command{
	Use:   "sample TAXON...",
	Short: "Generate random binary trees over the given taxa",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 1, "number of trees to generate")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "random seed (default: current time)")
	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	seed := sampleSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	slog.Debug("sampling trees", "taxa", len(args), "count", sampleCount, "seed", seed)

	w, closeOut, err := outputWriter(sampleOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	for i := 0; i < sampleCount; i++ {
		if err := w.Write(tree.Random(args, rng)); err != nil {
			return err
		}
	}
	return closeOut()
}
