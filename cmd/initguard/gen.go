package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/initguard/initguard/internal/initguard/gen"
)

var (
	genFlagToken   string
	genFlagProfile string
	genFlagCount   int
	genFlagSeed    int64
	genFlagOutput  string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate fake signed init data for load or integration testing",
	RunE:  runGen,
}

func init() {
	genCmd.Flags().StringVar(&genFlagToken, "token", "", "bot token")
	genCmd.Flags().StringVar(&genFlagProfile, "profile", "", "named profile from the profiles file")
	genCmd.Flags().IntVar(&genFlagCount, "count", 10, "number of init data strings to generate")
	genCmd.Flags().Int64Var(&genFlagSeed, "seed", 0, "seed for deterministic fake data")
	genCmd.Flags().StringVar(&genFlagOutput, "output", "", "output file (default stdout)")
}

func runGen(cmd *cobra.Command, args []string) error {
	token, err := resolveToken(genFlagToken, genFlagProfile)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if genFlagOutput != "" {
		f, err := os.Create(genFlagOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	return gen.Generate(out, gen.Config{Token: token, Count: genFlagCount, Seed: genFlagSeed})
}
