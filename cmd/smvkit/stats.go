// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LouvainVerificationLab/smvkit/pkg/analysis"
)

var statsCmd = &cobra.Command{
	Use:   "stats FILE_OR_DIR...",
	Short: "Print declaration statistics and state-space bounds per model.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer StartProfile().Stop()
		p := newPrinter(os.Stdout)
		for _, m := range parseAll(smvFiles(args)) {
			p.Print(analysis.NewStats(m))
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
