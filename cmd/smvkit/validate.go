// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
	"github.com/LouvainVerificationLab/smvkit/pkg/analysis"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE_OR_DIR...",
	Short: "Parse and analyze models, report errors.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer StartProfile().Stop()
		errs := 0
		for _, path := range smvFiles(args) {
			diags := diagnose(path)
			for _, d := range diags {
				if d.Severity == analysis.Error {
					fmt.Println(d)
					errs++
				}
			}
		}
		if errs > 0 {
			must.Must(fmt.Errorf("%v error(s)", errs))
		}
	},
}

var lintCmd = &cobra.Command{
	Use:   "lint FILE_OR_DIR...",
	Short: "Parse and analyze models, report errors and warnings.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer StartProfile().Stop()
		errs := 0
		for _, path := range smvFiles(args) {
			diags := diagnose(path)
			for _, d := range diags {
				fmt.Println(d)
				if d.Severity == analysis.Error {
					errs++
				}
			}
		}
		if errs > 0 {
			must.Must(fmt.Errorf("%v error(s)", errs))
		}
	},
}

func diagnose(path string) analysis.Diagnostics {
	return analysis.Analyze(parseOne(path)).Diagnostics
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(lintCmd)
}
