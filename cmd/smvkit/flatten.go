// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
	"github.com/LouvainVerificationLab/smvkit/pkg/flatten"
	smvprinter "github.com/LouvainVerificationLab/smvkit/pkg/smv/printer"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten FILE",
	Short: "Instantiate all modules and print the flat model.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer StartProfile().Stop()
		flat := must.Must1(flatten.Flatten(parseOne(args[0])))
		fmt.Print(smvprinter.String(flat))
	},
}

func init() {
	rootCmd.AddCommand(flattenCmd)
}
