// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
	"github.com/LouvainVerificationLab/smvkit/pkg/ltl"
)

var ltlCmd = &cobra.Command{
	Use:   "ltl",
	Short: "Work with LTL formulas in ASCII syntax.",
}

var ltlNNFCmd = &cobra.Command{
	Use:   "nnf FORMULA...",
	Short: "Rewrite a formula in negation normal form.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f := must.Must1(ltl.Parse(strings.Join(args, " ")))
		fmt.Println(f.NNF(false))
	},
}

var ltlAtomsCmd = &cobra.Command{
	Use:   "atoms FORMULA...",
	Short: "List the distinct atomic propositions of a formula.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f := must.Must1(ltl.Parse(strings.Join(args, " ")))
		for _, a := range ltl.Atoms(f) {
			fmt.Println(a)
		}
	},
}

var ltlFmtCmd = &cobra.Command{
	Use:   "fmt FORMULA...",
	Short: "Print a formula in canonical form with minimal parentheses.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(must.Must1(ltl.Parse(strings.Join(args, " "))))
	},
}

func init() {
	ltlCmd.AddCommand(ltlNNFCmd, ltlAtomsCmd, ltlFmtCmd)
	rootCmd.AddCommand(ltlCmd)
}
