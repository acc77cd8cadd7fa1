// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
	"github.com/LouvainVerificationLab/smvkit/pkg/analysis"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

var depsCmd = &cobra.Command{
	Use:   "deps FILE",
	Short: "Print the assignment dependency graph of a module in graphviz format.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := analysis.Analyze(parseOne(args[0]))
		info := r.Modules[*depsModule]
		if info == nil {
			must.Must(fmt.Errorf("no module %q in %v", *depsModule, args[0]))
		}
		fmt.Println(string(must.Must1(info.Deps.DOT())))
	},
}

var depsModule *string

func init() {
	depsModule = depsCmd.Flags().String("module", smv.MainModule, "module to graph")
	rootCmd.AddCommand(depsCmd)
}
