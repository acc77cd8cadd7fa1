// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
	"github.com/LouvainVerificationLab/smvkit/pkg/report"
)

var reportCmd = &cobra.Command{
	Use:   "report FILE",
	Short: "Print a markdown summary of a model.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data := report.New(parseOne(args[0]))
		if *templateFlag != "" {
			tmpl := must.Must1(os.ReadFile(*templateFlag))
			must.Must(data.WriteTemplate(os.Stdout, string(tmpl)))
			return
		}
		must.Must(data.Write(os.Stdout))
	},
}

var templateFlag *string

func init() {
	templateFlag = reportCmd.Flags().String("template", "", "render a custom template file instead of the builtin summary")
	rootCmd.AddCommand(reportCmd)
}
