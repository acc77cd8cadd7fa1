// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
	smvprinter "github.com/LouvainVerificationLab/smvkit/pkg/smv/printer"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE_OR_DIR...",
	Short: "Rewrite models in canonical form.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range smvFiles(args) {
			formatted := smvprinter.String(parseOne(path))
			if *writeFlag {
				must.Must(os.WriteFile(path, []byte(formatted), 0666))
			} else {
				fmt.Print(formatted)
			}
		}
	},
}

var writeFlag *bool

func init() {
	writeFlag = fmtCmd.Flags().BoolP("write", "w", false, "write result back to source file instead of stdout")
	rootCmd.AddCommand(fmtCmd)
}
