// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
	"github.com/LouvainVerificationLab/smvkit/pkg/fixture"
)

var verifyCmd = &cobra.Command{
	Use:   "verify MANIFEST",
	Short: "Verify fixtures against the expected outcomes of a manifest.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer StartProfile().Stop()
		manifests := must.Must1(fixture.LoadManifest(args[0]))
		fixtures := must.Must1(manifests.Fixtures())
		results := fixture.VerifyAll(fixtures)
		fmt.Print(results)
		if failed := results.Failures(); len(failed) > 0 {
			must.Must(fmt.Errorf("%v fixture(s) failed", len(failed)))
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
