// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/logging"
	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
	"github.com/LouvainVerificationLab/smvkit/pkg/build"
)

var (
	rootCmd = &cobra.Command{
		Use:     "smvkit",
		Short:   "Toolkit for SMV model-checking fixtures",
		Version: build.Version,
	}
	log = logging.Log()

	// Global Flags
	outputFlag *string
	verbose    *int
	panicOnErr *bool
)

func init() {
	panicOnErr = rootCmd.PersistentFlags().Bool("panic", false, "panic on error instead of exit code 1")
	outputFlag = rootCmd.PersistentFlags().StringP("output", "o", "yaml", "Output format: json, json-pretty or yaml")
	verbose = rootCmd.PersistentFlags().IntP("verbose", "v", 0, "Verbosity for logging")

	cobra.OnInitialize(func() { logging.Init(*verbose) }) // After flags are parsed
}

func main() {
	// Code in this package panics with an error to exit.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, r)
			if *panicOnErr {
				panic(r)
			}
			os.Exit(1)
		}
		os.Exit(0)
	}()
	must.Must(rootCmd.Execute())
}
