// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"fmt"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
	"github.com/LouvainVerificationLab/smvkit/pkg/fixture"
	"github.com/LouvainVerificationLab/smvkit/pkg/slices"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv/parser"
)

// smvFiles expands file and directory arguments to a sorted list of .smv files.
func smvFiles(args []string) []string {
	fixtures := must.Must1(fixture.Load(args...))
	if len(fixtures) == 0 {
		must.Must(fmt.Errorf("no .smv files found in %v", args))
	}
	return slices.Transform(fixtures, func(f fixture.Fixture) string { return f.Path })
}

// parseAll parses each named file, panics on the first parse error.
func parseAll(paths []string) []*smv.Model {
	models := make([]*smv.Model, 0, len(paths))
	for _, path := range paths {
		log.V(2).Info("parsing", "file", path)
		models = append(models, must.Must1(parser.ParseFile(path)))
	}
	return models
}

// parseOne parses a single-file argument.
func parseOne(arg string) *smv.Model { return must.Must1(parser.ParseFile(arg)) }
