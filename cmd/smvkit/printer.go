// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
)

type printer interface {
	Print(any) // Print a single item.
}

type jsonPrinter struct{ *json.Encoder }

func (p *jsonPrinter) Print(v any) { _ = p.Encode(v) }

type yamlPrinter struct{ io.Writer }

func (p *yamlPrinter) Print(v any) { b, _ := yaml.Marshal(v); _, _ = p.Write(b) }

func newPrinter(w io.Writer) printer {
	switch *outputFlag {
	case "json":
		return &jsonPrinter{Encoder: json.NewEncoder(w)}

	case "json-pretty":
		p := &jsonPrinter{Encoder: json.NewEncoder(w)}
		p.SetIndent("", "  ")
		return p

	case "yaml":
		return &yamlPrinter{Writer: w}

	default:
		must.Must(fmt.Errorf("invalid output type: %v", *outputFlag))
		return nil
	}
}
