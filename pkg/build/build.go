// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// package build contains build information for the smvkit module.
package build

import (
	_ "embed"
)

//go:embed version.txt
var Version string
