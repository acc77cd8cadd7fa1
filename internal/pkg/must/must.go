// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// package must contains functions to handle errors via panic
package must

import "fmt"

// Must panics if err != nil.
// If format is provided, panic contains fmt.Errorf(format...) else it contains err.
func Must(err error, format ...any) {
	if err != nil {
		if len(format) > 0 {
			err = fmt.Errorf(format[0].(string), format[1:]...)
		}
		panic(err)
	}
}

// Must1 calls Must(err), then returns v.
func Must1[T any](v T, err error) T { Must(err); return v }
