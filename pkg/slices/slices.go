// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package slices has generic slice helpers.
package slices

import (
	"fmt"
)

// Transform returns a new slice with f applied to each element of t.
func Transform[T, U any](t []T, f func(T) U) []U {
	u := make([]U, len(t))
	for i := range t {
		u[i] = f(t[i])
	}
	return u
}

// Strings formats each element of t with %v.
func Strings[T any](t []T) []string {
	return Transform(t, func(v T) string { return fmt.Sprintf("%v", v) })
}
