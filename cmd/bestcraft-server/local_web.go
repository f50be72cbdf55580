//go:build !native

package main

import "github.com/souraizuni/ffxiv-best-craft/internal/datasource"

// Build web: pas de source locale.
func registerLocalSource(*datasource.Registry, string) func() { return func() {} }
