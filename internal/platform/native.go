//go:build native

package platform

import "github.com/souraizuni/ffxiv-best-craft/internal/domain"

// Current: build desktop (tag "native"), la source locale est disponible.
func Current() domain.Platform { return domain.PlatformNative }
