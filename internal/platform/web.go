//go:build !native

package platform

import "github.com/souraizuni/ffxiv-best-craft/internal/domain"

// Current: build web, pas de source locale.
func Current() domain.Platform { return domain.PlatformWeb }
