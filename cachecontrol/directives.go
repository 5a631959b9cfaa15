// Package cachecontrol builds the Cache-Control header and enforces it on
// every response.
package cachecontrol

import (
	"strconv"
	"strings"
)

// Header is the canonical header name.
const Header = "Cache-Control"

// Directives is the set of response directives of Cache-Control.
//
//	NoStore:         +
//	NoCache:         +
//	MustRevalidate:  +
//	Private:
//	NoTransform:
//	ProxyRevalidate:
//	MaxAge:
type Directives struct {
	NoStore         bool
	NoCache         bool
	MustRevalidate  bool
	Private         bool
	NoTransform     bool
	ProxyRevalidate bool

	// MaxAge in seconds, a negative value omits the directive.
	MaxAge int
}

// Disabled forbids clients and proxies to cache anything.
var Disabled = Directives{
	NoStore:        true,
	NoCache:        true,
	MustRevalidate: true,
	MaxAge:         -1,
}

// String renders the directives as a header value.
func (d Directives) String() string {
	var parts []string
	if d.NoStore {
		parts = append(parts, "no-store")
	}
	if d.NoCache {
		parts = append(parts, "no-cache")
	}
	if d.MustRevalidate {
		parts = append(parts, "must-revalidate")
	}
	if d.ProxyRevalidate {
		parts = append(parts, "proxy-revalidate")
	}
	if d.Private {
		parts = append(parts, "private")
	}
	if d.NoTransform {
		parts = append(parts, "no-transform")
	}
	if d.MaxAge >= 0 {
		parts = append(parts, "max-age="+strconv.Itoa(d.MaxAge))
	}
	return strings.Join(parts, ", ")
}
