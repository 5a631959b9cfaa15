// Package mimetypes maps file names to Content-Type values.
//
// A Resolver is built once and never changes afterwards. It does not touch the
// process-wide table of the mime package, so two resolvers in the same process
// can disagree without affecting each other.
package mimetypes

import (
	"mime"
	"path"
	"strings"
)

const (
	// JavaScript is the type forced for .js files.
	JavaScript = "application/javascript"

	// OctetStream is used when nothing else matches.
	OctetStream = "application/octet-stream"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithOverride maps ext to contentType before the lookup function is consulted.
// The extension is matched case-insensitively and must include the leading dot.
func WithOverride(ext, contentType string) Option {
	return func(r *Resolver) {
		r.overrides[strings.ToLower(ext)] = contentType
	}
}

// WithLookup replaces the system table lookup.
func WithLookup(lookup func(ext string) string) Option {
	return func(r *Resolver) {
		r.lookup = lookup
	}
}

// WithFallback replaces the type returned for unknown extensions.
func WithFallback(contentType string) Option {
	return func(r *Resolver) {
		r.fallback = contentType
	}
}

// Resolver is an immutable extension to content-type table.
type Resolver struct {
	overrides map[string]string
	lookup    func(ext string) string
	fallback  string
}

// New creates a Resolver. Without options .js resolves to application/javascript,
// everything else goes through mime.TypeByExtension and unknown extensions
// become application/octet-stream.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		overrides: map[string]string{".js": JavaScript},
		lookup:    mime.TypeByExtension,
		fallback:  OctetStream,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TypeByName returns the content type for the file name.
func (r *Resolver) TypeByName(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if t, ok := r.overrides[ext]; ok {
		return t
	}
	if ext != "" {
		if t := r.lookup(ext); t != "" {
			return t
		}
	}
	return r.fallback
}
