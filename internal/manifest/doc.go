// Package manifest derives the package.json of a generated project from a
// validated configuration and validates emitted package.json documents
// against an embedded JSON Schema.
package manifest
