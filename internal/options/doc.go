// Package options defines the project configuration accepted by the generator
// and the compatibility grammar that decides which combinations are valid.
// Validate is the only way to obtain a Config; every later stage of the
// pipeline takes a Config and never re-checks it.
package options
