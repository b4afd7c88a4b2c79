package shapecore

import "github.com/shapelang/shapecore/internal/diagnostic"

// Option configures one parse call, mirroring spec §4.3's Options record.
type Option func(*diagnostic.Options)

// AllowUnexpected demotes an Unexpected diagnostic (an extra tuple
// index or record key) from fatal to a warning.
func AllowUnexpected() Option {
	return func(o *diagnostic.Options) { o.IsUnexpectedAllowed = true }
}

// AllErrors makes a parse call visit every element/key instead of
// stopping at the first fatal error.
func AllErrors() Option {
	return func(o *diagnostic.Options) { o.AllErrors = true }
}

func buildOptions(opts []Option) diagnostic.Options {
	var o diagnostic.Options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
