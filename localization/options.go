package localization

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/itoolpack/itoolpack/workerpool"
)

// Option configures a Store before any file is read.
type Option func(s *Store)

// WithFormat registers an unmarshal function for a file extension, e.g. "ini".
// It overrides the built-in decoder for the same extension.
func WithFormat(ext string, unmarshal i18n.UnmarshalFunc) Option {
	return func(s *Store) {
		if ext = normalizeExt(ext); ext != "" && unmarshal != nil {
			s.formats[ext] = unmarshal
		}
	}
}

// WithEnvLookup replaces os.LookupEnv as the source of placeholder values.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(s *Store) {
		if lookup != nil {
			s.lookupEnv = lookup
		}
	}
}

// WithPlaceholderPolicy sets the behavior for placeholders whose variable is unset.
func WithPlaceholderPolicy(policy PlaceholderPolicy) Option {
	return func(s *Store) {
		s.placeholderPolicy = policy
	}
}

// WithWorkerPool sizes the pool translation files are parsed on.
func WithWorkerPool(opts ...workerpool.Option) Option {
	return func(s *Store) {
		s.poolOpts = append(s.poolOpts, opts...)
	}
}
