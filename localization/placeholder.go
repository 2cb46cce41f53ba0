package localization

import (
	"regexp"
)

// PlaceholderPolicy decides what a ${NAME} token renders to when NAME is unset.
type PlaceholderPolicy int

const (
	// PlaceholderStrict fails the whole render with a PlaceholderError.
	PlaceholderStrict PlaceholderPolicy = iota
	// PlaceholderEmpty replaces the token with an empty string.
	PlaceholderEmpty
)

func (p PlaceholderPolicy) String() string {
	if p == PlaceholderEmpty {
		return "empty"
	}
	return "strict"
}

var placeholderPattern = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

// substitutePlaceholder replaces the first ${NAME} token in value only.
// It returns the unresolved name when the variable is unset under PlaceholderStrict.
func substitutePlaceholder(
	value string,
	lookup func(string) (string, bool),
	policy PlaceholderPolicy,
) (string, string, bool) {
	loc := placeholderPattern.FindStringSubmatchIndex(value)
	if loc == nil {
		return value, "", true
	}

	name := value[loc[2]:loc[3]]
	replacement, ok := lookup(name)
	if !ok {
		if policy == PlaceholderStrict {
			return "", name, false
		}
		replacement = ""
	}

	return value[:loc[0]] + replacement + value[loc[1]:], "", true
}
