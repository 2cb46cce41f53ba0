package localization

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type EntryTestSuite struct {
	suite.Suite
}

func TestEntrySuite(t *testing.T) {
	suite.Run(t, &EntryTestSuite{})
}

func (s *EntryTestSuite) TestDecodeEntry() {
	testCases := []struct {
		name     string
		raw      any
		expected *LocaleEntry
	}{
		{
			name:     "text only",
			raw:      map[string]any{"text": "Hi"},
			expected: &LocaleEntry{Text: "Hi"},
		},
		{
			name:     "empty text",
			raw:      map[string]any{"text": ""},
			expected: &LocaleEntry{Text: ""},
		},
		{
			name:     "null keyboard",
			raw:      map[string]any{"text": "Hi", "keyboard": nil},
			expected: &LocaleEntry{Text: "Hi"},
		},
		{
			name: "keyboard with default rows",
			raw: map[string]any{
				"text":     "Hi",
				"keyboard": map[string]any{"keys": []any{[]any{"A", "a"}}},
			},
			expected: &LocaleEntry{Text: "Hi", Keyboard: &KeyboardSpec{Keys: []ButtonPair{{Label: "A", Action: "a"}}, Rows: 2}},
		},
		{
			name: "keyboard from toml integers",
			raw: map[string]any{
				"text":     "Hi",
				"keyboard": map[string]any{"keys": []any{}, "rows": int64(3)},
			},
			expected: &LocaleEntry{Text: "Hi", Keyboard: &KeyboardSpec{Keys: []ButtonPair{}, Rows: 3}},
		},
		{
			name: "keyboard from json numbers",
			raw: map[string]any{
				"text":     "Hi",
				"keyboard": map[string]any{"keys": []any{[]any{"A", "a"}}, "rows": float64(1)},
			},
			expected: &LocaleEntry{Text: "Hi", Keyboard: &KeyboardSpec{Keys: []ButtonPair{{Label: "A", Action: "a"}}, Rows: 1}},
		},
		{
			name: "rows at int limit",
			raw: map[string]any{
				"text":     "Hi",
				"keyboard": map[string]any{"keys": []any{[]any{"A", "a"}}, "rows": int64(math.MaxInt64)},
			},
			expected: &LocaleEntry{Text: "Hi", Keyboard: &KeyboardSpec{Keys: []ButtonPair{{Label: "A", Action: "a"}}, Rows: math.MaxInt}},
		},
		{
			name: "rows above old uint bound",
			raw: map[string]any{
				"text":     "Hi",
				"keyboard": map[string]any{"keys": []any{[]any{"A", "a"}}, "rows": uint64(math.MaxInt32) + 1},
			},
			expected: &LocaleEntry{Text: "Hi", Keyboard: &KeyboardSpec{Keys: []ButtonPair{{Label: "A", Action: "a"}}, Rows: math.MaxInt32 + 1}},
		},
		{
			name:     "bare list shorthand",
			raw:      map[any]any{"text": "Hi", "keyboard": []any{[]any{"A", "a"}, []any{"B", "b"}}},
			expected: &LocaleEntry{Text: "Hi", Keyboard: &KeyboardSpec{Keys: []ButtonPair{{Label: "A", Action: "a"}, {Label: "B", Action: "b"}}, Rows: 2}},
		},
		{
			name:     "unknown fields ignored",
			raw:      map[string]any{"text": "Hi", "note": 1},
			expected: &LocaleEntry{Text: "Hi"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			entry, err := decodeEntry("en", "key", tc.raw)
			s.Require().NoError(err)
			s.Equal(tc.expected, entry)
		})
	}
}

func (s *EntryTestSuite) TestDecodeEntryFailures() {
	testCases := []struct {
		name  string
		raw   any
		field string
	}{
		{name: "scalar entry", raw: "Hi", field: "(entry)"},
		{name: "list entry", raw: []any{"Hi"}, field: "(entry)"},
		{name: "missing text", raw: map[string]any{}, field: "text"},
		{name: "null text", raw: map[string]any{"text": nil}, field: "text"},
		{name: "numeric text", raw: map[string]any{"text": 5}, field: "text"},
		{name: "scalar keyboard", raw: map[string]any{"text": "x", "keyboard": "A"}, field: "keyboard"},
		{name: "missing keys", raw: map[string]any{"text": "x", "keyboard": map[string]any{"rows": 2}}, field: "keyboard.keys"},
		{name: "keys not a list", raw: map[string]any{"text": "x", "keyboard": map[string]any{"keys": "A"}}, field: "keyboard.keys"},
		{
			name:  "pair not a list",
			raw:   map[string]any{"text": "x", "keyboard": map[string]any{"keys": []any{"A"}}},
			field: "keyboard.keys[0]",
		},
		{
			name:  "second pair too short",
			raw:   map[string]any{"text": "x", "keyboard": map[string]any{"keys": []any{[]any{"A", "a"}, []any{"B"}}}},
			field: "keyboard.keys[1]",
		},
		{
			name:  "null label",
			raw:   map[string]any{"text": "x", "keyboard": []any{[]any{nil, "a"}}},
			field: "keyboard[0][0]",
		},
		{
			name:  "fractional rows",
			raw:   map[string]any{"text": "x", "keyboard": map[string]any{"keys": []any{}, "rows": 1.5}},
			field: "keyboard.rows",
		},
		{
			name:  "negative rows",
			raw:   map[string]any{"text": "x", "keyboard": map[string]any{"keys": []any{}, "rows": -1}},
			field: "keyboard.rows",
		},
		{
			name:  "rows beyond int range from json",
			raw:   map[string]any{"text": "x", "keyboard": map[string]any{"keys": []any{}, "rows": 1e19}},
			field: "keyboard.rows",
		},
		{
			name:  "rows beyond int range from toml",
			raw:   map[string]any{"text": "x", "keyboard": map[string]any{"keys": []any{}, "rows": uint64(math.MaxUint64)}},
			field: "keyboard.rows",
		},
		{
			name:  "string rows",
			raw:   map[string]any{"text": "x", "keyboard": map[string]any{"keys": []any{}, "rows": "2"}},
			field: "keyboard.rows",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			entry, err := decodeEntry("fr", "menu", tc.raw)
			s.Nil(entry)
			s.Require().ErrorIs(err, ErrValidation)

			var valErr *ValidationError
			s.Require().True(errors.As(err, &valErr))
			s.Equal("menu", valErr.Key)
			s.Equal("fr", valErr.Language)
			s.Equal(tc.field, valErr.Field)
			s.NotEmpty(valErr.Reason)
		})
	}
}

func (s *EntryTestSuite) TestCloneIsDeep() {
	original := &LocaleEntry{Text: "Hi", Keyboard: &KeyboardSpec{Keys: []ButtonPair{{Label: "A", Action: "a"}}, Rows: 2}}

	copied := original.clone()
	copied.Keyboard.Keys[0].Label = "changed"
	copied.Keyboard.Rows = 5

	s.Equal("A", original.Keyboard.Keys[0].Label)
	s.Equal(2, original.Keyboard.Rows)
	s.Nil((&LocaleEntry{Text: "plain"}).clone().Keyboard)
}

func (s *EntryTestSuite) TestSubstitutePlaceholder() {
	env := map[string]string{"SITE": "example.com", "EMPTY": "", "BOT_2": "two"}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	testCases := []struct {
		name     string
		value    string
		policy   PlaceholderPolicy
		expected string
		unset    string
		ok       bool
	}{
		{name: "no token", value: "Plain", expected: "Plain", ok: true},
		{name: "single token", value: "Visit ${SITE}", expected: "Visit example.com", ok: true},
		{name: "token in the middle", value: "https://${SITE}/x", expected: "https://example.com/x", ok: true},
		{name: "digits and underscore", value: "${BOT_2}", expected: "two", ok: true},
		{name: "first token only", value: "${SITE} ${SITE}", expected: "example.com ${SITE}", ok: true},
		{name: "lowercase is literal", value: "${site}", expected: "${site}", ok: true},
		{name: "set but empty", value: "[${EMPTY}]", expected: "[]", ok: true},
		{name: "unset strict", value: "Go ${MISSING}", policy: PlaceholderStrict, unset: "MISSING", ok: false},
		{name: "unset empty policy", value: "Go ${MISSING}", policy: PlaceholderEmpty, expected: "Go ", ok: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, unset, ok := substitutePlaceholder(tc.value, lookup, tc.policy)
			s.Equal(tc.ok, ok)
			s.Equal(tc.unset, unset)
			if tc.ok {
				s.Equal(tc.expected, got)
			}
		})
	}

	s.Equal("strict", PlaceholderStrict.String())
	s.Equal("empty", PlaceholderEmpty.String())
}

func (s *EntryTestSuite) TestGroupRows() {
	buttons := func(n int) []Button {
		out := make([]Button, n)
		for i := range out {
			out[i] = Button{Label: string(rune('A' + i)), Action: string(rune('a' + i))}
		}
		return out
	}
	sizes := func(rows [][]Button) []int {
		out := make([]int, 0, len(rows))
		for _, row := range rows {
			out = append(out, len(row))
		}
		return out
	}

	testCases := []struct {
		name     string
		count    int
		width    int
		expected []int
	}{
		{name: "empty", count: 0, width: 2, expected: []int{}},
		{name: "exact fit", count: 4, width: 2, expected: []int{2, 2}},
		{name: "short last row", count: 5, width: 2, expected: []int{2, 2, 1}},
		{name: "width larger than count", count: 2, width: 5, expected: []int{2}},
		{name: "single column", count: 3, width: 1, expected: []int{1, 1, 1}},
		{name: "non positive width defaults", count: 3, width: 0, expected: []int{2, 1}},
		{name: "width at int limit", count: 3, width: math.MaxInt, expected: []int{3}},
		{name: "width at int limit without buttons", count: 0, width: math.MaxInt, expected: []int{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			in := buttons(tc.count)
			rows := groupRows(in, tc.width)
			s.Equal(tc.expected, sizes(rows))

			var flat []Button
			for _, row := range rows {
				flat = append(flat, row...)
			}
			if tc.count > 0 {
				s.Equal(in, flat, "row major order is preserved")
			}
		})
	}
}

func (s *EntryTestSuite) TestDecodeDocument() {
	formats := defaultFormats()

	doc, ok, err := decodeDocument(formats[".yaml"], []byte("greet:\n  text: Hi\n"))
	s.Require().NoError(err)
	s.True(ok)
	s.Contains(doc, "greet")

	doc, ok, err = decodeDocument(formats[".json"], []byte(`{"greet": {"text": "Hi"}}`))
	s.Require().NoError(err)
	s.True(ok)
	s.Contains(doc, "greet")

	_, ok, err = decodeDocument(formats[".yml"], []byte("- a\n- b\n"))
	s.Require().NoError(err)
	s.False(ok)

	_, _, err = decodeDocument(formats[".toml"], []byte("greet = ["))
	s.Require().Error(err)

	s.Equal(".yaml", normalizeExt("YAML"))
	s.Equal(".yml", normalizeExt(".YML"))
}
