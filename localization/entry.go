package localization

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultRows is the number of buttons per keyboard row when a keyboard does not set rows.
const DefaultRows = 2

// ButtonPair is one keyboard button before placeholder substitution.
type ButtonPair struct {
	Label  string
	Action string
}

// KeyboardSpec is the layout attached to a locale entry.
type KeyboardSpec struct {
	Keys []ButtonPair
	Rows int
}

// LocaleEntry is the validated translation unit for one key in one language.
type LocaleEntry struct {
	Text     string
	Keyboard *KeyboardSpec
}

func (e *LocaleEntry) clone() *LocaleEntry {
	out := &LocaleEntry{Text: e.Text}
	if e.Keyboard != nil {
		out.Keyboard = &KeyboardSpec{
			Keys: append([]ButtonPair(nil), e.Keyboard.Keys...),
			Rows: e.Keyboard.Rows,
		}
	}
	return out
}

// entryResult is the outcome of validating one raw entry at load time.
type entryResult struct {
	entry *LocaleEntry
	err   error
}

type entryDecoder struct {
	key      string
	language string
}

func (d entryDecoder) fail(field string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Key:      d.key,
		Language: d.language,
		Field:    field,
		Reason:   fmt.Sprintf(format, args...),
	}
}

// decodeEntry validates a loosely typed document node into a LocaleEntry.
func decodeEntry(language, key string, raw any) (*LocaleEntry, error) {
	d := entryDecoder{key: key, language: language}

	fields, ok := asStringMap(raw)
	if !ok {
		return nil, d.fail("(entry)", "expected a mapping, got %s", describe(raw))
	}

	rawText, ok := fields["text"]
	if !ok || rawText == nil {
		return nil, d.fail("text", "is required")
	}
	text, ok := rawText.(string)
	if !ok {
		return nil, d.fail("text", "expected a string, got %s", describe(rawText))
	}

	entry := &LocaleEntry{Text: text}

	rawKeyboard, ok := fields["keyboard"]
	if !ok || rawKeyboard == nil {
		return entry, nil
	}

	keyboard, err := d.keyboard(rawKeyboard)
	if err != nil {
		return nil, err
	}
	entry.Keyboard = keyboard
	return entry, nil
}

func (d entryDecoder) keyboard(raw any) (*KeyboardSpec, error) {
	// A bare list is shorthand for keys with the default row width.
	if list, ok := raw.([]any); ok {
		keys, err := d.pairs("keyboard", list)
		if err != nil {
			return nil, err
		}
		return &KeyboardSpec{Keys: keys, Rows: DefaultRows}, nil
	}

	fields, ok := asStringMap(raw)
	if !ok {
		return nil, d.fail("keyboard", "expected a mapping or a list of pairs, got %s", describe(raw))
	}

	rawKeys, ok := fields["keys"]
	if !ok || rawKeys == nil {
		return nil, d.fail("keyboard.keys", "is required")
	}
	list, ok := rawKeys.([]any)
	if !ok {
		return nil, d.fail("keyboard.keys", "expected a list of pairs, got %s", describe(rawKeys))
	}
	keys, err := d.pairs("keyboard.keys", list)
	if err != nil {
		return nil, err
	}

	rows := DefaultRows
	if rawRows, present := fields["rows"]; present && rawRows != nil {
		n, isInt := asInt(rawRows)
		if !isInt {
			return nil, d.fail("keyboard.rows", "expected a positive integer, got %s", describe(rawRows))
		}
		if n <= 0 {
			return nil, d.fail("keyboard.rows", "expected a positive integer, got %d", n)
		}
		rows = n
	}

	return &KeyboardSpec{Keys: keys, Rows: rows}, nil
}

func (d entryDecoder) pairs(field string, list []any) ([]ButtonPair, error) {
	keys := make([]ButtonPair, 0, len(list))
	for i, rawPair := range list {
		pairField := field + "[" + strconv.Itoa(i) + "]"

		pair, ok := rawPair.([]any)
		if !ok {
			return nil, d.fail(pairField, "expected a [label, action] pair, got %s", describe(rawPair))
		}
		if len(pair) != 2 {
			return nil, d.fail(pairField, "expected exactly 2 slots, got %d", len(pair))
		}

		var slots [2]string
		for j, rawSlot := range pair {
			slot, isString := rawSlot.(string)
			if !isString {
				return nil, d.fail(
					pairField+"["+strconv.Itoa(j)+"]",
					"expected a string, got %s", describe(rawSlot),
				)
			}
			slots[j] = slot
		}
		keys = append(keys, ButtonPair{Label: slots[0], Action: slots[1]})
	}
	return keys, nil
}

// asStringMap accepts both map shapes produced by the supported decoders.
func asStringMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, value := range v {
			out[fmt.Sprint(k)] = value
		}
		return out, true
	default:
		return nil, false
	}
}

// asInt converts the integer shapes produced by the decoders. Values that do
// not fit in an int are rejected regardless of their source type.
func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, false
		}
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, which does not fit.
		if v != math.Trunc(v) || v >= float64(math.MaxInt) || v < float64(math.MinInt) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
