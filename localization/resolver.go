package localization

import (
	"context"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pitabwire/util"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Negotiator picks a registered language for a list of preferences.
type Negotiator interface {
	Match(preferences ...string) string
}

var (
	_ Negotiator       = (*Store)(nil)
	_ KeyboardRenderer = (*Store)(nil)
)

// Resolve finds key for lang, falling back to the fallback language once.
// An unregistered lang goes straight to the fallback. The returned string is
// the language the entry was served from.
func (s *Store) Resolve(key, lang string) (*LocaleEntry, string, error) {
	actual := lang
	if _, ok := s.payloads[actual]; !ok {
		actual = s.fallback
	}

	result, ok := s.payloads[actual][key]
	if !ok && actual != s.fallback {
		actual = s.fallback
		result, ok = s.payloads[actual][key]
	}

	if !ok {
		recordLookup(outcomeNotFound, lang)
		return nil, actual, &TranslationNotFoundError{Key: key, Language: lang, Fallback: s.fallback}
	}
	if result.err != nil {
		recordLookup(outcomeInvalid, actual)
		return nil, actual, result.err
	}

	if actual == lang {
		recordLookup(outcomeHit, actual)
	} else {
		recordLookup(outcomeFallback, actual)
	}
	return result.entry.clone(), actual, nil
}

// Text returns the configured text for key, unmodified.
func (s *Store) Text(key, lang string) (string, error) {
	entry, _, err := s.Resolve(key, lang)
	if err != nil {
		return "", err
	}
	return entry.Text, nil
}

// Keyboard resolves the keyboard attached to key, substitutes placeholders
// and groups the buttons into rows. A keyboard without buttons counts as no
// keyboard.
func (s *Store) Keyboard(key, lang string) (*Layout, error) {
	entry, actual, err := s.Resolve(key, lang)
	if err != nil {
		return nil, err
	}
	if entry.Keyboard == nil || len(entry.Keyboard.Keys) == 0 {
		return nil, &NoKeyboardDefinedError{Key: key, Language: lang}
	}

	width := entry.Keyboard.Rows
	if width <= 0 {
		width = DefaultRows
	}

	buttons := make([]Button, 0, len(entry.Keyboard.Keys))
	for i, pair := range entry.Keyboard.Keys {
		field := "keyboard.keys[" + strconv.Itoa(i) + "]"

		label, err := s.expand(key, actual, field+"[0]", pair.Label)
		if err != nil {
			return nil, err
		}
		action, err := s.expand(key, actual, field+"[1]", pair.Action)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, Button{Label: label, Action: action})
	}

	return &Layout{Rows: groupRows(buttons, width), Width: width}, nil
}

func (s *Store) expand(key, lang, field, value string) (string, error) {
	out, unset, ok := substitutePlaceholder(value, s.lookupEnv, s.placeholderPolicy)
	if !ok {
		return "", &PlaceholderError{Key: key, Language: lang, Field: field, Name: unset}
	}
	return out, nil
}

// Format resolves key like Text and executes the text as a message template
// with data, e.g. "Hello {{.Name}}".
func (s *Store) Format(key, lang string, data map[string]any) (string, error) {
	entry, actual, err := s.Resolve(key, lang)
	if err != nil {
		return "", err
	}
	if !strings.Contains(entry.Text, "{{") {
		return entry.Text, nil
	}

	bundle := s.Bundle()
	tag, ok := s.tags[actual]
	if !ok {
		return "", &ValidationError{
			Key:      key,
			Language: actual,
			Field:    "text",
			Reason:   "language code is not a BCP 47 tag, templates cannot be rendered",
		}
	}

	localizer := i18n.NewLocalizer(bundle, tag.String())
	out, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		return "", &ValidationError{Key: key, Language: actual, Field: "text", Reason: err.Error()}
	}
	return out, nil
}

// Bundle exposes every valid entry's text as a go-i18n bundle whose default
// language is the fallback. It is built on first use.
func (s *Store) Bundle() *i18n.Bundle {
	s.bundleOnce.Do(func() {
		s.bundle = s.buildBundle(context.Background())
	})
	return s.bundle
}

func (s *Store) buildBundle(ctx context.Context) *i18n.Bundle {
	defaultTag, ok := s.tags[s.fallback]
	if !ok {
		defaultTag = language.Und
	}

	bundle := i18n.NewBundle(defaultTag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, code := range s.Languages() {
		tag, tagged := s.tags[code]
		if !tagged {
			continue
		}

		var messages []*i18n.Message
		for _, key := range s.Keys(code) {
			result := s.payloads[code][key]
			if result.err != nil {
				continue
			}
			messages = append(messages, &i18n.Message{ID: key, Other: result.entry.Text})
		}

		if err := bundle.AddMessages(tag, messages...); err != nil {
			util.Log(ctx).WithError(err).WithField("language", code).Warn("could not add messages to bundle")
		}
	}

	return bundle
}

// Match negotiates Accept-Language style preferences ("fr-CA,fr;q=0.9")
// against the registered languages. It returns the fallback when nothing matches.
func (s *Store) Match(preferences ...string) string {
	var tags []language.Tag
	for _, pref := range preferences {
		pref = strings.TrimSpace(pref)
		if pref == "" {
			continue
		}
		if len(tags) == 0 && s.Has(pref) {
			return pref
		}

		parsed, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}

	if s.matcher == nil || len(tags) == 0 {
		return s.fallback
	}

	_, index, confidence := s.matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(s.matchCodes) {
		return s.fallback
	}
	return s.matchCodes[index]
}
