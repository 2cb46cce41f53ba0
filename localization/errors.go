package localization

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrConfiguration       = errors.New("localization configuration error")
	ErrValidation          = errors.New("locale entry validation failed")
	ErrTranslationNotFound = errors.New("translation not found")
	ErrNoKeyboardDefined   = errors.New("no keyboard defined")
	ErrPlaceholderUnset    = errors.New("placeholder variable unset")
)

// ConfigurationError is returned by NewStore when the store cannot reach a usable state.
type ConfigurationError struct {
	Reason string
	Path   string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	msg := "localization: " + e.Reason
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error        { return e.Cause }
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
func (e *ConfigurationError) StatusCode() string   { return "configuration" }

// ValidationError describes a malformed locale entry.
// Field is a path into the entry such as "keyboard.keys[1][0]".
type ValidationError struct {
	Key      string
	Language string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("translation %q in language %q: field %s: %s", e.Key, e.Language, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *ValidationError) StatusCode() string   { return "invalid" }

// TranslationNotFoundError is returned when a key is missing from both the
// requested language and the fallback.
type TranslationNotFoundError struct {
	Key      string
	Language string
	Fallback string
}

func (e *TranslationNotFoundError) Error() string {
	return fmt.Sprintf(
		"translation key %q not found for language %q (nor in fallback %q)",
		e.Key, e.Language, e.Fallback,
	)
}

func (e *TranslationNotFoundError) Is(target error) bool { return target == ErrTranslationNotFound }
func (e *TranslationNotFoundError) StatusCode() string   { return "not_found" }

// NoKeyboardDefinedError is returned when a resolved entry carries no keyboard.
type NoKeyboardDefinedError struct {
	Key      string
	Language string
}

func (e *NoKeyboardDefinedError) Error() string {
	return fmt.Sprintf("no keyboard defined for key %q in language %q", e.Key, e.Language)
}

func (e *NoKeyboardDefinedError) Is(target error) bool { return target == ErrNoKeyboardDefined }
func (e *NoKeyboardDefinedError) StatusCode() string   { return "no_keyboard" }

// PlaceholderError is returned under PlaceholderStrict when a ${NAME} token
// references an environment variable that is not set.
type PlaceholderError struct {
	Key      string
	Language string
	Field    string
	Name     string
}

func (e *PlaceholderError) Error() string {
	return fmt.Sprintf(
		"translation %q in language %q: field %s: environment variable %s is not set",
		e.Key, e.Language, e.Field, e.Name,
	)
}

func (e *PlaceholderError) Is(target error) bool { return target == ErrPlaceholderUnset }
func (e *PlaceholderError) StatusCode() string   { return "placeholder_unset" }
