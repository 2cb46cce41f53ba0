package localization

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"
)

type contextKey string

func (c contextKey) String() string {
	return "itoolpack/localization/" + string(c)
}

const (
	ctxKeyLanguage = contextKey("languageKey")
	mapKeyLanguage = "lang"
)

// ToContext adds the negotiated language code to the supplied context.
func ToContext(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLanguage, lang)
}

// FromContext extracts the language code from the supplied context, if any.
func FromContext(ctx context.Context) string {
	lang, ok := ctx.Value(ctxKeyLanguage).(string)
	if !ok {
		return ""
	}
	return lang
}

// ToMap stores lang under the "lang" key, e.g. for queue message headers.
func ToMap(m map[string]string, lang string) map[string]string {
	m[mapKeyLanguage] = lang
	return m
}

func FromMap(m map[string]string) string {
	return m[mapKeyLanguage]
}

// LanguageFromContext returns the language stored in ctx or the fallback.
func (s *Store) LanguageFromContext(ctx context.Context) string {
	if lang := FromContext(ctx); lang != "" {
		return lang
	}
	return s.fallback
}

// TextContext is Text for the language carried by ctx.
func (s *Store) TextContext(ctx context.Context, key string) (string, error) {
	return s.Text(key, s.LanguageFromContext(ctx))
}

// KeyboardContext is Keyboard for the language carried by ctx.
func (s *Store) KeyboardContext(ctx context.Context, key string) (*Layout, error) {
	return s.Keyboard(key, s.LanguageFromContext(ctx))
}

// ExtractLanguageFromHTTPRequest returns the "lang" form value followed by the
// Accept-Language preferences.
func ExtractLanguageFromHTTPRequest(req *http.Request) []string {
	var languages []string
	if lang := strings.TrimSpace(req.FormValue(mapKeyLanguage)); lang != "" {
		languages = append(languages, lang)
	}

	return append(languages, ExtractLanguageFromHTTPHeader(req.Header)...)
}

func ExtractLanguageFromHTTPHeader(header http.Header) []string {
	return splitPreferences(header.Get("Accept-Language"))
}

func ExtractLanguageFromGrpcRequest(ctx context.Context) []string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	header := md.Get("accept-language")
	if len(header) == 0 {
		return nil
	}
	return splitPreferences(header[0])
}

func splitPreferences(header string) []string {
	var preferences []string
	for _, part := range strings.Split(header, ",") {
		if part = strings.TrimSpace(part); part != "" {
			preferences = append(preferences, part)
		}
	}
	return preferences
}
