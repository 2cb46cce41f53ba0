package localization

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pitabwire/util"
	"golang.org/x/text/language"

	"github.com/itoolpack/itoolpack/config"
	"github.com/itoolpack/itoolpack/workerpool"
)

// Store owns every loaded language payload. It is populated once by NewStore
// and read-only afterwards, so it is safe for concurrent lookups.
type Store struct {
	dir      string
	fallback string

	files    map[string]string
	payloads map[string]map[string]entryResult

	formats           map[string]i18n.UnmarshalFunc
	lookupEnv         func(string) (string, bool)
	placeholderPolicy PlaceholderPolicy
	poolOpts          []workerpool.Option

	matcher    language.Matcher
	matchCodes []string

	bundleOnce sync.Once
	bundle     *i18n.Bundle
	tags       map[string]language.Tag
}

// NewStore scans dir for translation files, checks that fallback is one of
// the discovered languages and loads every language.
func NewStore(ctx context.Context, dir string, fallback string, opts ...Option) (*Store, error) {
	ctx, span := storeTracer.Start(ctx, "NewStore")

	s, err := newStore(ctx, dir, fallback, opts...)

	storeTracer.End(ctx, span, err)
	return s, err
}

// NewStoreFromConfig builds a Store from the localization section of a configuration.
func NewStoreFromConfig(ctx context.Context, cfg config.ConfigurationLocalization, opts ...Option) (*Store, error) {
	policy := PlaceholderEmpty
	if cfg.PlaceholderStrict() {
		policy = PlaceholderStrict
	}
	defaults := []Option{WithPlaceholderPolicy(policy)}
	if poolCfg, ok := cfg.(config.ConfigurationWorkerPool); ok {
		defaults = append(defaults, WithWorkerPool(workerpool.FromConfig(poolCfg)...))
	}
	opts = append(defaults, opts...)
	return NewStore(ctx, cfg.LocalesDirectory(), cfg.FallbackLanguageCode(), opts...)
}

func newStore(ctx context.Context, dir string, fallback string, opts ...Option) (*Store, error) {
	s := &Store{
		dir:       dir,
		fallback:  fallback,
		files:     map[string]string{},
		payloads:  map[string]map[string]entryResult{},
		formats:   defaultFormats(),
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, &ConfigurationError{Reason: "locales directory not found", Path: dir, Cause: err}
	}
	if !info.IsDir() {
		return nil, &ConfigurationError{Reason: "locales path is not a directory", Path: dir}
	}

	err = s.registerLanguages(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := s.payloads[fallback]; !ok || fallback == "" {
		return nil, &ConfigurationError{Reason: "fallback language " + strconv.Quote(fallback) + " not found", Path: dir}
	}

	err = s.loadLanguages(ctx)
	if err != nil {
		return nil, err
	}

	s.buildMatcher(ctx)

	util.Log(ctx).
		WithField("directory", dir).
		WithField("fallback", fallback).
		WithField("languages", s.Languages()).
		Info("localization payloads loaded")

	return s, nil
}

// registerLanguages records every translation file in dir with an empty payload.
func (s *Store) registerLanguages(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return &ConfigurationError{Reason: "could not read locales directory", Path: s.dir, Cause: err}
	}

	for _, entry := range entries {
		if !isRegularFile(s.dir, entry) {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		if _, ok := s.formats[normalizeExt(ext)]; !ok {
			continue
		}

		code := strings.TrimSuffix(name, ext)
		if code == "" {
			continue
		}

		if existing, ok := s.files[code]; ok {
			util.Log(ctx).
				WithField("language", code).
				WithField("kept", filepath.Base(existing)).
				WithField("ignored", name).
				Warn("duplicate translation file for language")
			continue
		}

		s.files[code] = filepath.Join(s.dir, name)
		s.payloads[code] = map[string]entryResult{}
	}

	return nil
}

func isRegularFile(dir string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// loadLanguages parses every registered file on a worker pool.
func (s *Store) loadLanguages(ctx context.Context) error {
	pool, err := workerpool.New(ctx, s.poolOpts...)
	if err != nil {
		return &ConfigurationError{Reason: "could not start loader pool", Path: s.dir, Cause: err}
	}
	defer pool.Shutdown()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, code := range s.Languages() {
		wg.Add(1)
		err = pool.Submit(ctx, func() {
			defer wg.Done()
			payload := s.loadLanguage(ctx, code)

			mu.Lock()
			s.payloads[code] = payload
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return &ConfigurationError{Reason: "could not schedule translation file", Path: s.files[code], Cause: err}
		}
	}
	wg.Wait()

	return nil
}

// loadLanguage parses one language file. Unreadable, unparseable or
// wrongly shaped files yield an empty payload.
func (s *Store) loadLanguage(ctx context.Context, code string) map[string]entryResult {
	path := s.files[code]
	log := util.Log(ctx).WithField("language", code).WithField("file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("translation file disappeared before load, language left empty")
		} else {
			log.WithError(err).Warn("translation file unreadable, language left empty")
		}
		return map[string]entryResult{}
	}

	unmarshal := s.formats[normalizeExt(filepath.Ext(path))]
	raw, ok, err := decodeDocument(unmarshal, data)
	if err != nil {
		log.WithError(err).Warn("translation file could not be parsed, language left empty")
		return map[string]entryResult{}
	}
	if !ok {
		log.Warn("translation file is not a key to entry mapping, language left empty")
		return map[string]entryResult{}
	}

	payload := make(map[string]entryResult, len(raw))
	for key, value := range raw {
		entry, verr := decodeEntry(code, key, value)
		if verr != nil {
			log.WithError(verr).WithField("key", key).Warn("invalid translation entry")
		}
		payload[key] = entryResult{entry: entry, err: verr}
	}
	return payload
}

func (s *Store) buildMatcher(ctx context.Context) {
	var tags []language.Tag
	s.tags = map[string]language.Tag{}

	codes := s.Languages()
	// The fallback goes first so it is the matcher's default.
	slices.SortStableFunc(codes, func(a, b string) int {
		switch {
		case a == s.fallback:
			return -1
		case b == s.fallback:
			return 1
		default:
			return 0
		}
	})

	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			util.Log(ctx).WithField("language", code).Debug("language code is not a BCP 47 tag, excluded from negotiation")
			continue
		}
		s.tags[code] = tag
		tags = append(tags, tag)
		s.matchCodes = append(s.matchCodes, code)
	}

	if len(tags) > 0 {
		s.matcher = language.NewMatcher(tags)
	}
}

// Languages returns the registered language codes in lexical order.
func (s *Store) Languages() []string {
	codes := make([]string, 0, len(s.payloads))
	for code := range s.payloads {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Fallback returns the fallback language code.
func (s *Store) Fallback() string {
	return s.fallback
}

// Directory returns the locales directory the store was loaded from.
func (s *Store) Directory() string {
	return s.dir
}

// Has reports whether language is registered.
func (s *Store) Has(language string) bool {
	_, ok := s.payloads[language]
	return ok
}

// Keys returns the keys present in language, valid or not, in lexical order.
func (s *Store) Keys(language string) []string {
	payload := s.payloads[language]
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Validate returns every entry validation failure across all languages.
func (s *Store) Validate() error {
	var errs []error
	for _, code := range s.Languages() {
		for _, key := range s.Keys(code) {
			if err := s.payloads[code][key].err; err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
