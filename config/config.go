package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pitabwire/util"
)

type contextKey string

func (c contextKey) String() string {
	return "itoolpack/config/" + string(c)
}

const ctxKeyConfiguration = contextKey("configurationKey")

// Placeholder policies understood by ConfigurationLocalization.
const (
	PlaceholderPolicyStrict = "strict"
	PlaceholderPolicyEmpty  = "empty"
)

// ToContext adds service configuration to the current supplied context.
func ToContext(ctx context.Context, config any) context.Context {
	return context.WithValue(ctx, ctxKeyConfiguration, config)
}

// FromContext extracts service configuration from the supplied context if any exist.
func FromContext[T any](ctx context.Context) T {
	if cfg, ok := ctx.Value(ctxKeyConfiguration).(T); ok {
		return cfg
	}
	var zero T
	return zero
}

// FromEnv convenience method to process configs.
func FromEnv[T any]() (T, error) {
	return env.ParseAs[T]()
}

// FillEnv convenience method to fill a config object with environment data.
func FillEnv(v any) error {
	return env.Parse(v)
}

type ConfigurationDefault struct {
	LogLevel      string `envDefault:"info"                      env:"LOG_LEVEL"       yaml:"log_level"`
	LogTimeFormat string `envDefault:"2006-01-02T15:04:05Z07:00" env:"LOG_TIME_FORMAT" yaml:"log_time_format"`
	LogColored    bool   `envDefault:"true"                      env:"LOG_COLORED"     yaml:"log_colored"`

	LogShowStackTrace bool `envDefault:"false" env:"LOG_SHOW_STACK_TRACE" yaml:"log_show_stack_trace"`

	ServiceName        string `envDefault:"itoolpack" env:"SERVICE_NAME"        yaml:"service_name"`
	ServiceEnvironment string `envDefault:""          env:"SERVICE_ENVIRONMENT" yaml:"service_environment"`
	ServiceVersion     string `envDefault:""          env:"SERVICE_VERSION"     yaml:"service_version"`

	LocalesDir        string `envDefault:"locales" env:"LOCALES_DIR"        yaml:"locales_dir"`
	FallbackLanguage  string `envDefault:"en"      env:"FALLBACK_LANGUAGE"  yaml:"fallback_language"`
	PlaceholderPolicy string `envDefault:"strict"  env:"PLACEHOLDER_POLICY" yaml:"placeholder_policy"`

	WorkerPoolCapacity       int    `envDefault:"8"  env:"WORKER_POOL_CAPACITY"        yaml:"worker_pool_capacity"`
	WorkerPoolCount          int    `envDefault:"1"  env:"WORKER_POOL_COUNT"           yaml:"worker_pool_count"`
	WorkerPoolExpiryDuration string `envDefault:"1s" env:"WORKER_POOL_EXPIRY_DURATION" yaml:"worker_pool_expiry_duration"`
}

type ConfigurationService interface {
	Name() string
	Environment() string
	Version() string
}

var _ ConfigurationService = new(ConfigurationDefault)

func (c *ConfigurationDefault) Name() string {
	return c.ServiceName
}
func (c *ConfigurationDefault) Environment() string {
	return c.ServiceEnvironment
}
func (c *ConfigurationDefault) Version() string {
	return c.ServiceVersion
}

type ConfigurationLogLevel interface {
	LoggingLevel() string
	LoggingTimeFormat() string
	LoggingShowStackTrace() bool
	LoggingColored() bool
	LoggingLevelIsDebug() bool
}

var _ ConfigurationLogLevel = new(ConfigurationDefault)

func (c *ConfigurationDefault) LoggingLevel() string {
	return c.LogLevel
}

func (c *ConfigurationDefault) LoggingTimeFormat() string {
	return c.LogTimeFormat
}

func (c *ConfigurationDefault) LoggingColored() bool {
	return c.LogColored
}

func (c *ConfigurationDefault) LoggingShowStackTrace() bool {
	return c.LogShowStackTrace
}

func (c *ConfigurationDefault) LoggingLevelIsDebug() bool {
	return c.LoggingLevel() == "debug" || c.LoggingLevel() == "trace"
}

// ConfigurationLocalization describes where translation payloads live and how
// keyboard placeholders behave when the referenced variable is unset.
type ConfigurationLocalization interface {
	LocalesDirectory() string
	FallbackLanguageCode() string
	PlaceholderStrict() bool
}

var _ ConfigurationLocalization = new(ConfigurationDefault)

func (c *ConfigurationDefault) LocalesDirectory() string {
	if strings.TrimSpace(c.LocalesDir) == "" {
		return "locales"
	}
	return c.LocalesDir
}

func (c *ConfigurationDefault) FallbackLanguageCode() string {
	return strings.TrimSpace(c.FallbackLanguage)
}

// PlaceholderStrict reports whether unset placeholders fail the render.
// Anything other than "empty" is treated as strict.
func (c *ConfigurationDefault) PlaceholderStrict() bool {
	return !strings.EqualFold(strings.TrimSpace(c.PlaceholderPolicy), PlaceholderPolicyEmpty)
}

// ConfigurationWorkerPool sizes the pool that parses translation files.
type ConfigurationWorkerPool interface {
	GetCapacity() int
	GetCount() int
	GetExpiryDuration() time.Duration
}

var _ ConfigurationWorkerPool = new(ConfigurationDefault)

func (c *ConfigurationDefault) GetCapacity() int {
	return c.WorkerPoolCapacity
}

func (c *ConfigurationDefault) GetCount() int {
	return c.WorkerPoolCount
}

// GetExpiryDuration returns the idle expiry for pool workers, or one second
// when the configured value is blank or unparsable. A bad value is logged.
func (c *ConfigurationDefault) GetExpiryDuration() time.Duration {
	duration, err := c.ParseExpiryDuration()
	if err != nil {
		util.Log(context.Background()).WithError(err).
			WithField("value", c.WorkerPoolExpiryDuration).
			Warn("invalid worker pool expiry duration, using 1s")
		return time.Second
	}
	return duration
}

// ParseExpiryDuration parses WORKER_POOL_EXPIRY_DURATION. A blank value means
// the one second default.
func (c *ConfigurationDefault) ParseExpiryDuration() (time.Duration, error) {
	raw := strings.TrimSpace(c.WorkerPoolExpiryDuration)
	if raw == "" {
		return time.Second, nil
	}
	duration, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("worker pool expiry duration %q: %w", raw, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("worker pool expiry duration %q must be positive", raw)
	}
	return duration, nil
}
