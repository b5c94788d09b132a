package config

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// EnvPrefix is the prefix for environment variables read by Load.
const EnvPrefix = "RRDIG_"

// AppConfig holds the settings for a single rr-dig query.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Timeout is the per-attempt receive timeout in seconds.
	Timeout float64 `koanf:"timeout" validate:"gt=0"`

	// MaxRetries is the total number of send attempts, including the first.
	MaxRetries int `koanf:"max_retries" validate:"gte=1"`

	// Port is the server's UDP port.
	Port int `koanf:"port" validate:"gte=1,lte=65535"`

	Type string `koanf:"type" validate:"required,query_type"`

	// Server is the IPv4 address of the DNS server, in dotted-quad form.
	Server string `koanf:"server" validate:"required,dotted_quad"`

	Name string `koanf:"name" validate:"required"`
}

// DEFAULT_APP_CONFIG holds the values used when neither the environment nor
// the command line set a field.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:        "prod",
	LogLevel:   "warn",
	Timeout:    5,
	MaxRetries: 3,
	Port:       53,
	Type:       "A",
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *AppConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

// QueryType returns the configured query type. It panics only if called on
// a config that did not pass validation.
func (c *AppConfig) QueryType() domain.RRType {
	t := domain.RRTypeFromString(c.Type)
	if t == 0 {
		panic(fmt.Sprintf("config: unvalidated query type %q", c.Type))
	}
	return t
}

// ServerAddr returns the server as host:port.
func (c *AppConfig) ServerAddr() string {
	return net.JoinHostPort(c.Server, strconv.Itoa(c.Port))
}

// validDottedQuad accepts only four-part IPv4 literals such as 192.0.2.1.
func validDottedQuad(fl validator.FieldLevel) bool {
	addr, err := netip.ParseAddr(fl.Field().String())
	return err == nil && addr.Is4()
}

func validQueryType(fl validator.FieldLevel) bool {
	return domain.RRTypeFromString(fl.Field().String()) != 0
}

// envLoader loads RRDIG_* variables, lowercasing keys and stripping the prefix.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

var registerValidation = func(v *validator.Validate) error {
	if err := v.RegisterValidation("dotted_quad", validDottedQuad); err != nil {
		return err
	}
	return v.RegisterValidation("query_type", validQueryType)
}

// Load layers defaults, then the environment, then overrides, and validates
// the result. Overrides are keyed by koanf tag and typically come from the
// command line; nil means none.
func Load(overrides map[string]any) (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("error loading overrides: %w", err)
		}
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Type = strings.ToUpper(cfg.Type)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
