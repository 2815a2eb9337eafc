package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	BasicAuth BasicAuthConfig `mapstructure:"basic_auth"`
	AMQP      AMQPConfig      `mapstructure:"amqp"`
}

type AppConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port" validate:"min=1,max=65535"`
	Timezone    string `mapstructure:"timezone" validate:"required"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Driver     string `mapstructure:"driver" validate:"required,oneof=mysql sqlite"`
	Host       string `mapstructure:"host" validate:"required_if=Driver mysql"`
	Port       int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name" validate:"required_if=Driver mysql"`
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
}

// RedisConfig - Empty Addr runs the board with in-process notifications
// only (single instance).
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret" validate:"required,min=8"`
	TTL    time.Duration `mapstructure:"ttl" validate:"min=1m"`
}

// BasicAuthConfig - Protects /internal. Empty User disables those routes.
type BasicAuthConfig struct {
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass" validate:"required_with=User"`
}

// AMQPConfig - Empty URL disables event publishing.
type AMQPConfig struct {
	URL string `mapstructure:"url"`
}

// Env names are flat (APP_PORT, DB_HOST...) so every key is bound
// explicitly instead of relying on a prefix/replacer.
var bindings = []struct {
	key, env string
	def      any
}{
	{"app.host", "APP_HOST", "0.0.0.0"},
	{"app.port", "APP_PORT", 8080},
	{"app.timezone", "DOCK_TIMEZONE", "America/Bogota"},
	{"app.cors_origins", "CORS_ORIGINS", "*"},
	{"database.driver", "DB_DRIVER", "sqlite"},
	{"database.host", "DB_HOST", "127.0.0.1"},
	{"database.port", "DB_PORT", 3306},
	{"database.user", "DB_USER", "root"},
	{"database.password", "DB_PASSWORD", ""},
	{"database.name", "DB_NAME", "turnero"},
	{"database.sqlite_path", "SQLITE_PATH", "turnero.db"},
	{"redis.addr", "REDIS_ADDR", ""},
	{"redis.password", "REDIS_PASSWORD", ""},
	{"redis.db", "REDIS_DB", 0},
	{"jwt.secret", "JWT_SECRET", ""},
	{"jwt.ttl", "JWT_TTL", "12h"},
	{"basic_auth.user", "BASIC_AUTH_USER", ""},
	{"basic_auth.pass", "BASIC_AUTH_PASS", ""},
	{"amqp.url", "AMQP_URL", ""},
}

// Load - .env first, then environment over defaults, then validation.
func Load() (*Config, error) {
	LoadEnv()

	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", b.env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func Validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, fmt.Sprintf("%s failed %s (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return errors.New(strings.Join(messages, "; "))
}
