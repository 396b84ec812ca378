package config

import (
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout" default:"5s"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseDriver            string        `koanf:"database_driver" default:"sqlite" validate:"oneof=sqlite postgres"`
	DatabaseFilePath          string        `koanf:"database_file_path" validate:"required_if=DatabaseDriver sqlite"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries" default:"5" validate:"min=0"`
	DatabaseURL               string        `koanf:"database_url" validate:"required_if=DatabaseDriver postgres"`
	Hostname                  string        `koanf:"-"`
	SeedAdminPassword         string        `koanf:"seed_admin_password" default:"admin123"`
	SeedAdminUsername         string        `koanf:"seed_admin_username" default:"admin"`
	SeedBooksFile             string        `koanf:"seed_books_file"`
	ServerHost                string        `koanf:"server_host" default:"0.0.0.0"`
	ServerPort                int           `koanf:"server_port" default:"5000" validate:"min=0,max=65535"`
}

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "/config/library.yaml"
)

// New loads the configuration from its defaults, then the development
// overrides when ENVIRONMENT=development, then the YAML config file (if it
// exists), then environment variables. Later sources win.
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	err = k.Load(env.Provider("", ".", strings.ToLower), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}
	if os.Getenv(environmentENV) == "development" {
		loadDevelopmentConfig(cfg)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}
	cfg.Hostname = hostname

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a configuration backed by an in-memory SQLite database.
func NewForTest() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerHost = "127.0.0.1"
	cfg.DatabaseConnectRetryCount = 1
	cfg.DatabaseConnectRetryDelay = 0
	return cfg
}

func validate(cfg *Config) error {
	v := validator.New()
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.WithStack(err)
	}

	missing := []string{}
	invalid := []string{}
	for _, fe := range verrs {
		key := toSnakeCase(fe.StructField())
		switch fe.Tag() {
		case "required", "required_if":
			missing = append(missing, strings.ToUpper(key)+" ("+key+")")
		default:
			invalid = append(invalid, key)
		}
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return errors.Errorf("invalid config: %s", strings.Join(invalid, ", "))
}

func toSnakeCase(field string) string {
	f, ok := reflect.TypeOf(Config{}).FieldByName(field)
	if ok {
		if tag := f.Tag.Get("koanf"); tag != "" && tag != "-" {
			return tag
		}
	}
	return strcase.ToSnake(field)
}
