package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("careerline version %s, commit %s, built at %s", version, commit, date)
}

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
	Storage StorageConfig `mapstructure:"storage"`
	Routes  RoutesConfig  `mapstructure:"routes"`
}

// APIConfig describes the platform backend reached by every resource client.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
}

// RequestTimeout parses the configured timeout, falling back to 30s.
func (c *APIConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

type LoggingConfig struct {
	Level             string `mapstructure:"level" yaml:"level"`
	Format            string `mapstructure:"format" yaml:"format"`
	OutputPath        string `mapstructure:"output_path" yaml:"output_path,omitempty"`
	DisableConsole    bool   `mapstructure:"disable_console" yaml:"disable_console,omitempty"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace" yaml:"disable_stacktrace,omitempty"`
}

// StorageConfig locates the durable credential store. An empty path keeps
// credentials in memory only.
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// RoutesConfig drives route classification and the two redirect targets.
type RoutesConfig struct {
	Login          string   `mapstructure:"login" yaml:"login"`
	Register       string   `mapstructure:"register" yaml:"register"`
	Landing        string   `mapstructure:"landing" yaml:"landing"`
	Public         []string `mapstructure:"public" yaml:"public"`
	PublicPatterns []string `mapstructure:"public_patterns" yaml:"public_patterns"`
}

// PreAuth reports whether the route is one of the pre-authentication pages.
func (c *RoutesConfig) PreAuth(route string) bool {
	return route == c.Login || route == c.Register
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.careerline.io",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			Path: "careerline.db",
		},
		Routes: RoutesConfig{
			Login:          "/login",
			Register:       "/register",
			Landing:        "/dashboard",
			Public:         []string{"/", "/login", "/register", "/jobs"},
			PublicPatterns: []string{`^/jobs/\d+$`},
		},
	}
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.String("api-base-url", "", "Base URL of the careerline API")
	pflag.String("storage-path", "", "Path to the credential database")
	// Note: no pflag.Parse() here as it's called in main.go
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("CAREERLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	defaults := Default()
	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.timeout", defaults.API.Timeout)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
	viper.SetDefault("storage.path", defaults.Storage.Path)
	viper.SetDefault("routes.login", defaults.Routes.Login)
	viper.SetDefault("routes.register", defaults.Routes.Register)
	viper.SetDefault("routes.landing", defaults.Routes.Landing)
	viper.SetDefault("routes.public", defaults.Routes.Public)
	viper.SetDefault("routes.public_patterns", defaults.Routes.PublicPatterns)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/careerline")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and environment cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Set overrides from flags or environment
	if baseURL := viper.GetString("api-base-url"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	if path := viper.GetString("storage-path"); path != "" {
		config.Storage.Path = path
	}

	if config.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url is required, please adjust the config or pass --api-base-url or CAREERLINE_API_BASE_URL environment variable")
	}

	return &config, nil
}
