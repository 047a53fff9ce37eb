package app

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/scrub/pkg/constants"
)

// Config holds the CLI configuration assembled from flags, environment
// variables, and .env files. Precedence: flag > env > default.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Repair configuration
	MaxIterations int
	Filler        string
	FillTimeout   time.Duration
	Changelog     string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig reads configuration from the environment. .env files load
// first so their values are visible to Viper; SCRUB_-prefixed
// variables override them.
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("scrub")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("max_iterations", constants.DefaultMaxIterations)
	v.SetDefault("filler", constants.DefaultFillerName)
	v.SetDefault("fill_timeout", constants.DefaultFillTimeout)
	v.SetDefault("changelog", constants.DefaultChangelogName)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		MaxIterations: v.GetInt("max_iterations"),
		Filler:        v.GetString("filler"),
		FillTimeout:   v.GetDuration("fill_timeout"),
		Changelog:     v.GetString("changelog"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

// UpdateFromFlags applies parsed persistent flag values, which take
// precedence over env and defaults.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads .env then .env.local, so local values win.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Overload(envFile)
	}
}
