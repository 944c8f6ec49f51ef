package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds report tool configuration loaded from YAML and env.
type Config struct {
	DataDir    string
	FilePrefix string

	Delimiter rune
	Columns   Columns

	Color string // "auto", "always" or "never"

	MetricsTextfile string
}

// Columns names the header column for each numeric field.
type Columns struct {
	MaxTemperature string
	MinTemperature string
	MaxHumidity    string
	MeanHumidity   string
}

type fileConfig struct {
	Data struct {
		Dir        string `yaml:"dir"`
		FilePrefix string `yaml:"file_prefix"`
	} `yaml:"data"`

	Parser struct {
		Delimiter string `yaml:"delimiter"`
		Columns   struct {
			MaxTemperature string `yaml:"max_temperature"`
			MinTemperature string `yaml:"min_temperature"`
			MaxHumidity    string `yaml:"max_humidity"`
			MeanHumidity   string `yaml:"mean_humidity"`
		} `yaml:"columns"`
	} `yaml:"parser"`

	Output struct {
		Color string `yaml:"color"`
	} `yaml:"output"`

	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
}

// Load reads configuration. path names the YAML file explicitly (it must exist);
// when empty, WEATHERMAN_CONFIG is tried, then config/{ENV_NAME}.yaml (default dev)
// under the working directory, and built-in defaults apply if that file is absent.
// A .env file in the working directory is loaded first if present.
// WEATHERMAN_DATA_DIR, WEATHERMAN_FILE_PREFIX and WEATHERMAN_METRICS_TEXTFILE
// override the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("WEATHERMAN_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		env := os.Getenv("ENV_NAME")
		if env == "" {
			env = "dev"
		}
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("config: get working directory: %w", err)
		}
		path = filepath.Join(cwd, "config", env+".yaml")
	}

	var fc fileConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	case os.IsNotExist(err) && !explicit:
		// defaults only
	case os.IsNotExist(err):
		return nil, fmt.Errorf("config file not found: %s", path)
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	cfg.DataDir = envOr("WEATHERMAN_DATA_DIR", fc.Data.Dir)
	if cfg.DataDir == "" {
		cfg.DataDir = "weatherfiles"
	}
	cfg.FilePrefix = envOr("WEATHERMAN_FILE_PREFIX", fc.Data.FilePrefix)
	if cfg.FilePrefix == "" {
		cfg.FilePrefix = "Murree_weather"
	}

	delim := fc.Parser.Delimiter
	if delim == "" {
		delim = ","
	}
	if utf8.RuneCountInString(delim) != 1 {
		return nil, fmt.Errorf("parser.delimiter must be a single character, got %q", delim)
	}
	cfg.Delimiter, _ = utf8.DecodeRuneInString(delim)

	cfg.Columns = Columns{
		MaxTemperature: orDefault(fc.Parser.Columns.MaxTemperature, "Max TemperatureC"),
		MinTemperature: orDefault(fc.Parser.Columns.MinTemperature, "Min TemperatureC"),
		MaxHumidity:    orDefault(fc.Parser.Columns.MaxHumidity, "Max Humidity"),
		MeanHumidity:   orDefault(fc.Parser.Columns.MeanHumidity, "Mean Humidity"),
	}

	cfg.Color = strings.TrimSpace(strings.ToLower(fc.Output.Color))
	if cfg.Color == "" {
		cfg.Color = "auto"
	}

	cfg.MetricsTextfile = envOr("WEATHERMAN_METRICS_TEXTFILE", fc.Metrics.Textfile)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envOr returns the trimmed env value for key, or fallback (trimmed) when unset.
func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}

// orDefault returns s unless it is blank after trimming. Column names are not
// trimmed here; the parser trims them when binding the header.
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// validate performs post-load validation of configuration values.
func validate(cfg *Config) error {
	switch cfg.Delimiter {
	case '\n', '\r', '"', utf8.RuneError:
		return fmt.Errorf("parser.delimiter %q is not allowed", cfg.Delimiter)
	}
	switch cfg.Color {
	case "auto", "always", "never":
		// valid
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", cfg.Color)
	}
	return nil
}
