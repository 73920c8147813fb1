// Package config loads pipeline settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
}

// DatasetConfig locates the race results.
type DatasetConfig struct {
	Path      string `yaml:"path"      env:"DATASET_PATH"      env-default:"data/dataset.csv"`
	Separator string `yaml:"separator" env:"DATASET_SEPARATOR" env-default:";"`
}

// AnalysisConfig tunes the analysis steps.
type AnalysisConfig struct {
	Seed           uint64 `yaml:"seed"            env:"ANON_SEED"            env-default:"42"`
	Dorsal         int    `yaml:"dorsal"          env:"ANALYSIS_DORSAL"      env-default:"1000"`
	Club           string `yaml:"club"            env:"ANALYSIS_CLUB"        env-default:"UCSC"`
	ComposeUnicode bool   `yaml:"compose_unicode" env:"CLUB_COMPOSE_UNICODE" env-default:"false"`
	FullFolding    bool   `yaml:"full_folding"    env:"CLUB_FULL_FOLDING"    env-default:"false"`
	HeadRows       int    `yaml:"head_rows"       env:"REPORT_HEAD_ROWS"     env-default:"5"`
	PreviewRows    int    `yaml:"preview_rows"    env:"REPORT_PREVIEW_ROWS"  env-default:"15"`
	TopClubs       int    `yaml:"top_clubs"       env:"REPORT_TOP_CLUBS"     env-default:"10"`
}

// OutputConfig controls where results go.
type OutputConfig struct {
	ImageDir string `yaml:"image_dir" env:"OUTPUT_IMAGE_DIR" env-default:"img"`
	Format   string `yaml:"format"    env:"OUTPUT_FORMAT"    env-default:"text"`
}

// LogConfig controls the logger.
type LogConfig struct {
	File string `yaml:"file" env:"LOG_FILE"`
	JSON bool   `yaml:"json" env:"LOG_JSON" env-default:"false"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	MaxRequestSize int `yaml:"max_request_size" env:"SERVER_MAX_REQUEST_SIZE" env-default:"1048576"`
}

// Formats accepted by OutputConfig.Format.
var Formats = []string{"text", "json", "yaml"}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is path, else CONFIG_PATH, else "./config.yaml".
// A missing file is only an error when the path was given explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if !explicit {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Dataset.Path == "" {
		errs = append(errs, errors.New("dataset.path is required"))
	}
	if utf8.RuneCountInString(c.Dataset.Separator) != 1 {
		errs = append(errs, fmt.Errorf("dataset.separator must be a single character, got %q", c.Dataset.Separator))
	}
	if !slices.Contains(Formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of %v, got %q", Formats, c.Output.Format))
	}
	if c.Analysis.Club == "" {
		errs = append(errs, errors.New("analysis.club is required"))
	}
	if c.Analysis.HeadRows < 0 || c.Analysis.PreviewRows < 0 || c.Analysis.TopClubs < 0 {
		errs = append(errs, errors.New("report row limits must not be negative"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	return errors.Join(errs...)
}

// SeparatorRune returns the dataset separator as a rune.
func (c *Config) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Dataset.Separator)
	return r
}
