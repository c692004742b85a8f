package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GEN_ROOT_MARKER.
const EnvPrefix = "GEN"

type Config struct {
	Logger struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logger"`

	Root struct {
		Marker string `mapstructure:"marker"` // empty sentinel file name
	} `mapstructure:"root"`

	Scan struct {
		Pattern  string   `mapstructure:"pattern"`
		SkipDirs []string `mapstructure:"skip_dirs"`
	} `mapstructure:"scan"`

	Output struct {
		Dir string `mapstructure:"dir"` // relative to the working directory
	} `mapstructure:"output"`

	Templates struct {
		Dir       string `mapstructure:"dir"` // relative to the root
		Separator string `mapstructure:"separator"`
	} `mapstructure:"templates"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("root.marker", ".gen_root")
	v.SetDefault("scan.pattern", "*.sql")
	v.SetDefault("scan.skip_dirs", []string{".git"})
	v.SetDefault("output.dir", "")
	v.SetDefault("templates.dir", "")
	v.SetDefault("templates.separator", ".")
}

// New loads the YAML file at path (optional) on top of the defaults.
// ${VAR} references are expanded from a .env file next to the config,
// then from the process environment. GEN_* variables override any key.
func New(fs afero.Fs, path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		raw, err := afero.ReadFile(fs, path)
		if err != nil {
			return Config{}, err
		}
		vars, err := dotenv(fs, filepath.Join(filepath.Dir(path), ".env"))
		if err != nil {
			return Config{}, err
		}
		// expand data variables
		data := os.Expand(string(raw), func(key string) string {
			if val, ok := vars[key]; ok {
				return val
			}
			return os.Getenv(key)
		})

		v.SetConfigType("yaml")
		if err := v.ReadConfig(strings.NewReader(data)); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func dotenv(fs afero.Fs, path string) (map[string]string, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	vars, err := godotenv.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return vars, nil
}
