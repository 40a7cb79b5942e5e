package config

import (
	"os"

	"github.com/spf13/viper"
)

const Version = "v0.3.0"

// Config is loaded from ~/.treenav.yaml. Every field has a default, so
// a missing config file is fine.
type Config struct {
	Sort           string `mapstructure:"sort"` // dirs-first, files-first, alphabetical
	HideFiles      bool   `mapstructure:"hide_files"`
	HideClosedDirs bool   `mapstructure:"hide_closed_dirs"`
	HideDotfiles   bool   `mapstructure:"hide_dotfiles"`
	Preview        bool   `mapstructure:"preview"`
	PreviewBytes   int    `mapstructure:"preview_bytes"`
	LogLevel       string `mapstructure:"log_level"`
	LogFile        string `mapstructure:"log_file"`
}

func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	viper.AddConfigPath(home)
	viper.SetConfigName(".treenav")
	viper.SetConfigType("yaml")

	viper.SetDefault("sort", "dirs-first")
	viper.SetDefault("hide_files", false)
	viper.SetDefault("hide_closed_dirs", false)
	viper.SetDefault("hide_dotfiles", false)
	viper.SetDefault("preview", true)
	viper.SetDefault("preview_bytes", 64*1024)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found; defaults apply.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
