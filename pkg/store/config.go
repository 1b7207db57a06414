package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config resolves where the card store lives on disk.
type Config interface {
	BasePath() string
}

// LoadConfig reads an optional .kioku config file and the KIOKU_*
// environment, defaulting the store path to ~/.kioku.db.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.kioku.db")
	viper.SetConfigName(".kioku") // .yaml is implicit
	viper.SetEnvPrefix("KIOKU")
	viper.AutomaticEnv()

	if override := os.Getenv("KIOKU_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand store path: %w", err)
	}

	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
