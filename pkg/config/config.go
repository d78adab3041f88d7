// Package config loads typed settings from the process environment. A dotenv
// file, when present, is exported into the environment first.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var ErrEnvFile = errors.New("env file could not be loaded")

// EnvFileVar names the variable that points at a dotenv file.
const EnvFileVar = "ENV_FILE"

// New fills a T from the environment using envconfig tags. The file named by
// ENV_FILE is loaded if set; otherwise ./.env is loaded when it exists.
func New[T any](prefix string) (*T, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}

	return &conf, nil
}

func loadEnvFile() error {
	if path := resolveEnvPath(); path != "" {
		if err := exportEnvironment(path); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrEnvFile, path, err)
		}
		return nil
	}
	if err := exportEnvironmentIfExists(".env"); err != nil {
		return fmt.Errorf("%w: .env: %v", ErrEnvFile, err)
	}
	return nil
}

func resolveEnvPath() string {
	return strings.TrimSpace(os.Getenv(EnvFileVar))
}

func exportEnvironmentIfExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportEnvironment(path)
}

// exportEnvironment never overrides a variable that is already set, so the
// real environment always wins over the file.
func exportEnvironment(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for k, val := range v.AllSettings() {
		key := strings.ToUpper(k)
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, fmt.Sprint(val)); err != nil {
			return err
		}
	}

	return nil
}
