package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	homedir "github.com/mitchellh/go-homedir"
	yaml "gopkg.in/yaml.v3"
)

// Formats lists the accepted values of output-format.
var Formats = []string{"raw", "hex", "escaped", "json"}

// Keys lists the settings that can be changed with Set.
var Keys = []string{"output-format", "carrier", "verbose"}

type Config struct {
	OutputFormat string `yaml:"output-format,omitempty"`
	Carrier      string `yaml:"carrier,omitempty"`
	Verbose      bool   `yaml:"verbose,omitempty"`
	// configPath is the file path used for reading and writing this config.
	configPath string `yaml:"-"`
}

// Path returns the file this config is read from and written to.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) Set(key, value string) error {
	switch key {
	case "output-format":
		if !validFormat(value) {
			return fmt.Errorf("invalid output-format %q, must be one of: raw, hex, escaped, json", value)
		}
		c.OutputFormat = value
	case "carrier":
		c.Carrier = value
	case "verbose":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid verbose value %q: %w", value, err)
		}
		c.Verbose = v
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func (c *Config) Write() error {
	configPath := c.configPath
	if configPath == "" {
		var err error
		configPath, err = getDefaultConfigPath()
		if err != nil {
			return err
		}
	}
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(configDir, "config.*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmpFile.Name()

	encoder := yaml.NewEncoder(tmpFile)
	if err := encoder.Encode(c); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp config file: %w", err)
	}
	c.configPath = configPath
	return nil
}

// ReadConfig loads the config at cfgPath, or the default path if empty. A
// missing default file yields an empty config. When the file exists but is
// invalid, the returned Config still carries its path next to the error.
func ReadConfig(cfgPath string) (c Config, err error) {
	resolvedPath, err := resolveConfigPath(cfgPath)
	if err != nil {
		return Config{}, err
	}

	file, err := os.OpenFile(resolvedPath, os.O_RDONLY, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{configPath: resolvedPath}, nil
		}
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()
	decoder := yaml.NewDecoder(file)
	err = decoder.Decode(&c)
	if err != nil && !errors.Is(err, io.EOF) {
		// Keep the path so a caller can still overwrite the broken file.
		return Config{configPath: resolvedPath}, fmt.Errorf("decode config: %w", err)
	}
	c.configPath = resolvedPath
	if c.OutputFormat != "" && !validFormat(c.OutputFormat) {
		return c, fmt.Errorf("invalid output-format %q in %s", c.OutputFormat, resolvedPath)
	}
	return c, nil
}

func validFormat(v string) bool {
	return slices.Contains(Formats, v)
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func resolveConfigPath(cfgPath string) (string, error) {
	if cfgPath == "" {
		return getDefaultConfigPath()
	}
	expanded, err := homedir.Expand(cfgPath)
	if err != nil {
		return "", fmt.Errorf("expand config path: %w", err)
	}
	if !fileExists(expanded) {
		return "", fmt.Errorf("config file %q does not exist", cfgPath)
	}
	return expanded, nil
}

func getDefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}

	return filepath.Join(home, ".invis", "config"), nil
}
