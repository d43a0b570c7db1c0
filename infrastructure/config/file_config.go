package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type FileConfig struct {
	Recipients []RecipientConfig `yaml:"recipients"`
	Defaults   DefaultsConfig    `yaml:"defaults"`
	HTTP       FileHTTPConfig    `yaml:"http"`
}

// RecipientConfig is a statically configured route. Routes stored at
// runtime take precedence.
type RecipientConfig struct {
	Name  string `yaml:"name"`
	Route string `yaml:"route"`
}

// DefaultsConfig fills message attributes the caller left unset.
type DefaultsConfig struct {
	Username string `yaml:"username"`
	Icon     string `yaml:"icon"`
	Channel  string `yaml:"channel"`
}

type FileHTTPConfig struct {
	Timeout string `yaml:"timeout"`
}

func LoadFromFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *FileConfig) RouteFor(recipient string) string {
	for _, r := range c.Recipients {
		if r.Name == recipient {
			return r.Route
		}
	}
	return ""
}

func (c *FileConfig) DefaultUsername() string { return c.Defaults.Username }
func (c *FileConfig) DefaultIcon() string     { return c.Defaults.Icon }
func (c *FileConfig) DefaultChannel() string  { return c.Defaults.Channel }
