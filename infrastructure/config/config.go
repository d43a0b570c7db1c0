package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Slack      SlackConfig
	Redis      RedisConfig
	ConfigPath string
}

type ServerConfig struct {
	Port     int
	LogLevel string
}

func (c *ServerConfig) Addr() string {
	return "0.0.0.0:" + strconv.Itoa(c.Port)
}

// SlackConfig configures the outbound HTTP client. APIURL is where token
// routes are posted; webhook routes supplied over the API must be https URLs
// on one of AllowedHosts.
type SlackConfig struct {
	APIURL       string
	HTTPTimeout  time.Duration
	AllowedHosts []string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func LoadFromEnv() (*Config, error) {
	serverPort, err := getEnvOrDefaultInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}

	redisDB, err := getEnvOrDefaultInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	httpTimeout, err := getEnvOrDefaultDuration("SLACK_HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     serverPort,
			LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Slack: SlackConfig{
			APIURL:       getEnvOrDefault("SLACK_API_URL", "https://slack.com/api/chat.postMessage"),
			HTTPTimeout:  httpTimeout,
			AllowedHosts: splitList(getEnvOrDefault("SLACK_ALLOWED_HOSTS", "hooks.slack.com")),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		ConfigPath: getEnvOrDefault("CONFIG_PATH", "/etc/slacknotifier/config.yaml"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyFileConfig applies settings from FileConfig if env variables are not set.
func (c *Config) ApplyFileConfig(fc *FileConfig) error {
	if os.Getenv("SLACK_HTTP_TIMEOUT") == "" && fc.HTTP.Timeout != "" {
		d, err := time.ParseDuration(fc.HTTP.Timeout)
		if err != nil {
			return fmt.Errorf("parse http.timeout=%q: %w", fc.HTTP.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("http.timeout must not be negative, got %s", d)
		}
		c.Slack.HTTPTimeout = d
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	u, err := url.Parse(c.Slack.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SLACK_API_URL must be an absolute http(s) URL, got %q", c.Slack.APIURL)
	}
	if c.Slack.HTTPTimeout < 0 {
		return fmt.Errorf("SLACK_HTTP_TIMEOUT must not be negative, got %s", c.Slack.HTTPTimeout)
	}
	if len(c.Slack.AllowedHosts) == 0 {
		return fmt.Errorf("SLACK_ALLOWED_HOSTS must list at least one host")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return i, nil
}

func getEnvOrDefaultDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
