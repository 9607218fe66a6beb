// Package config loads the server configuration from YAML.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

const defaultShutdownGrace = 10 * time.Second

// Config is the root of the YAML document.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Form    FormConfig    `yaml:"form"`
	Theme   ThemeConfig   `yaml:"theme"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr          string `yaml:"addr"`
	BasePath      string `yaml:"base_path"`
	ShutdownGrace string `yaml:"shutdown_grace"`
}

type FormConfig struct {
	Title          string `yaml:"title"`
	RoutePath      string `yaml:"route_path"`
	LiveValidation bool   `yaml:"live_validation"`
	Stylesheet     string `yaml:"stylesheet"`
	InlineStyles   bool   `yaml:"inline_styles"`
	// TemplatesDir replaces the embedded templates. It must hold the same
	// templates/*.tmpl names.
	TemplatesDir string `yaml:"templates_dir"`
}

type ThemeConfig struct {
	Name    string            `yaml:"name"`
	Variant string            `yaml:"variant"`
	Tokens  map[string]string `yaml:"tokens"`
	CSSVars map[string]string `yaml:"css_vars"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          ":8383",
			BasePath:      "/",
			ShutdownGrace: defaultShutdownGrace.String(),
		},
		Form: FormConfig{
			Title:          "Contact Form",
			RoutePath:      "/contact",
			LiveValidation: true,
			InlineStyles:   true,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// CONTACTFORM_ADDR and CONTACTFORM_LOG_LEVEL override the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("CONTACTFORM_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("CONTACTFORM_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	if c.Server.ShutdownGrace != "" {
		if _, err := time.ParseDuration(c.Server.ShutdownGrace); err != nil {
			return fmt.Errorf("config: server.shutdown_grace: %w", err)
		}
	}
	if dir := strings.TrimSpace(c.Form.TemplatesDir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("config: form.templates_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("config: form.templates_dir: %s is not a directory", dir)
		}
	}
	return nil
}

// ShutdownTimeout parses Server.ShutdownGrace, falling back to ten seconds.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownGrace)
	if err != nil || d <= 0 {
		return defaultShutdownGrace
	}
	return d
}

// RendererTheme converts the theme section for the HTML renderer. It
// returns nil when no theme is configured.
func (c *Config) RendererTheme() *theme.RendererConfig {
	t := c.Theme
	if t.Name == "" && t.Variant == "" && len(t.Tokens) == 0 && len(t.CSSVars) == 0 {
		return nil
	}
	return &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		Tokens:  copyMap(t.Tokens),
		CSSVars: copyMap(t.CSSVars),
	}
}

func copyMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
