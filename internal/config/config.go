// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceFile = "file"
	SourceHTTP = "http"
)

// Defaults applied to fields left empty in site.yaml.
const (
	DefaultTemplate     = "default"
	DefaultContentDir   = "content"
	DefaultPageSize     = 12
	DefaultDiagramTheme = "default"
	DefaultCodeStyle    = "github"
)

// SiteConfig holds the configuration from the site.yaml file.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	BaseURL     string `yaml:"baseurl"`
	Description string `yaml:"description"`
	Template    string `yaml:"template"`

	Source   SourceConfig  `yaml:"source"`
	Media    MediaConfig   `yaml:"media"`
	Posts    PostsConfig   `yaml:"posts"`
	Diagrams DiagramConfig `yaml:"diagrams"`
	Code     CodeConfig    `yaml:"code"`
	Math     MathConfig    `yaml:"math"`

	// Sanitize runs rendered rich text through the HTML sanitizer. It is a
	// pointer so that an absent key means true.
	Sanitize *bool `yaml:"sanitize"`
}

// SourceConfig selects where documents come from: JSON files under Dir or
// the CMS REST API at URL.
type SourceConfig struct {
	Kind   string `yaml:"kind"`
	Dir    string `yaml:"dir"`
	URL    string `yaml:"url"`
	APIKey string `yaml:"apiKey"`
}

type MediaConfig struct {
	ServerURL string `yaml:"serverURL"`
}

type PostsConfig struct {
	PageSize int `yaml:"pageSize"`
}

type DiagramConfig struct {
	Theme string `yaml:"theme"`
}

type CodeConfig struct {
	Style string `yaml:"style"`
}

// MathConfig holds TeX macros applied to every formula, keyed by command
// name without the backslash.
type MathConfig struct {
	Macros map[string]string `yaml:"macros"`
}

// ShouldSanitize reports whether rendered HTML goes through the sanitizer.
func (c SiteConfig) ShouldSanitize() bool {
	return c.Sanitize == nil || *c.Sanitize
}

// LoadSiteConfig reads site.yaml, loads a .env file next to it if present,
// and lets ENSCRIBE_* environment variables override the file.
func LoadSiteConfig(path string) (SiteConfig, error) {
	cfg := SiteConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *SiteConfig) applyEnv() {
	if v := os.Getenv("ENSCRIBE_CMS_URL"); v != "" {
		c.Source.URL = v
		if c.Source.Kind == "" {
			c.Source.Kind = SourceHTTP
		}
	}
	if v := os.Getenv("ENSCRIBE_CMS_API_KEY"); v != "" {
		c.Source.APIKey = v
	}
	if v := os.Getenv("ENSCRIBE_MEDIA_URL"); v != "" {
		c.Media.ServerURL = v
	}
	if v := os.Getenv("ENSCRIBE_BASEURL"); v != "" {
		c.BaseURL = v
	}
}

func (c *SiteConfig) applyDefaults() {
	if c.Template == "" {
		c.Template = DefaultTemplate
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceFile
	}
	if c.Source.Dir == "" {
		c.Source.Dir = DefaultContentDir
	}
	if c.Media.ServerURL == "" && c.Source.Kind == SourceHTTP {
		c.Media.ServerURL = c.Source.URL
	}
	if c.Posts.PageSize <= 0 {
		c.Posts.PageSize = DefaultPageSize
	}
	if c.Diagrams.Theme == "" {
		c.Diagrams.Theme = DefaultDiagramTheme
	}
	if c.Code.Style == "" {
		c.Code.Style = DefaultCodeStyle
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Validate checks the settings that have no sensible default.
func (c SiteConfig) Validate() error {
	switch c.Source.Kind {
	case SourceFile:
	case SourceHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("source kind %q needs source.url or ENSCRIBE_CMS_URL", SourceHTTP)
		}
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	return nil
}
