package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"amplify/internal/algorithm"
)

// Config is the application's configuration model. Constructed once at
// startup and passed by value into the packages that need it.
type Config struct {
	Account     AccountConfig     `yaml:"account"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Display     DisplayConfig     `yaml:"display"`
	Profile     ProfileConfig     `yaml:"profile"`
	LLM         LLMConfig         `yaml:"llm"`
	Storage     StorageConfig     `yaml:"storage"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type AccountConfig struct {
	Username string `yaml:"username"`
}

type CredentialsConfig struct {
	// X/Twitter API bearer token. If empty, read from env X_BEARER_TOKEN
	BearerToken string `yaml:"bearerToken"`
}

// ScoringConfig groups the 19 signals into 5 categories and weights the
// categories into the overall score. Both tables are overridable from YAML.
type ScoringConfig struct {
	Categories      map[string][]string `yaml:"categories"`
	CategoryWeights map[string]float64  `yaml:"categoryWeights"`
}

type DisplayConfig struct {
	// Width of the score bars in terminal cells
	BarWidth int `yaml:"barWidth"`
	// Signals shown in the default (non-verbose) breakdown
	TopSignals     int  `yaml:"topSignals"`
	ShowAllSignals bool `yaml:"showAllSignals"`
}

type ProfileConfig struct {
	// Recent tweets fetched per profile build
	MaxTweets int `yaml:"maxTweets"`
	// Top tweets kept for style context
	TopTweets int `yaml:"topTweets"`
	// Profile cache freshness window
	CacheTTLHours float64 `yaml:"cacheTTLHours"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai" or "none"
	Model    string `yaml:"model"`
	// If empty, read from env OPENAI_API_KEY
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"`
	// Variations generated per optimization round
	MaxVariations int `yaml:"maxVariations"`
}

type StorageConfig struct {
	DBPath string `yaml:"dbPath"`
}

type MetricsConfig struct {
	// Listen address for the optional /metrics server, e.g. ":9090".
	// Empty disables the server.
	Addr string `yaml:"addr"`
}

// Category names. The safety category inverts its members.
const (
	CategoryEngagement      = "engagement"
	CategoryDiscoverability = "discoverability"
	CategoryShareability    = "shareability"
	CategoryContentQuality  = "content_quality"
	CategorySafety          = "safety"
)

// CategoryOrder is the display and summation order for category reports.
var CategoryOrder = []string{
	CategoryEngagement,
	CategoryDiscoverability,
	CategoryShareability,
	CategoryContentQuality,
	CategorySafety,
}

// ConfigurationError reports an invalid scoring configuration. Raised once
// at load time, never per scoring call.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Account:     AccountConfig{Username: ""},
		Credentials: CredentialsConfig{BearerToken: ""},
		Scoring: ScoringConfig{
			Categories:      DefaultCategories(),
			CategoryWeights: DefaultCategoryWeights(),
		},
		Display: DisplayConfig{BarWidth: 24, TopSignals: 8},
		Profile: ProfileConfig{MaxTweets: 50, TopTweets: 5, CacheTTLHours: 24},
		LLM: LLMConfig{
			Provider:      "none",
			Model:         "gpt-4o-mini",
			BaseURL:       "https://api.openai.com/v1",
			MaxVariations: 3,
		},
		Storage: StorageConfig{DBPath: "./amplify.db"},
	}
}

// DefaultCategories maps every signal into exactly one category.
func DefaultCategories() map[string][]string {
	return map[string][]string{
		CategoryEngagement: {
			string(algorithm.Favorite),
			string(algorithm.Reply),
			string(algorithm.Repost),
			string(algorithm.Quote),
		},
		CategoryDiscoverability: {
			string(algorithm.ProfileClick),
			string(algorithm.FollowAuthor),
			string(algorithm.Click),
			string(algorithm.QuotedClick),
		},
		CategoryShareability: {
			string(algorithm.Share),
			string(algorithm.ShareViaDM),
			string(algorithm.ShareViaCopyLink),
		},
		CategoryContentQuality: {
			string(algorithm.Dwell),
			string(algorithm.DwellTime),
			string(algorithm.PhotoExpand),
			string(algorithm.VideoView),
		},
		CategorySafety: {
			string(algorithm.NotInterested),
			string(algorithm.BlockAuthor),
			string(algorithm.MuteAuthor),
			string(algorithm.Report),
		},
	}
}

// DefaultCategoryWeights sums to 1.0 across the 5 categories.
func DefaultCategoryWeights() map[string]float64 {
	return map[string]float64{
		CategoryEngagement:      0.35,
		CategoryDiscoverability: 0.20,
		CategoryShareability:    0.25,
		CategoryContentQuality:  0.15,
		CategorySafety:          0.05,
	}
}

// ResolveEnv fills in credential fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Credentials.BearerToken == "" {
		c.Credentials.BearerToken = os.Getenv("X_BEARER_TOKEN")
	}
	if c.LLM.APIKey == "" && c.LLM.Provider == "openai" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// Validate checks the scoring tables against the signal catalog.
func (c *Config) Validate() error {
	if len(c.Scoring.Categories) != len(CategoryOrder) {
		return &ConfigurationError{
			Reason: fmt.Sprintf("expected %d categories, got %d", len(CategoryOrder), len(c.Scoring.Categories)),
		}
	}
	seen := map[string]string{}
	for _, name := range CategoryOrder {
		members, ok := c.Scoring.Categories[name]
		if !ok {
			return &ConfigurationError{Reason: "missing category " + name}
		}
		if len(members) == 0 {
			return &ConfigurationError{Reason: "empty category " + name}
		}
		for _, m := range members {
			if !algorithm.Known(algorithm.Signal(m)) {
				return &ConfigurationError{
					Reason: fmt.Sprintf("category %s references unknown signal %q", name, m),
				}
			}
			if prev, dup := seen[m]; dup {
				return &ConfigurationError{
					Reason: fmt.Sprintf("signal %q appears in both %s and %s", m, prev, name),
				}
			}
			seen[m] = name
		}
	}
	sum := 0.0
	for name, w := range c.Scoring.CategoryWeights {
		if _, ok := c.Scoring.Categories[name]; !ok {
			return &ConfigurationError{Reason: "weight for unknown category " + name}
		}
		if w < 0 {
			return &ConfigurationError{Reason: "negative weight for category " + name}
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return &ConfigurationError{
			Reason: fmt.Sprintf("category weights sum to %g, want 1.0", sum),
		}
	}
	return nil
}

// Load reads YAML config from path, backfills defaults, resolves env
// credentials, and validates the scoring tables.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	cfg.ResolveEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyDefaults backfills zero-valued sections so a minimal YAML file works.
func (c *Config) applyDefaults() {
	def := Default()
	if len(c.Scoring.Categories) == 0 {
		c.Scoring.Categories = def.Scoring.Categories
	}
	if len(c.Scoring.CategoryWeights) == 0 {
		c.Scoring.CategoryWeights = def.Scoring.CategoryWeights
	}
	if c.Display.BarWidth == 0 {
		c.Display.BarWidth = def.Display.BarWidth
	}
	if c.Display.TopSignals == 0 {
		c.Display.TopSignals = def.Display.TopSignals
	}
	if c.Profile.MaxTweets == 0 {
		c.Profile.MaxTweets = def.Profile.MaxTweets
	}
	if c.Profile.TopTweets == 0 {
		c.Profile.TopTweets = def.Profile.TopTweets
	}
	if c.Profile.CacheTTLHours == 0 {
		c.Profile.CacheTTLHours = def.Profile.CacheTTLHours
	}
	if c.LLM.Model == "" {
		c.LLM.Model = def.LLM.Model
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = def.LLM.BaseURL
	}
	if c.LLM.MaxVariations == 0 {
		c.LLM.MaxVariations = def.LLM.MaxVariations
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = def.Storage.DBPath
	}
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
