package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"podtopics/internal/boundary"
	"podtopics/internal/premerge"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type     string                `yaml:"type"`
	NGramMax int                   `yaml:"ngram_max"`
	OpenAI   *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// PreMergeConfig configures the short-segment merge pass.
type PreMergeConfig struct {
	MinDuration float64 `yaml:"min_duration"`
	MinChars    int     `yaml:"min_chars"`
}

// BoundaryConfig selects and tunes the boundary detection strategy.
type BoundaryConfig struct {
	Strategy            string   `yaml:"strategy"`
	SimilarityThreshold float64  `yaml:"similarity_threshold"`
	DropThreshold       float64  `yaml:"drop_threshold"`
	MinTopicDuration    float64  `yaml:"min_topic_duration"`
	MinSegments         int      `yaml:"min_segments"`
	StdFactor           float64  `yaml:"std_factor"`
	SmoothWindow        int      `yaml:"smooth_window"`
	WindowSize          int      `yaml:"window_size"`
	TilingThreshold     float64  `yaml:"tiling_threshold"`
	MinVotes            int      `yaml:"min_votes"`
	ConsensusStrategies []string `yaml:"consensus_strategies,omitempty"`
}

// GeneratorConfig configures the optional chat-completion generator.
type GeneratorConfig struct {
	Type        string `yaml:"type"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EnricherConfig configures topic enrichment.
type EnricherConfig struct {
	TopKeywords int             `yaml:"top_keywords"`
	Workers     int             `yaml:"workers"`
	Generator   GeneratorConfig `yaml:"generator"`
}

// StoreConfig configures the optional SQLite topic store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder EmbedderConfig `yaml:"embedder"`
	PreMerge PreMergeConfig `yaml:"pre_merge"`
	Boundary BoundaryConfig `yaml:"boundary"`
	Enricher EnricherConfig `yaml:"enricher"`
	Store    StoreConfig    `yaml:"store"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/podtopics/config.yaml.
// If neither exists, it writes defaults to ~/.config/podtopics/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "podtopics", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Embedder: EmbedderConfig{Type: "tfidf"},
		PreMerge: PreMergeConfig{
			MinDuration: premerge.DefaultMinDuration,
			MinChars:    premerge.DefaultMinChars,
		},
		Boundary: boundaryDefaults(),
		Enricher: EnricherConfig{
			TopKeywords: 5,
			Workers:     4,
			Generator:   GeneratorConfig{Type: "none"},
		},
	}
	return cfg
}

func boundaryDefaults() BoundaryConfig {
	d := boundary.DefaultConfig()
	return BoundaryConfig{
		Strategy:            d.Strategy,
		SimilarityThreshold: d.SimilarityThreshold,
		DropThreshold:       d.DropThreshold,
		MinTopicDuration:    d.MinTopicDuration,
		MinSegments:         d.MinSegments,
		StdFactor:           d.StdFactor,
		SmoothWindow:        d.SmoothWindow,
		WindowSize:          d.WindowSize,
		TilingThreshold:     d.TilingThreshold,
		MinVotes:            d.MinVotes,
		ConsensusStrategies: d.ConsensusStrategies,
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.PreMerge.MinDuration == 0 {
		cfg.PreMerge.MinDuration = premerge.DefaultMinDuration
	}
	if cfg.PreMerge.MinChars == 0 {
		cfg.PreMerge.MinChars = premerge.DefaultMinChars
	}

	d := boundaryDefaults()
	if cfg.Boundary.Strategy == "" {
		cfg.Boundary.Strategy = d.Strategy
	}
	if cfg.Boundary.SimilarityThreshold == 0 {
		cfg.Boundary.SimilarityThreshold = d.SimilarityThreshold
	}
	if cfg.Boundary.DropThreshold == 0 {
		cfg.Boundary.DropThreshold = d.DropThreshold
	}
	if cfg.Boundary.MinTopicDuration == 0 {
		cfg.Boundary.MinTopicDuration = d.MinTopicDuration
	}
	if cfg.Boundary.MinSegments == 0 {
		cfg.Boundary.MinSegments = d.MinSegments
	}
	if cfg.Boundary.StdFactor == 0 {
		cfg.Boundary.StdFactor = d.StdFactor
	}
	if cfg.Boundary.SmoothWindow == 0 {
		cfg.Boundary.SmoothWindow = d.SmoothWindow
	}
	if cfg.Boundary.WindowSize == 0 {
		cfg.Boundary.WindowSize = d.WindowSize
	}
	if cfg.Boundary.TilingThreshold == 0 {
		cfg.Boundary.TilingThreshold = d.TilingThreshold
	}
	if cfg.Boundary.MinVotes == 0 {
		cfg.Boundary.MinVotes = d.MinVotes
	}
	if len(cfg.Boundary.ConsensusStrategies) == 0 {
		cfg.Boundary.ConsensusStrategies = d.ConsensusStrategies
	}

	if cfg.Enricher.TopKeywords == 0 {
		cfg.Enricher.TopKeywords = 5
	}
	if cfg.Enricher.Workers == 0 {
		cfg.Enricher.Workers = 4
	}
	if cfg.Enricher.Generator.Type == "" {
		cfg.Enricher.Generator.Type = "none"
	}
	if cfg.Enricher.Generator.Type == "openai" {
		if cfg.Enricher.Generator.BaseURL == "" {
			cfg.Enricher.Generator.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Enricher.Generator.APIKeyEnv == "" {
			cfg.Enricher.Generator.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Enricher.Generator.Model == "" {
			cfg.Enricher.Generator.Model = "gpt-4.1-mini"
		}
		if cfg.Enricher.Generator.TimeoutSecs == 0 {
			cfg.Enricher.Generator.TimeoutSecs = 60
		}
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
}

// BoundaryDetectorConfig converts the YAML boundary section into the
// detector's config type.
func (c *AppConfig) BoundaryDetectorConfig() boundary.Config {
	return boundary.Config{
		Strategy:            c.Boundary.Strategy,
		SimilarityThreshold: c.Boundary.SimilarityThreshold,
		DropThreshold:       c.Boundary.DropThreshold,
		MinTopicDuration:    c.Boundary.MinTopicDuration,
		MinSegments:         c.Boundary.MinSegments,
		StdFactor:           c.Boundary.StdFactor,
		SmoothWindow:        c.Boundary.SmoothWindow,
		WindowSize:          c.Boundary.WindowSize,
		TilingThreshold:     c.Boundary.TilingThreshold,
		MinVotes:            c.Boundary.MinVotes,
		ConsensusStrategies: c.Boundary.ConsensusStrategies,
	}
}
