package evolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/baldhumanity/ginevolve/nn"
	"github.com/baldhumanity/ginevolve/strategy"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// ErrConfiguration is shared with the nn package so callers can test for one sentinel.
var ErrConfiguration = nn.ErrConfiguration

// Config stores the parameters of an evolutionary run.
type Config struct {
	Population PopulationConfig `yaml:"population"`
	Network    NetworkConfig    `yaml:"network"`
	Tournament TournamentConfig `yaml:"tournament"`
}

// PopulationConfig holds the size of the population and its breeding parameters.
type PopulationConfig struct {
	PopSize          int     `ini:"pop_size" yaml:"pop_size"`
	GeneSize         int     `ini:"gene_size" yaml:"gene_size"`
	RetainBest       int     `ini:"retain_best" yaml:"retain_best"`             // 0 derives max(2, 10% of pop_size)
	GenerationOffset float64 `ini:"generation_offset" yaml:"generation_offset"` // Ranking denominator offset
	MutationRate     float64 `ini:"mutation_rate" yaml:"mutation_rate"`
	Seed             int64   `ini:"seed" yaml:"seed"` // 0 seeds from the clock
}

// NetworkConfig describes the feeds a decoded network reads and the outputs it exposes.
type NetworkConfig struct {
	HandInputs  int      `ini:"hand_inputs" yaml:"hand_inputs"`
	TableInputs int      `ini:"table_inputs" yaml:"table_inputs"`
	MatchInputs int      `ini:"match_inputs" yaml:"match_inputs"`
	NumHidden   int      `ini:"num_hidden" yaml:"num_hidden"` // 0 applies the two-thirds rule
	OutputKeys  []string `ini:"output_keys" delim:" " yaml:"output_keys"`
}

// TournamentConfig holds parameters of the round-robin evaluation.
type TournamentConfig struct {
	Workers         int `ini:"workers" yaml:"workers"` // <= 1 runs matches sequentially
	LeaderboardSize int `ini:"leaderboard_size" yaml:"leaderboard_size"`
}

// DefaultConfig returns the parameters used when no file overrides them.
func DefaultConfig() *Config {
	return &Config{
		Population: PopulationConfig{
			PopSize:          16,
			GeneSize:         2000,
			GenerationOffset: 2,
			MutationRate:     DefaultMutationRate,
		},
		Network: NetworkConfig{
			HandInputs:  11,
			TableInputs: 5,
			MatchInputs: 33,
			OutputKeys:  append([]string(nil), strategy.OutputKeys...),
		},
		Tournament: TournamentConfig{
			Workers:         1,
			LeaderboardSize: DefaultLeaderboardSize,
		},
	}
}

// LoadConfig loads parameters from an INI file, or from YAML when the path ends in
// .yaml or .yml. Keys absent from the file keep their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
	default:
		cfg, err := ini.LoadSources(ini.LoadOptions{
			IgnoreInlineComment:         true,
			UnescapeValueCommentSymbols: true,
		}, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
		}
		if err := cfg.Section("Population").MapTo(&config.Population); err != nil {
			return nil, fmt.Errorf("failed to map [Population] section: %w", err)
		}
		if err := cfg.Section("Network").MapTo(&config.Network); err != nil {
			return nil, fmt.Errorf("failed to map [Network] section: %w", err)
		}
		if err := cfg.Section("Tournament").MapTo(&config.Tournament); err != nil {
			return nil, fmt.Errorf("failed to map [Tournament] section: %w", err)
		}
	}

	for i, key := range config.Network.OutputKeys {
		config.Network.OutputKeys[i] = cleanIniString(key)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the parameters for consistency. Every error wraps ErrConfiguration.
func (c *Config) Validate() error {
	p := c.Population
	if p.PopSize <= 0 {
		return fmt.Errorf("%w: pop_size must be positive", ErrConfiguration)
	}
	if p.GeneSize <= 0 {
		return fmt.Errorf("%w: gene_size must be positive", ErrConfiguration)
	}
	if p.RetainBest < 0 {
		return fmt.Errorf("%w: retain_best cannot be negative", ErrConfiguration)
	}
	if r := p.EffectiveRetainBest(); r > p.PopSize {
		return fmt.Errorf("%w: retain_best %d exceeds pop_size %d", ErrConfiguration, r, p.PopSize)
	}
	// A child ranked in the generation it was bred for sits one generation in the future.
	if p.GenerationOffset <= 1 {
		return fmt.Errorf("%w: generation_offset must be greater than 1, got %v", ErrConfiguration, p.GenerationOffset)
	}
	if p.MutationRate < 0 || p.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate must be between 0 and 1", ErrConfiguration)
	}

	n := c.Network
	if n.HandInputs <= 0 || n.TableInputs <= 0 || n.MatchInputs <= 0 {
		return fmt.Errorf("%w: hand_inputs, table_inputs and match_inputs must be positive", ErrConfiguration)
	}
	if n.NumHidden < 0 {
		return fmt.Errorf("%w: num_hidden cannot be negative", ErrConfiguration)
	}
	seen := make(map[string]bool, len(n.OutputKeys))
	for _, key := range n.OutputKeys {
		if key == "" || seen[key] {
			return fmt.Errorf("%w: output_keys must be distinct and non-empty: %v", ErrConfiguration, n.OutputKeys)
		}
		seen[key] = true
	}
	for _, key := range strategy.OutputKeys {
		if !seen[key] {
			return fmt.Errorf("%w: output_keys is missing %q", ErrConfiguration, key)
		}
	}

	shape := c.Shape()
	if err := shape.Validate(); err != nil {
		return err
	}
	if p.GeneSize < shape.WeightCount() {
		return fmt.Errorf("%w: gene_size %d is smaller than the %d weights of a %s network",
			ErrConfiguration, p.GeneSize, shape.WeightCount(), shape)
	}

	if c.Tournament.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative", ErrConfiguration)
	}
	if c.Tournament.LeaderboardSize < 0 {
		return fmt.Errorf("%w: leaderboard_size cannot be negative", ErrConfiguration)
	}
	return nil
}

// Shape derives the network layer sizes from the feed widths and output keys.
func (c *Config) Shape() nn.Shape {
	inputs := c.Network.HandInputs + c.Network.TableInputs + c.Network.MatchInputs
	if c.Network.NumHidden > 0 {
		return nn.Shape{Inputs: inputs, Hidden: c.Network.NumHidden, Outputs: len(c.Network.OutputKeys)}
	}
	return nn.CanonicalShape(inputs, len(c.Network.OutputKeys))
}

// EffectiveRetainBest returns retain_best, or max(2, 10% of pop_size) when it is unset.
func (c *PopulationConfig) EffectiveRetainBest() int {
	if c.RetainBest > 0 {
		return c.RetainBest
	}
	return max(2, int(float64(c.PopSize)*0.10))
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
