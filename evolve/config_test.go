package evolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	shape := cfg.Shape()
	assert.Equal(t, "49-34-3", shape.String())
	assert.Equal(t, 1768, shape.WeightCount())
	assert.Equal(t, 2, cfg.Population.EffectiveRetainBest())
	assert.Equal(t, DefaultLeaderboardSize, cfg.Tournament.LeaderboardSize)
}

func TestEffectiveRetainBest(t *testing.T) {
	cases := []struct {
		popSize, retain, want int
	}{
		{16, 0, 2},
		{100, 0, 10},
		{5, 0, 2},
		{100, 7, 7},
	}
	for _, c := range cases {
		pc := PopulationConfig{PopSize: c.popSize, RetainBest: c.retain}
		assert.Equal(t, c.want, pc.EffectiveRetainBest(), "pop %d retain %d", c.popSize, c.retain)
	}
}

func TestLoadConfigINI(t *testing.T) {
	path := writeConfig(t, "run.ini", `
# population parameters
[Population]
pop_size = 30
gene_size = 1800
retain_best = 5
seed = 1234

[Network]
output_keys = action index accept_improper_knock

[Tournament]
workers = 4
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Population.PopSize)
	assert.Equal(t, 1800, cfg.Population.GeneSize)
	assert.Equal(t, 5, cfg.Population.EffectiveRetainBest())
	assert.Equal(t, int64(1234), cfg.Population.Seed)
	assert.Equal(t, 4, cfg.Tournament.Workers)
	assert.Equal(t, []string{"action", "index", "accept_improper_knock"}, cfg.Network.OutputKeys)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 2.0, cfg.Population.GenerationOffset)
	assert.Equal(t, DefaultMutationRate, cfg.Population.MutationRate)
	assert.Equal(t, 11, cfg.Network.HandInputs)
	assert.Equal(t, 10, cfg.Tournament.LeaderboardSize)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "run.yaml", `
population:
  pop_size: 12
  mutation_rate: 0.01
network:
  hand_inputs: 11
  num_hidden: 20
tournament:
  leaderboard_size: 3
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Population.PopSize)
	assert.Equal(t, 0.01, cfg.Population.MutationRate)
	assert.Equal(t, 3, cfg.Tournament.LeaderboardSize)
	assert.Equal(t, "49-20-3", cfg.Shape().String())
	assert.Equal(t, 2000, cfg.Population.GeneSize)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "bad.ini", `
[Population]
gene_size = 100
`)
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero population":      func(c *Config) { c.Population.PopSize = 0 },
		"zero genes":           func(c *Config) { c.Population.GeneSize = 0 },
		"retain above pop":     func(c *Config) { c.Population.RetainBest = 17 },
		"derived retain above": func(c *Config) { c.Population.PopSize = 1 },
		"offset of one":        func(c *Config) { c.Population.GenerationOffset = 1 },
		"mutation above one":   func(c *Config) { c.Population.MutationRate = 1.5 },
		"empty hand feed":      func(c *Config) { c.Network.HandInputs = 0 },
		"negative hidden":      func(c *Config) { c.Network.NumHidden = -1 },
		"duplicate output":     func(c *Config) { c.Network.OutputKeys = []string{"action", "action", "index"} },
		"missing output":       func(c *Config) { c.Network.OutputKeys = []string{"action", "index"} },
		"genome below weights": func(c *Config) { c.Population.GeneSize = 1767 },
		"negative workers":     func(c *Config) { c.Tournament.Workers = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
		})
	}
}
