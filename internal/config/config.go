package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"ballotlab/domain/simulation"
	"ballotlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Run      simulation.RunConfig `toml:"run"`
	Database DatabaseConfig       `toml:"database"`
	Report   ReportConfig         `toml:"report"`
	Server   ServerConfig         `toml:"server"`
}

// DatabaseConfig holds the optional result-ledger connection settings
type DatabaseConfig struct {
	// URL is the postgres DSN. Empty disables persistence.
	URL string `toml:"url"`
}

// ReportConfig holds report output settings
type ReportConfig struct {
	// ExcelFile is the xlsx output path. Empty disables the workbook.
	ExcelFile string `toml:"excel_file"`
}

// ServerConfig holds results dashboard settings
type ServerConfig struct {
	Port string `toml:"port"`
}

// Default returns the baseline configuration a run file or flags override.
func Default() Config {
	return Config{
		Run: simulation.RunConfig{
			Generator: simulation.GeneratorConfig{
				Voters:     100,
				Candidates: 5,
				Model:      simulation.ModelImpartialCulture,
			}.Normalized(),
			Seed:    42,
			Trials:  1000,
			Methods: []string{"plurality", "borda", "irv", "condorcet", "approval_top"},
		},
		Server: ServerConfig{Port: "8080"},
	}
}

// Load builds configuration from an optional TOML run file plus environment
// overrides. A missing .env file is not an error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}
	applyEnv(&cfg)

	if err := cfg.Run.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv layers environment variables over file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("BALLOTLAB_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Run.Seed = seed
		}
	}
	if v := os.Getenv("BALLOTLAB_TRIALS"); v != "" {
		if trials, err := strconv.Atoi(v); err == nil {
			cfg.Run.Trials = trials
		}
	}
}
