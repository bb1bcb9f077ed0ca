// Package simulation holds the configuration and record types shared by the
// harness, the aggregator, and the output adapters.
package simulation

import (
	"fmt"

	"ballotlab/domain/core"
	"ballotlab/domain/election"
)

// ModelKind names a voter-preference generation model.
type ModelKind string

const (
	// ModelImpartialCulture draws each voter's ranking uniformly from all
	// candidate permutations.
	ModelImpartialCulture ModelKind = "impartial_culture"
	// ModelSpatial places voters and candidates in an ideological space and
	// ranks candidates by noisy distance.
	ModelSpatial ModelKind = "spatial"
)

// Distribution names supported by the spatial model's position sampling.
const (
	DistributionNormal  = "normal"
	DistributionUniform = "uniform"
)

// SpatialParams configures the spatial model.
type SpatialParams struct {
	// Dimensions of the ideological space.
	Dimensions int `json:"dimensions" toml:"dimensions"`
	// Distribution positions are drawn from: normal(0,1) or uniform(-1,1)
	// per dimension.
	Distribution string `json:"distribution" toml:"distribution"`
	// Noise is the standard deviation of the Gaussian perturbation added to
	// each voter-candidate distance before ranking, modelling imperfect
	// information. Zero means voters rank by true distance.
	Noise float64 `json:"noise" toml:"noise"`
}

// GeneratorConfig fully determines a generated profile together with a seed.
type GeneratorConfig struct {
	Voters     int       `json:"voters" toml:"voters"`
	Candidates int       `json:"candidates" toml:"candidates"`
	Model      ModelKind `json:"model" toml:"model"`

	// Format is the ballot format the generator emits. Models produce an
	// underlying ranking which is shaped into the requested format.
	Format election.BallotFormat `json:"format" toml:"format"`
	// ApprovalTopK is how many top-ranked candidates an approval ballot
	// approves.
	ApprovalTopK int `json:"approval_top_k" toml:"approval_top_k"`
	// ScoreRange bounds emitted score ballots.
	ScoreRange election.ScoreRange `json:"score_range" toml:"score_range"`

	Spatial SpatialParams `json:"spatial" toml:"spatial"`
}

// Normalized fills defaults without touching the receiver.
func (c GeneratorConfig) Normalized() GeneratorConfig {
	if c.Model == "" {
		c.Model = ModelImpartialCulture
	}
	if c.Format == "" {
		c.Format = election.FormatRanking
	}
	if c.ApprovalTopK == 0 {
		c.ApprovalTopK = 1
	}
	if c.ScoreRange == (election.ScoreRange{}) {
		c.ScoreRange = election.DefaultScoreRange
	}
	if c.Spatial.Dimensions == 0 {
		c.Spatial.Dimensions = 2
	}
	if c.Spatial.Distribution == "" {
		c.Spatial.Distribution = DistributionNormal
	}
	return c
}

// Validate rejects configurations the generator cannot honor. Called before
// any trial runs.
func (c GeneratorConfig) Validate() error {
	c = c.Normalized()
	if c.Voters <= 0 {
		return core.NewInvalidConfigurationError("voters", "must be positive")
	}
	if c.Candidates <= 0 {
		return core.NewInvalidConfigurationError("candidates", "must be positive")
	}
	switch c.Model {
	case ModelImpartialCulture, ModelSpatial:
	default:
		return core.NewInvalidConfigurationError("model", fmt.Sprintf("unknown model kind %q", c.Model))
	}
	switch c.Format {
	case election.FormatRanking, election.FormatScore, election.FormatApproval:
	default:
		return core.NewInvalidConfigurationError("format", fmt.Sprintf("unknown ballot format %q", c.Format))
	}
	if c.Format == election.FormatApproval && (c.ApprovalTopK < 1 || c.ApprovalTopK >= c.Candidates) {
		return core.NewInvalidConfigurationError("approval_top_k", "must be in [1, candidates)")
	}
	if c.ScoreRange.Max <= c.ScoreRange.Min {
		return core.NewInvalidConfigurationError("score_range", "max must exceed min")
	}
	if c.Model == ModelSpatial {
		if c.Spatial.Dimensions <= 0 {
			return core.NewInvalidConfigurationError("spatial.dimensions", "must be positive")
		}
		switch c.Spatial.Distribution {
		case DistributionNormal, DistributionUniform:
		default:
			return core.NewInvalidConfigurationError("spatial.distribution", fmt.Sprintf("unknown distribution %q", c.Spatial.Distribution))
		}
		if c.Spatial.Noise < 0 {
			return core.NewInvalidConfigurationError("spatial.noise", "must be non-negative")
		}
	}
	return nil
}

// RunConfig configures a full simulation run.
type RunConfig struct {
	Generator GeneratorConfig `json:"generator" toml:"generator"`
	Seed      int64           `json:"seed" toml:"seed"`
	Trials    int             `json:"trials" toml:"trials"`
	// Methods are registry names to tally each trial with.
	Methods []string `json:"methods" toml:"methods"`
	// Workers bounds parallel trials. Zero means runtime.NumCPU.
	Workers int `json:"workers" toml:"workers"`
	// KeepProfiles retains each trial's generated profile on its record for
	// inspection. Off by default: profiles dominate memory at large N.
	KeepProfiles bool `json:"keep_profiles" toml:"keep_profiles"`

	// Completion picks the Condorcet cycle-resolution sub-method:
	// "schulze" (default) or "none".
	Completion string `json:"completion" toml:"completion"`
	// CommitteeSize and Apportionment configure the proportional approval
	// method when requested.
	CommitteeSize int    `json:"committee_size" toml:"committee_size"`
	Apportionment string `json:"apportionment" toml:"apportionment"`
}

// Validate rejects run configurations before any trial is dispatched.
func (c RunConfig) Validate() error {
	if err := c.Generator.Validate(); err != nil {
		return err
	}
	if c.Trials <= 0 {
		return core.NewInvalidConfigurationError("trials", "must be positive")
	}
	if len(c.Methods) == 0 {
		return core.NewInvalidConfigurationError("methods", "at least one method is required")
	}
	if c.Workers < 0 {
		return core.NewInvalidConfigurationError("workers", "must be non-negative")
	}
	return nil
}
