// Package tree contains the entity resolution and family-graph
// consistency engine: reference resolution, duplicate-parent merging,
// subject scheduling, fact validation, and the per-subject growth cycle
// that ties them together.
package tree

import (
	"math/rand"
	"time"

	"github.com/aerugo/ancestral-vision/pkg/ai"
	"github.com/aerugo/ancestral-vision/pkg/ratelimit"
	"github.com/aerugo/ancestral-vision/pkg/store"
)

// Config holds the engine tunables. Zero values are replaced by the
// defaults from DefaultConfig.
type Config struct {
	// MinParentAge is the youngest plausible age at a child's birth.
	MinParentAge int
	// MaxParentAge plus 20 years is the warning threshold for old parents.
	MaxParentAge int
	// MaxLifespan in years; longer lifespans are flagged as warnings.
	MaxLifespan int
	// MaxCorrectionAttempts bounds the validation feedback loop.
	MaxCorrectionAttempts int
	// FireProbability is the chance a sampling weight gets randomly
	// perturbed during subject selection.
	FireProbability float64
	// SeedYearMin and SeedYearMax bound the birth year of synthesized
	// seed persons.
	SeedYearMin int
	SeedYearMax int
	// ReferenceYearFloor is the earliest birth year accepted on a
	// mentioned-person reference.
	ReferenceYearFloor int
	// MaxRetries bounds transient-failure retries on oracle calls.
	MaxRetries int
	// BiographyWordCount is the target narrative length.
	BiographyWordCount int
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() Config {
	return Config{
		MinParentAge:          14,
		MaxParentAge:          60,
		MaxLifespan:           120,
		MaxCorrectionAttempts: 2,
		FireProbability:       0.3,
		SeedYearMin:           1850,
		SeedYearMax:           1950,
		ReferenceYearFloor:    1000,
		MaxRetries:            3,
		BiographyWordCount:    1000,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MinParentAge == 0 {
		c.MinParentAge = def.MinParentAge
	}
	if c.MaxParentAge == 0 {
		c.MaxParentAge = def.MaxParentAge
	}
	if c.MaxLifespan == 0 {
		c.MaxLifespan = def.MaxLifespan
	}
	if c.MaxCorrectionAttempts == 0 {
		c.MaxCorrectionAttempts = def.MaxCorrectionAttempts
	}
	if c.FireProbability == 0 {
		c.FireProbability = def.FireProbability
	}
	if c.SeedYearMin == 0 {
		c.SeedYearMin = def.SeedYearMin
	}
	if c.SeedYearMax == 0 {
		c.SeedYearMax = def.SeedYearMax
	}
	if c.ReferenceYearFloor == 0 {
		c.ReferenceYearFloor = def.ReferenceYearFloor
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = def.MaxRetries
	}
	if c.BiographyWordCount == 0 {
		c.BiographyWordCount = def.BiographyWordCount
	}
	return c
}

// Engine composes the resolver, merge engine, scheduler, and validation
// loop around a FamilyStore and an oracle client. The engine processes
// one subject at a time; it is not safe for concurrent use.
//
// An Engine should be created using NewEngine.
type Engine struct {
	store   store.FamilyStore
	oracle  ai.OracleClient
	limiter *ratelimit.Limiter
	cfg     Config
	rand    *rand.Rand
}

// NewEngineParams configures a new Engine. Rand may be nil; a
// time-seeded source is used then.
type NewEngineParams struct {
	Store   store.FamilyStore
	Oracle  ai.OracleClient
	Limiter *ratelimit.Limiter
	Config  Config
	Rand    *rand.Rand
}

// NewEngine creates an engine with the given collaborators.
func NewEngine(params NewEngineParams) *Engine {
	rng := params.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		store:   params.Store,
		oracle:  params.Oracle,
		limiter: params.Limiter,
		cfg:     params.Config.withDefaults(),
		rand:    rng,
	}
}
