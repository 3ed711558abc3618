// Package tiers holds the difficulty-tier parameter tables that drive level
// generation. The numbers are hand-tuned, so they live in data: a built-in
// default progression that a YAML file can override per tier.
package tiers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"svw.info/tubesort/internal/domain"
)

// Params is one tier's generation profile.
type Params struct {
	Colors         int     `yaml:"colors" json:"colors"`
	TubesPerColor  int     `yaml:"tubesPerColor" json:"tubesPerColor"`
	EmptyTubes     int     `yaml:"emptyTubes" json:"emptyTubes"`
	Capacity       int     `yaml:"capacity" json:"capacity"`
	LockedFraction float64 `yaml:"lockedFraction" json:"lockedFraction"`
	// MinPar rejects trivially easy candidates; exact-par levels below it
	// are re-rolled.
	MinPar      int `yaml:"minPar" json:"minPar"`
	MaxAttempts int `yaml:"maxAttempts" json:"maxAttempts"`
	// SolverCeiling bounds the verifier's visited-state count.
	SolverCeiling int `yaml:"solverCeiling" json:"solverCeiling"`
	// MaxSolvableTubes is the filled-tube count above which exact
	// verification is cost-prohibitive and the generator estimates par.
	MaxSolvableTubes int `yaml:"maxSolvableTubes" json:"maxSolvableTubes"`
}

// FilledTubes returns the number of filled tubes the tier produces.
func (p Params) FilledTubes() int { return p.Colors * p.TubesPerColor }

func (p Params) validate(name string) error {
	if p.Colors < 2 || p.Colors > domain.MaxColors {
		return fmt.Errorf("tier %s: colors %d out of range [2,%d]", name, p.Colors, domain.MaxColors)
	}
	if p.TubesPerColor < 1 {
		return fmt.Errorf("tier %s: tubesPerColor %d < 1", name, p.TubesPerColor)
	}
	if p.Capacity < 2 {
		return fmt.Errorf("tier %s: capacity %d < 2", name, p.Capacity)
	}
	if p.EmptyTubes < 0 {
		return fmt.Errorf("tier %s: emptyTubes %d < 0", name, p.EmptyTubes)
	}
	if p.LockedFraction < 0 || p.LockedFraction > 1 {
		return fmt.Errorf("tier %s: lockedFraction %v out of range [0,1]", name, p.LockedFraction)
	}
	if p.MinPar < 0 {
		return fmt.Errorf("tier %s: minPar %d < 0", name, p.MinPar)
	}
	if p.MaxAttempts < 1 {
		return fmt.Errorf("tier %s: maxAttempts %d < 1", name, p.MaxAttempts)
	}
	if p.SolverCeiling < 0 {
		return fmt.Errorf("tier %s: solverCeiling %d < 0", name, p.SolverCeiling)
	}
	if p.MaxSolvableTubes < 0 {
		return fmt.Errorf("tier %s: maxSolvableTubes %d < 0", name, p.MaxSolvableTubes)
	}
	return nil
}

// Table maps difficulties to their parameters.
type Table struct {
	params map[domain.Difficulty]Params
}

// Default returns the built-in progression.
func Default() *Table {
	return &Table{params: map[domain.Difficulty]Params{
		domain.Easy:   {Colors: 3, TubesPerColor: 1, EmptyTubes: 2, Capacity: 4, MinPar: 4, MaxAttempts: 40, SolverCeiling: 150_000, MaxSolvableTubes: 8},
		domain.Medium: {Colors: 5, TubesPerColor: 1, EmptyTubes: 2, Capacity: 4, MinPar: 8, MaxAttempts: 40, SolverCeiling: 200_000, MaxSolvableTubes: 8},
		domain.Hard:   {Colors: 7, TubesPerColor: 1, EmptyTubes: 2, Capacity: 4, LockedFraction: 0.15, MinPar: 12, MaxAttempts: 40, SolverCeiling: 250_000, MaxSolvableTubes: 8},
		domain.Expert: {Colors: 8, TubesPerColor: 1, EmptyTubes: 2, Capacity: 4, LockedFraction: 0.25, MinPar: 16, MaxAttempts: 40, SolverCeiling: 300_000, MaxSolvableTubes: 8},
	}}
}

// For returns the parameters of a tier, falling back to Medium for unknown
// values.
func (t *Table) For(d domain.Difficulty) Params {
	if p, ok := t.params[d]; ok {
		return p
	}
	return t.params[domain.Medium]
}

var tierNames = map[string]domain.Difficulty{
	"easy":   domain.Easy,
	"medium": domain.Medium,
	"hard":   domain.Hard,
	"expert": domain.Expert,
}

type rawFile struct {
	Tiers map[string]yaml.Node `yaml:"tiers"`
}

// LoadFile parses a tier YAML file over the default table.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse overlays YAML tier entries on the defaults. Fields absent from an
// entry keep their default value; unknown tier names are an error.
func Parse(data []byte) (*Table, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}
	t := Default()
	for name, node := range raw.Tiers {
		d, ok := tierNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown tier %q", name)
		}
		p := t.params[d]
		if err := node.Decode(&p); err != nil {
			return nil, fmt.Errorf("tier %s: %w", name, err)
		}
		if err := p.validate(name); err != nil {
			return nil, err
		}
		t.params[d] = p
	}
	return t, nil
}
