// Package sandbox generates synthetic ward plans for demos and testing. A
// given seed always yields the same plan.
package sandbox

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ehr/ward/internal/domain/ward"
	"github.com/ehr/ward/internal/platform/census"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// SeedConfig controls the volume and shape of a generated plan.
type SeedConfig struct {
	Rooms                int     `json:"rooms"`
	Patients             int     `json:"patients"`
	CriticalRatio        float64 `json:"criticalRatio"`
	TreatProbability     float64 `json:"treatProbability"`
	DischargeProbability float64 `json:"dischargeProbability"`
	StartYear            int     `json:"startYear"`
	Seed                 int64   `json:"seed"`
}

// DefaultSeedConfig returns a SeedConfig with sensible demo defaults.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Rooms:                10,
		Patients:             25,
		CriticalRatio:        0.3,
		TreatProbability:     0.4,
		DischargeProbability: 0.35,
		StartYear:            2024,
	}
}

func (c SeedConfig) Validate() error {
	if c.Rooms < 0 {
		return fmt.Errorf("rooms must not be negative, got %d", c.Rooms)
	}
	if c.Patients < 0 {
		return fmt.Errorf("patients must not be negative, got %d", c.Patients)
	}
	for name, p := range map[string]float64{
		"criticalRatio":        c.CriticalRatio,
		"treatProbability":     c.TreatProbability,
		"dischargeProbability": c.DischargeProbability,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, p)
		}
	}
	return nil
}

var (
	firstNames = []string{
		"James", "Robert", "John", "Michael", "David", "William", "Richard",
		"Joseph", "Thomas", "Charles", "Daniel", "Matthew", "Anthony",
		"Mary", "Patricia", "Jennifer", "Linda", "Barbara", "Elizabeth",
		"Susan", "Jessica", "Sarah", "Karen", "Lisa", "Nancy", "Emma",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
		"Miller", "Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson",
	}
)

// ---------------------------------------------------------------------------
// DataGenerator
// ---------------------------------------------------------------------------

// DataGenerator produces synthetic patient attributes from a seeded source.
type DataGenerator struct {
	rng *rand.Rand
}

func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *DataGenerator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *DataGenerator) chance(p float64) bool {
	return g.rng.Float64() < p
}

// Name returns "First Last".
func (g *DataGenerator) Name() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

func (g *DataGenerator) Age() int {
	return g.rng.Intn(95) + 1
}

// AdmissionDate returns a DD-MM-YYYY date within year.
func (g *DataGenerator) AdmissionDate(year int) string {
	m := 1 + g.rng.Intn(12)
	d := 1 + g.rng.Intn(28) // safe for all months
	return fmt.Sprintf("%02d-%02d-%04d", d, m, year)
}

// ---------------------------------------------------------------------------
// Seeder
// ---------------------------------------------------------------------------

type Seeder struct {
	generator *DataGenerator
	config    SeedConfig
}

// NewSeeder creates a Seeder. A zero Seed draws one from the clock.
func NewSeeder(config SeedConfig) *Seeder {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.StartYear == 0 {
		config.StartYear = DefaultSeedConfig().StartYear
	}
	return &Seeder{generator: NewDataGenerator(seed), config: config}
}

// Generate builds the plan: one admission per patient, each possibly
// followed by a treatment and a discharge of an earlier admission.
func (s *Seeder) Generate() (*census.Plan, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	plan := &census.Plan{Rooms: s.config.Rooms}
	var present []int
	for i := 1; i <= s.config.Patients; i++ {
		cond := ward.ConditionStable
		if s.generator.chance(s.config.CriticalRatio) {
			cond = ward.ConditionCritical
		}
		plan.Steps = append(plan.Steps, census.Step{Admit: &census.AdmitStep{
			ID:        i,
			Name:      s.generator.Name(),
			Age:       s.generator.Age(),
			Condition: string(cond),
			Date:      s.generator.AdmissionDate(s.config.StartYear),
		}})
		present = append(present, i)

		if s.generator.chance(s.config.TreatProbability) {
			plan.Steps = append(plan.Steps, census.Step{Treat: true})
		}
		if len(present) > 0 && s.generator.chance(s.config.DischargeProbability) {
			idx := s.generator.rng.Intn(len(present))
			id := present[idx]
			present = append(present[:idx], present[idx+1:]...)
			plan.Steps = append(plan.Steps, census.Step{Discharge: &id})
		}
	}
	return plan, nil
}
