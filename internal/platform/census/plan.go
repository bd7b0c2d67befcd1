// Package census loads declarative ward plans from YAML and replays them
// against a ward.Service.
//
// A plan looks like:
//
//	rooms: 2
//	steps:
//	  - admit: {id: 1, name: A, age: 30, condition: Critical, date: 01-01-2024}
//	  - discharge: 1
//	  - treat: true
package census

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ehr/ward/internal/domain/ward"
)

const (
	ActionAdmit     = "admit"
	ActionDischarge = "discharge"
	ActionTreat     = "treat"
)

type Plan struct {
	Rooms int    `yaml:"rooms"`
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	Admit     *AdmitStep `yaml:"admit,omitempty"`
	Discharge *int       `yaml:"discharge,omitempty"`
	Treat     bool       `yaml:"treat,omitempty"`
}

type AdmitStep struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name"`
	Age       int    `yaml:"age"`
	Condition string `yaml:"condition"`
	Date      string `yaml:"date"`
}

// Action names the step's action, or "" when the step sets none or several.
func (s Step) Action() string {
	var actions []string
	if s.Admit != nil {
		actions = append(actions, ActionAdmit)
	}
	if s.Discharge != nil {
		actions = append(actions, ActionDischarge)
	}
	if s.Treat {
		actions = append(actions, ActionTreat)
	}
	if len(actions) != 1 {
		return ""
	}
	return actions[0]
}

func Load(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("census plan is empty")
		}
		return nil, fmt.Errorf("decode census plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func LoadFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func Marshal(p *Plan) ([]byte, error) {
	return yaml.Marshal(p)
}

func (p *Plan) Validate() error {
	if p.Rooms < 0 {
		return fmt.Errorf("rooms must not be negative, got %d", p.Rooms)
	}
	for i, s := range p.Steps {
		switch s.Action() {
		case "":
			return fmt.Errorf("step %d: exactly one of admit, discharge or treat is required", i+1)
		case ActionAdmit:
			if _, err := ward.ParseCondition(s.Admit.Condition); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return nil
}
