// Package scenario loads and replays recorded peer-bag exchanges. A scenario
// file describes one relation and a sequence of peer updates; replaying it
// against an in-memory bag store shows which typed events a provider would
// raise, which makes interface changes reviewable without a live runtime.
package scenario

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/databag/pkg/errors"
)

// Step is one peer-bag mutation followed by a change notification.
type Step struct {
	// Set merges keys into the peer bag before the notification.
	Set map[string]string `yaml:"set"`

	// Unset removes keys from the peer bag before the notification.
	Unset []string `yaml:"unset"`
}

// Scenario describes a replayable exchange on a single relation.
type Scenario struct {
	// Flavor selects the provider: database, kafka, or zookeeper.
	Flavor string `yaml:"flavor"`

	// Relation is the relation id; defaults to 1.
	Relation int `yaml:"relation"`

	// App is the peer application name; required.
	App string `yaml:"app"`

	// Unit is the acting peer unit, optional.
	Unit string `yaml:"unit"`

	// Leader controls whether the replaying replica holds leadership.
	// Defaults to true, since a follower replay raises no events at all.
	Leader *bool `yaml:"leader"`

	// Steps are applied and notified in order.
	Steps []Step `yaml:"steps"`
}

// IsLeader reports the scenario's leadership setting.
func (s *Scenario) IsLeader() bool {
	return s.Leader == nil || *s.Leader
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	if sc.Relation == 0 {
		sc.Relation = 1
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) validate() error {
	switch s.Flavor {
	case "database", "kafka", "zookeeper":
	case "":
		return errors.NewValidationError("flavor", s.Flavor, "cannot be empty")
	default:
		return errors.NewValidationError("flavor", s.Flavor, "must be database, kafka, or zookeeper")
	}
	if s.App == "" {
		return errors.NewValidationError("app", s.App, "cannot be empty")
	}
	if len(s.Steps) == 0 {
		return errors.NewValidationError("steps", nil, "cannot be empty")
	}
	return nil
}
