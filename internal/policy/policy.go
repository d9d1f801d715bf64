// Package policy classifies ports against a declared allocation policy. The
// policy is an explicit value handed to callers at call time; there is no
// process-wide singleton.
package policy

import (
	"fmt"

	"github.com/homelab-infra/portscope/pkg/model"
)

// RangeRule assigns a category to a closed port range. Rules are evaluated
// in declaration order.
type RangeRule struct {
	Category model.Category `yaml:"category"`
	Low      int            `yaml:"low"`
	High     int            `yaml:"high"`
}

func (r RangeRule) contains(port int) bool {
	return port >= r.Low && port <= r.High
}

// Policy is the declared port-allocation table. Exact infrastructure ports
// take precedence over range rules, so a well-known port reassigned outside
// its usual range is still tagged correctly when explicitly declared.
type Policy struct {
	InfrastructurePorts []int       `yaml:"infrastructure_ports"`
	Ranges              []RangeRule `yaml:"ranges"`

	// Ephemeral is the OS-reported range, attached per pass via
	// WithEphemeral. It is consulted after every declared rule.
	Ephemeral *RangeRule `yaml:"-"`
}

// Default returns the built-in allocation table.
func Default() Policy {
	return Policy{
		InfrastructurePorts: nil,
		Ranges: []RangeRule{
			{Category: model.CategorySystem, Low: 0, High: 1023},
			{Category: model.CategoryWebEntry, Low: 8080, High: 8099},
			{Category: model.CategoryApplication, Low: 8100, High: 8299},
		},
	}
}

// WithEphemeral returns a copy of the policy that also recognizes the
// OS-reported ephemeral range.
func (p Policy) WithEphemeral(low, high int) Policy {
	p.Ephemeral = &RangeRule{Category: model.CategoryEphemeral, Low: low, High: high}
	return p
}

// Validate rejects out-of-range ports and inverted ranges.
func (p Policy) Validate() error {
	for _, port := range p.InfrastructurePorts {
		if port < 0 || port > 65535 {
			return fmt.Errorf("infrastructure port %d out of range", port)
		}
	}
	for _, r := range p.Ranges {
		if r.Low < 0 || r.High > 65535 || r.Low > r.High {
			return fmt.Errorf("range %d-%d (%s) invalid", r.Low, r.High, r.Category)
		}
		switch r.Category {
		case model.CategorySystem, model.CategoryInfrastructure, model.CategoryWebEntry,
			model.CategoryApplication, model.CategoryEphemeral:
		default:
			return fmt.Errorf("unknown category %q", r.Category)
		}
	}
	return nil
}

// Classify tags one port. Order: declared infrastructure ports, then range
// rules in declaration order, then the ephemeral range. A port no rule
// contains is unclassified, which is a signal for triage, not an error.
func (p Policy) Classify(port int) model.Category {
	for _, declared := range p.InfrastructurePorts {
		if declared == port {
			return model.CategoryInfrastructure
		}
	}
	for _, r := range p.Ranges {
		if r.contains(port) {
			return r.Category
		}
	}
	if p.Ephemeral != nil && p.Ephemeral.contains(port) {
		return model.CategoryEphemeral
	}
	return model.CategoryUnclassified
}
