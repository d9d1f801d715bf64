package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a policy file. Omitted sections fall back to the defaults, so a
// file declaring only infrastructure_ports keeps the built-in ranges.
//
//	infrastructure_ports: [1883, 5432]
//	ranges:
//	  - category: web_entry
//	    low: 8080
//	    high: 8099
func Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy: %w", err)
	}

	loaded := Policy{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}

	def := Default()
	if loaded.Ranges == nil {
		loaded.Ranges = def.Ranges
	}

	if err := loaded.Validate(); err != nil {
		return Policy{}, fmt.Errorf("policy %s: %w", path, err)
	}
	return loaded, nil
}
