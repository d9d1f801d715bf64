package model

// Category tags a PortRecord against the declared port-allocation policy.
type Category string

const (
	CategorySystem         Category = "system"
	CategoryInfrastructure Category = "infrastructure"
	CategoryWebEntry       Category = "web_entry"
	CategoryApplication    Category = "application"
	CategoryEphemeral      Category = "ephemeral"
	CategoryUnclassified   Category = "unclassified"
)

func (c Category) String() string {
	return string(c)
}

// PortRecord is the reconciled, policy-tagged unit of the report. It merges
// zero-or-one ListenEndpoint with zero-or-one PublishedPort that share a
// (bind_address, port, protocol) key. A record with neither source is invalid
// and is never emitted.
type PortRecord struct {
	Protocol    string `json:"protocol"`
	BindAddress string `json:"bind_address"`
	Port        int    `json:"port"`

	Listener  *ListenEndpoint `json:"listener,omitempty"`
	Published *PublishedPort  `json:"published,omitempty"`

	Category Category `json:"category"`

	// Conflict marks a key claimed by more than one distinguishable source.
	// SO_REUSEPORT sharers are all emitted flagged; no tie-break is applied.
	Conflict bool `json:"conflict"`
}

// Corroborated reports whether a container publication is backed by an actual
// listening socket. Host-only records are trivially corroborated.
func (r PortRecord) Corroborated() bool {
	return r.Listener != nil
}

// Valid reports the at-least-one-source invariant.
func (r PortRecord) Valid() bool {
	return r.Listener != nil || r.Published != nil
}
