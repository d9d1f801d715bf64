package model

import "time"

// DockerMeta describes the container-runtime side of a pass. Available stays
// false when the runtime binary is missing, exits non-zero, or times out.
type DockerMeta struct {
	Available bool   `json:"available"`
	Count     int    `json:"count"` // containers listed, published or not
	Command   string `json:"command"`

	// SkippedMappings counts malformed mapping clauses dropped during the
	// pass. Non-fatal, but kept visible for triage.
	SkippedMappings int `json:"skipped_mappings"`
}

// ReportDocument is the full point-in-time snapshot. It is constructed once
// per invocation and immutable once returned. Field names are stable across
// SchemaVersion.
type ReportDocument struct {
	Host          string    `json:"host"`
	GeneratedAt   time.Time `json:"generated_at"`
	SchemaVersion string    `json:"schema_version"`
	ScriptVersion string    `json:"script_version"`

	// IPLocalPortRange is the OS ephemeral range as a two-element [low, high]
	// array, or null when it could not be read.
	IPLocalPortRange []int `json:"ip_local_port_range"`

	Docker DockerMeta   `json:"docker"`
	Ports  []PortRecord `json:"ports"` // ordered by (port, bind_address)
}

// CheckOutcome is the tri-state result of a single-port query. It is never
// collapsed to a boolean inside the core; the CLI boundary maps it to an
// exit code.
type CheckOutcome int

const (
	PortFree CheckOutcome = iota
	PortBound
	PortIndeterminate
)

func (o CheckOutcome) String() string {
	switch o {
	case PortFree:
		return "free"
	case PortBound:
		return "bound"
	case PortIndeterminate:
		return "indeterminate"
	}
	return "unknown"
}
