package model

// ListenEndpoint is one OS-level listening socket, collected fresh on every
// pass and never mutated afterwards. The (protocol, bind_address, port) tuple
// is not unique: dual-stack bindings and SO_REUSEPORT sharers may repeat it.
type ListenEndpoint struct {
	Protocol    string `json:"protocol"`     // "tcp" or "udp"
	BindAddress string `json:"bind_address"` // verbatim, wildcards preserved
	Port        int    `json:"port"`

	// Attribution is best-effort. PID is nil when the caller lacked
	// permission to inspect the owning process; the endpoint is still valid.
	PID         *int   `json:"process_id,omitempty"`
	ProcessName string `json:"process_name,omitempty"`
	User        string `json:"user,omitempty"`
	CommandLine string `json:"command_line,omitempty"`
}

// Wildcard reports whether addr is an any-interface bind.
func Wildcard(addr string) bool {
	switch addr {
	case "0.0.0.0", "::", "*":
		return true
	}
	return false
}

// PublishedPort is one container-to-host port publication as reported by the
// container runtime. A container in host-network mode produces none; its
// ports surface only as plain ListenEndpoints.
type PublishedPort struct {
	ContainerName  string `json:"container_name"`
	ContainerID    string `json:"container_id"`
	ContainerImage string `json:"container_image"`

	HostBindAddress string `json:"host_bind_address"`
	HostPort        int    `json:"host_port"`
	ContainerPort   int    `json:"container_port"`
	Protocol        string `json:"protocol"`

	// RawMappingSpec keeps the unparsed mapping clause for audit.
	RawMappingSpec string `json:"raw_mapping_spec"`
}
