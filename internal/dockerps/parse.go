package dockerps

import (
	"strconv"
	"strings"

	"github.com/homelab-infra/portscope/pkg/model"
)

// ParseMappings parses one container's ports spec. The spec is zero or more
// comma-separated clauses; a published clause has the shape
//
//	bind_address:host_port->container_port/protocol
//
// e.g. "0.0.0.0:1883->1883/tcp" or "[::]:8081->8081/tcp". Exposed-but-
// unpublished clauses like "3306/tcp" carry no host binding and are dropped
// silently. Anything else is counted as skipped; siblings still parse.
func ParseMappings(spec string) (mappings []model.PublishedPort, skipped int) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		// Host-network mode or no publications at all.
		return nil, 0
	}

	for _, clause := range strings.Split(spec, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		if !strings.Contains(clause, "->") {
			if exposedOnly(clause) {
				continue
			}
			skipped++
			continue
		}

		m, ok := parseClause(clause)
		if !ok {
			skipped++
			continue
		}
		mappings = append(mappings, m)
	}
	return mappings, skipped
}

// parseClause parses a single published-port clause. The bind address may be
// IPv6 with embedded colons, so the host side splits on the LAST colon only.
func parseClause(clause string) (model.PublishedPort, bool) {
	left, right, _ := strings.Cut(clause, "->")
	left = strings.TrimSpace(left)
	right = strings.TrimSpace(right)

	// right: "<container_port>/<proto>"
	containerPortStr, proto, found := strings.Cut(right, "/")
	if !found {
		proto = "tcp"
	}
	proto = strings.ToLower(strings.TrimSpace(proto))
	if proto == "" {
		proto = "tcp"
	}
	containerPort, err := strconv.Atoi(strings.TrimSpace(containerPortStr))
	if err != nil {
		return model.PublishedPort{}, false
	}

	// left: "<bind_address>:<host_port>", bind_address possibly "[::]".
	i := strings.LastIndexByte(left, ':')
	if i == -1 {
		return model.PublishedPort{}, false
	}
	addr := strings.TrimSpace(left[:i])
	addr = strings.TrimPrefix(addr, "[")
	addr = strings.TrimSuffix(addr, "]")
	if addr == "" {
		return model.PublishedPort{}, false
	}

	hostPort, err := strconv.Atoi(strings.TrimSpace(left[i+1:]))
	if err != nil || hostPort < 0 || hostPort > 65535 {
		return model.PublishedPort{}, false
	}

	return model.PublishedPort{
		HostBindAddress: addr,
		HostPort:        hostPort,
		ContainerPort:   containerPort,
		Protocol:        proto,
		RawMappingSpec:  clause,
	}, true
}

// exposedOnly matches "port/proto" or "port-port/proto" clauses, which docker
// lists for EXPOSEd ports that were never published to the host.
func exposedOnly(clause string) bool {
	portPart, _, found := strings.Cut(clause, "/")
	if !found {
		return false
	}
	for _, piece := range strings.SplitN(portPart, "-", 2) {
		if _, err := strconv.Atoi(piece); err != nil {
			return false
		}
	}
	return true
}
