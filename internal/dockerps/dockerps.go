// Package dockerps invokes the container runtime's listing command and
// parses its port publications. The runtime being absent, slow, or partially
// garbled never fails a pass; it only degrades the report metadata.
package dockerps

import (
	"context"
	"os/exec"
	"strings"

	"github.com/homelab-infra/portscope/pkg/model"
)

// A stable machine-parsable field order instead of the free-form human table.
const formatArg = "{{.Names}}\t{{.ID}}\t{{.Image}}\t{{.Ports}}"

// Command is the exact invocation recorded in the report metadata.
const Command = "docker ps --format '{{.Names}}\\t{{.ID}}\\t{{.Image}}\\t{{.Ports}}'"

// Collect runs `docker ps` once and parses the output. The context bounds the
// invocation; a missing binary, non-zero exit, or timeout returns an empty
// slice with Available=false. No retries.
func Collect(ctx context.Context) ([]model.PublishedPort, model.DockerMeta) {
	meta := model.DockerMeta{Command: Command}

	out, err := exec.CommandContext(ctx, "docker", "ps", "--format", formatArg).Output()
	if err != nil {
		return nil, meta
	}
	meta.Available = true

	published, count, skipped := parseListing(string(out))
	meta.Count = count
	meta.SkippedMappings = skipped
	return published, meta
}

// parseListing parses the tab-separated container listing. One malformed
// line or clause never discards other containers or sibling clauses.
func parseListing(out string) (published []model.PublishedPort, count, skipped int) {
	for _, line := range strings.Split(out, "\n") {
		// Trim line endings only; a container with no publications ends its
		// line with an empty tab-separated field that must survive.
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 4 {
			skipped++
			continue
		}
		count++

		name := strings.TrimSpace(parts[0])
		id := strings.TrimSpace(parts[1])
		image := strings.TrimSpace(parts[2])
		portsSpec := strings.TrimSpace(parts[3])

		mappings, skippedClauses := ParseMappings(portsSpec)
		skipped += skippedClauses
		for i := range mappings {
			mappings[i].ContainerName = name
			mappings[i].ContainerID = id
			mappings[i].ContainerImage = image
			published = append(published, mappings[i])
		}
	}
	return published, count, skipped
}
