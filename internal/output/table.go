package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/homelab-infra/portscope/pkg/model"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5f5fd7")). // Purple/Blue
				Bold(true)

	tableMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")) // Dimmed Gray

	conflictStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5f5f")). // Soft red
			Bold(true)
)

const (
	processWidth   = 20
	containerWidth = 24
)

// RenderTable produces the terminal view of a document. It is a pure function
// of the document: no collection, no I/O. Command lines, raw mapping specs,
// and container IDs/images are omitted for width; a footnote says so and
// points at the JSON artifact.
func RenderTable(doc model.ReportDocument, colorEnabled bool) string {
	var b strings.Builder

	header := func(s string) string {
		if colorEnabled {
			return tableHeaderStyle.Render(s)
		}
		return s
	}
	meta := func(s string) string {
		if colorEnabled {
			return tableMetaStyle.Render(s)
		}
		return s
	}

	b.WriteString(meta(fmt.Sprintf("host %s  generated %s  schema %s",
		doc.Host, doc.GeneratedAt.Format("2006-01-02 15:04:05 MST"), doc.SchemaVersion)))
	b.WriteByte('\n')
	b.WriteString(meta(dockerLine(doc.Docker) + "  " + ephemeralLine(doc.IPLocalPortRange)))
	b.WriteString("\n\n")

	const rowFormat = "%-5s %-28s %6s %-14s %8s %-12s %-20s %-24s %s\n"
	b.WriteString(header(fmt.Sprintf(rowFormat,
		"PROTO", "ADDRESS", "PORT", "CATEGORY", "PID", "USER", "PROCESS", "CONTAINER", "")))

	for _, r := range doc.Ports {
		pid, user, process := "-", "-", "-"
		if r.Listener != nil {
			if r.Listener.PID != nil {
				pid = fmt.Sprintf("%d", *r.Listener.PID)
			}
			if r.Listener.User != "" {
				user = r.Listener.User
			}
			if r.Listener.ProcessName != "" {
				process = r.Listener.ProcessName
			}
		}

		container := "-"
		if r.Published != nil {
			container = fmt.Sprintf("%s (:%d)", r.Published.ContainerName, r.Published.ContainerPort)
			if r.Listener == nil {
				container += " unbound"
			}
		}

		flag := ""
		if r.Conflict {
			flag = "conflict"
			if colorEnabled {
				flag = conflictStyle.Render(flag)
			}
		}

		b.WriteString(fmt.Sprintf(rowFormat,
			r.Protocol,
			truncate.StringWithTail(r.BindAddress, 28, "…"),
			fmt.Sprintf("%d", r.Port),
			string(r.Category),
			pid,
			truncate.StringWithTail(user, 12, "…"),
			truncate.StringWithTail(process, processWidth, "…"),
			truncate.StringWithTail(container, containerWidth, "…"),
			flag))
	}

	b.WriteByte('\n')
	b.WriteString(meta(fmt.Sprintf("%d ports. Command lines, raw mapping specs, and container ids/images omitted here; see the JSON report.", len(doc.Ports))))
	b.WriteByte('\n')
	return b.String()
}

func dockerLine(d model.DockerMeta) string {
	if !d.Available {
		return "docker unavailable"
	}
	line := fmt.Sprintf("docker available, %d containers", d.Count)
	if d.SkippedMappings > 0 {
		line += fmt.Sprintf(" (%d mapping clauses skipped)", d.SkippedMappings)
	}
	return line
}

func ephemeralLine(r []int) string {
	if len(r) != 2 {
		return "ephemeral range unknown"
	}
	return fmt.Sprintf("ephemeral %d-%d", r[0], r[1])
}
