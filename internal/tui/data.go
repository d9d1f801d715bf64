package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/muesli/reflow/truncate"

	"github.com/homelab-infra/portscope/pkg/model"
)

// refresh rebuilds the visible rows from the document under the current
// filter and conflict toggle.
func (m *Model) refresh() {
	m.table.SetRows(rows(m.doc.Ports, m.filter, m.conflict))
	m.table.GotoTop()
}

func rows(records []model.PortRecord, filter string, conflictOnly bool) []table.Row {
	var out []table.Row
	for _, r := range records {
		if conflictOnly && !r.Conflict {
			continue
		}
		if !matches(r, filter) {
			continue
		}

		pid, process := "", ""
		if r.Listener != nil {
			if r.Listener.PID != nil {
				pid = fmt.Sprintf("%d", *r.Listener.PID)
			}
			process = r.Listener.ProcessName
		}

		container := ""
		if r.Published != nil {
			container = r.Published.ContainerName
		}

		var flags []string
		if r.Conflict {
			flags = append(flags, "conflict")
		}
		if r.Published != nil && r.Listener == nil {
			flags = append(flags, "unbound")
		}

		out = append(out, table.Row{
			fmt.Sprintf("%d", r.Port),
			r.Protocol,
			truncate.StringWithTail(r.BindAddress, 24, "…"),
			string(r.Category),
			pid,
			truncate.StringWithTail(process, 18, "…"),
			truncate.StringWithTail(container, 22, "…"),
			strings.Join(flags, ","),
		})
	}
	return out
}

func matches(r model.PortRecord, filter string) bool {
	if filter == "" {
		return true
	}
	f := strings.ToLower(filter)

	if strings.Contains(fmt.Sprintf("%d", r.Port), f) {
		return true
	}
	if strings.Contains(r.BindAddress, f) || strings.Contains(r.Protocol, f) {
		return true
	}
	if strings.Contains(string(r.Category), f) {
		return true
	}
	if r.Listener != nil {
		if strings.Contains(strings.ToLower(r.Listener.ProcessName), f) ||
			strings.Contains(strings.ToLower(r.Listener.User), f) ||
			strings.Contains(strings.ToLower(r.Listener.CommandLine), f) {
			return true
		}
	}
	if r.Published != nil {
		if strings.Contains(strings.ToLower(r.Published.ContainerName), f) ||
			strings.Contains(strings.ToLower(r.Published.ContainerImage), f) {
			return true
		}
	}
	return false
}
